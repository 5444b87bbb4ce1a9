// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// this code is mainly inspired and based on the openocd project source code
// and on pavelrevak/pyswd, see the respective upstream projects for details.

package stlink

// StLinkMode is the debug transport the probe session was opened for.
type StLinkMode uint8

const (
	StLinkModeUnknown   StLinkMode = 0
	StLinkModeDfu                  = 1
	StLinkModeMass                 = 2
	StLinkModeDebugJtag            = 3
	StLinkModeDebugSwd             = 4
	StLinkModeDebugSwim            = 5
)

// ProbeGeneration is the coarse probe family reported by the transport.
type ProbeGeneration string

const (
	GenerationV2   ProbeGeneration = "V2"
	GenerationV2_1 ProbeGeneration = "V2-1"
	GenerationV3   ProbeGeneration = "V3"
)

// capability flags, set during the version handshake and gating later
// commands the way firmware revisions gate them on real hardware.
const (
	flagHasSwdSetFreq = iota
	flagHasMem16Bit
	flagHasTargetVolt
	flagHasComFreq
	numCapabilityFlags
)

// stlink internal device mode numbers, as returned by GET_CURRENT_MODE.
const (
	deviceModeDFU        = 0x00
	deviceModeMass       = 0x01
	deviceModeDebug      = 0x02
	deviceModeSwim       = 0x03
	deviceModeBootloader = 0x04
)

// Top-level command opcodes.
const (
	cmdGetVersion       = 0xF1
	cmdDebug            = 0xF2
	cmdDfu              = 0xF3
	cmdSwim             = 0xF4
	cmdGetCurrentMode   = 0xF5
	cmdGetTargetVoltage = 0xF7
	cmdGetVersionEx     = 0xFB
)

// Mode-exit sub-commands, one per cmd* group.
const (
	dfuExit   = 0x07
	swimExit  = 0x01
	debugExit = 0x21
)

// DEBUG group sub-commands (api v1/v2).
const (
	debugReadMem32Bit  = 0x07
	debugWriteMem32Bit = 0x08
	debugReadMem8Bit   = 0x0c
	debugWriteMem8Bit  = 0x0d

	debugEnterSwdNoReset = 0xa3

	debugApiV2Enter         = 0x30
	debugApiV2ReadIdCodes   = 0x31
	debugApiV2ReadReg       = 0x33
	debugApiV2WriteReg      = 0x34
	debugApiV2WriteDebugReg = 0x35
	debugApiV2ReadDebugReg  = 0x36
	debugApiV2ReadAllRegs   = 0x3A
	debugApiV2SwdSetFreq    = 0x43
	debugApiV2ReadMem16Bit  = 0x47
	debugApiV2WriteMem16Bit = 0x48

	debugApiV3SetComFreq = 0x61
	debugApiV3GetComFreq = 0x62
)

const (
	maxReadWrite8          = 64 // 8-bit op cap shared by every firmware revision
	defaultMaxTransferSize = 1024
	v3MaxFreqEntries       = 10
)
