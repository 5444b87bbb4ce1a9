// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"fmt"

	"github.com/boljen/go-bitmap"
)

// ProbeVersion is the immutable result of the version handshake (spec §3).
type ProbeVersion struct {
	Generation  ProbeGeneration
	StlinkMajor uint8
	JtagMinor   uint8
	SwimMinor   *uint8
	MassMinor   *uint8
	BridgeMinor *uint8
	APILevel    int

	flags bitmap.Bitmap
}

func (v *ProbeVersion) has(flag int) bool { return v.flags.Get(flag) }

// String renders the canonical "ST-Link/<gen> V<major>[J..][S..][M..][B..]"
// form used in log lines and OutdatedFirmware messages.
func (v *ProbeVersion) String() string {
	s := fmt.Sprintf("ST-Link/%s V%d", v.Generation, v.StlinkMajor)
	if v.JtagMinor > 0 {
		s += fmt.Sprintf("J%d", v.JtagMinor)
	}
	if v.SwimMinor != nil {
		s += fmt.Sprintf("S%d", *v.SwimMinor)
	}
	if v.MassMinor != nil {
		s += fmt.Sprintf("M%d", *v.MassMinor)
	}
	if v.BridgeMinor != nil {
		s += fmt.Sprintf("B%d", *v.BridgeMinor)
	}
	return s
}

// readVersion performs the GET_VERSION / GET_VERSION_EX handshake described
// in spec §4.3 and derives the capability flags later operations gate on.
func readVersion(t Transport) (*ProbeVersion, error) {
	cmd := newCmdBuilder(cmdGetVersion).u8(0x80)
	res, err := t.Xfer(cmd.bytes(), nil, 6)
	if err != nil {
		return nil, err
	}

	raw := beToU16(res, 0)
	major := uint8((raw >> 12) & 0xf)

	v := &ProbeVersion{
		Generation:  t.Generation(),
		StlinkMajor: major,
		flags:       bitmap.New(numCapabilityFlags),
	}

	switch major {
	case 2:
		jtag := uint8((raw >> 6) & 0x3f)
		minor := uint8(raw & 0x3f)
		v.JtagMinor = jtag
		if jtag <= 11 {
			v.APILevel = 1
		} else {
			v.APILevel = 2
		}
		switch v.Generation {
		case GenerationV2:
			v.SwimMinor = &minor
		case GenerationV2_1:
			v.MassMinor = &minor
		}
		if jtag >= 22 {
			v.flags.Set(flagHasSwdSetFreq, true)
		}
		if jtag >= 29 {
			v.flags.Set(flagHasMem16Bit, true)
		}
		if jtag >= 13 {
			v.flags.Set(flagHasTargetVolt, true)
		}
	case 3:
		cmdEx := newCmdBuilder(cmdGetVersionEx).u8(0x80)
		resEx, err := t.Xfer(cmdEx.bytes(), nil, 16)
		if err != nil {
			return nil, err
		}
		v.APILevel = 3
		swim := resEx[1]
		jtag := resEx[2]
		mass := resEx[3]
		bridge := resEx[4]
		v.JtagMinor = jtag
		v.SwimMinor = &swim
		v.MassMinor = &mass
		v.BridgeMinor = &bridge
		v.flags.Set(flagHasSwdSetFreq, true)
		v.flags.Set(flagHasMem16Bit, true)
		v.flags.Set(flagHasTargetVolt, true)
		v.flags.Set(flagHasComFreq, true)
	}

	logger.Debugf("parsed probe version %s (api level %d)", v.String(), v.APILevel)
	return v, nil
}

// supports16BitMemOps implements the read_mem16/write_mem16 version guard:
// api >= 2 and (V3 or jtag >= 29), queried from the capability bitmap set
// during the version handshake rather than re-derived from raw fields.
func (v *ProbeVersion) supports16BitMemOps() bool {
	if v.APILevel < 2 {
		return false
	}
	return v.has(flagHasMem16Bit)
}
