// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// this code is mainly inspired and based on the openocd project source code
// for detailed information see

// https://sourceforge.net/p/openocd/code

package stlink

// FrequencyStep is one (hz, opcode) row of a probe's SWD frequency table
// (spec §3, FrequencyTable).
type FrequencyStep struct {
	Hz     uint32
	Opcode byte
}

// frequencyTableV2 is the fixed table used by V2/V2-1 probes, descending by
// Hz. V3 discovers its table at runtime via GET_COM_FREQ.
var frequencyTableV2 = []FrequencyStep{
	{4000000, 0},
	{1800000, 1},
	{1200000, 2},
	{950000, 3},
	{480000, 7},
	{240000, 15},
	{125000, 31},
	{100000, 40},
	{50000, 79},
	{25000, 158},
}

// setSWDFrequency negotiates the SWD clock during session construction
// (spec §4.3). It dispatches on probe generation; V2 walks the fixed table,
// V3 discovers its table from the probe first.
func (s *ProbeSession) setSWDFrequency(requestedHz uint32) error {
	switch s.version.Generation {
	case GenerationV3:
		return s.setSWDFrequencyV3(requestedHz)
	default:
		return s.setSWDFrequencyV2(requestedHz)
	}
}

func (s *ProbeSession) setSWDFrequencyV2(requestedHz uint32) error {
	if !s.version.has(flagHasSwdSetFreq) {
		return newOutdatedFirmwareError(s.version.String(), "J22")
	}

	for _, step := range frequencyTableV2 {
		if requestedHz >= step.Hz {
			cmd := newCmdBuilder(cmdDebug).u8(debugApiV2SwdSetFreq).u8(step.Opcode)
			res, err := s.transport.Xfer(cmd.bytes(), nil, 2)
			if err != nil {
				return err
			}
			if res[0] != 0x80 {
				return newFrequencySetFailedError()
			}
			return nil
		}
	}
	return newFrequencyTooLowError()
}

func (s *ProbeSession) setSWDFrequencyV3(requestedHz uint32) error {
	if !s.version.has(flagHasComFreq) {
		return newOutdatedFirmwareError(s.version.String(), "V3")
	}

	cmd := newCmdBuilder(cmdDebug).u8(debugApiV3GetComFreq).u8(0x00)
	res, err := s.transport.Xfer(cmd.bytes(), nil, 52)
	if err != nil {
		return err
	}

	count := int(res[8])
	if count > v3MaxFreqEntries {
		count = v3MaxFreqEntries
	}

	var selectedKHz uint32
	matched := false
	for i := 0; i < count; i++ {
		entryKHz := leToU32(res, 12+4*i)
		if requestedHz/1000 >= entryKHz {
			selectedKHz = entryKHz
			matched = true
			break
		}
	}
	if !matched {
		return newFrequencyTooLowError()
	}

	cmd = newCmdBuilder(cmdDebug).u8(debugApiV3SetComFreq).u8(0x00).u8(0x00)
	cmd.u32le(selectedKHz)
	res, err = s.transport.Xfer(cmd.bytes(), nil, 2)
	if err != nil {
		return err
	}
	if res[0] != 0x80 {
		return newFrequencySetFailedError()
	}
	return nil
}
