// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"testing"
)

func putU32LE(buf []byte, offset int, v uint32) {
	buf[offset] = byte(v)
	buf[offset+1] = byte(v >> 8)
	buf[offset+2] = byte(v >> 16)
	buf[offset+3] = byte(v >> 24)
}

func TestSetSWDFrequencyV2Success(t *testing.T) {
	ft := &fakeTransport{
		gen: GenerationV2,
		steps: []scriptedStep{
			{wantTx: []byte{cmdDebug, debugApiV2SwdSetFreq, 3}, rx: []byte{0x80, 0}},
		},
	}
	s := &ProbeSession{transport: ft, version: newTestVersion(GenerationV2, 26, 2, flagHasSwdSetFreq)}

	if err := s.setSWDFrequency(1000000); err != nil {
		t.Fatalf("setSWDFrequency: %v", err)
	}
}

func TestSetSWDFrequencyV2TooLow(t *testing.T) {
	ft := &fakeTransport{gen: GenerationV2}
	s := &ProbeSession{transport: ft, version: newTestVersion(GenerationV2, 26, 2, flagHasSwdSetFreq)}

	err := s.setSWDFrequency(1000)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindFrequencyTooLow {
		t.Fatalf("got %v, want KindFrequencyTooLow", err)
	}
}

func TestSetSWDFrequencyV2Outdated(t *testing.T) {
	ft := &fakeTransport{gen: GenerationV2}
	s := &ProbeSession{transport: ft, version: newTestVersion(GenerationV2, 10, 1)}

	err := s.setSWDFrequency(1000000)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindOutdatedFirmware {
		t.Fatalf("got %v, want KindOutdatedFirmware", err)
	}
}

func TestSetSWDFrequencyV3Success(t *testing.T) {
	res := make([]byte, 52)
	res[8] = 3
	putU32LE(res, 12, 4000)
	putU32LE(res, 16, 1800)
	putU32LE(res, 20, 950)

	want := make([]byte, 0, 7)
	want = append(want, cmdDebug, debugApiV3SetComFreq, 0x00, 0x00)
	wantFreq := make([]byte, 4)
	putU32LE(wantFreq, 0, 1800)
	want = append(want, wantFreq...)

	ft := &fakeTransport{
		gen: GenerationV3,
		steps: []scriptedStep{
			{wantTx: []byte{cmdDebug, debugApiV3GetComFreq, 0x00}, rx: res},
			{wantTx: want, rx: []byte{0x80, 0}},
		},
	}
	s := &ProbeSession{transport: ft, version: newTestVersion(GenerationV3, 0, 3, flagHasComFreq)}

	if err := s.setSWDFrequency(2000000); err != nil {
		t.Fatalf("setSWDFrequency: %v", err)
	}
}

func TestSetSWDFrequencyV3TooLow(t *testing.T) {
	res := make([]byte, 52)
	res[8] = 3
	putU32LE(res, 12, 4000)
	putU32LE(res, 16, 1800)
	putU32LE(res, 20, 950)

	ft := &fakeTransport{
		gen: GenerationV3,
		steps: []scriptedStep{
			{wantTx: []byte{cmdDebug, debugApiV3GetComFreq, 0x00}, rx: res},
		},
	}
	s := &ProbeSession{transport: ft, version: newTestVersion(GenerationV3, 0, 3, flagHasComFreq)}

	err := s.setSWDFrequency(500000)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindFrequencyTooLow {
		t.Fatalf("got %v, want KindFrequencyTooLow", err)
	}
}
