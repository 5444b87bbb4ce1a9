// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"errors"
	"testing"
)

func v3SessionSupporting16Bit() *ProbeSession {
	return &ProbeSession{
		transport: &fakeTransport{gen: GenerationV3},
		version:   newTestVersion(GenerationV3, 0, 3, flagHasMem16Bit),
	}
}

func TestGetIDCodeZero(t *testing.T) {
	ft := &fakeTransport{steps: []scriptedStep{
		{wantTx: []byte{cmdDebug, debugApiV2ReadIdCodes}, rx: make([]byte, 12)},
	}}
	s := &ProbeSession{transport: ft}

	_, err := s.GetIDCode()
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindNoIdcode {
		t.Fatalf("got %v, want KindNoIdcode", err)
	}
}

func TestGetIDCodeSuccess(t *testing.T) {
	rx := make([]byte, 12)
	putU32LE(rx, 4, 0x20036410)
	ft := &fakeTransport{steps: []scriptedStep{
		{wantTx: []byte{cmdDebug, debugApiV2ReadIdCodes}, rx: rx},
	}}
	s := &ProbeSession{transport: ft}

	idcode, err := s.GetIDCode()
	if err != nil {
		t.Fatalf("GetIDCode: %v", err)
	}
	if idcode != 0x20036410 {
		t.Fatalf("got idcode %#x, want 0x20036410", idcode)
	}
}

func TestGetMem32Unaligned(t *testing.T) {
	s := &ProbeSession{transport: &fakeTransport{}}

	_, err := s.GetMem32(0x20000001)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindAlignment || probeErr.Width != 4 {
		t.Fatalf("got %v, want KindAlignment width=4", err)
	}
}

func TestReadMem8TooLarge(t *testing.T) {
	s := &ProbeSession{transport: &fakeTransport{}}

	_, err := s.ReadMem8(0x20000000, 65)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindTransferTooLarge || probeErr.Limit != maxReadWrite8 {
		t.Fatalf("got %v, want KindTransferTooLarge limit=%d", err, maxReadWrite8)
	}
}

func TestReadMem16Outdated(t *testing.T) {
	s := &ProbeSession{
		transport: &fakeTransport{gen: GenerationV2},
		version:   newTestVersion(GenerationV2, 26, 2),
	}

	_, err := s.ReadMem16(0x20000000, 4)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindOutdatedFirmware || probeErr.MinimumVersion != "J29" {
		t.Fatalf("got %v, want KindOutdatedFirmware minimum=J29", err)
	}
}

func TestReadMem16Unaligned(t *testing.T) {
	s := v3SessionSupporting16Bit()

	_, err := s.ReadMem16(0x20000001, 4)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindAlignment || probeErr.Width != 2 {
		t.Fatalf("got %v, want KindAlignment width=2", err)
	}
}

func TestReadMem16TransferTooLarge(t *testing.T) {
	s := v3SessionSupporting16Bit()

	_, err := s.ReadMem16(0x20000000, 2000)
	var probeErr *Error
	if !errors.As(err, &probeErr) || probeErr.Kind != KindTransferTooLarge {
		t.Fatalf("got %v, want KindTransferTooLarge", err)
	}
}

func TestReadMem32Success(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	cmd := newCmdBuilder(cmdDebug).u8(debugReadMem32Bit)
	cmd.u32le(0x20000000)
	cmd.u32le(4)
	ft := &fakeTransport{steps: []scriptedStep{
		{wantTx: cmd.bytes(), rx: want},
	}}
	s := &ProbeSession{transport: ft}

	got, err := s.ReadMem32(0x20000000, 4)
	if err != nil {
		t.Fatalf("ReadMem32: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
