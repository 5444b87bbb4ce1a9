// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

import (
	"errors"
	"testing"
)

type fakeReader struct {
	idcode  uint32
	flashKB uint16
}

func (f fakeReader) GetMem32(addr uint32) (uint32, error) { return f.idcode, nil }
func (f fakeReader) GetMem16(addr uint32) (uint16, error) { return f.flashKB, nil }

func TestIdentifySTM32F103C8(t *testing.T) {
	reader := fakeReader{idcode: 0x20036410, flashKB: 64}

	detected, err := Identify(reader, STM32F1, []string{"STM32F103C8"})
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if len(detected.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(detected.Candidates))
	}
	if detected.Candidates[0].PartName != "STM32F103x8" {
		t.Fatalf("got part name %q, want STM32F103x8", detected.Candidates[0].PartName)
	}
	if detected.FlashSizeBytes != 65536 {
		t.Fatalf("got flash size %d, want 65536", detected.FlashSizeBytes)
	}
	regions, err := detected.MemoryRegions()
	if err != nil {
		t.Fatalf("MemoryRegions: %v", err)
	}
	if regions.GetSize("FLASH") != 65536 {
		t.Fatalf("got FLASH region size %d, want 65536", regions.GetSize("FLASH"))
	}
}

func TestIdentifyUnknownDevID(t *testing.T) {
	reader := fakeReader{idcode: 0xFFF, flashKB: 64}

	_, err := Identify(reader, STM32F1, nil)
	var mcuErr *Error
	if !errors.As(err, &mcuErr) || mcuErr.Kind != KindUnknownMcu {
		t.Fatalf("got %v, want KindUnknownMcu", err)
	}
}

func TestIdentifyUnknownFlashSize(t *testing.T) {
	reader := fakeReader{idcode: 0x20036410, flashKB: 17}

	_, err := Identify(reader, STM32F1, nil)
	var mcuErr *Error
	if !errors.As(err, &mcuErr) || mcuErr.Kind != KindUnknownMcu || mcuErr.FlashSizeBytes == nil {
		t.Fatalf("got %v, want KindUnknownMcu with flash size set", err)
	}
}

func TestIdentifyMcuNotMatch(t *testing.T) {
	reader := fakeReader{idcode: 0x20036410, flashKB: 64}

	_, err := Identify(reader, STM32F1, []string{"STM32F107"})
	var mcuErr *Error
	if !errors.As(err, &mcuErr) || mcuErr.Kind != KindMcuNotMatch {
		t.Fatalf("got %v, want KindMcuNotMatch", err)
	}
}

func TestIdentifyF4SharedFlashSizeRegAddr(t *testing.T) {
	reader := fakeReader{idcode: 0x20000413, flashKB: 1024}

	detected, err := Identify(reader, STM32F4, nil)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if len(detected.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 (F405/F407 share DEV_ID and flash size)", len(detected.Candidates))
	}
}

func TestCanonicalizeName(t *testing.T) {
	got := canonicalizeName("STM32F1", "stm32f103c8")
	if got != "STM32F103x8" {
		t.Fatalf("got %q, want STM32F103x8", got)
	}
	if canonicalizeName(STM32F1.Name, got) != got {
		t.Fatalf("canonicalization must be idempotent")
	}
}
