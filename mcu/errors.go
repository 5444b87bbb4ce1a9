// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

import (
	"fmt"
	"strings"
)

// Kind discriminates the mcu package's error taxonomy.
type Kind int

const (
	KindUnknownMcu Kind = iota
	KindMcuNotMatch
	KindMemoryMapAmbiguous
	KindSvdAmbiguous
	KindCatalogConflict
)

// Error is the single error type returned by the identification procedure.
type Error struct {
	Kind Kind

	DevID          uint16   // KindUnknownMcu
	FlashSizeBytes *uint32  // KindUnknownMcu
	Detected       []string // KindMcuNotMatch
	Expected       []string // KindMcuNotMatch
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownMcu:
		msg := fmt.Sprintf("unknown MCU with DEV_ID: %03x", e.DevID)
		if e.FlashSizeBytes != nil {
			msg += fmt.Sprintf(" with FLASH: %d KB", *e.FlashSizeBytes/1024)
		}
		return msg
	case KindMcuNotMatch:
		return fmt.Sprintf("detected MCU: %s, but expected: %s",
			strings.Join(e.Detected, "/"), strings.Join(e.Expected, "/"))
	case KindMemoryMapAmbiguous:
		return "memory map is ambiguous across the remaining candidates"
	case KindSvdAmbiguous:
		return "SVD file is ambiguous or undefined for the remaining candidates"
	case KindCatalogConflict:
		return "catalog entries disagree on the flash size register address"
	default:
		return "mcu identification error"
	}
}

func newUnknownMcuError(devID uint16, flashSizeBytes *uint32) error {
	return &Error{Kind: KindUnknownMcu, DevID: devID, FlashSizeBytes: flashSizeBytes}
}

func newMcuNotMatchError(detected, expected []string) error {
	return &Error{Kind: KindMcuNotMatch, Detected: detected, Expected: expected}
}

func newMemoryMapAmbiguousError() error {
	return &Error{Kind: KindMemoryMapAmbiguous}
}

func newSvdAmbiguousError() error {
	return &Error{Kind: KindSvdAmbiguous}
}

func newCatalogConflictError() error {
	return &Error{Kind: KindCatalogConflict}
}
