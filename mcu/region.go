// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// Package mcu narrows a probe's DEV_ID and flash-size readings against a
// static device catalog and exposes the resulting memory-region model.
package mcu

// MemoryRegion is one named, addressed span of a part's memory map
// (FLASH, SRAM, SYSTEM, OPTIONS, ...).
type MemoryRegion struct {
	Name    string
	Address uint32
	Size    uint32
}

// MemoryMap is a part's full set of named regions.
type MemoryMap []MemoryRegion

// GetSize returns the named region's size, or 0 if the map has no such
// region.
func (m MemoryMap) GetSize(name string) uint32 {
	for _, r := range m {
		if r.Name == name {
			return r.Size
		}
	}
	return 0
}

// GetAddress returns the named region's base address and whether it exists.
func (m MemoryMap) GetAddress(name string) (uint32, bool) {
	for _, r := range m {
		if r.Name == name {
			return r.Address, true
		}
	}
	return 0, false
}
