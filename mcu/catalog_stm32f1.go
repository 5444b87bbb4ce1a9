// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

// STM32F1 (Cortex-M3): the DBGMCU_IDCODE address is the one shared by the
// Cortex-M3/M4 DBGMCU generation (STM32F4 uses it too); the F_SIZE address
// is F1-specific.
const (
	stm32f1IDCodeReg    = 0xE0042000
	stm32f1FlashSizeReg = 0x1FFFF7E0
)

// STM32F1 is the Cortex-M3 "F1" catalog, keyed by DEV_ID as documented by
// ST's RM0008 reference manual.
var STM32F1 = Family{
	Name:         "STM32F1",
	IDCodeReg:    stm32f1IDCodeReg,
	FlashSizeReg: flashRegAddr(stm32f1FlashSizeReg),
	Catalog: []Spec{
		{
			PartName: "STM32F103x8",
			DevID:    0x410,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 64 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 20 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFF000, Size: 2 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
		{
			PartName: "STM32F103xB",
			DevID:    0x410,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 128 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 20 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFF000, Size: 2 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
		{
			PartName: "STM32F107xC",
			DevID:    0x418,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 256 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 64 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFB000, Size: 18 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
	},
}

func flashRegAddr(addr uint32) *uint32 { return &addr }
