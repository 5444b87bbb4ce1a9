// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

// STM32F0 (Cortex-M0): the DBGMCU block sits on a different peripheral
// address than the M3/M4 generation, and F_SIZE moves with it.
const (
	stm32f0IDCodeReg    = 0x40015800
	stm32f0FlashSizeReg = 0x1FFFF7CC
)

// STM32F0 is the Cortex-M0 "F0" catalog, keyed by DEV_ID per ST's RM0091
// reference manual.
var STM32F0 = Family{
	Name:         "STM32F0",
	IDCodeReg:    stm32f0IDCodeReg,
	FlashSizeReg: flashRegAddr(stm32f0FlashSizeReg),
	Catalog: []Spec{
		{
			PartName: "STM32F030x6",
			DevID:    0x440,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 32 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 4 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFEC00, Size: 3 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
		{
			PartName: "STM32F051x8",
			DevID:    0x440,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 64 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 8 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFEC00, Size: 3 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
		{
			PartName: "STM32F070xB",
			DevID:    0x444,
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 128 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 16 * 1024},
				{Name: "SYSTEM", Address: 0x1FFFC800, Size: 3 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFF800, Size: 16},
			},
		},
	},
}
