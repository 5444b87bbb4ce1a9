// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

const (
	stm32f4IDCodeReg    = 0xE0042000
	stm32f4FlashSizeReg = 0x1FFF7A22
)

// STM32F4 has no family-wide FlashSizeReg constant in this catalog: every
// part records its own FlashSizeRegAddr instead, and Identify requires them
// to agree once the DEV_ID filter narrows to a single family variant. This
// exercises the per-candidate flash-size-register path rather than the
// family-constant one used by STM32F0/STM32F1.
var STM32F4 = Family{
	Name:      "STM32F4",
	IDCodeReg: stm32f4IDCodeReg,
	Catalog: []Spec{
		{
			PartName:         "STM32F405xG",
			DevID:            0x413,
			FlashSizeRegAddr: flashRegAddr(stm32f4FlashSizeReg),
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 1024 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 128 * 1024},
				{Name: "SYSTEM", Address: 0x1FFF0000, Size: 30 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFC000, Size: 16},
			},
		},
		{
			PartName:         "STM32F407xG",
			DevID:            0x413,
			FlashSizeRegAddr: flashRegAddr(stm32f4FlashSizeReg),
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 1024 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 192 * 1024},
				{Name: "SYSTEM", Address: 0x1FFF0000, Size: 30 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFC000, Size: 16},
			},
		},
		{
			PartName:         "STM32F411xE",
			DevID:            0x431,
			FlashSizeRegAddr: flashRegAddr(stm32f4FlashSizeReg),
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 512 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 128 * 1024},
				{Name: "SYSTEM", Address: 0x1FFF0000, Size: 30 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFC000, Size: 16},
			},
		},
		{
			PartName:         "STM32F429xI",
			DevID:            0x419,
			FlashSizeRegAddr: flashRegAddr(stm32f4FlashSizeReg),
			Memory: MemoryMap{
				{Name: "FLASH", Address: 0x08000000, Size: 2048 * 1024},
				{Name: "SRAM", Address: 0x20000000, Size: 256 * 1024},
				{Name: "SYSTEM", Address: 0x1FFF0000, Size: 30 * 1024},
				{Name: "OPTIONS", Address: 0x1FFFC000, Size: 16},
			},
		},
	},
}
