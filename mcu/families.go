// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

// Families indexes every built-in catalog by family name, for callers (such
// as the identify command) that select a family from user input.
var Families = map[string]Family{
	STM32F0.Name: STM32F0,
	STM32F1.Name: STM32F1,
	STM32F4.Name: STM32F4,
}
