// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

import "strings"

// TargetReader is the subset of the target access API the identification
// procedure needs. *stlink.ProbeSession satisfies it.
type TargetReader interface {
	GetMem32(addr uint32) (uint32, error)
	GetMem16(addr uint32) (uint16, error)
}

// Identify runs the multi-stage catalog narrowing procedure against family:
// DEV_ID filter, flash-size filter, and an optional expected-name filter.
func Identify(reader TargetReader, family Family, expectedNames []string) (*Detected, error) {
	idcode, err := reader.GetMem32(family.IDCodeReg)
	if err != nil {
		return nil, err
	}
	devID := uint16(idcode & 0x0fff)

	candidates := filterByDevID(family.Catalog, devID)
	if len(candidates) == 0 {
		return nil, newUnknownMcuError(devID, nil)
	}

	flashRegAddr, err := resolveFlashSizeReg(family, candidates)
	if err != nil {
		return nil, err
	}

	rawKB, err := reader.GetMem16(flashRegAddr)
	if err != nil {
		return nil, err
	}
	flashSizeBytes := uint32(rawKB) * 1024

	candidates = filterByFlashSize(candidates, flashSizeBytes)
	if len(candidates) == 0 {
		return nil, newUnknownMcuError(devID, &flashSizeBytes)
	}

	if len(expectedNames) > 0 {
		canon := canonicalizeNames(family.Name, expectedNames)
		selected := filterByExpected(candidates, canon)
		if len(selected) == 0 {
			return nil, newMcuNotMatchError(partNames(candidates), expectedNames)
		}
		candidates = selected
	}

	return &Detected{Candidates: candidates, FlashSizeBytes: flashSizeBytes, FamilyName: family.Name}, nil
}

func filterByDevID(catalog []Spec, devID uint16) []Spec {
	var out []Spec
	for _, spec := range catalog {
		if spec.DevID == devID {
			out = append(out, spec)
		}
	}
	return out
}

func filterByFlashSize(candidates []Spec, flashSizeBytes uint32) []Spec {
	var out []Spec
	for _, spec := range candidates {
		if spec.Memory.GetSize("FLASH") == flashSizeBytes {
			out = append(out, spec)
		}
	}
	return out
}

// resolveFlashSizeReg prefers the family-wide constant; when absent every
// remaining candidate must agree on its own FlashSizeRegAddr.
func resolveFlashSizeReg(family Family, candidates []Spec) (uint32, error) {
	if family.FlashSizeReg != nil {
		return *family.FlashSizeReg, nil
	}

	var addr *uint32
	for _, spec := range candidates {
		if spec.FlashSizeRegAddr == nil {
			return 0, newCatalogConflictError()
		}
		if addr == nil {
			addr = spec.FlashSizeRegAddr
		} else if *addr != *spec.FlashSizeRegAddr {
			return 0, newCatalogConflictError()
		}
	}
	return *addr, nil
}

func filterByExpected(candidates []Spec, canonExpected []string) []Spec {
	var out []Spec
	for _, spec := range candidates {
		for _, name := range canonExpected {
			if strings.HasPrefix(spec.PartName, name) {
				out = append(out, spec)
				break
			}
		}
	}
	return out
}

func partNames(candidates []Spec) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.PartName
	}
	return names
}

// canonicalizeNames upper-cases each expected name and, when it matches the
// family's name prefix, replaces the character at index 9 with 'x' -
// erasing the STM32 package-size code (e.g. "STM32F103C8" -> "STM32F103x8").
// For a prefix-matching name longer than 9 characters the substitution is
// applied whatever character sits at index 9: a documented quirk of the
// upstream catalog convention, not a bug. Names that do not match the
// family prefix are only upper-cased.
func canonicalizeNames(familyName string, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, canonicalizeName(familyName, name))
	}
	return out
}

func canonicalizeName(familyName, name string) string {
	upper := strings.ToUpper(name)
	prefixLen := len(upper)
	if prefixLen > len(familyName) {
		prefixLen = len(familyName)
	}
	if strings.HasPrefix(upper, familyName[:prefixLen]) && len(upper) > 9 {
		b := []byte(upper)
		b[9] = 'x'
		upper = string(b)
	}
	return upper
}
