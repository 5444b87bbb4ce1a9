// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package mcu

// Spec is one static catalog entry: a single STM32 part description.
type Spec struct {
	PartName string
	DevID    uint16

	// FlashSizeRegAddr is the part's own flash-size register address. It is
	// consulted only when Family.FlashSizeReg is nil; a family constant, when
	// set, always takes precedence.
	FlashSizeRegAddr *uint32

	SVDFile string
	Memory  MemoryMap
}

// Family groups a device catalog under the constants shared by every part
// in it: the DBGMCU_IDCODE address and, usually, the flash-size register
// address.
type Family struct {
	Name string

	IDCodeReg uint32

	// FlashSizeReg is the family-wide flash-size register address. If nil,
	// every remaining candidate after the DEV_ID filter must agree on its
	// own Spec.FlashSizeRegAddr.
	FlashSizeReg *uint32

	Catalog []Spec
}

// Detected is the result of a successful identification run. Candidates is
// never empty; when it holds more than one entry the parts are
// indistinguishable from DEV_ID, flash size and (if supplied) expected-name
// filtering alone.
type Detected struct {
	Candidates     []Spec
	FlashSizeBytes uint32
	FamilyName     string
}

// FlashSize returns the detected flash size in bytes.
func (d *Detected) FlashSize() uint32 { return d.FlashSizeBytes }

// Name joins every surviving candidate's part name with " / ".
func (d *Detected) Name() string {
	name := ""
	for i, c := range d.Candidates {
		if i > 0 {
			name += " / "
		}
		name += c.PartName
	}
	return name
}

// MemoryRegions returns the detected part's memory map. It fails with
// MemoryMapAmbiguous when more than one candidate survived filtering, since
// there is then no single map to return.
func (d *Detected) MemoryRegions() (MemoryMap, error) {
	if len(d.Candidates) > 1 {
		return nil, newMemoryMapAmbiguousError()
	}
	if len(d.Candidates) == 0 {
		return nil, newMemoryMapAmbiguousError()
	}
	return d.Candidates[0].Memory, nil
}

// SVDLoader loads the SVD file at path into a caller-defined model.
type SVDLoader func(path string) error

// LoadSVD resolves the detected part's SVD file and hands it to loader. It
// fails with SvdAmbiguous under the same conditions as MemoryRegions, or if
// the surviving candidate has no SVD file on record.
func (d *Detected) LoadSVD(loader SVDLoader) error {
	if len(d.Candidates) != 1 {
		return newSvdAmbiguousError()
	}
	svd := d.Candidates[0].SVDFile
	if svd == "" {
		return newSvdAmbiguousError()
	}
	return loader(svd)
}
