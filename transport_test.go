// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"bytes"
	"fmt"

	"github.com/boljen/go-bitmap"
)

// newTestVersion builds a ProbeVersion with its capability bitmap properly
// allocated, since the zero value leaves flags nil. Tests pass only the
// flags their scenario needs set.
func newTestVersion(gen ProbeGeneration, jtagMinor uint8, apiLevel int, flags ...int) *ProbeVersion {
	v := &ProbeVersion{
		Generation: gen,
		JtagMinor:  jtagMinor,
		APILevel:   apiLevel,
		flags:      bitmap.New(numCapabilityFlags),
	}
	for _, f := range flags {
		v.flags.Set(f, true)
	}
	return v
}

// scriptedStep is one expected request/response pair in a fakeTransport's
// script.
type scriptedStep struct {
	wantTx []byte // nil skips the tx comparison
	rx     []byte
	err    error
}

// fakeTransport plays back a fixed script of responses, asserting on the
// request bytes it receives. It stands in for a real USB-backed Transport
// in every test in this package.
type fakeTransport struct {
	steps []scriptedStep
	pos   int

	gen     ProbeGeneration
	maxXfer uint32
}

func (f *fakeTransport) Xfer(tx []byte, data []byte, rxLength int) ([]byte, error) {
	if f.pos >= len(f.steps) {
		return nil, fmt.Errorf("fakeTransport: unscripted call #%d, tx=%v", f.pos, tx)
	}
	step := f.steps[f.pos]
	f.pos++

	if step.wantTx != nil && !bytes.Equal(step.wantTx, tx) {
		return nil, fmt.Errorf("fakeTransport: step %d tx mismatch, got %v want %v", f.pos-1, tx, step.wantTx)
	}
	if step.err != nil {
		return nil, step.err
	}
	return step.rx, nil
}

func (f *fakeTransport) Generation() ProbeGeneration { return f.gen }
func (f *fakeTransport) MaximumTransferSize() uint32 {
	if f.maxXfer == 0 {
		return defaultMaxTransferSize
	}
	return f.maxXfer
}
