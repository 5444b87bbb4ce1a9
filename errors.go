// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "fmt"

// Kind discriminates the probe-core error taxonomy. Callers should match on
// Kind rather than on error strings or type assertions.
type Kind int

const (
	KindTransport Kind = iota
	KindOutdatedFirmware
	KindFrequencyTooLow
	KindFrequencySetFailed
	KindNoIdcode
	KindAlignment
	KindTransferTooLarge
)

// Error is the single error type returned by every probe-core operation.
// It carries enough structure (Kind plus the offending values) for a
// caller to branch without parsing the message.
type Error struct {
	Kind    Kind
	Message string

	CurrentVersion string // KindOutdatedFirmware
	MinimumVersion string // KindOutdatedFirmware
	Width          int    // KindAlignment: required alignment in bytes
	Limit          int    // KindTransferTooLarge: the cap that was exceeded

	Cause error // underlying transport/USB error, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindOutdatedFirmware:
		return fmt.Sprintf("outdated firmware: have %s, require %s", e.CurrentVersion, e.MinimumVersion)
	case KindFrequencyTooLow:
		return "requested SWD frequency is below every supported step"
	case KindFrequencySetFailed:
		return "probe rejected the SWD frequency-set command"
	case KindNoIdcode:
		return "no IDCODE returned, target is probably not connected"
	case KindAlignment:
		return fmt.Sprintf("address/size not aligned to %d bytes", e.Width)
	case KindTransferTooLarge:
		return fmt.Sprintf("transfer exceeds the %d byte cap", e.Limit)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("transport error: %v", e.Cause)
		}
		return "transport error"
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func newTransportError(cause error) error {
	return &Error{Kind: KindTransport, Cause: cause}
}

func newOutdatedFirmwareError(current, minimum string) error {
	return &Error{Kind: KindOutdatedFirmware, CurrentVersion: current, MinimumVersion: minimum}
}

func newFrequencyTooLowError() error {
	return &Error{Kind: KindFrequencyTooLow}
}

func newFrequencySetFailedError() error {
	return &Error{Kind: KindFrequencySetFailed}
}

func newNoIdcodeError() error {
	return &Error{Kind: KindNoIdcode}
}

func newAlignmentError(width int) error {
	return &Error{Kind: KindAlignment, Width: width}
}

func newTransferTooLargeError(limit int) error {
	return &Error{Kind: KindTransferTooLarge, Limit: limit}
}
