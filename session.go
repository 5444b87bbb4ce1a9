// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// this code is mainly inspired and based on the openocd project source code
// for detailed information see

// https://sourceforge.net/p/openocd/code

package stlink

import "sync"

// ProbeSession owns the transport exclusively and exposes the full target
// access API (spec §4.3/§4.4). Construction performs the version handshake,
// leaves whatever mode the probe was in, optionally negotiates an SWD
// frequency, and enters debug+SWD mode; a partially constructed session is
// never returned to the caller.
type ProbeSession struct {
	transport Transport
	version   *ProbeVersion

	// serializes xfer calls: the probe has exactly one debug context, and
	// spec §5 requires one in-flight exchange per session.
	mu sync.Mutex
}

// Option configures session construction.
type Option func(*sessionOptions)

type sessionOptions struct {
	swdFrequencyHz uint32
}

// WithSWDFrequency requests a specific SWD clock; if omitted no frequency
// negotiation is performed and the probe's power-on default is kept.
func WithSWDFrequency(hz uint32) Option {
	return func(o *sessionOptions) { o.swdFrequencyHz = hz }
}

// NewProbeSession performs the full construction sequence described in
// spec §4.3 over the given transport.
func NewProbeSession(t Transport, opts ...Option) (*ProbeSession, error) {
	options := sessionOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	s := &ProbeSession{transport: t}

	v, err := readVersion(t)
	if err != nil {
		return nil, err
	}
	s.version = v

	if err := s.leaveCurrentMode(); err != nil {
		return nil, err
	}

	if options.swdFrequencyHz != 0 {
		if err := s.setSWDFrequency(options.swdFrequencyHz); err != nil {
			return nil, err
		}
	}

	if err := s.enterDebugSWD(); err != nil {
		return nil, err
	}

	if s.version.has(flagHasTargetVolt) {
		if voltage, err := s.GetTargetVoltage(); err == nil && voltage != nil && *voltage < 1.5 {
			logger.Warn("target voltage may be too low for reliable debugging")
		}
	}

	return s, nil
}

// Version returns the probe version established during the handshake.
func (s *ProbeSession) Version() *ProbeVersion { return s.version }

// xfer serializes access to the transport: the probe has exactly one debug
// context and concurrent exchanges would corrupt target state (spec §5).
func (s *ProbeSession) xfer(tx []byte, data []byte, rxLength int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport.Xfer(tx, data, rxLength)
}

// leaveCurrentMode dispatches GET_CURRENT_MODE to the matching *.EXIT
// command (spec §4.3). Unrecognized modes are a no-op.
func (s *ProbeSession) leaveCurrentMode() error {
	res, err := s.xfer([]byte{cmdGetCurrentMode}, nil, 2)
	if err != nil {
		return err
	}

	switch res[0] {
	case deviceModeDFU:
		_, err = s.xfer([]byte{cmdDfu, dfuExit}, nil, 0)
	case deviceModeDebug:
		_, err = s.xfer([]byte{cmdDebug, debugExit}, nil, 0)
	case deviceModeSwim:
		_, err = s.xfer([]byte{cmdSwim, swimExit}, nil, 0)
	}
	return err
}

// enterDebugSWD sends the ENTER/SWD sequence. The response status byte is
// intentionally left unchecked, matching probes that ack this command
// inconsistently across firmware revisions.
func (s *ProbeSession) enterDebugSWD() error {
	cmd := newCmdBuilder(cmdDebug).u8(debugApiV2Enter).u8(debugEnterSwdNoReset)
	_, err := s.xfer(cmd.bytes(), nil, 2)
	return err
}
