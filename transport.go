// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

// this code is mainly inspired and based on the openocd project source code
// for detailed information see

// https://sourceforge.net/p/openocd/code

package stlink

import (
	"context"
	"errors"
	"time"

	"github.com/google/gousb"
)

// Transport is the opaque request/response channel to the probe (spec §4.1).
// Exactly one of data/rxLength is meaningful per call; both empty is a
// legal fire-and-forget exchange (no response read). One exchange is
// in flight at a time: the probe session serializes calls with its own
// mutex, Transport implementations do not need to.
type Transport interface {
	// Xfer sends tx on the OUT endpoint, optionally followed by data as a
	// bulk payload, then optionally reads exactly rxLength bytes back.
	// rxLength <= 0 means "no read expected".
	Xfer(tx []byte, data []byte, rxLength int) ([]byte, error)

	// Generation reports the probe family, used to select the version
	// decoder and the V2/V3 frequency-negotiation path.
	Generation() ProbeGeneration

	// MaximumTransferSize is the bulk cap for 16/32-bit memory operations
	// (typically 1024 bytes).
	MaximumTransferSize() uint32
}

const (
	usbVendorSTLink = 0x0483

	pidSTLinkV2       = 0x3748
	pidSTLinkV21      = 0x374b
	pidSTLinkV21NoMsd = 0x3752
	pidSTLinkV3Loader = 0x374d
	pidSTLinkV3E      = 0x374e
	pidSTLinkV3S      = 0x374f
	pidSTLinkV32Vcp   = 0x3753

	usbEndpointIn  = 0x80
	usbEndpointOut = 0x00

	usbRxEndpointNo     = 1 | usbEndpointIn
	usbTxEndpointNo     = 2 | usbEndpointOut
	usbTxEndpointApiV21 = 1 | usbEndpointOut

	usbWriteTimeout = 2 * time.Second
	usbReadTimeout  = 2 * time.Second
)

// USBTransport is the concrete Transport backed by libusb bulk endpoints.
type USBTransport struct {
	ctx *gousb.Context

	device *gousb.Device
	config *gousb.Config
	iface  *gousb.Interface
	rxEP   *gousb.InEndpoint
	txEP   *gousb.OutEndpoint

	generation ProbeGeneration
	maxXfer    uint32
}

// OpenUSBTransport scans for an attached ST-Link by VID/PID (optionally
// filtered by serial number when more than one is attached) and claims its
// bulk interface. The caller owns the returned transport exclusively and
// must call Close when done.
func OpenUSBTransport(serial string) (*USBTransport, error) {
	usbCtx := gousb.NewContext()

	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return uint16(desc.Vendor) == usbVendorSTLink && isSupportedSTLinkPID(uint16(desc.Product))
	})
	if err != nil && len(devices) == 0 {
		usbCtx.Close()
		return nil, newTransportError(err)
	}
	if len(devices) == 0 {
		usbCtx.Close()
		return nil, newTransportError(errors.New("no ST-Link found"))
	}

	device, err := selectDevice(devices, serial)
	if err != nil {
		for _, d := range devices {
			d.Close()
		}
		usbCtx.Close()
		return nil, newTransportError(err)
	}
	for _, d := range devices {
		if d != device {
			d.Close()
		}
	}

	device.SetAutoDetach(true)

	config, err := device.Config(1)
	if err != nil {
		device.Close()
		usbCtx.Close()
		return nil, newTransportError(err)
	}

	iface, err := config.Interface(0, 0)
	if err != nil {
		config.Close()
		device.Close()
		usbCtx.Close()
		return nil, newTransportError(err)
	}

	t := &USBTransport{
		ctx:     usbCtx,
		device:  device,
		config:  config,
		iface:   iface,
		maxXfer: defaultMaxTransferSize,
	}

	txEndpointNo := usbTxEndpointNo
	switch uint16(device.Desc.Product) {
	case pidSTLinkV3Loader, pidSTLinkV3E, pidSTLinkV3S, pidSTLinkV32Vcp:
		t.generation = GenerationV3
		txEndpointNo = usbTxEndpointApiV21
	case pidSTLinkV21, pidSTLinkV21NoMsd:
		t.generation = GenerationV2_1
		txEndpointNo = usbTxEndpointApiV21
	default:
		t.generation = GenerationV2
	}

	t.rxEP, err = iface.InEndpoint(usbRxEndpointNo)
	if err != nil {
		t.Close()
		return nil, newTransportError(err)
	}
	t.txEP, err = iface.OutEndpoint(txEndpointNo)
	if err != nil {
		t.Close()
		return nil, newTransportError(err)
	}

	logger.Debugf("opened ST-Link %s [%04x:%04x]", t.generation, uint16(device.Desc.Vendor), uint16(device.Desc.Product))
	return t, nil
}

func isSupportedSTLinkPID(pid uint16) bool {
	switch pid {
	case pidSTLinkV2, pidSTLinkV21, pidSTLinkV21NoMsd, pidSTLinkV3Loader, pidSTLinkV3E, pidSTLinkV3S, pidSTLinkV32Vcp:
		return true
	default:
		return false
	}
}

func selectDevice(devices []*gousb.Device, serial string) (*gousb.Device, error) {
	if len(devices) == 1 {
		return devices[0], nil
	}
	if serial == "" {
		return nil, errors.New("multiple ST-Links attached, serial number required")
	}
	for _, d := range devices {
		if s, _ := d.SerialNumber(); s == serial {
			return d, nil
		}
	}
	return nil, errors.New("no ST-Link matches the given serial number")
}

func (t *USBTransport) Generation() ProbeGeneration { return t.generation }

func (t *USBTransport) MaximumTransferSize() uint32 { return t.maxXfer }

// Close releases the USB interface, configuration and context.
func (t *USBTransport) Close() {
	if t.iface != nil {
		t.iface.Close()
	}
	if t.config != nil {
		t.config.Close()
	}
	if t.device != nil {
		t.device.Close()
	}
	if t.ctx != nil {
		t.ctx.Close()
	}
}

func (t *USBTransport) Xfer(tx []byte, data []byte, rxLength int) ([]byte, error) {
	if _, err := t.writeContext(t.txEP, tx, usbWriteTimeout); err != nil {
		return nil, newTransportError(err)
	}

	if len(data) > 0 {
		if _, err := t.writeContext(t.txEP, data, usbWriteTimeout); err != nil {
			return nil, newTransportError(err)
		}
		return nil, nil
	}

	if rxLength > 0 {
		rx := make([]byte, rxLength)
		n, err := t.readContext(t.rxEP, rx, usbReadTimeout)
		if err != nil {
			return nil, newTransportError(err)
		}
		return rx[:n], nil
	}

	return nil, nil
}

func (t *USBTransport) writeContext(ep *gousb.OutEndpoint, buf []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := ep.WriteContext(ctx, buf)
	if err != nil {
		return n, err
	}
	logger.Tracef("%d bytes -> EP-%d", n, ep.Desc.Number)
	return n, nil
}

func (t *USBTransport) readContext(ep *gousb.InEndpoint, buf []byte, timeout time.Duration) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	n, err := ep.ReadContext(ctx, buf)
	if err != nil {
		return n, err
	}
	logger.Tracef("EP-%d -> %d bytes", ep.Desc.Number, n)
	return n, nil
}
