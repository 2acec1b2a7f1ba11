// Package ir2i2c is the master-side driver for the IR-to-I²C bridge.
//
// The bridge queues decoded remote-control codes. A master either polls
//
//	n, _ := d.Buffered()
//	ev, err := d.Read()      // ErrEmpty when nothing is queued
//
// or enables the notification line with SetInterrupt(true) and reads after
// each pulse. A pulse is sent once per batch: it is rearmed by any Read or
// by AckInterrupt.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided, without releasing the bus.
package ir2i2c

import (
	"errors"

	"ir2i2c/errcode"
	"ir2i2c/types"

	"tinygo.org/x/drivers"
)

// Address is the bridge's default 7-bit address.
const Address = types.DefaultAddress

// Errors returned by the driver. Bus errors are passed through unchanged.
var (
	ErrEmpty    error = &errcode.E{C: errcode.QueueEmpty, Op: "ir2i2c.Read"}
	ErrProtocol error = &errcode.E{C: errcode.InvalidPayload, Op: "ir2i2c.Read", Msg: "short reply"}
)

// Device wraps an I2C connection to a bridge.
type Device struct {
	bus     drivers.I2C
	Address uint16

	w [2]byte
	r [types.EventSize]byte
}

// New creates a Device. The I2C bus must already be configured.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address}
}

// Buffered returns the number of queued events.
func (d *Device) Buffered() (int, error) {
	d.w[0] = byte(types.RegBufLen)
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return int(d.r[0]), nil
}

// Read pops the oldest event.
func (d *Device) Read() (types.Event, error) {
	d.w[0] = byte(types.RegRead)
	if err := d.bus.Tx(d.Address, d.w[:1], d.r[:]); err != nil {
		return types.Event{}, err
	}
	ev, ok := types.EventFromWire(d.r[:])
	if !ok {
		return types.Event{}, ErrProtocol
	}
	if ev.IsZero() {
		return types.Event{}, ErrEmpty
	}
	return ev, nil
}

// Drain reads events into dst until the bridge is empty or dst is full.
func (d *Device) Drain(dst []types.Event) (int, error) {
	n := 0
	for n < len(dst) {
		ev, err := d.Read()
		if errors.Is(err, ErrEmpty) {
			break
		}
		if err != nil {
			return n, err
		}
		dst[n] = ev
		n++
	}
	return n, nil
}

// SetInterrupt enables or disables the notification line.
func (d *Device) SetInterrupt(on bool) error {
	d.w[0] = byte(types.RegSetInt)
	d.w[1] = 0
	if on {
		d.w[1] = 1
	}
	return d.bus.Tx(d.Address, d.w[:2], nil)
}

// AckInterrupt rearms the notification line without reading.
func (d *Device) AckInterrupt() error {
	d.w[0] = byte(types.RegIntFlg)
	return d.bus.Tx(d.Address, d.w[:1], nil)
}

// Reset restarts the bridge through its watchdog. The bridge does not
// answer for a few tens of milliseconds afterwards, and comes back with an
// empty queue and interrupts disabled.
func (d *Device) Reset() error {
	d.w[0] = byte(types.RegReset)
	return d.bus.Tx(d.Address, d.w[:1], nil)
}
