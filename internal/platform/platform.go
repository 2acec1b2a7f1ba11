// Package platform supplies the board-specific collaborators of the bridge:
// GPIO pins, the hardware watchdog, interrupt masking, the I²C target
// transport and the log output. Host builds provide fakes and a loopback bus
// for tests and simulation; rp2040/rp2350 builds use TinyGo's machine package.
package platform

import (
	"ir2i2c/errcode"
	"ir2i2c/internal/halcore"
)

// Pins resolves the IR input and the notification output from a factory.
// The IR pin must support edge interrupts.
func Pins(f halcore.PinFactory, irPin, intPin int) (halcore.IRQPin, halcore.GPIOPin, error) {
	p, ok := f.ByNumber(irPin)
	if !ok {
		return nil, nil, &errcode.E{C: errcode.UnknownPin, Op: "ir_pin"}
	}
	irq, ok := p.(halcore.IRQPin)
	if !ok {
		return nil, nil, &errcode.E{C: errcode.UnknownPin, Op: "ir_pin", Msg: "no IRQ support"}
	}
	out, ok := f.ByNumber(intPin)
	if !ok {
		return nil, nil, &errcode.E{C: errcode.UnknownPin, Op: "int_pin"}
	}
	if irPin == intPin {
		return nil, nil, &errcode.E{C: errcode.InvalidConfig, Op: "pins", Msg: "ir_pin and int_pin overlap"}
	}
	return irq, out, nil
}
