// Package halcore holds the hardware abstractions shared by the bridge and
// the platform layer. Host builds satisfy them with fakes, rp2040 builds with
// TinyGo's machine package.
package halcore

import "time"

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with interrupts. Handlers run in interrupt context
// on hardware: no blocking, no allocation.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- Watchdog ----

// Watchdog is a hardware reset timer. Arm (re)configures the timeout and
// starts it; Feed restarts the countdown. An expired watchdog resets the
// device and never returns control.
type Watchdog interface {
	Arm(timeout time.Duration) error
	Feed()
}

// ---- Interrupt masking ----

// IRQState is an opaque saved interrupt state.
type IRQState uintptr

// IRQMask brackets a critical section that must not be preempted by bus
// callbacks. Sections must be short and must not nest.
type IRQMask interface {
	Disable() IRQState
	Restore(IRQState)
}

// NoMask is used when every callback runs on the main loop.
type NoMask struct{}

func (NoMask) Disable() IRQState { return 0 }
func (NoMask) Restore(IRQState)  {}
