//go:build rp2040 || rp2350

package platform

import (
	"io"
	"log/slog"
	"machine"
	"runtime/interrupt"
	"sync/atomic"
	"time"

	"ir2i2c/internal/halcore"
	"ir2i2c/services/bridge"
	"ir2i2c/x/mathx"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// ----------------------------- GPIO ------------------------------------------

// DefaultPinFactory maps logical numbers directly to machine.Pin(n), which
// matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// RP2 user GPIOs are GP0..GP28.
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	var change machine.PinChange
	switch edge {
	case halcore.EdgeRising:
		change = machine.PinRising
	case halcore.EdgeFalling:
		change = machine.PinFalling
	case halcore.EdgeBoth:
		change = machine.PinToggle
	}
	return r.p.SetInterrupt(change, func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

// ----------------------------- Watchdog --------------------------------------

// Watchdog drives machine.Watchdog. Arm may be called again with a new
// timeout; the counter is reloaded immediately.
type Watchdog struct {
	started bool
}

// NewWatchdog ignores onExpire: expiry resets the chip.
func NewWatchdog(func()) *Watchdog { return &Watchdog{} }

func (w *Watchdog) Arm(timeout time.Duration) error {
	ms := mathx.CeilDiv(uint64(timeout), uint64(time.Millisecond))
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: uint32(ms)}); err != nil {
		return err
	}
	if !w.started {
		if err := machine.Watchdog.Start(); err != nil {
			return err
		}
		w.started = true
	}
	machine.Watchdog.Update()
	return nil
}

func (w *Watchdog) Feed() { machine.Watchdog.Update() }

// ----------------------------- IRQ mask --------------------------------------

type Mask struct{}

func (Mask) Disable() halcore.IRQState { return halcore.IRQState(interrupt.Disable()) }
func (Mask) Restore(s halcore.IRQState) { interrupt.Restore(interrupt.State(s)) }

// ----------------------------- I²C target ------------------------------------

// Target serves the bridge as an I²C target on a hardware bus. Transactions
// are handled on their own goroutine, so the transport is preemptive with
// respect to the main loop.
type Target struct {
	bus  *machine.I2C
	sda  machine.Pin
	scl  machine.Pin
	addr uint16
	log  *slog.Logger

	h        bridge.Handler
	detached atomic.Bool
	// A write holds a register and an option byte; anything past the
	// buffer is dropped by the peripheral along with the other extra bytes.
	buf [8]byte
}

// NewTarget uses I2C0 on its board-default pins.
func NewTarget(addr uint16) *Target {
	return &Target{
		bus:  machine.I2C0,
		sda:  machine.I2C0_SDA_PIN,
		scl:  machine.I2C0_SCL_PIN,
		addr: addr,
		log:  slog.Default().With("service", "i2c"),
	}
}

func (t *Target) Preemptive() bool { return true }
func (t *Target) Poll()            {}

func (t *Target) Attach(h bridge.Handler) error {
	t.h = h
	t.detached.Store(false)
	if err := t.bus.Configure(machine.I2CConfig{
		Mode: machine.I2CModeTarget,
		SDA:  t.sda,
		SCL:  t.scl,
	}); err != nil {
		return err
	}
	if err := t.bus.Listen(t.addr); err != nil {
		return err
	}
	go t.serve()
	return nil
}

// Detach stops delivering transactions; requests get no reply until the
// next Attach.
func (t *Target) Detach() { t.detached.Store(true) }

func (t *Target) serve() {
	for {
		evt, n, err := t.bus.WaitForEvent(t.buf[:])
		if err != nil {
			t.log.Debug("wait for event", "error", err, "bytes", n)
			continue
		}
		if t.detached.Load() {
			if evt == machine.I2CRequest {
				_ = t.bus.Reply(nil)
			}
			continue
		}
		switch evt {
		case machine.I2CReceive:
			t.h.HandleBus(bridge.BusEvent{Type: bridge.EventReceive, Data: t.buf[:n]})
		case machine.I2CRequest:
			// A nil reply leaves the master clocking out idle bytes.
			_ = t.bus.Reply(t.h.HandleBus(bridge.BusEvent{Type: bridge.EventRequest}))
		case machine.I2CFinish:
		}
	}
}

// ----------------------------- Misc ------------------------------------------

// LogOutput opens UART0 on GP0/GP1 for the firmware log.
func LogOutput() io.Writer {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return u
}

// Halt spins until the watchdog resets the chip.
func Halt() {
	for {
	}
}

var (
	_ halcore.IRQPin   = (*rp2Pin)(nil)
	_ halcore.Watchdog = (*Watchdog)(nil)
	_ halcore.IRQMask  = Mask{}
)
