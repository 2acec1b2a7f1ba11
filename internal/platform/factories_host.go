//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"
	"sync"
	"time"

	"ir2i2c/internal/halcore"
	"ir2i2c/internal/util"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin for host-side tests and simulation.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	irqEdge halcore.Edge
	irqFunc func()
	rises   int
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	if pull == halcore.PullUp {
		p.level = true
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

// Set drives the level and runs the IRQ handler, outside the lock, when the
// transition matches the configured edge.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	edge := edgeFrom(old, level)
	if edge == halcore.EdgeRising {
		p.rises++
	}
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edge)
	p.mu.Unlock()
	if want && irq != nil {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports whether the pin was last configured as an output.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Rises counts low-to-high transitions since creation.
func (p *FakePin) Rises() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rises
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	if seen == halcore.EdgeNone {
		return false
	}
	if cfg == halcore.EdgeBoth {
		return true
	}
	return cfg == seen
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	p, ok := f.Get(n)
	return p, ok
}

// Get exposes the underlying *FakePin, e.g. to drive IRQ edges.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// DefaultPinFactory provides a host GPIO factory with the same numbering
// range as the RP2 user GPIOs.
func DefaultPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// ----------------------------- Watchdog (host) -------------------------------

// Watchdog simulates a hardware watchdog with a timer. When it expires the
// OnExpire callback runs once per arming; the host runner uses it to start a
// cold boot.
type Watchdog struct {
	mu       sync.Mutex
	timer    *time.Timer
	timeout  time.Duration
	expired  bool
	onExpire func()
}

func NewWatchdog(onExpire func()) *Watchdog {
	return &Watchdog{onExpire: onExpire}
}

func (w *Watchdog) Arm(timeout time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeout = timeout
	w.expired = false
	if w.timer == nil {
		w.timer = time.AfterFunc(timeout, w.fire)
		return nil
	}
	util.ResetTimer(w.timer, timeout)
	return nil
}

func (w *Watchdog) Feed() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil || w.expired {
		return
	}
	util.ResetTimer(w.timer, w.timeout)
}

// Expired reports whether the watchdog has fired since it was last armed.
func (w *Watchdog) Expired() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.expired
}

// Stop disarms the timer; hardware cannot do this, tests can.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *Watchdog) fire() {
	w.mu.Lock()
	if w.expired {
		w.mu.Unlock()
		return
	}
	w.expired = true
	cb := w.onExpire
	w.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// ----------------------------- IRQ mask (host) -------------------------------

// Mask stands in for interrupt masking with a mutex.
type Mask struct{ mu sync.Mutex }

func (m *Mask) Disable() halcore.IRQState { m.mu.Lock(); return 0 }
func (m *Mask) Restore(halcore.IRQState)  { m.mu.Unlock() }

// ----------------------------- Misc ------------------------------------------

// LogOutput is where the firmware log goes.
func LogOutput() io.Writer { return os.Stderr }

// Halt blocks forever; only used outside the host runner.
func Halt() { select {} }

var (
	_ halcore.IRQPin   = (*FakePin)(nil)
	_ halcore.Watchdog = (*Watchdog)(nil)
	_ halcore.IRQMask  = (*Mask)(nil)
)
