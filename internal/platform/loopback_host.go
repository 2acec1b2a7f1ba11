//go:build !rp2040 && !rp2350

package platform

import (
	"sync"
	"time"

	"ir2i2c/errcode"
	"ir2i2c/services/bridge"

	"tinygo.org/x/drivers"
)

// Loopback is an in-process I²C bus with one target. The master side is
// drivers.I2C; the target side is bridge.Transport.
//
// In synchronous mode Tx queues the transaction and the target's main loop
// runs it from Poll. In preemptive mode Tx calls the handler directly from
// the master's goroutine, which is how an interrupt-driven target behaves.
//
// A read past the end of the reply returns 0xFF, as an idle bus would; a
// request with no reply at all reports errcode.NoResponse, the NACK.
type Loopback struct {
	addr       uint16
	preemptive bool
	timeout    time.Duration

	master sync.Mutex // one master transaction at a time

	hmu     sync.RWMutex
	handler bridge.Handler

	pending chan *loopTx
}

type loopTx struct {
	w, r []byte
	done chan error

	mu        sync.Mutex
	abandoned bool
}

// NewLoopback creates a bus whose target answers at addr.
func NewLoopback(addr uint16, preemptive bool) *Loopback {
	return &Loopback{
		addr:       addr,
		preemptive: preemptive,
		timeout:    time.Second,
		pending:    make(chan *loopTx, 1),
	}
}

// SetTimeout bounds how long a synchronous Tx waits for Poll.
func (l *Loopback) SetTimeout(d time.Duration) { l.timeout = d }

// Attach implements bridge.Transport. A later Attach replaces the handler,
// which is what a rebooted target does.
func (l *Loopback) Attach(h bridge.Handler) error {
	l.hmu.Lock()
	l.handler = h
	l.hmu.Unlock()
	return nil
}

// Detach implements bridge.Transport. Until the next Attach every Tx fails
// with errcode.NotAttached.
func (l *Loopback) Detach() {
	l.hmu.Lock()
	l.handler = nil
	l.hmu.Unlock()
}

func (l *Loopback) Preemptive() bool { return l.preemptive }

// Poll implements bridge.Transport. It runs every queued transaction.
func (l *Loopback) Poll() {
	for {
		select {
		case tx := <-l.pending:
			tx.mu.Lock()
			if !tx.abandoned {
				tx.done <- l.dispatch(tx.w, tx.r)
			}
			tx.mu.Unlock()
		default:
			return
		}
	}
}

// Tx implements drivers.I2C.
func (l *Loopback) Tx(addr uint16, w, r []byte) error {
	if addr != l.addr {
		return &errcode.E{C: errcode.UnknownAddress, Op: "i2c.Tx"}
	}
	l.master.Lock()
	defer l.master.Unlock()

	if l.current() == nil {
		return &errcode.E{C: errcode.NotAttached, Op: "i2c.Tx"}
	}
	if l.preemptive {
		return l.dispatch(w, r)
	}

	tx := &loopTx{w: w, r: r, done: make(chan error, 1)}
	t := time.NewTimer(l.timeout)
	defer t.Stop()

	select {
	case l.pending <- tx:
	case <-t.C:
		return &errcode.E{C: errcode.Timeout, Op: "i2c.Tx", Msg: "target not polling"}
	}
	select {
	case err := <-tx.done:
		return err
	case <-t.C:
	}
	tx.mu.Lock()
	tx.abandoned = true
	tx.mu.Unlock()
	select {
	case err := <-tx.done:
		return err
	default:
		return &errcode.E{C: errcode.Timeout, Op: "i2c.Tx"}
	}
}

func (l *Loopback) current() bridge.Handler {
	l.hmu.RLock()
	defer l.hmu.RUnlock()
	return l.handler
}

// dispatch runs the write phase then, after a repeated start, the read phase.
// The handler is looked up again for the read phase, since the write may
// have been a RESET that detached it.
func (l *Loopback) dispatch(w, r []byte) error {
	h := l.current()
	if h == nil {
		return &errcode.E{C: errcode.NotAttached, Op: "i2c.Tx"}
	}
	if len(w) > 0 {
		h.HandleBus(bridge.BusEvent{Type: bridge.EventReceive, Data: w})
	}
	if len(r) == 0 {
		return nil
	}
	if h = l.current(); h == nil {
		return &errcode.E{C: errcode.NoResponse, Op: "i2c.Tx"}
	}
	out := h.HandleBus(bridge.BusEvent{Type: bridge.EventRequest})
	if out == nil {
		return &errcode.E{C: errcode.NoResponse, Op: "i2c.Tx"}
	}
	n := copy(r, out)
	for i := n; i < len(r); i++ {
		r[i] = 0xFF
	}
	return nil
}

var (
	_ drivers.I2C      = (*Loopback)(nil)
	_ bridge.Transport = (*Loopback)(nil)
)
