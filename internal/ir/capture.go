package ir

import (
	"time"

	"ir2i2c/internal/halcore"
)

// Capture measures mark/space timing on a demodulating receiver output.
// Common 38 kHz receivers idle high and pull low while carrier is present,
// so a falling edge starts a mark and a rising edge ends it. A pair is
// handed to the state machine when the following mark begins.
type Capture struct {
	pin halcore.IRQPin
	sm  RxStateMachine
	now func() time.Duration

	markStart time.Duration
	markLen   time.Duration
	markEnd   time.Duration
	haveMark  bool
}

// NewCapture binds sm to pin. now must be monotonic; nil uses the process clock.
func NewCapture(pin halcore.IRQPin, sm RxStateMachine, now func() time.Duration) *Capture {
	if now == nil {
		epoch := time.Now()
		now = func() time.Duration { return time.Since(epoch) }
	}
	return &Capture{pin: pin, sm: sm, now: now}
}

// Start configures the pin as a pulled-up input and installs the edge handler.
func (c *Capture) Start() error {
	if err := c.pin.ConfigureInput(halcore.PullUp); err != nil {
		return err
	}
	return c.pin.SetIRQ(halcore.EdgeBoth, c.edge)
}

// Stop removes the edge handler.
func (c *Capture) Stop() error { return c.pin.ClearIRQ() }

func (c *Capture) edge() {
	t := c.now()
	if c.pin.Get() {
		// rising: mark ended
		c.markLen = t - c.markStart
		c.markEnd = t
		c.haveMark = true
		return
	}
	// falling: mark begins, closing the previous pair
	if c.haveMark {
		c.sm.HandleTimePair(TimePair{c.markLen, t - c.markEnd})
		c.haveMark = false
	}
	c.markStart = t
}
