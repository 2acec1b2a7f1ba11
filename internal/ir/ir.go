// Package ir turns IR receiver pin edges into decoded remote-control codes.
//
// The pipeline is Capture (edge timing) -> RxStateMachine (protocol) ->
// Receiver (one-slot latch polled by the bridge). Only one protocol state
// machine is attached to a Capture at a time.
package ir

import (
	"sync/atomic"
	"time"

	"ir2i2c/types"
)

// TimePair is a mark (carrier on, pin low) followed by a space (pin high).
type TimePair [2]time.Duration

// RxStateMachine consumes mark/space pairs. HandleTimePair is called from
// interrupt context and must not block.
type RxStateMachine interface {
	HandleTimePair(TimePair)
}

// Repeat is the value reported for a protocol repeat frame.
const Repeat = types.RepeatValue

// Decode is one decoded frame.
type Decode struct {
	Kind  types.Kind
	Value uint32
}

// IsRepeat reports whether d is a repeat marker rather than a key code.
func (d Decode) IsRepeat() bool { return d.Value == Repeat }

// Event converts d to the queue representation.
func (d Decode) Event() types.Event { return types.Event{Kind: d.Kind, Value: d.Value} }

// Receiver latches one decode until Resume is called, mirroring the usual
// "decode, then resume" receiver contract. Frames arriving while a decode is
// latched are discarded and counted.
//
// Deliver may run in interrupt context; TryDecode/Resume run on the main loop.
type Receiver struct {
	ready   atomic.Bool
	latched Decode
	missed  atomic.Uint32
}

func NewReceiver() *Receiver { return &Receiver{} }

// Deliver is the state machine callback.
func (r *Receiver) Deliver(d Decode) {
	if r.ready.Load() {
		r.missed.Add(1)
		return
	}
	r.latched = d
	r.ready.Store(true)
}

// TryDecode returns the latched decode, if any. It does not clear the latch.
func (r *Receiver) TryDecode() (Decode, bool) {
	if !r.ready.Load() {
		return Decode{}, false
	}
	return r.latched, true
}

// Resume re-arms the latch for the next frame.
func (r *Receiver) Resume() { r.ready.Store(false) }

// Missed returns how many frames were discarded while latched.
func (r *Receiver) Missed() uint32 { return r.missed.Load() }
