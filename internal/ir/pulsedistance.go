package ir

import (
	"time"

	"ir2i2c/types"
)

// Protocol describes a pulse-distance code: a leader, then 32 bits sent as
// a fixed mark followed by a short (0) or long (1) space, MSB first.
type Protocol struct {
	Kind        types.Kind
	LeaderMark  time.Duration
	LeaderSpace time.Duration
	RepeatSpace time.Duration // leader mark + this space is a repeat frame
	BitMark     time.Duration
	ZeroSpace   time.Duration
	OneSpace    time.Duration
	Bits        int
}

var (
	NECProtocol = Protocol{
		Kind:        types.KindNEC,
		LeaderMark:  9000 * time.Microsecond,
		LeaderSpace: 4500 * time.Microsecond,
		RepeatSpace: 2250 * time.Microsecond,
		BitMark:     560 * time.Microsecond,
		ZeroSpace:   560 * time.Microsecond,
		OneSpace:    1690 * time.Microsecond,
		Bits:        32,
	}
	SamsungProtocol = Protocol{
		Kind:        types.KindSamsung,
		LeaderMark:  4500 * time.Microsecond,
		LeaderSpace: 4500 * time.Microsecond,
		RepeatSpace: 2250 * time.Microsecond,
		BitMark:     560 * time.Microsecond,
		ZeroSpace:   560 * time.Microsecond,
		OneSpace:    1690 * time.Microsecond,
		Bits:        32,
	}
)

// ProtocolByName maps a config name to a protocol.
func ProtocolByName(name string) (Protocol, bool) {
	switch name {
	case "", "nec":
		return NECProtocol, true
	case "samsung":
		return SamsungProtocol, true
	default:
		return Protocol{}, false
	}
}

// StateMachine decodes one Protocol and reports frames to a handler.
type StateMachine struct {
	proto   Protocol
	handler func(Decode)

	buf    uint32
	bits   int
	active bool
}

func NewStateMachine(p Protocol, handler func(Decode)) *StateMachine {
	return &StateMachine{proto: p, handler: handler}
}

// within accepts d within ±25% of want.
func within(d, want time.Duration) bool {
	return d >= want*3/4 && d <= want*5/4
}

// HandleTimePair implements RxStateMachine.
func (sm *StateMachine) HandleTimePair(pair TimePair) {
	mark, space := pair[0], pair[1]
	p := &sm.proto

	if within(mark, p.LeaderMark) {
		switch {
		case within(space, p.LeaderSpace):
			sm.buf, sm.bits, sm.active = 0, 0, true
		case within(space, p.RepeatSpace):
			sm.active = false
			sm.handler(Decode{Kind: p.Kind, Value: Repeat})
		default:
			sm.active = false
		}
		return
	}
	if !sm.active {
		return
	}
	if !within(mark, p.BitMark) {
		sm.active = false
		return
	}
	switch {
	case within(space, p.OneSpace):
		sm.buf = sm.buf<<1 | 1
	case within(space, p.ZeroSpace):
		sm.buf <<= 1
	default:
		sm.active = false
		return
	}
	sm.bits++
	if sm.bits == p.Bits {
		sm.active = false
		sm.handler(Decode{Kind: p.Kind, Value: sm.buf})
	}
}

// MarshalFrame encodes value as mark/space pairs, including the stop mark
// closing the last bit. Used by tests and the host simulator.
func (p Protocol) MarshalFrame(value uint32) []TimePair {
	out := make([]TimePair, 0, p.Bits+2)
	out = append(out, TimePair{p.LeaderMark, p.LeaderSpace})
	for i := p.Bits - 1; i >= 0; i-- {
		if (value>>uint(i))&1 == 1 {
			out = append(out, TimePair{p.BitMark, p.OneSpace})
		} else {
			out = append(out, TimePair{p.BitMark, p.ZeroSpace})
		}
	}
	// stop mark; the space after it is the inter-frame gap
	out = append(out, TimePair{p.BitMark, 40 * time.Millisecond})
	return out
}

// MarshalRepeat encodes a repeat frame.
func (p Protocol) MarshalRepeat() []TimePair {
	return []TimePair{
		{p.LeaderMark, p.RepeatSpace},
		{p.BitMark, 40 * time.Millisecond},
	}
}
