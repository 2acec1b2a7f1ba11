//go:build !rp2040 && !rp2350

package platform

import (
	"sync"
	"time"

	"ir2i2c/internal/ir"
)

// SimClock is a manually advanced monotonic clock for ir.Capture.
type SimClock struct {
	mu  sync.Mutex
	now time.Duration
}

func (c *SimClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *SimClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// IRSim plays mark/space pairs onto the receiver pin the way a demodulating
// receiver would: low during a mark, high during a space.
type IRSim struct {
	Pin   *FakePin
	Clock *SimClock
}

// Send plays pairs. Timing is virtual, so Send does not sleep.
func (s IRSim) Send(pairs []ir.TimePair) {
	for _, p := range pairs {
		s.Pin.Set(false)
		s.Clock.Advance(p[0])
		s.Pin.Set(true)
		s.Clock.Advance(p[1])
	}
}

// SendCode plays one frame of proto carrying value, followed by repeats
// repeat frames.
func (s IRSim) SendCode(proto ir.Protocol, value uint32, repeats int) {
	s.Send(proto.MarshalFrame(value))
	for i := 0; i < repeats; i++ {
		s.Send(proto.MarshalRepeat())
	}
}
