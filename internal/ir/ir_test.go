package ir

import (
	"sync"
	"testing"
	"time"

	"ir2i2c/internal/halcore"
	"ir2i2c/types"
)

// fakeIRQPin implements halcore.IRQPin with minimal behaviour for tests.
type fakeIRQPin struct {
	mu      sync.Mutex
	level   bool
	handler func()
	pull    halcore.Pull
}

func (p *fakeIRQPin) ConfigureInput(pull halcore.Pull) error { p.pull = pull; p.level = true; return nil }
func (p *fakeIRQPin) ConfigureOutput(initial bool) error     { p.level = initial; return nil }
func (p *fakeIRQPin) Set(b bool)                             { p.mu.Lock(); p.level = b; p.mu.Unlock() }
func (p *fakeIRQPin) Get() bool                              { p.mu.Lock(); defer p.mu.Unlock(); return p.level }
func (p *fakeIRQPin) Number() int                            { return 1 }
func (p *fakeIRQPin) SetIRQ(_ halcore.Edge, h func()) error  { p.handler = h; return nil }
func (p *fakeIRQPin) ClearIRQ() error                        { p.handler = nil; return nil }
func (p *fakeIRQPin) fire(level bool) {
	p.Set(level)
	if p.handler != nil {
		p.handler()
	}
}

type collector struct{ got []Decode }

func (c *collector) handle(d Decode) { c.got = append(c.got, d) }

func feed(sm RxStateMachine, pairs []TimePair) {
	for _, p := range pairs {
		sm.HandleTimePair(p)
	}
}

func TestNECFrameAndRepeat(t *testing.T) {
	var c collector
	sm := NewStateMachine(NECProtocol, c.handle)

	feed(sm, NECProtocol.MarshalFrame(0x00FF30CF))
	feed(sm, NECProtocol.MarshalRepeat())

	if len(c.got) != 2 {
		t.Fatalf("decodes got=%d want=2 (%+v)", len(c.got), c.got)
	}
	if c.got[0] != (Decode{Kind: types.KindNEC, Value: 0x00FF30CF}) {
		t.Fatalf("frame got=%+v", c.got[0])
	}
	if !c.got[1].IsRepeat() || c.got[1].Kind != types.KindNEC {
		t.Fatalf("repeat got=%+v", c.got[1])
	}
}

func TestSamsungIgnoresNECLeader(t *testing.T) {
	var c collector
	sm := NewStateMachine(SamsungProtocol, c.handle)

	feed(sm, NECProtocol.MarshalFrame(0x12345678))
	if len(c.got) != 0 {
		t.Fatalf("samsung decoded an NEC frame: %+v", c.got)
	}
	feed(sm, SamsungProtocol.MarshalFrame(0xE0E040BF))
	if len(c.got) != 1 || c.got[0].Value != 0xE0E040BF || c.got[0].Kind != types.KindSamsung {
		t.Fatalf("got=%+v", c.got)
	}
}

func TestCorruptBitAbortsFrame(t *testing.T) {
	var c collector
	sm := NewStateMachine(NECProtocol, c.handle)

	pairs := NECProtocol.MarshalFrame(0xA5A5A5A5)
	pairs[10] = TimePair{560 * time.Microsecond, 3 * time.Millisecond}
	feed(sm, pairs)
	if len(c.got) != 0 {
		t.Fatalf("corrupt frame decoded: %+v", c.got)
	}
	// Next clean frame still decodes.
	feed(sm, NECProtocol.MarshalFrame(1))
	if len(c.got) != 1 || c.got[0].Value != 1 {
		t.Fatalf("recovery got=%+v", c.got)
	}
}

func TestCaptureEdgesToPairs(t *testing.T) {
	var c collector
	sm := NewStateMachine(NECProtocol, c.handle)

	var clock time.Duration
	pin := &fakeIRQPin{}
	capt := NewCapture(pin, sm, func() time.Duration { return clock })
	if err := capt.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if pin.pull != halcore.PullUp || !pin.Get() {
		t.Fatal("capture should configure a pulled-up idle-high input")
	}

	clock = 5 * time.Millisecond
	for _, p := range NECProtocol.MarshalFrame(0x00FF02FD) {
		pin.fire(false) // mark begins
		clock += p[0]
		pin.fire(true) // mark ends
		clock += p[1]
	}
	if len(c.got) != 1 || c.got[0].Value != 0x00FF02FD {
		t.Fatalf("capture decode got=%+v", c.got)
	}

	if err := capt.Stop(); err != nil || pin.handler != nil {
		t.Fatalf("Stop left handler installed (err=%v)", err)
	}
}

func TestReceiverLatch(t *testing.T) {
	r := NewReceiver()
	if _, ok := r.TryDecode(); ok {
		t.Fatal("fresh receiver reported a decode")
	}
	r.Deliver(Decode{Kind: types.KindNEC, Value: 55})
	r.Deliver(Decode{Kind: types.KindNEC, Value: 66}) // latched; discarded

	d, ok := r.TryDecode()
	if !ok || d.Value != 55 {
		t.Fatalf("latched got=%+v ok=%v", d, ok)
	}
	// Still latched until Resume.
	if d2, ok := r.TryDecode(); !ok || d2 != d {
		t.Fatal("latch cleared without Resume")
	}
	if r.Missed() != 1 {
		t.Fatalf("missed got=%d want=1", r.Missed())
	}
	r.Resume()
	if _, ok := r.TryDecode(); ok {
		t.Fatal("decode after Resume without new frame")
	}
	r.Deliver(Decode{Kind: types.KindNEC, Value: 77})
	if d, _ := r.TryDecode(); d.Value != 77 {
		t.Fatalf("after resume got=%+v", d)
	}
}

func TestProtocolByName(t *testing.T) {
	if p, ok := ProtocolByName(""); !ok || p.Kind != types.KindNEC {
		t.Fatal("default protocol should be NEC")
	}
	if p, ok := ProtocolByName("samsung"); !ok || p.Kind != types.KindSamsung {
		t.Fatal("samsung lookup")
	}
	if _, ok := ProtocolByName("rc5"); ok {
		t.Fatal("unsupported protocol accepted")
	}
}
