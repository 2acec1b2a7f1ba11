// Package bridge implements the register-addressed IR event bridge: a
// bounded queue of decoded events, the register protocol the I²C master
// uses to drain it, the notification line, and the watchdog discipline.
//
// One Bridge is one boot. The main loop calls Step; the transport delivers
// bus transactions through HandleBus. After a watchdog restart a fresh
// Bridge is built, so every boot starts with an empty queue and cleared
// flags.
package bridge

import (
	"context"
	"log/slog"
	"time"

	"ir2i2c/bus"
	"ir2i2c/errcode"
	"ir2i2c/internal/halcore"
	"ir2i2c/types"
	"ir2i2c/x/ring"
	"ir2i2c/x/timex"
)

// Resources are the collaborators injected by the platform layer.
type Resources struct {
	Decoder   Decoder
	Transport Transport
	IntPin    halcore.GPIOPin
	Watchdog  halcore.Watchdog
	// Mask guards shared state. It is required when the transport is
	// preemptive, and whenever Len, State or Snapshot are called from a
	// goroutine other than the main loop.
	Mask halcore.IRQMask
	// Halt is entered after a RESET command; it must not return on hardware.
	Halt func()
	// Sleep is used for the notification hold and loop pacing; nil means time.Sleep.
	Sleep func(time.Duration)
	// Conn is optional; when set, state and events are published on the bus.
	Conn *bus.Connection
	// Boot is the cold boot counter reported in bridge/state.
	Boot uint32
}

type Bridge struct {
	cfg  Config
	log  *slog.Logger
	res  Resources
	mask halcore.IRQMask

	sup    *Supervisor
	notify *Notifier

	// Guarded by mask.
	queue *ring.Ring[types.Event]
	state State
	count counters
	resp  [types.EventSize]byte

	// Main loop only.
	prev     Decode
	havePrev bool
}

// New validates resources and allocates all fixed storage.
func New(cfg Config, res Resources) (*Bridge, error) {
	if res.Decoder == nil || res.Transport == nil || res.IntPin == nil || res.Watchdog == nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "bridge.New", Msg: "missing resource"}
	}
	cfg = cfg.Normalise()

	var mask halcore.IRQMask = halcore.NoMask{}
	switch {
	case res.Mask != nil:
		mask = res.Mask
	case res.Transport.Preemptive():
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "bridge.New", Msg: "preemptive transport needs an IRQ mask"}
	}
	if res.Sleep == nil {
		res.Sleep = time.Sleep
	}

	b := &Bridge{
		cfg:   cfg,
		log:   slog.Default().With("service", "bridge"),
		res:   res,
		mask:  mask,
		queue: ring.New[types.Event](cfg.QueueLen),
	}
	b.sup = NewSupervisor(res.Watchdog, cfg.WatchdogLong, cfg.WatchdogShort, res.Halt)
	b.notify = NewNotifier(res.IntPin, cfg.PulseWidth, b.sup, res.Sleep)
	return b, nil
}

// Start arms the watchdog, parks the notification line low, and attaches
// the bus handler. Bus traffic can arrive as soon as Start returns.
func (b *Bridge) Start() error {
	if err := b.sup.Start(); err != nil {
		return errcode.Wrap(errcode.Error, "watchdog", err)
	}
	b.sup.Refresh()
	if err := b.notify.Init(); err != nil {
		return errcode.Wrap(errcode.UnknownPin, "int_pin", err)
	}
	b.sup.Refresh()
	if err := b.res.Transport.Attach(b); err != nil {
		return errcode.Wrap(errcode.NotAttached, "transport", err)
	}
	b.log.Info("started",
		"address", b.cfg.Address,
		"queue", b.queue.Cap(),
		"protocol", b.cfg.Protocol,
		"preemptive", b.res.Transport.Preemptive(),
	)
	b.publishState("running", "started")
	return nil
}

// Step is one main-loop iteration.
func (b *Bridge) Step() {
	b.sup.Refresh()
	b.res.Transport.Poll()
	b.pollDecoder()
}

// Run starts the bridge and loops until ctx is cancelled. The transport is
// detached on return, so a stopped bridge answers nothing.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		b.publishState("stopped", string(errcode.Of(err)))
		return err
	}
	defer b.res.Transport.Detach()
	for {
		select {
		case <-ctx.Done():
			b.publishState("stopped", "context_cancelled")
			return ctx.Err()
		default:
		}
		b.Step()
		if b.cfg.LoopInterval > 0 {
			b.res.Sleep(b.cfg.LoopInterval)
		}
	}
}

// Supervisor exposes the watchdog state machine.
func (b *Bridge) Supervisor() *Supervisor { return b.sup }

// Len returns the number of queued events.
func (b *Bridge) Len() int {
	st := b.mask.Disable()
	n := b.queue.Len()
	b.mask.Restore(st)
	return n
}

// State returns a copy of the protocol state.
func (b *Bridge) State() State {
	st := b.mask.Disable()
	s := b.state
	b.mask.Restore(st)
	return s
}

// Snapshot returns the stats document published on bridge/stats.
func (b *Bridge) Snapshot() types.BridgeStats {
	st := b.mask.Disable()
	s := types.BridgeStats{
		Queued:     b.queue.Len(),
		Pushed:     b.count.pushed,
		Overflows:  b.count.overflows,
		Repeats:    b.count.repeats,
		Pulses:     b.count.pulses,
		Reads:      b.count.reads,
		EmptyReads: b.count.emptyReads,
		Misuse:     b.count.misuse,
		IntEnabled: b.state.IntEnabled,
		IntSent:    b.state.IntSent,
		Boot:       b.res.Boot,
	}
	b.mask.Restore(st)
	s.TS = timex.NowMs()
	return s
}
