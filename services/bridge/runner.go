package bridge

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"ir2i2c/internal/halcore"
	"ir2i2c/types"
)

// Factory builds the resources for one boot. restart must be called by the
// platform watchdog when it expires; it ends the boot.
type Factory func(boot uint32, restart func()) (Resources, error)

// Runner simulates the power-on/watchdog cycle on hosts: every boot gets a
// fresh Bridge, and a watchdog expiry tears the current one down and starts
// the next. On hardware the chip reset does this and Runner is not used.
type Runner struct {
	cfg   Config
	build Factory
	log   *slog.Logger

	cur   atomic.Pointer[Bridge]
	boots atomic.Uint32
}

func NewRunner(cfg Config, build Factory) *Runner {
	return &Runner{
		cfg:   cfg,
		build: build,
		log:   slog.Default().With("service", "runner"),
	}
}

// Run boots bridges until ctx is cancelled or a boot fails to start.
func (r *Runner) Run(ctx context.Context) error {
	for boot := uint32(0); ; boot++ {
		bootCtx, cancel := context.WithCancel(ctx)
		res, err := r.build(boot, cancel)
		if err != nil {
			cancel()
			return err
		}
		res.Boot = boot
		// Snapshot is read from other goroutines.
		if res.Mask == nil {
			res.Mask = &lockMask{}
		}
		// The host has no chip reset; a halted bridge waits for the watchdog.
		res.Halt = func() { <-bootCtx.Done() }

		b, err := New(r.cfg, res)
		if err != nil {
			cancel()
			return err
		}
		r.cur.Store(b)
		r.boots.Store(boot + 1)

		err = b.Run(bootCtx)
		cancel()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		r.log.Warn("watchdog restart", "boot", boot+1, "was", b.Supervisor().State().String())
	}
}

// lockMask serialises with a mutex where there is no interrupt to mask.
type lockMask struct{ mu sync.Mutex }

func (m *lockMask) Disable() halcore.IRQState { m.mu.Lock(); return 0 }
func (m *lockMask) Restore(halcore.IRQState)  { m.mu.Unlock() }

// Current returns the bridge of the running boot, or nil before the first.
func (r *Runner) Current() *Bridge { return r.cur.Load() }

// Boots returns how many boots have started.
func (r *Runner) Boots() uint32 { return r.boots.Load() }

// Snapshot reports the running bridge's stats.
func (r *Runner) Snapshot() types.BridgeStats {
	b := r.cur.Load()
	if b == nil {
		return types.BridgeStats{}
	}
	return b.Snapshot()
}
