package bridge

import (
	"log/slog"
	"sync/atomic"
	"time"

	"ir2i2c/internal/halcore"
)

// WatchdogState is the supervisor's arming state.
type WatchdogState uint32

const (
	Disarmed WatchdogState = iota
	ArmedLong
	ArmedShort
)

func (s WatchdogState) String() string {
	switch s {
	case ArmedLong:
		return "armed_long"
	case ArmedShort:
		return "armed_short"
	default:
		return "disarmed"
	}
}

// Supervisor owns the hardware watchdog. In ArmedLong every Refresh feeds
// it; Reset moves to ArmedShort, after which nothing feeds it again and the
// device restarts cold. The transition is one-way.
type Supervisor struct {
	log   *slog.Logger
	wd    halcore.Watchdog
	long  time.Duration
	short time.Duration
	halt  func()

	state atomic.Uint32
}

// NewSupervisor wires a watchdog. halt is called after a reset request and
// is expected never to return on hardware; a nil halt spins forever.
func NewSupervisor(wd halcore.Watchdog, long, short time.Duration, halt func()) *Supervisor {
	if halt == nil {
		halt = func() {
			for {
			}
		}
	}
	return &Supervisor{
		log:   slog.Default().With("service", "watchdog"),
		wd:    wd,
		long:  long,
		short: short,
		halt:  halt,
	}
}

// Start arms the long timeout. It does nothing once armed.
func (s *Supervisor) Start() error {
	if s.State() != Disarmed {
		return nil
	}
	if err := s.wd.Arm(s.long); err != nil {
		return err
	}
	s.state.CompareAndSwap(uint32(Disarmed), uint32(ArmedLong))
	s.log.Debug("armed", "timeout", s.long)
	return nil
}

// Refresh feeds the watchdog unless a reset is pending.
func (s *Supervisor) Refresh() {
	if WatchdogState(s.state.Load()) == ArmedLong {
		s.wd.Feed()
	}
}

// State returns the current arming state.
func (s *Supervisor) State() WatchdogState { return WatchdogState(s.state.Load()) }

// Reset arms the short timeout and starves it. If re-arming fails the long
// timeout is still running unfed, so the device restarts anyway, later.
func (s *Supervisor) Reset() {
	prev := WatchdogState(s.state.Swap(uint32(ArmedShort)))
	if prev != ArmedShort {
		s.log.Warn("reset requested", "timeout", s.short)
		if err := s.wd.Arm(s.short); err != nil {
			s.log.Error("short arm failed", "error", err)
		}
	}
	s.halt()
}
