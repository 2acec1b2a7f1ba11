package bridge

import (
	"errors"
	"testing"
	"time"
)

type failingWatchdog struct {
	fakeWatchdog
	failShort bool
}

func (w *failingWatchdog) Arm(d time.Duration) error {
	if w.failShort && d < time.Second {
		return errors.New("arm failed")
	}
	return w.fakeWatchdog.Arm(d)
}

func TestSupervisor_Lifecycle(t *testing.T) {
	wd := &fakeWatchdog{}
	halts := 0
	s := NewSupervisor(wd, 2*time.Second, 15*time.Millisecond, func() { halts++ })

	if s.State() != Disarmed {
		t.Fatalf("initial state %v", s.State())
	}
	s.Refresh()
	if wd.Feeds() != 0 {
		t.Fatal("disarmed supervisor fed the watchdog")
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Refresh()
	s.Refresh()
	if wd.Feeds() != 2 || s.State() != ArmedLong {
		t.Fatalf("feeds=%d state=%v", wd.Feeds(), s.State())
	}

	s.Reset()
	s.Refresh()
	if wd.Feeds() != 2 {
		t.Fatal("fed after reset")
	}
	if s.State() != ArmedShort || halts != 1 {
		t.Fatalf("state=%v halts=%d", s.State(), halts)
	}

	// A second reset does not re-arm.
	s.Reset()
	if len(wd.arms) != 2 || halts != 2 {
		t.Fatalf("arms=%v halts=%d", wd.arms, halts)
	}
	// Start cannot leave ArmedShort.
	_ = s.Start()
	if s.State() != ArmedShort {
		t.Fatalf("state after Start = %v", s.State())
	}
}

func TestSupervisor_ResetStillHaltsWhenArmFails(t *testing.T) {
	wd := &failingWatchdog{failShort: true}
	halted := false
	s := NewSupervisor(wd, 2*time.Second, 15*time.Millisecond, func() { halted = true })
	_ = s.Start()
	s.Reset()
	if !halted || s.State() != ArmedShort {
		t.Fatalf("halted=%v state=%v", halted, s.State())
	}
}

func TestWatchdogState_String(t *testing.T) {
	for st, want := range map[WatchdogState]string{
		Disarmed:   "disarmed",
		ArmedLong:  "armed_long",
		ArmedShort: "armed_short",
	} {
		if st.String() != want {
			t.Fatalf("%d: %q", st, st.String())
		}
	}
}
