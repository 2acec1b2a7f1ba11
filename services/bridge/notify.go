package bridge

import (
	"time"

	"ir2i2c/internal/halcore"
)

// Notifier drives the active-high interrupt line towards the master.
type Notifier struct {
	pin   halcore.GPIOPin
	width time.Duration
	sup   *Supervisor
	sleep func(time.Duration)
}

func NewNotifier(pin halcore.GPIOPin, width time.Duration, sup *Supervisor, sleep func(time.Duration)) *Notifier {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Notifier{pin: pin, width: width, sup: sup, sleep: sleep}
}

// Init drives the line low.
func (n *Notifier) Init() error { return n.pin.ConfigureOutput(false) }

// Pulse holds the line high for the configured width. The hold blocks, so
// the watchdog is fed first.
func (n *Notifier) Pulse() {
	n.sup.Refresh()
	n.pin.Set(true)
	n.sleep(n.width)
	n.pin.Set(false)
}
