//go:build !rp2040 && !rp2350

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"ir2i2c/bus"
	"ir2i2c/drivers/ir2i2c"
	"ir2i2c/internal/ir"
	"ir2i2c/internal/platform"
	"ir2i2c/services/bridge"
	"ir2i2c/services/heartbeat"
	"ir2i2c/types"
)

const deviceID = "host"

var (
	preemptive = flag.Bool("preemptive", false, "dispatch bus transactions from the master goroutine instead of the main loop")
	verbose    = flag.Bool("v", false, "debug logging")
	pressEvery = flag.Duration("press", 400*time.Millisecond, "interval between simulated key presses")
	resetAfter = flag.Int("reset-after", 12, "master sends RESET after this many events (0 = never)")
)

func initFlags() slog.Level {
	flag.Parse()
	if *verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func run(ctx context.Context, cfg bridge.Config, conn *bus.Connection) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	pins := platform.DefaultPinFactory()
	irPin, ok := pins.Get(cfg.IRPin)
	if !ok {
		return errors.New("ir_pin out of range")
	}
	intPin, _ := pins.Get(cfg.IntPin)
	proto, _ := ir.ProtocolByName(cfg.Protocol)
	clock := &platform.SimClock{}
	lb := platform.NewLoopback(cfg.Address, *preemptive)

	runner := bridge.NewRunner(cfg, func(boot uint32, restart func()) (bridge.Resources, error) {
		irq, out, err := platform.Pins(pins, cfg.IRPin, cfg.IntPin)
		if err != nil {
			return bridge.Resources{}, err
		}
		rx := ir.NewReceiver()
		if err := ir.NewCapture(irq, ir.NewStateMachine(proto, rx.Deliver), clock.Now).Start(); err != nil {
			return bridge.Resources{}, err
		}
		return bridge.Resources{
			Decoder:   rx,
			Transport: lb,
			IntPin:    out,
			Watchdog:  platform.NewWatchdog(restart),
			Mask:      &platform.Mask{},
			Conn:      conn,
		}, nil
	})

	_ = heartbeat.New(runner).Start(ctx, conn)
	go watchBus(ctx, conn)
	go remote(ctx, platform.IRSim{Pin: irPin, Clock: clock}, proto)
	go master(ctx, ir2i2c.New(lb), intPin)

	err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// remote presses keys on a simulated remote, sometimes holding them.
func remote(ctx context.Context, sim platform.IRSim, proto ir.Protocol) {
	keys := []uint32{0x00FF30CF, 0x00FF18E7, 0x00FF7A85, 0x00FF10EF, 0x00FF38C7}
	tick := time.NewTicker(*pressEvery)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		sim.Send(proto.MarshalFrame(keys[i%len(keys)]))
		for r := 0; r < i%3; r++ {
			time.Sleep(110 * time.Millisecond)
			sim.Send(proto.MarshalRepeat())
		}
	}
}

// master drains the bridge after each notification pulse, with a slow poll
// as a fallback, and exercises RESET once enough events have been seen.
func master(ctx context.Context, dev *ir2i2c.Device, intPin *platform.FakePin) {
	log := slog.Default().With("service", "master")
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()

	armed := false
	seen, lastRises := 0, 0
	var buf [16]types.Event
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
		if !armed {
			if err := dev.SetInterrupt(true); err != nil {
				continue
			}
			armed = true
			log.Info("interrupts enabled")
		}
		rises := intPin.Rises()
		if rises == lastRises && i%50 != 0 {
			continue
		}
		lastRises = rises

		n, err := dev.Drain(buf[:])
		for _, ev := range buf[:n] {
			seen++
			log.Info("key", "protocol", ev.Kind.String(), "code", ev.Value)
		}
		if err != nil {
			log.Warn("drain", "error", err)
			armed = false
			continue
		}
		if *resetAfter > 0 && seen >= *resetAfter {
			log.Warn("sending reset", "seen", seen)
			if err := dev.Reset(); err != nil {
				log.Error("reset", "error", err)
			}
			seen, armed = 0, false
		}
	}
}

func watchBus(ctx context.Context, conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("bridge", "#"))
	defer conn.Unsubscribe(sub)
	log := slog.Default().With("service", "bus")
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-sub.Channel():
			switch p := m.Payload.(type) {
			case types.BridgeState:
				log.Info("state", "level", p.Level, "status", p.Status, "boot", p.Boot)
			case types.BridgeStats:
				log.Info("stats", "queued", p.Queued, "pushed", p.Pushed, "overflows", p.Overflows,
					"repeats", p.Repeats, "pulses", p.Pulses, "boot", p.Boot)
			case types.BridgeEvent:
				log.Debug("event", "protocol", p.Protocol, "code", p.Value, "repeat", p.Repeat, "dropped", p.Dropped)
			}
		}
	}
}
