//go:build rp2040 || rp2350

package main

import (
	"context"
	"log/slog"

	"ir2i2c/bus"
	"ir2i2c/internal/ir"
	"ir2i2c/internal/platform"
	"ir2i2c/services/bridge"
	"ir2i2c/services/heartbeat"
)

const deviceID = "pico"

func initFlags() slog.Level { return slog.LevelInfo }

func run(ctx context.Context, cfg bridge.Config, conn *bus.Connection) error {
	irPin, intPin, err := platform.Pins(platform.DefaultPinFactory(), cfg.IRPin, cfg.IntPin)
	if err != nil {
		return err
	}
	proto, _ := ir.ProtocolByName(cfg.Protocol)
	rx := ir.NewReceiver()
	if err := ir.NewCapture(irPin, ir.NewStateMachine(proto, rx.Deliver), nil).Start(); err != nil {
		return err
	}

	br, err := bridge.New(cfg, bridge.Resources{
		Decoder:   rx,
		Transport: platform.NewTarget(cfg.Address),
		IntPin:    intPin,
		Watchdog:  platform.NewWatchdog(nil),
		Mask:      platform.Mask{},
		Halt:      platform.Halt,
		Conn:      conn,
	})
	if err != nil {
		return err
	}
	_ = heartbeat.New(br).Start(ctx, conn)
	return br.Run(ctx)
}
