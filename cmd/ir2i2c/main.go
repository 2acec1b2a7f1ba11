// Command ir2i2c is the bridge firmware. On RP2 boards it serves the bridge
// over I²C; on a host it runs the same code against a simulated receiver, a
// loopback bus and a demo master.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ir2i2c/bus"
	"ir2i2c/internal/platform"
	"ir2i2c/services/bridge"
	"ir2i2c/services/config"
	"ir2i2c/x/timex"

	"github.com/lmittmann/tint"
)

func setupLogging(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				up := timex.Uptime()
				mins := int(up.Minutes())
				secs := up.Seconds() - float64(mins*60)
				a.Value = slog.StringValue(fmt.Sprintf("%02d:%06.3f", mins, secs))
			}
			return a
		},
	})))
}

// loadConfig publishes the embedded device config and picks up the bridge
// section. Any failure falls back to the defaults so the device still boots.
func loadConfig(ctx context.Context, conn *bus.Connection) bridge.Config {
	if err := config.NewConfigService().Start(ctx, conn); err != nil {
		slog.Warn("no embedded config", "error", err)
	}
	cfg, err := bridge.AwaitConfig(ctx, conn, 200*time.Millisecond)
	if err != nil {
		slog.Error("bad bridge config, using defaults", "error", err)
		return bridge.DefaultConfig.Normalise()
	}
	return cfg
}

func main() {
	level := initFlags()
	setupLogging(platform.LogOutput(), level)
	slog.Info("boot", "device", deviceID)

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)
	b := bus.NewBus(16)
	conn := b.NewConnection("main")

	cfg := loadConfig(ctx, conn)
	if err := run(ctx, cfg, conn); err != nil {
		slog.Error("exit", "error", err)
	}
}
