// Package heartbeat periodically publishes the bridge statistics, retained,
// on bridge/stats. The interval follows config/heartbeat.
package heartbeat

import (
	"context"
	"log/slog"
	"time"

	"ir2i2c/bus"
	"ir2i2c/internal/util"
	"ir2i2c/types"
	"ir2i2c/x/mathx"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicStats           = bus.T("bridge", "stats")
)

const (
	defaultInterval = 10 * time.Second
	minInterval     = 100 * time.Millisecond
	maxInterval     = time.Hour
)

// Source supplies the stats document; bridge.Bridge and bridge.Runner do.
type Source interface {
	Snapshot() types.BridgeStats
}

type Service struct {
	src Source
	log *slog.Logger
}

func New(src Source) *Service {
	return &Service{
		src: src,
		log: slog.Default().With("service", "heartbeat"),
	}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopping")
			return
		case <-tick.C:
			st := s.src.Snapshot()
			conn.Publish(conn.NewMessage(topicStats, st, true))
			s.log.Debug("heartbeat", "queued", st.Queued, "pushed", st.Pushed, "overflows", st.Overflows)
		case msg := <-cfgSub.Channel():
			var c types.HeartbeatConfig
			if err := util.DecodeJSON(msg.Payload, &c); err != nil || c.Interval <= 0 {
				s.log.Warn("ignoring config", "payload", msg.Payload, "error", err)
				continue
			}
			iv := mathx.Clamp(time.Duration(c.Interval*float64(time.Second)), minInterval, maxInterval)
			tick.Reset(iv)
			s.log.Info("interval set", "interval", iv)
		}
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
