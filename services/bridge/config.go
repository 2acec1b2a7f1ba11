package bridge

import (
	"context"
	"time"

	"ir2i2c/bus"
	"ir2i2c/errcode"
	"ir2i2c/internal/ir"
	"ir2i2c/internal/util"
	"ir2i2c/types"
	"ir2i2c/x/mathx"
)

var topicConfig = bus.T("config", "bridge")

// Config is the normalised runtime configuration.
type Config struct {
	Address       uint16
	QueueLen      int // ring slots; QueueLen-1 events fit
	PulseWidth    time.Duration
	WatchdogLong  time.Duration
	WatchdogShort time.Duration
	LoopInterval  time.Duration
	IRPin         int
	IntPin        int
	Protocol      string
	PublishEvents bool
}

var DefaultConfig = Config{
	Address:       types.DefaultAddress,
	QueueLen:      10,
	PulseWidth:    5 * time.Millisecond,
	WatchdogLong:  2 * time.Second,
	WatchdogShort: 15 * time.Millisecond,
	LoopInterval:  time.Millisecond,
	IRPin:         1,
	IntPin:        3,
	Protocol:      "nec",
}

const (
	minQueueLen = 2
	maxQueueLen = 64
)

// ConfigFrom converts the bus config document, filling defaults.
func ConfigFrom(c types.BridgeConfig) (Config, error) {
	if c.Address > 0x7F {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "address must be 7-bit"}
	}
	if _, ok := ir.ProtocolByName(c.Protocol); !ok {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "unknown protocol " + c.Protocol}
	}
	d := DefaultConfig
	out := Config{
		Address:       mathx.OrDefault(c.Address, d.Address),
		QueueLen:      mathx.OrDefault(c.QueueLen, d.QueueLen),
		PulseWidth:    mathx.OrDefault(time.Duration(c.PulseMS)*time.Millisecond, d.PulseWidth),
		WatchdogLong:  mathx.OrDefault(time.Duration(c.WatchdogMS)*time.Millisecond, d.WatchdogLong),
		WatchdogShort: mathx.OrDefault(time.Duration(c.ResetMS)*time.Millisecond, d.WatchdogShort),
		LoopInterval:  mathx.OrDefault(time.Duration(c.LoopUS)*time.Microsecond, d.LoopInterval),
		IRPin:         mathx.OrDefault(c.IRPin, d.IRPin),
		IntPin:        mathx.OrDefault(c.IntPin, d.IntPin),
		Protocol:      c.Protocol,
		PublishEvents: c.PublishEvents,
	}
	if out.Protocol == "" {
		out.Protocol = d.Protocol
	}
	return out.Normalise(), nil
}

// Normalise clamps values into ranges the firmware can honour. The pulse
// hold is a blocking delay, so it stays under half the long watchdog timeout,
// and the loop interval stays well under it too.
func (c Config) Normalise() Config {
	c.QueueLen = mathx.Clamp(c.QueueLen, minQueueLen, maxQueueLen)
	c.WatchdogLong = mathx.Clamp(c.WatchdogLong, 100*time.Millisecond, 8*time.Second)
	c.WatchdogShort = mathx.Clamp(c.WatchdogShort, time.Millisecond, c.WatchdogLong)
	c.PulseWidth = mathx.Clamp(c.PulseWidth, 10*time.Microsecond, c.WatchdogLong/2)
	c.LoopInterval = mathx.Clamp(c.LoopInterval, 0, c.WatchdogLong/4)
	return c
}

// AwaitConfig waits for the retained config/bridge document. When nothing
// arrives within the timeout the defaults are used, so a device with no
// bridge section still boots.
func AwaitConfig(ctx context.Context, conn *bus.Connection, timeout time.Duration) (Config, error) {
	sub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(sub)

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return Config{}, ctx.Err()
	case <-t.C:
		return DefaultConfig.Normalise(), nil
	case msg := <-sub.Channel():
		var raw types.BridgeConfig
		if err := util.DecodeJSON(msg.Payload, &raw); err != nil {
			return Config{}, errcode.Wrap(errcode.InvalidPayload, "config", err)
		}
		return ConfigFrom(raw)
	}
}
