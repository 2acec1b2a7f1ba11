package bridge

import (
	"context"
	"testing"
	"time"

	"ir2i2c/bus"
	"ir2i2c/errcode"
	"ir2i2c/types"
)

func TestConfigFrom_Defaults(t *testing.T) {
	c, err := ConfigFrom(types.BridgeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if c != DefaultConfig.Normalise() {
		t.Fatalf("got %+v, want defaults %+v", c, DefaultConfig)
	}
	if c.Address != 0x10 || c.QueueLen != 10 || c.PulseWidth != 5*time.Millisecond ||
		c.WatchdogLong != 2*time.Second || c.WatchdogShort != 15*time.Millisecond {
		t.Fatalf("defaults changed: %+v", c)
	}
}

func TestConfigFrom_Overrides(t *testing.T) {
	c, err := ConfigFrom(types.BridgeConfig{
		Address:       0x22,
		QueueLen:      16,
		PulseMS:       2,
		WatchdogMS:    1000,
		ResetMS:       20,
		LoopUS:        500,
		IRPin:         6,
		IntPin:        7,
		Protocol:      "samsung",
		PublishEvents: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Address:       0x22,
		QueueLen:      16,
		PulseWidth:    2 * time.Millisecond,
		WatchdogLong:  time.Second,
		WatchdogShort: 20 * time.Millisecond,
		LoopInterval:  500 * time.Microsecond,
		IRPin:         6,
		IntPin:        7,
		Protocol:      "samsung",
		PublishEvents: true,
	}
	if c != want {
		t.Fatalf("got %+v\nwant %+v", c, want)
	}
}

func TestConfigFrom_Rejects(t *testing.T) {
	if _, err := ConfigFrom(types.BridgeConfig{Address: 0x80}); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("8-bit address err = %v", err)
	}
	if _, err := ConfigFrom(types.BridgeConfig{Protocol: "rc5"}); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("unknown protocol err = %v", err)
	}
}

func TestNormalise_Clamps(t *testing.T) {
	c := Config{
		QueueLen:      1000,
		WatchdogLong:  time.Hour,
		WatchdogShort: 0,
		PulseWidth:    time.Hour,
		LoopInterval:  time.Hour,
	}.Normalise()

	if c.QueueLen != maxQueueLen {
		t.Fatalf("QueueLen = %d", c.QueueLen)
	}
	if c.WatchdogLong != 8*time.Second {
		t.Fatalf("WatchdogLong = %v", c.WatchdogLong)
	}
	if c.WatchdogShort != time.Millisecond {
		t.Fatalf("WatchdogShort = %v", c.WatchdogShort)
	}
	if c.PulseWidth >= c.WatchdogLong {
		t.Fatalf("PulseWidth %v not below watchdog %v", c.PulseWidth, c.WatchdogLong)
	}
	if c.LoopInterval != 2*time.Second {
		t.Fatalf("LoopInterval = %v", c.LoopInterval)
	}
}

func TestAwaitConfig(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test")

	// Nothing published: defaults after the timeout.
	c, err := AwaitConfig(context.Background(), conn, 10*time.Millisecond)
	if err != nil || c != DefaultConfig.Normalise() {
		t.Fatalf("timeout path: %+v, %v", c, err)
	}

	conn.Publish(conn.NewMessage(topicConfig, map[string]any{"queue_len": 4.0, "protocol": "samsung"}, true))
	c, err = AwaitConfig(context.Background(), conn, time.Second)
	if err != nil || c.QueueLen != 4 || c.Protocol != "samsung" {
		t.Fatalf("retained path: %+v, %v", c, err)
	}

	conn.Publish(conn.NewMessage(topicConfig, "not json", true))
	if _, err := AwaitConfig(context.Background(), conn, time.Second); errcode.Of(err) != errcode.InvalidPayload {
		t.Fatalf("bad payload err = %v", err)
	}
}
