package bridge

import (
	"ir2i2c/bus"
	"ir2i2c/types"
	"ir2i2c/x/timex"
)

var (
	topicState = bus.T("bridge", "state")
	topicEvent = bus.T("bridge", "event")
)

func (b *Bridge) publishState(level, status string) {
	if b.res.Conn == nil {
		return
	}
	b.res.Conn.Publish(b.res.Conn.NewMessage(topicState, types.BridgeState{
		Level:  level,
		Status: status,
		Boot:   b.res.Boot,
		TS:     timex.NowMs(),
	}, true))
}

func (b *Bridge) publishEvent(ev types.Event, repeat, dropped bool) {
	if b.res.Conn == nil || !b.cfg.PublishEvents {
		return
	}
	b.res.Conn.Publish(b.res.Conn.NewMessage(topicEvent, types.BridgeEvent{
		Event:    ev,
		Protocol: ev.Kind.String(),
		Repeat:   repeat,
		Dropped:  dropped,
		TS:       timex.NowMs(),
	}, false))
}
