package bridge

import (
	"ir2i2c/types"
)

// pollDecoder asks the decoder for one new frame and queues it.
//
// An NEC repeat frame is replaced by the last real decode, so a held key
// shows up as repeated key codes. A repeat before any real decode has
// nothing to stand for and is dropped. The notification flag is set before
// the pulse so that a READ landing during the hold rearms it for the next
// event instead of being overwritten.
func (b *Bridge) pollDecoder() {
	d, ok := b.res.Decoder.TryDecode()
	if !ok {
		return
	}
	defer b.res.Decoder.Resume()

	repeat := false
	if d.Kind == types.KindNEC && d.IsRepeat() {
		if !b.havePrev {
			b.log.Debug("repeat without prior code dropped")
			return
		}
		d = b.prev
		repeat = true
	}
	b.prev, b.havePrev = d, true
	ev := d.Event()

	st := b.mask.Disable()
	dropped := b.queue.Push(ev)
	b.count.pushed++
	if dropped {
		b.count.overflows++
	}
	if repeat {
		b.count.repeats++
	}
	pulse := b.state.IntEnabled && !b.state.IntSent
	if pulse {
		b.state.IntSent = true
		b.count.pulses++
	}
	b.mask.Restore(st)

	b.log.Debug("queued", "kind", ev.Kind.String(), "value", ev.Value, "repeat", repeat, "dropped", dropped)

	if pulse {
		b.notify.Pulse()
	}
	b.publishEvent(ev, repeat, dropped)
}
