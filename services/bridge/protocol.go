package bridge

import (
	"ir2i2c/types"
)

// HandleBus implements Handler.
func (b *Bridge) HandleBus(ev BusEvent) []byte {
	switch ev.Type {
	case EventReceive:
		b.receive(ev.Data)
		return nil
	case EventRequest:
		return b.request()
	default:
		return nil
	}
}

// receive handles a master write: register byte, optional option byte.
// Bytes past the second are ignored.
func (b *Bridge) receive(data []byte) {
	b.sup.Refresh()
	if len(data) == 0 {
		return
	}
	reg := types.Register(data[0])
	var opt byte
	if len(data) > 1 {
		opt = data[1]
	}

	st := b.mask.Disable()
	b.state.Register = reg
	b.state.Option = opt
	switch reg {
	case types.RegSetInt:
		b.state.IntEnabled = opt != 0
	case types.RegIntFlg:
		b.state.IntSent = false
	}
	b.mask.Restore(st)

	if reg == types.RegReset {
		b.publishState("resetting", "remote_reset")
		b.res.Transport.Detach()
		b.sup.Reset()
	}
}

// request builds the reply for the selected register. Unknown registers
// (including "nothing selected yet") get no reply at all; the transport
// turns that into a NACK or timeout on the wire.
func (b *Bridge) request() []byte {
	var out []byte
	misuse := false

	st := b.mask.Disable()
	reg := b.state.Register
	switch reg {
	case types.RegBufLen:
		b.resp[0] = byte(b.queue.Len())
		out = b.resp[:1]
	case types.RegRead:
		ev, ok := b.queue.Pop()
		if ok {
			b.count.reads++
		} else {
			b.count.emptyReads++
		}
		out = ev.PutWire(b.resp[:])
		b.state.IntSent = false
	default:
		b.count.misuse++
		misuse = true
	}
	b.mask.Restore(st)

	if misuse {
		b.log.Debug("request on unsupported register", "register", reg.String())
	}
	return out
}
