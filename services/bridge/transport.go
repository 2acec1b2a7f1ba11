package bridge

// EventType distinguishes the two bus transactions a target sees.
type EventType uint8

const (
	// EventReceive carries the bytes the master wrote.
	EventReceive EventType = iota + 1
	// EventRequest asks for the bytes to send back to the master.
	EventRequest
)

func (t EventType) String() string {
	switch t {
	case EventReceive:
		return "receive"
	case EventRequest:
		return "request"
	default:
		return "unknown"
	}
}

// BusEvent is one transaction delivered by a Transport.
type BusEvent struct {
	Type EventType
	Data []byte // EventReceive only; valid for the duration of the call
}

// Handler consumes bus events. For EventRequest the returned bytes are the
// reply; nil means "no reply" and the transport lets the master see a NACK
// or timeout. The returned slice is only valid until the next call.
type Handler interface {
	HandleBus(ev BusEvent) []byte
}

// Transport is the bus-side collaborator.
//
// Poll is non-blocking and is called on every main-loop iteration.
// A synchronous transport dispatches HandleBus from inside Poll; a
// preemptive one (Preemptive() == true) may call HandleBus at any time from
// another execution context, and the bridge then guards its shared state
// with the platform interrupt mask.
//
// Detach is called when the bridge halts or stops. From then until the next
// Attach the target must not acknowledge anything, as a chip that is
// waiting for its watchdog would not.
type Transport interface {
	Attach(h Handler) error
	Detach()
	Poll()
	Preemptive() bool
}

// Decoder is the IR-side collaborator. TryDecode is non-blocking and keeps
// returning the same decode until Resume re-arms the receiver.
type Decoder interface {
	TryDecode() (Decode, bool)
	Resume()
}
