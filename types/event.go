package types

// Kind identifies the IR protocol family of a decoded event.
// 0 is reserved for the bridge's "no event" sentinel; decoders never emit it.
type Kind uint8

// Protocol families, numbered as the common Arduino IR decoders number them
// so that masters written against those libraries keep working.
const (
	KindNone    Kind = 0
	KindRC5     Kind = 1
	KindRC6     Kind = 2
	KindNEC     Kind = 3
	KindSony    Kind = 4
	KindSamsung Kind = 7
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindRC5:
		return "rc5"
	case KindRC6:
		return "rc6"
	case KindNEC:
		return "nec"
	case KindSony:
		return "sony"
	case KindSamsung:
		return "samsung"
	default:
		return "unknown"
	}
}

// RepeatValue is the payload decoders report for a protocol repeat frame.
const RepeatValue uint32 = 0xFFFFFFFF

// EventSize is the wire size of an Event: kind(1) + value big-endian(4).
const EventSize = 5

// Event is one decoded IR code as stored in the bridge queue.
type Event struct {
	Kind  Kind   `json:"kind"`
	Value uint32 `json:"value"`
}

// IsZero reports whether e is the empty-queue sentinel.
func (e Event) IsZero() bool { return e.Kind == KindNone && e.Value == 0 }

// PutWire writes e into dst[:EventSize] and returns the written slice.
// dst must have room for EventSize bytes.
func (e Event) PutWire(dst []byte) []byte {
	dst = dst[:EventSize]
	dst[0] = byte(e.Kind)
	dst[1] = byte(e.Value >> 24)
	dst[2] = byte(e.Value >> 16)
	dst[3] = byte(e.Value >> 8)
	dst[4] = byte(e.Value)
	return dst
}

// EventFromWire parses the 5-byte wire form. ok is false for short input.
func EventFromWire(b []byte) (e Event, ok bool) {
	if len(b) < EventSize {
		return Event{}, false
	}
	e.Kind = Kind(b[0])
	e.Value = uint32(b[1])<<24 | uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4])
	return e, true
}
