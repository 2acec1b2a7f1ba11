// Package ring provides a fixed-capacity FIFO ring with a drop-oldest
// overwrite policy.
//
// A Ring of size n has n slots but holds at most n-1 elements so that
// start == end always means empty. Pushing into a full ring discards the
// oldest unread element and stores the new one; length stays at n-1.
//
// Ring does no locking. Owners that share a Ring between execution contexts
// must wrap every call in their own critical section.
package ring

import "ir2i2c/x/mathx"

// Ring is a fixed-size circular buffer. The zero value is not usable; call New.
type Ring[T any] struct {
	buf   []T
	start uint16 // read cursor
	end   uint16 // write cursor
}

// New allocates a ring with size slots (size-1 usable). Sizes outside
// 2..65535 panic, as they indicate a programming error.
func New[T any](size int) *Ring[T] {
	if size < 2 || size > 0xFFFF {
		panic("ring: size must be in 2..65535")
	}
	return &Ring[T]{buf: make([]T, size)}
}

func (r *Ring[T]) size() uint16 { return uint16(len(r.buf)) }

// Len returns the number of unread elements, (end - start) mod size.
func (r *Ring[T]) Len() int {
	return int(mathx.WrapSub(r.end, r.start, r.size()))
}

// Cap returns the maximum number of elements held at once (size-1).
func (r *Ring[T]) Cap() int { return len(r.buf) - 1 }

// Full reports whether the next Push will overwrite the oldest element.
func (r *Ring[T]) Full() bool { return r.Len() == r.Cap() }

// Push stores v at the write cursor. When the ring is full the oldest
// element is discarded first and dropped is true.
func (r *Ring[T]) Push(v T) (dropped bool) {
	if r.Full() {
		var zero T
		r.buf[r.start] = zero
		r.start = mathx.WrapAdd(r.start, 1, r.size())
		dropped = true
	}
	r.buf[r.end] = v
	r.end = mathx.WrapAdd(r.end, 1, r.size())
	return dropped
}

// Pop removes and returns the oldest element. On an empty ring it returns
// the zero value and false without moving either cursor.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.start == r.end {
		return zero, false
	}
	v := r.buf[r.start]
	r.buf[r.start] = zero
	r.start = mathx.WrapAdd(r.start, 1, r.size())
	return v, true
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.start == r.end {
		var zero T
		return zero, false
	}
	return r.buf[r.start], true
}

// Reset empties the ring and zeroes both cursors.
func (r *Ring[T]) Reset() {
	clear(r.buf)
	r.start, r.end = 0, 0
}

// Cursors exposes the raw read/write cursors for diagnostics and tests.
func (r *Ring[T]) Cursors() (start, end int) {
	return int(r.start), int(r.end)
}
