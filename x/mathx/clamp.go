package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to [lo, hi]. Swapped bounds are tolerated.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// OrDefault returns def when v is the zero value of T.
func OrDefault[T constraints.Ordered](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
