package mathx

import "golang.org/x/exp/constraints"

// WrapAdd returns (a + b) mod m for cursors already in [0, m).
// m == 0 yields 0.
func WrapAdd[T constraints.Unsigned](a, b, m T) T {
	if m == 0 {
		return 0
	}
	a, b = a%m, b%m
	if b >= m-a {
		return b - (m - a)
	}
	return a + b
}

// WrapSub returns (a - b) mod m for cursors already in [0, m), never negative.
func WrapSub[T constraints.Unsigned](a, b, m T) T {
	if m == 0 {
		return 0
	}
	a, b = a%m, b%m
	if a >= b {
		return a - b
	}
	return m - b + a
}
