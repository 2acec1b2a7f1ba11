package mathx

// CeilDiv returns ceil(a/b) for unsigned operands; b == 0 yields 0.
// Used to turn durations into whole timer ticks without truncating to zero.
func CeilDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
