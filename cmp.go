package tally

// Ordering is the partial-ordering capability over a payload type. It
// returns a negative, zero or positive comparison result and whether the two
// values are ordered at all. Payloads with no defined relation (for example
// NaN floats, or quantities in different units) report false.
type Ordering[T any] func(a, b T) (int, bool)

// Real constrains a payload to the built-in numeric types.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumericOrder is the Ordering for built-in numeric payloads. NaN operands
// are unordered.
func NumericOrder[T Real](a, b T) (int, bool) {
	if a != a || b != b {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	}
	return 0, true
}
