package interp

// Cell is the set of unsigned types a tape cell may hold. Cell arithmetic
// wraps around on overflow and underflow.
type Cell interface {
	~uint8 | ~uint16 | ~uint32
}

// maxValue is the largest value representable in C.
func maxValue[C Cell]() C {
	var zero C
	return zero - 1
}
