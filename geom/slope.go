package geom

// Slope is a rational number num/den with a strictly positive denominator,
// used to bound the angular wedge a shadowcast sweep is still scanning.
// Rational slopes keep boundary comparisons exact and avoid the flicker
// floating-point slopes produce at integer cell edges.
type Slope struct {
	Num, Den int
}

// NewSlope constructs a Slope, panicking if den <= 0 — a negative or zero
// denominator is always a caller bug, never recoverable input.
func NewSlope(num, den int) Slope {
	if den <= 0 {
		panic("geom: slope denominator must be positive")
	}
	return Slope{Num: num, Den: den}
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
// Comparison is by cross product a.Num*b.Den vs b.Num*a.Den, widened to 64
// bits — slopes arising in a shadowcast sweep have denominators bounded by
// 2*radius, so even radii in the tens of thousands keep the product in
// range.
func (a Slope) Cmp(b Slope) int {
	lhs := int64(a.Num) * int64(b.Den)
	rhs := int64(b.Num) * int64(a.Den)
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Less reports whether a < b.
func (a Slope) Less(b Slope) bool { return a.Cmp(b) < 0 }

// Equal reports whether a == b.
func (a Slope) Equal(b Slope) bool { return a.Cmp(b) == 0 }

// Max returns the larger of a and b.
func (a Slope) Max(b Slope) Slope {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func (a Slope) Min(b Slope) Slope {
	if b.Less(a) {
		return b
	}
	return a
}
