// Package geom provides the integer 2D geometry primitives shared by the
// vision package: points with vector arithmetic and distance norms, rational
// slopes, axis-aligned quadrant transforms, and a generic rectangular matrix.
package geom

import "math"

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Dot returns the dot product of p and q, widened to 64 bits to avoid
// overflow for large coordinates.
func (p Point) Dot(q Point) int64 {
	return int64(p.X)*int64(q.X) + int64(p.Y)*int64(q.Y)
}

// Taxicab returns |x|+|y|.
func (p Point) Taxicab() int {
	return iabs(p.X) + iabs(p.Y)
}

// LenL1 returns max(|x|,|y|), the Chebyshev (L∞) norm. The name is
// historical — it mirrors the original implementation this package is
// derived from, which calls the same quantity len_l1 despite it being an
// L∞ distance, not an L1 one.
func (p Point) LenL1() int {
	return max(iabs(p.X), iabs(p.Y))
}

// LenL2Sq returns x²+y², widened to 64 bits.
func (p Point) LenL2Sq() int64 {
	x, y := int64(p.X), int64(p.Y)
	return x*x + y*y
}

// LenL2 returns the Euclidean norm.
func (p Point) LenL2() float64 {
	return math.Sqrt(float64(p.LenL2Sq()))
}

// LenNethack returns the NetHack integer-distance approximation
// ⌊(46·min+95·max+25)/100⌋, where min and max are the smaller and larger of
// |x| and |y|.
func (p Point) LenNethack() int {
	ax, ay := int64(iabs(p.X)), int64(iabs(p.Y))
	lo, hi := ax, ay
	if lo > hi {
		lo, hi = hi, lo
	}
	return int((46*lo + 95*hi + 25) / 100)
}

// InL2Range reports whether p's Euclidean norm is within r-0.5, i.e. whether
// p rounds to a disk of radius r under L2.
func (p Point) InL2Range(r int) bool {
	return p.LenL2() <= float64(r)-0.5
}

// ScaleTo returns p rescaled to the given Euclidean length, rounding each
// coordinate to the nearest integer.
func (p Point) ScaleTo(length float64) Point {
	factor := length / p.LenL2()
	return Point{
		X: int(math.Round(float64(p.X) * factor)),
		Y: int(math.Round(float64(p.Y) * factor)),
	}
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
