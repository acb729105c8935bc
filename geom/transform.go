package geom

// Transform is a 2x2 integer matrix used to map a sweep's canonical
// (depth, width) frame into one of the four quadrants around a viewer.
type Transform struct {
	A00, A01, A10, A11 int
}

// Apply returns T·p = (p.X*A00 + p.Y*A10, p.X*A01 + p.Y*A11).
func (t Transform) Apply(p Point) Point {
	return Point{
		X: p.X*t.A00 + p.Y*t.A10,
		Y: p.X*t.A01 + p.Y*t.A11,
	}
}

// Inverse returns the transform's inverse for the purpose of mapping a world
// direction back into a quadrant's canonical frame. Every QuadrantTransforms
// entry is orthogonal with entries in {-1,0,1}, so its inverse is obtained by
// negating the off-diagonal terms.
func (t Transform) Inverse() Transform {
	return Transform{A00: t.A00, A01: -t.A01, A10: -t.A10, A11: t.A11}
}

// QuadrantTransforms enumerates the four axis-aligned quadrant frames a
// shadowcast sweep walks: identity, and the three 90-degree rotations/
// reflections that cover the remaining quadrants.
var QuadrantTransforms = [4]Transform{
	{A00: 1, A01: 0, A10: 0, A11: 1},
	{A00: 0, A01: 1, A10: -1, A11: 0},
	{A00: -1, A01: 0, A10: 0, A11: -1},
	{A00: 0, A01: -1, A10: 1, A11: 0},
}

// ConeRotateCW and ConeRotateCCW approximate rotation by -60 and +60 degrees
// (scaled by 65 ≈ hypot(33,56)) and are used only to clip a 120-degree facing
// cone out of a quadrant's slope range.
var (
	ConeRotateCW  = Transform{A00: 33, A01: -56, A10: 56, A11: 33}
	ConeRotateCCW = Transform{A00: 33, A01: 56, A10: -56, A11: 33}
)
