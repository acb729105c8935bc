// Package vision implements symmetric shadowcasting: recursive quadrant
// sweeps over rational slope intervals that compute, for a viewer position
// on an infinite integer grid and a per-cell opacity oracle, the set of
// visible cells and a residual visibility value for each.
package vision

import "github.com/glyphsight/glyphsight/geom"

// InitialVisibility is the conventional starting light budget for a sweep.
const InitialVisibility = 100

// VisibilityLosses are per-step attenuation values that yield approximately
// circular visible disks of radii 1..7 in uniform semi-transparent terrain
// (VisibilityLosses[i] produces a disk of radius i+1). These parameterize
// map opacity and are not consulted by the engine itself.
var VisibilityLosses = [7]int{100, 75, 45, 30, 24, 19, 15}

// OpacityFunc reports the opacity of the cell at p, in the same units as
// visibility. A cell may be queried more than once in one sweep (cells on a
// quadrant's diagonal edge are scanned by both adjacent quadrants), so it must
// return the same value for a cell throughout a single Compute/CanSee call,
// and must not mutate the Vision it was passed to.
type OpacityFunc func(p geom.Point) int

// VisionArgs bundles the inputs to one sweep.
type VisionArgs struct {
	// Eye is the viewer position.
	Eye geom.Point
	// Dir is the facing direction. The zero point disables directional
	// clipping (full 360-degree vision); any other vector restricts the
	// sweep to a 120-degree cone centered on it.
	Dir geom.Point
	// OpacityLookup supplies the per-cell opacity oracle.
	OpacityLookup OpacityFunc
	// InitialVisibility is the light budget at the eye, typically
	// InitialVisibility (the package constant).
	InitialVisibility int
}

// slopeRange is a half-open slope interval [Min,Max) within one quadrant,
// carrying the residual visibility light entering that interval has at the
// current depth.
type slopeRange struct {
	Min, Max   geom.Slope
	transform  *geom.Transform // pointer identity is the merge key
	visibility int
}

// slopeRanges is one depth row's worth of pending slope ranges.
type slopeRanges struct {
	depth int
	items []slopeRange
}

// Vision is a reusable scratch object that computes field of view around a
// movable eye against a fixed radius. It is not safe for concurrent use, but
// distinct Visions never share state and may run on separate goroutines.
type Vision struct {
	radius     int
	offset     geom.Point
	pointsSeen []geom.Point
	visibility *geom.Matrix[int]

	prev, next slopeRanges
}

// New creates a Vision covering a (2*radius+1)-per-side square centered on
// whatever eye position is later passed to Compute or CanSee. radius must be
// non-negative; a negative radius is a programmer error.
func New(radius int) *Vision {
	if radius < 0 {
		panic("vision: radius must be non-negative")
	}
	side := 2*radius + 1
	return &Vision{
		radius:     radius,
		visibility: geom.NewMatrix(geom.Point{X: side, Y: side}, -1),
	}
}

// GetPointsSeen returns the cells visited by the most recent Compute or
// CanSee call, in the order first observed, in the caller's absolute
// (world) coordinates. The eye's own cell is always first. The returned
// slice is owned by the Vision and is invalidated by the next call.
func (v *Vision) GetPointsSeen() []geom.Point {
	return v.pointsSeen
}

// GetVisibilityAt returns the residual visibility at world point p, or -1 if
// p was not reached by the most recent sweep (including points outside the
// scratch matrix entirely).
func (v *Vision) GetVisibilityAt(p geom.Point) int {
	return v.visibility.At(p.Add(v.offset))
}

// clear resets the scratch buffer to accept a new sweep centered on pos.
func (v *Vision) clear(pos geom.Point, initialVisibility int) {
	// Sparse clear touches only the cells the previous sweep actually lit;
	// dense clear overwrites the whole matrix. Sparse wins only when the
	// previous sweep left most of the matrix untouched, since each sparse
	// step costs more than a dense step's tight fill loop.
	if v.visibility.Len() >= 16*len(v.pointsSeen) {
		for _, p := range v.pointsSeen {
			v.visibility.Set(p.Add(v.offset), -1)
		}
	} else {
		v.visibility.Fill(-1)
	}

	center := geom.Point{X: v.radius, Y: v.radius}
	v.offset = center.Sub(pos)
	v.pointsSeen = v.pointsSeen[:0]

	v.visibility.Set(center, initialVisibility)
	v.pointsSeen = append(v.pointsSeen, pos)

	v.prev.depth = 1
	v.next.depth = 2
	v.prev.items = v.prev.items[:0]
	v.next.items = v.next.items[:0]
}

// Compute runs a full field-of-view sweep out to the Vision's radius.
func (v *Vision) Compute(args VisionArgs) {
	v.clear(args.Eye, args.InitialVisibility)
	v.seedRanges(args.Dir, nil)
	v.execute(args.Eye, v.radius, args.OpacityLookup)
}

// CanSee reports whether target is visible from args.Eye, running only
// enough of the sweep to resolve target's depth.
func (v *Vision) CanSee(args VisionArgs, target geom.Point) bool {
	if target == args.Eye {
		return true
	}

	r2 := v.radius*v.radius + v.radius
	delta := target.Sub(args.Eye)
	if delta.LenL2Sq() > int64(r2) {
		return false
	}

	limit := delta.LenL1() // Chebyshev distance bounds the sweep depth needed.

	v.clear(args.Eye, args.InitialVisibility)
	v.seedRanges(args.Dir, &delta)
	v.execute(args.Eye, limit, args.OpacityLookup)

	return v.GetVisibilityAt(target) >= 0
}
