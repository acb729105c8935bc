package vision

import "github.com/glyphsight/glyphsight/geom"

// seedRanges populates v.prev.items with the initial per-quadrant slope
// ranges. With dir == (0,0) every quadrant spans the full [-1,1] slope band;
// otherwise each quadrant is clipped to a 120-degree cone centered on dir.
// When target is non-nil (single-target CanSee queries), every quadrant's
// range is further intersected with the thin slope band containing target,
// and quadrants that don't contain it are dropped entirely.
func (v *Vision) seedRanges(dir geom.Point, target *geom.Point) {
	full := geom.NewSlope(-1, 1)
	one := geom.NewSlope(1, 1)

	for i := range geom.QuadrantTransforms {
		transform := &geom.QuadrantTransforms[i]
		inverse := transform.Inverse()
		min, max := full, one

		if dir == (geom.Point{}) {
			// No directional clipping — the full quadrant band applies.
		} else {
			mapped := inverse.Apply(dir)
			x, y := mapped.X, mapped.Y
			left := geom.ConeRotateCCW.Apply(mapped)
			right := geom.ConeRotateCW.Apply(mapped)

			switch {
			case x < 0 && y == 0:
				continue
			case x < 0 && y > 0:
				if right.X <= 0 {
					continue
				}
				min = min.Max(geom.NewSlope(right.Y, right.X))
			case x < 0 && y < 0:
				if left.X <= 0 {
					continue
				}
				max = max.Min(geom.NewSlope(left.Y, left.X))
			default: // x >= 0
				if left.X > 0 {
					max = max.Min(geom.NewSlope(left.Y, left.X))
				}
				if right.X > 0 {
					min = min.Max(geom.NewSlope(right.Y, right.X))
				}
			}
		}

		if target != nil {
			mapped := inverse.Apply(*target)
			x, y := mapped.X, mapped.Y
			if x == 0 || x < iabs(y) {
				continue
			}
			min = min.Max(geom.NewSlope(2*y-1, 2*x))
			max = max.Min(geom.NewSlope(2*y+1, 2*x))
		}

		if !min.Less(max) {
			continue
		}
		v.prev.items = append(v.prev.items, slopeRange{
			Min: min, Max: max, transform: transform, visibility: InitialVisibility,
		})
	}
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
