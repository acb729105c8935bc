package vision

import "github.com/glyphsight/glyphsight/geom"

// pushRange appends s to next's item list, merging it into the trailing
// range when they're adjacent in slope, share a quadrant transform (by
// pointer identity), and carry the same residual visibility. Merging keeps
// the range list compact across uniform terrain instead of growing by one
// entry per scanned depth row.
func pushRange(next *slopeRanges, s slopeRange) {
	if n := len(next.items); n > 0 {
		tail := &next.items[n-1]
		if tail.Max.Equal(s.Min) && tail.transform == s.transform && tail.visibility == s.visibility {
			tail.Max = s.Max
			return
		}
	}
	next.items = append(next.items, s)
}

// classify computes the residual visibility that light carries into the
// cell at (depth, width) in a quadrant's canonical frame, given the light
// arriving with budget visibility.
func classify(depth, width, radius int, opacity int, visibility int) int {
	d64, w64, r64 := int64(depth), int64(width), int64(radius)
	if d64*d64+w64*w64 > r64*r64+r64 {
		return -1
	}
	switch {
	case opacity == 0:
		return visibility
	case opacity >= visibility:
		return 0
	default:
		ratio := 1 + (0.5*float64(iabs(width)))/float64(depth)
		next := visibility - int(ratio*float64(opacity))
		if next < 0 {
			return 0
		}
		return next
	}
}

// execute sweeps prev.items outward depth by depth (capped at limit),
// emitting surviving sub-ranges into next.items and swapping the two lists
// after each row.
func (v *Vision) execute(eye geom.Point, limit int, opacityLookup OpacityFunc) {
	radius := v.radius
	center := geom.Point{X: radius, Y: radius}

	for v.prev.depth <= limit && len(v.prev.items) > 0 {
		depth := v.prev.depth

		for _, r := range v.prev.items {
			min, max, transform, visibility := r.Min, r.Max, r.transform, r.visibility
			start := geom.FloorDiv(2*min.Num*depth+min.Den, 2*min.Den)
			finish := geom.CeilDiv(2*max.Num*depth-max.Den, 2*max.Den)

			prevVisibility := -1
			for width := start; width <= finish; width++ {
				point := transform.Apply(geom.Point{X: depth, Y: width})

				d64, w64, r64 := int64(depth), int64(width), int64(radius)
				nearby := d64*d64+w64*w64 <= r64*r64+r64

				opacity := 0
				if nearby {
					opacity = opacityLookup(point.Add(eye))
				}
				nextVisibility := classify(depth, width, radius, opacity, visibility)

				if nextVisibility >= 0 {
					if entry := v.visibility.Ptr(point.Add(center)); entry != nil {
						if *entry < 0 {
							v.pointsSeen = append(v.pointsSeen, point.Add(eye))
						}
						if nextVisibility > *entry {
							*entry = nextVisibility
						}
					}
				}

				if prevVisibility != nextVisibility && prevVisibility >= 0 {
					slope := geom.NewSlope(2*width-1, 2*depth)
					if prevVisibility > 0 {
						pushRange(&v.next, slopeRange{Min: min, Max: slope, transform: transform, visibility: prevVisibility})
					}
					min = slope
				}
				prevVisibility = nextVisibility
			}

			if prevVisibility > 0 {
				pushRange(&v.next, slopeRange{Min: min, Max: max, transform: transform, visibility: prevVisibility})
			}
		}

		v.prev, v.next = v.next, v.prev
		v.next.items = v.next.items[:0]
		v.next.depth += 2
	}
}
