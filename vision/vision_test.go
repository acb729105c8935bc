package vision

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/glyphsight/glyphsight/geom"
)

// asciiMap is a tiny rectangular grid of runes used only by these tests to
// describe terrain and read back expected visibility.
type asciiMap struct {
	rows []string
}

func parseMap(rows []string) asciiMap { return asciiMap{rows: rows} }

func (m asciiMap) width() int  { return len(m.rows[0]) }
func (m asciiMap) height() int { return len(m.rows) }

func (m asciiMap) at(p geom.Point) rune {
	if p.Y < 0 || p.Y >= m.height() || p.X < 0 || p.X >= m.width() {
		return '#'
	}
	return rune(m.rows[p.Y][p.X])
}

const haze = 45 // VisibilityLosses[2], yields a chebyshev-3 disk.

func (m asciiMap) opacity(p geom.Point) int {
	switch m.at(p) {
	case '#':
		return InitialVisibility
	case ',':
		return haze
	default:
		return 0
	}
}

func findRune(m asciiMap, r rune) (geom.Point, bool) {
	for y, row := range m.rows {
		for x, c := range row {
			if c == r {
				return geom.Point{X: x, Y: y}, true
			}
		}
	}
	return geom.Point{}, false
}

// runFOV computes a full sweep over m and renders the result back into an
// ASCII grid: the eye as '@', unseen cells as '%', seen cells as their
// original terrain glyph.
func runFOV(t *testing.T, m asciiMap, dir geom.Point, radius int) []string {
	t.Helper()
	eye, ok := findRune(m, '@')
	if !ok {
		t.Fatal("map has no '@'")
	}
	args := VisionArgs{Eye: eye, Dir: dir, OpacityLookup: m.opacity, InitialVisibility: InitialVisibility}

	v := New(radius)
	v.Compute(args)

	var out []string
	for y := 0; y < m.height(); y++ {
		var b strings.Builder
		for x := 0; x < m.width(); x++ {
			p := geom.Point{X: x, Y: y}
			switch {
			case p == eye:
				b.WriteRune('@')
			case v.GetVisibilityAt(p) < 0:
				b.WriteRune('%')
			default:
				b.WriteRune(m.at(p))
			}
		}
		out = append(out, b.String())
	}

	// Consistency check demanded by the testable properties: CanSee must
	// agree with the full sweep for every cell on the map. The queries run on
	// a separate Vision so they do not overwrite the full sweep's results.
	probe := New(radius)
	for y := 0; y < m.height(); y++ {
		for x := 0; x < m.width(); x++ {
			p := geom.Point{X: x, Y: y}
			want := v.GetVisibilityAt(p) >= 0
			got := probe.CanSee(args, p)
			if got != want {
				t.Errorf("CanSee(%v) = %v, want %v (full sweep)", p, got, want)
			}
		}
	}
	return out
}

func assertGrid(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d:\n got  %q\n want %q", i, got[i], want[i])
		}
	}
}

func TestEmptyMapAllVisible(t *testing.T) {
	m := parseMap([]string{
		"@...",
		"....",
		"....",
	})
	got := runFOV(t, m, geom.Point{}, 4)
	assertGrid(t, got, []string{
		"@...",
		"....",
		"....",
	})
}

func TestSinglePillar(t *testing.T) {
	m := parseMap([]string{
		"@...",
		".#..",
		"....",
	})
	got := runFOV(t, m, geom.Point{}, 4)
	assertGrid(t, got, []string{
		"@...",
		".#..",
		"..%%",
	})
}

func TestWallWithGap(t *testing.T) {
	m := parseMap([]string{
		"@....",
		".....",
		"..#..",
		".....",
		"..#..",
	})
	got := runFOV(t, m, geom.Point{}, 9)
	assertGrid(t, got, []string{
		"@....",
		".....",
		"..#..",
		"...%.",
		"..#.%",
	})
}

func TestFieldOfGrass(t *testing.T) {
	rows := make([]string, 17)
	for i := range rows {
		rows[i] = strings.Repeat(",", 15)
	}
	eye := geom.Point{X: 7, Y: 8}
	line := []byte(rows[eye.Y])
	line[eye.X] = '@'
	rows[eye.Y] = string(line)
	m := parseMap(rows)

	got := runFOV(t, m, geom.Point{}, 32)
	assertGrid(t, got, []string{
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%,,,%%%%%%",
		"%%%%%,,,,,%%%%%",
		"%%%%,,,,,,,%%%%",
		"%%%%,,,@,,,%%%%",
		"%%%%,,,,,,,%%%%",
		"%%%%%,,,,,%%%%%",
		"%%%%%%,,,%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%%%",
	})
}

func TestDirectionalSouth(t *testing.T) {
	rows := make([]string, 13)
	for i := range rows {
		rows[i] = strings.Repeat(".", 13)
	}
	eye := geom.Point{X: 6, Y: 6}
	target := geom.Point{X: 6, Y: 12}
	rows[eye.Y] = rows[eye.Y][:eye.X] + "@" + rows[eye.Y][eye.X+1:]
	rows[target.Y] = rows[target.Y][:target.X] + "X" + rows[target.Y][target.X+1:]
	m := parseMap(rows)

	got := runFOV(t, m, target.Sub(eye), 13)
	assertGrid(t, got, []string{
		"%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%",
		"%%%%%%%%%%%%%",
		"%%%%%%@%%%%%%",
		"%%%%.....%%%%",
		"%%.........%%",
		"%...........%",
		".............",
		".............",
		"......X......",
	})
}

func TestCanSeeLongDiagonalMatchesCompute(t *testing.T) {
	radius := 20
	side := 2*radius + 1
	opacity := func(geom.Point) int { return 0 }
	args := VisionArgs{Eye: geom.Point{X: radius, Y: radius}, OpacityLookup: opacity, InitialVisibility: InitialVisibility}

	v := New(radius)
	v.Compute(args)

	r2 := radius*radius + radius
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			p := geom.Point{X: x, Y: y}
			delta := p.Sub(args.Eye)
			want := delta.LenL2Sq() <= int64(r2)
			got := v.CanSee(args, p)
			if got != want {
				t.Errorf("CanSee(%v) = %v, want %v (L2Sq=%d, r2=%d)", p, got, want, delta.LenL2Sq(), r2)
			}
		}
	}
}

func TestRandomizedComputeMatchesCanSee(t *testing.T) {
	const size = 43
	rng := rand.New(rand.NewSource(12345))
	rows := make([]string, size)
	for y := 0; y < size; y++ {
		b := make([]byte, size)
		for x := 0; x < size; x++ {
			switch sample := rng.Intn(100); {
			case sample < 1:
				b[x] = '#'
			case sample < 5:
				b[x] = ','
			default:
				b[x] = '.'
			}
		}
		rows[y] = string(b)
	}
	rows[size/2] = rows[size/2][:size/2] + "@" + rows[size/2][size/2+1:]
	m := parseMap(rows)

	eye, _ := findRune(m, '@')
	args := VisionArgs{Eye: eye, OpacityLookup: m.opacity, InitialVisibility: InitialVisibility}
	v := New(25)
	v.Compute(args)
	probe := New(25)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := geom.Point{X: x, Y: y}
			want := v.GetVisibilityAt(p) >= 0
			if got := probe.CanSee(args, p); got != want {
				t.Errorf("CanSee(%v) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestOriginAlwaysVisibleAtInitialBudget(t *testing.T) {
	v := New(5)
	args := VisionArgs{Eye: geom.Point{X: 3, Y: 3}, OpacityLookup: func(geom.Point) int { return 0 }, InitialVisibility: 77}
	v.Compute(args)

	if got := v.GetPointsSeen()[0]; got != args.Eye {
		t.Errorf("first point seen = %v, want eye %v", got, args.Eye)
	}
	if got := v.GetVisibilityAt(args.Eye); got != 77 {
		t.Errorf("visibility at eye = %d, want 77", got)
	}
}

func TestPointsSeenMatchesVisibilityMatrix(t *testing.T) {
	v := New(6)
	args := VisionArgs{Eye: geom.Point{X: 0, Y: 0}, OpacityLookup: func(geom.Point) int { return 0 }, InitialVisibility: InitialVisibility}
	v.Compute(args)

	seen := make(map[geom.Point]bool)
	for _, p := range v.GetPointsSeen() {
		seen[p] = true
	}
	for y := -8; y <= 8; y++ {
		for x := -8; x <= 8; x++ {
			p := geom.Point{X: x, Y: y}
			visible := v.GetVisibilityAt(p) >= 0
			if visible != seen[p] {
				t.Errorf("p=%v visible=%v seen=%v mismatch", p, visible, seen[p])
			}
		}
	}
}

func TestMonotoneAttenuation(t *testing.T) {
	// Raising one cell's opacity must never raise another cell's residual
	// visibility.
	base := func(p geom.Point) int {
		if p == (geom.Point{X: 2, Y: 0}) {
			return 30
		}
		return 0
	}
	raised := func(p geom.Point) int {
		if p == (geom.Point{X: 2, Y: 0}) {
			return 80
		}
		return 0
	}

	eye := geom.Point{X: 0, Y: 0}
	v1, v2 := New(6), New(6)
	v1.Compute(VisionArgs{Eye: eye, OpacityLookup: base, InitialVisibility: InitialVisibility})
	v2.Compute(VisionArgs{Eye: eye, OpacityLookup: raised, InitialVisibility: InitialVisibility})

	for y := -6; y <= 6; y++ {
		for x := -6; x <= 6; x++ {
			p := geom.Point{X: x, Y: y}
			if v2.GetVisibilityAt(p) > v1.GetVisibilityAt(p) {
				t.Errorf("p=%v: raising opacity increased visibility from %d to %d", p, v1.GetVisibilityAt(p), v2.GetVisibilityAt(p))
			}
		}
	}
}

func TestDirectionalSubsetOfFullVision(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	opacity := func(p geom.Point) int {
		switch rng.Intn(20) {
		case 0:
			return InitialVisibility
		case 1:
			return haze
		default:
			return 0
		}
	}
	// Use a fixed map snapshot so both sweeps see identical terrain.
	memo := map[geom.Point]int{}
	lookup := func(p geom.Point) int {
		if v, ok := memo[p]; ok {
			return v
		}
		v := opacity(p)
		memo[p] = v
		return v
	}

	eye := geom.Point{X: 0, Y: 0}
	full := New(10)
	full.Compute(VisionArgs{Eye: eye, OpacityLookup: lookup, InitialVisibility: InitialVisibility})

	dir := New(10)
	dir.Compute(VisionArgs{Eye: eye, Dir: geom.Point{X: 0, Y: 1}, OpacityLookup: lookup, InitialVisibility: InitialVisibility})

	for _, p := range dir.GetPointsSeen() {
		if full.GetVisibilityAt(p) < 0 {
			t.Errorf("p=%v visible under directional cone but not under full vision", p)
		}
	}
}
