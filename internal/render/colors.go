package render

import "github.com/gdamore/tcell/v2"

// ViewerColors is the round-robin palette used to distinguish simultaneous
// observatory viewers from each other, matching the teacher repo's
// playerColors table in shape.
var ViewerColors = []tcell.Color{
	tcell.ColorYellow,
	tcell.ColorFuchsia,
	tcell.ColorAqua,
	tcell.ColorLime,
	tcell.ColorOrange,
	tcell.ColorRed,
	tcell.ColorSilver,
	tcell.ColorWhite,
}

// visibilityStyle maps a residual visibility value (0..vision.InitialVisibility,
// or -1 for unseen) to the tcell style used to draw that cell.
// Brighter foreground for higher residual visibility approximates the
// falloff a real light source would produce.
func visibilityStyle(visibility, initial int) tcell.Style {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	if visibility < 0 {
		return base.Foreground(tcell.ColorDarkSlateGray)
	}
	buckets := []tcell.Color{
		tcell.ColorGray,
		tcell.ColorSilver,
		tcell.ColorWhite,
		tcell.ColorLightYellow,
	}
	idx := visibility * len(buckets) / (initial + 1)
	if idx >= len(buckets) {
		idx = len(buckets) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return base.Foreground(buckets[idx])
}
