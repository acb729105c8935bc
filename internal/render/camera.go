package render

import "github.com/glyphsight/glyphsight/geom"

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because wide glyphs occupy 2 terminal columns.
type Camera struct {
	Offset     geom.Point
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on c.
func NewCamera(c geom.Point, viewW, viewH int) *Camera {
	cam := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	cam.Center(c)
	return cam
}

// Center repositions the camera so that world position c is in the middle.
func (cam *Camera) Center(c geom.Point) {
	// ViewWidth is in columns; each world tile is 2 columns wide.
	cam.Offset = geom.Point{X: c.X - (cam.ViewWidth/2)/2, Y: c.Y - cam.ViewHeight/2}
}

// WorldToScreen converts a world point to screen coordinates. visible is
// false when the result falls outside the viewport.
func (cam *Camera) WorldToScreen(w geom.Point) (s geom.Point, visible bool) {
	s = geom.Point{X: (w.X - cam.Offset.X) * 2, Y: w.Y - cam.Offset.Y}
	visible = s.X >= 0 && s.X < cam.ViewWidth && s.Y >= 0 && s.Y < cam.ViewHeight
	return
}

// ScreenToWorld converts screen coordinates back to a world point.
func (cam *Camera) ScreenToWorld(s geom.Point) geom.Point {
	return geom.Point{X: s.X/2 + cam.Offset.X, Y: s.Y + cam.Offset.Y}
}
