package render

import (
	"sort"

	"github.com/glyphsight/glyphsight/assets"
	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/internal/component"
	"github.com/glyphsight/glyphsight/internal/ecs"
	"github.com/glyphsight/glyphsight/internal/gamemap"
	"github.com/glyphsight/glyphsight/vision"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Renderer draws one viewer's field of view to its own tcell.Screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	// Reserve the bottom row for a status line.
	viewH := h - 1
	return &Renderer{
		screen: screen,
		camera: NewCamera(geom.Point{}, w, viewH),
	}
}

// CenterOn recenters the camera on world position c.
func (r *Renderer) CenterOn(c geom.Point) { r.camera.Center(c) }

// WorldToScreen converts world coordinates to screen coordinates. visible is
// false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(w geom.Point) (s geom.Point, visible bool) {
	return r.camera.WorldToScreen(w)
}

// DrawFrame renders the map as seen through vis, then every other viewer
// entity that falls on a visible tile. selfID is drawn with the self glyph
// wherever it is seen (including by its own sweep, at the eye).
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, vis *vision.Vision, selfID ecs.EntityID) {
	r.screen.Clear()
	r.drawUnseen(gmap, vis)
	r.drawMap(gmap, vis)
	r.drawViewers(w, vis, selfID)
}

// drawUnseen fills every in-bounds map cell inside the viewport that the
// current sweep didn't reach, so the edge of the map reads as a distinct
// void from the lit area rather than leaving it to whatever the screen's
// blank background happens to look like.
func (r *Renderer) drawUnseen(gmap *gamemap.GameMap, vis *vision.Vision) {
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlack)
	size := gmap.Size()
	topLeft := r.camera.ScreenToWorld(geom.Point{})
	bottomRight := r.camera.ScreenToWorld(geom.Point{X: r.camera.ViewWidth, Y: r.camera.ViewHeight})

	for y := max(0, topLeft.Y); y <= min(size.Y-1, bottomRight.Y); y++ {
		for x := max(0, topLeft.X); x <= min(size.X-1, bottomRight.X); x++ {
			p := geom.Point{X: x, Y: y}
			if vis.GetVisibilityAt(p) >= 0 {
				continue
			}
			sp, onScreen := r.camera.WorldToScreen(p)
			if !onScreen {
				continue
			}
			r.putGlyph(sp, assets.GlyphUnseen, style)
		}
	}
}

// drawMap renders every tile the sweep reached, shaded by its residual
// visibility.
func (r *Renderer) drawMap(gmap *gamemap.GameMap, vis *vision.Vision) {
	for _, p := range vis.GetPointsSeen() {
		visibility := vis.GetVisibilityAt(p)
		if visibility < 0 {
			continue
		}
		sp, onScreen := r.camera.WorldToScreen(p)
		if !onScreen {
			continue
		}
		style := visibilityStyle(visibility, vision.InitialVisibility)
		r.putGlyph(sp, glyphFor(gmap.At(p).Kind, visibility), style)
	}
}

// glyphFor picks the glyph for a tile kind, using the brightness-ordered
// floor set for open ground so lit cells read brighter than their fringes.
// Wall and haze have only two brightness states — lit and the dim fringe
// at residual visibility 0, the last cell light reaches before expiring.
func glyphFor(kind gamemap.TileKind, visibility int) string {
	switch kind {
	case gamemap.TileWall:
		if visibility == 0 {
			return assets.GlyphDimWall
		}
		return assets.GlyphWall
	case gamemap.TileHaze:
		if visibility == 0 {
			return assets.GlyphDimHaze
		}
		return assets.GlyphHaze
	case gamemap.TileDoor:
		return assets.GlyphDoor
	default:
		buckets := assets.FloorGlyphsByBrightness
		idx := visibility * len(buckets) / (vision.InitialVisibility + 1)
		if idx >= len(buckets) {
			idx = len(buckets) - 1
		}
		if idx < 0 {
			idx = 0
		}
		return buckets[idx]
	}
}

// viewerDraw holds sorting info for viewer rendering.
type viewerDraw struct {
	order int
	pos   component.Position
	rend  component.Renderable
	local bool
}

// drawViewers renders every Viewer entity that lands on a tile the sweep
// reached, local viewer drawn last so it is never occluded by others.
func (r *Renderer) drawViewers(w *ecs.World, vis *vision.Vision, selfID ecs.EntityID) {
	ids := w.Query(component.CRenderable, component.CPosition, component.CViewer)
	draws := make([]viewerDraw, 0, len(ids))

	for _, id := range ids {
		posComp := w.Get(id, component.CPosition)
		rendComp := w.Get(id, component.CRenderable)
		if posComp == nil || rendComp == nil {
			continue
		}
		pos := posComp.(component.Position)
		if vis.GetVisibilityAt(geom.Point{X: pos.X, Y: pos.Y}) < 0 {
			continue
		}
		rend := rendComp.(component.Renderable)
		draws = append(draws, viewerDraw{order: rend.RenderOrder, pos: pos, rend: rend, local: id == selfID})
	}

	sort.Slice(draws, func(i, j int) bool {
		if draws[i].local != draws[j].local {
			return draws[j].local
		}
		return draws[i].order < draws[j].order
	})

	for _, d := range draws {
		sp, onScreen := r.camera.WorldToScreen(geom.Point{X: d.pos.X, Y: d.pos.Y})
		if !onScreen {
			continue
		}
		glyph := assets.GlyphOtherEye
		if d.local {
			glyph = assets.GlyphPlayer
		}
		style := tcell.StyleDefault.Foreground(d.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sp, glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position s.
func (r *Renderer) putGlyph(s geom.Point, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(s.X, s.Y, mainc, combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(s.X+1, s.Y, ' ', nil, style)
	}
}
