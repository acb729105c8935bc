// Package gamemap is the opacity-bearing map representation consumed by the
// vision engine's opacity oracle — the "caller-owned map representation"
// the vision package treats as an external collaborator.
package gamemap

import "github.com/glyphsight/glyphsight/vision"

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileHaze // semi-transparent terrain (tall grass, fog)
	TileDoor
)

// Tile holds one cell's kind and opacity. Opacity feeds the vision engine's
// opacity oracle directly — it is in the same units as visibility.
type Tile struct {
	Kind    TileKind
	Opacity int
}

// Walkable reports whether an actor can stand on this tile.
func (t Tile) Walkable() bool {
	return t.Kind == TileFloor || t.Kind == TileHaze
}

// MakeFloor returns a fully transparent floor tile.
func MakeFloor() Tile { return Tile{Kind: TileFloor, Opacity: 0} }

// MakeWall returns a fully opaque wall tile.
func MakeWall() Tile { return Tile{Kind: TileWall, Opacity: vision.InitialVisibility} }

// MakeHaze returns semi-transparent terrain with the given per-step
// attenuation (typically one of vision.VisibilityLosses).
func MakeHaze(loss int) Tile { return Tile{Kind: TileHaze, Opacity: loss} }

// MakeDoor returns a closed door: opaque like a wall, distinguished for
// rendering and future door-state logic.
func MakeDoor() Tile { return Tile{Kind: TileDoor, Opacity: vision.InitialVisibility} }
