package gamemap

import (
	"math/rand"

	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/vision"
)

// GameMap holds the tile grid for one observatory level.
type GameMap struct {
	tiles *geom.Matrix[Tile]
}

// New creates a GameMap of the given size, filled with floor.
func New(size geom.Point) *GameMap {
	return &GameMap{tiles: geom.NewMatrix(size, MakeFloor())}
}

// NewRandom generates a GameMap matching the randomized-test distribution
// from the engine's testable properties: roughly 1% wall, 4% haze, the rest
// open floor.
func NewRandom(size geom.Point, rng *rand.Rand) *GameMap {
	m := New(size)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			p := geom.Point{X: x, Y: y}
			switch sample := rng.Intn(100); {
			case sample < 1:
				m.Set(p, MakeWall())
			case sample < 5:
				m.Set(p, MakeHaze(vision.VisibilityLosses[2]))
			}
		}
	}
	return m
}

// Size returns the map's width and height as a Point.
func (m *GameMap) Size() geom.Point { return m.tiles.Size }

// At returns the tile at p, or a wall if p is out of bounds.
func (m *GameMap) At(p geom.Point) Tile {
	if !m.tiles.Contains(p) {
		return MakeWall()
	}
	return m.tiles.At(p)
}

// Set replaces the tile at p. Out-of-bounds writes are silently dropped.
func (m *GameMap) Set(p geom.Point, t Tile) {
	m.tiles.Set(p, t)
}

// Walkable reports whether p is in bounds and its tile can be stood on.
func (m *GameMap) Walkable(p geom.Point) bool {
	return m.tiles.Contains(p) && m.At(p).Walkable()
}

// OpacityAt implements vision.OpacityFunc against this map: out-of-bounds
// points read as fully opaque, matching the engine's "out-of-scratch reads
// as unseen" posture at the caller boundary.
func (m *GameMap) OpacityAt(p geom.Point) int {
	return m.At(p).Opacity
}
