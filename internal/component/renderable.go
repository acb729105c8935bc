package component

import (
	"github.com/glyphsight/glyphsight/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 3

// Renderable is the draw color and stacking order an entity presents on
// screen; the glyph itself is chosen by the renderer based on entity role.
type Renderable struct {
	FGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
