package component

import "github.com/glyphsight/glyphsight/internal/ecs"

const CViewer ecs.ComponentType = 4

// Viewer marks an entity as a field-of-view participant and records the
// radius its own sweep is bounded to. Facing and vision results live on the
// owning session, not the component, since only the owning session's sweep
// ever reads them.
type Viewer struct {
	Name   string
	Radius int
}

func (Viewer) Type() ecs.ComponentType { return CViewer }
