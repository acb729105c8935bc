package observatory

import (
	"sync"
	"sync/atomic"

	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/internal/ecs"
	"github.com/glyphsight/glyphsight/internal/render"
	"github.com/glyphsight/glyphsight/vision"

	"github.com/gdamore/tcell/v2"
)

// Session holds all per-viewer state for one connection.
type Session struct {
	ID    int
	Name  string
	Color tcell.Color

	ViewerID ecs.EntityID

	Screen   tcell.Screen
	Renderer *render.Renderer
	Vision   *vision.Vision

	// facing is the last nonzero movement direction, retained across cone
	// toggles so re-enabling the cone restores where the viewer was looking.
	// coneOn gates whether VisionArgs.Dir is actually set from it.
	facingMu sync.Mutex
	facing   geom.Point
	coneOn   bool

	// Pending action (last key wins).
	actionMu sync.Mutex
	pending  Action

	RunLog      RunLog
	coneToggles int

	// Render trigger: the ticker sends here; the session's goroutine drains
	// and renders.
	RenderCh chan struct{}

	// disconnected is set by RemoveSession once the session has been
	// deregistered from the server.
	disconnected atomic.Bool
}

// NewSession allocates a Session for a newly-connected viewer.
func NewSession(id int, name string, color tcell.Color, screen tcell.Screen, radius int) *Session {
	return &Session{
		ID:       id,
		Name:     name,
		Color:    color,
		Screen:   screen,
		Vision:   vision.New(radius),
		RenderCh: make(chan struct{}, 1),
	}
}

// SetAction stores the viewer's most recent key action (last key wins).
func (s *Session) SetAction(a Action) {
	s.actionMu.Lock()
	s.pending = a
	s.actionMu.Unlock()
}

// TakeAction atomically retrieves and clears the pending action.
func (s *Session) TakeAction() Action {
	s.actionMu.Lock()
	a := s.pending
	s.pending = ActionNone
	s.actionMu.Unlock()
	return a
}

// VisionDir returns the direction to pass as VisionArgs.Dir: the zero Point
// when the cone is off, otherwise the last movement direction.
func (s *Session) VisionDir() geom.Point {
	s.facingMu.Lock()
	defer s.facingMu.Unlock()
	if !s.coneOn {
		return geom.Point{}
	}
	return s.facing
}

// SetFacing records the viewer's latest movement direction.
func (s *Session) SetFacing(d geom.Point) {
	if d == (geom.Point{}) {
		return
	}
	s.facingMu.Lock()
	s.facing = d
	s.facingMu.Unlock()
}

// ToggleCone flips between omnidirectional and directional vision.
func (s *Session) ToggleCone() {
	s.facingMu.Lock()
	defer s.facingMu.Unlock()
	s.coneOn = !s.coneOn
	if s.coneOn && s.facing == (geom.Point{}) {
		s.facing = geom.Point{X: 0, Y: 1} // default to facing south
	}
	s.coneToggles++
}

// Disconnected reports whether the session's event loop has exited.
func (s *Session) Disconnected() bool { return s.disconnected.Load() }

// MarkDisconnected records that the session's event loop has exited.
func (s *Session) MarkDisconnected() { s.disconnected.Store(true) }
