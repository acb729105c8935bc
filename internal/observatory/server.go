// Package observatory implements a tick-based multi-viewer server: N clients
// connect over SSH, each gets their own session and field-of-view sweep over
// one shared map. A single ticker goroutine advances viewer positions every
// TickInterval; each session's own goroutine renders to its own screen when
// signaled.
package observatory

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/glyphsight/glyphsight/geom"
	"github.com/glyphsight/glyphsight/internal/component"
	"github.com/glyphsight/glyphsight/internal/ecs"
	"github.com/glyphsight/glyphsight/internal/gamemap"
	"github.com/glyphsight/glyphsight/internal/render"
	"github.com/glyphsight/glyphsight/vision"

	"github.com/gdamore/tcell/v2"
)

// TickInterval is the wall-clock period between world ticks.
const TickInterval = 150 * time.Millisecond

// DefaultRadius is the vision radius given to a freshly connected viewer.
const DefaultRadius = 20

// Server manages the shared map and every connected viewer's session.
type Server struct {
	mu       sync.Mutex
	world    *ecs.World
	gmap     *gamemap.GameMap
	sessions []*Session
	nextID   int
	logger   *slog.Logger
}

// NewServer creates a Server over a freshly generated map of the given size.
func NewServer(size geom.Point, rng *rand.Rand, logger *slog.Logger) *Server {
	return &Server{
		world:  ecs.NewWorld(),
		gmap:   gamemap.NewRandom(size, rng),
		logger: logger,
	}
}

// NextSessionID returns a unique session ID and an assigned viewer color.
// Safe to call concurrently.
func (s *Server) NextSessionID() (int, tcell.Color) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	color := render.ViewerColors[id%len(render.ViewerColors)]
	s.mu.Unlock()
	return id, color
}

// Run starts the ticker loop. Blocks until the process exits.
func (s *Server) Run() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.tick()
	}
}

// spawnPoint returns the first walkable tile found in ever larger squares
// around the map center, falling back to the map origin if none is walkable.
func (s *Server) spawnPoint() geom.Point {
	size := s.gmap.Size()
	center := geom.Point{X: size.X / 2, Y: size.Y / 2}
	for r := 0; r < size.X+size.Y; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := center.Add(geom.Point{X: dx, Y: dy})
				if s.gmap.Walkable(p) {
					return p
				}
			}
		}
	}
	return geom.Point{}
}

// AddSession registers a new session and spawns its viewer entity.
func (s *Server) AddSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.world.CreateEntity()
	sess.ViewerID = id
	pos := s.spawnPoint()
	s.world.Add(id, component.Position{X: pos.X, Y: pos.Y})
	s.world.Add(id, component.Renderable{FGColor: sess.Color, RenderOrder: 1})
	s.world.Add(id, component.Viewer{Name: sess.Name, Radius: DefaultRadius})

	sess.Renderer = render.NewRenderer(sess.Screen)
	sess.RunLog = RunLog{Timestamp: time.Now(), Name: sess.Name}

	s.sessions = append(s.sessions, sess)
	s.logger.Info("viewer connected", "name", sess.Name, "id", sess.ID)
}

// RemoveSession deregisters a session and removes its viewer entity.
func (s *Server) RemoveSession(sess *Session) {
	s.mu.Lock()
	for i, cand := range s.sessions {
		if cand == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	s.world.DestroyEntity(sess.ViewerID)
	s.mu.Unlock()

	sess.MarkDisconnected()
	saveRunLog(sess.RunLog, s.logger)
	s.logger.Info("viewer disconnected", "name", sess.Name, "id", sess.ID)
}

// tick applies one pending action per session, recomputes each session's
// field of view, then signals each session's render goroutine.
func (s *Server) tick() {
	s.mu.Lock()
	for _, sess := range s.sessions {
		s.applyAction(sess)
		s.recomputeVision(sess)
	}
	sessions := append([]*Session(nil), s.sessions...)
	s.mu.Unlock()

	for _, sess := range sessions {
		select {
		case sess.RenderCh <- struct{}{}:
		default:
		}
	}
}

// applyAction consumes sess's pending action. Must be called with s.mu held.
func (s *Server) applyAction(sess *Session) {
	switch action := sess.TakeAction(); action {
	case ActionToggleCone:
		sess.ToggleCone()
	case ActionNone:
	default:
		delta, ok := dirDeltas[action]
		if !ok {
			return
		}
		posComp := s.world.Get(sess.ViewerID, component.CPosition)
		if posComp == nil {
			return
		}
		pos := posComp.(component.Position)
		next := geom.Point{X: pos.X + delta[0], Y: pos.Y + delta[1]}
		if s.gmap.Walkable(next) {
			s.world.Add(sess.ViewerID, component.Position{X: next.X, Y: next.Y})
			sess.SetFacing(geom.Point{X: delta[0], Y: delta[1]})
		}
	}
}

// recomputeVision runs sess's sweep from its viewer entity's current
// position. Must be called with s.mu held.
func (s *Server) recomputeVision(sess *Session) {
	posComp := s.world.Get(sess.ViewerID, component.CPosition)
	if posComp == nil {
		return
	}
	pos := posComp.(component.Position)
	sess.Vision.Compute(vision.VisionArgs{
		Eye:               geom.Point{X: pos.X, Y: pos.Y},
		Dir:               sess.VisionDir(),
		OpacityLookup:     s.gmap.OpacityAt,
		InitialVisibility: vision.InitialVisibility,
	})
	sess.RunLog.TicksConnected++
	if seen := len(sess.Vision.GetPointsSeen()); seen > sess.RunLog.CellsDiscovered {
		sess.RunLog.CellsDiscovered = seen
	}
	sess.RunLog.ConeToggles = sess.coneToggles
}

// RenderSession draws the current frame for sess. Must be called with s.mu
// held by the caller's RunLoop.
func (s *Server) RenderSession(sess *Session) {
	posComp := s.world.Get(sess.ViewerID, component.CPosition)
	if posComp == nil {
		return
	}
	pos := posComp.(component.Position)
	sess.Renderer.CenterOn(geom.Point{X: pos.X, Y: pos.Y})
	sess.Renderer.DrawFrame(s.world, s.gmap, sess.Vision, sess.ViewerID)
	drawStatusLine(sess.Screen, sess)
}

// drawStatusLine renders a one-line footer with the viewer's name, cone state
// and key hints.
func drawStatusLine(screen tcell.Screen, sess *Session) {
	w, h := screen.Size()
	dir := "omni"
	if sess.VisionDir() != (geom.Point{}) {
		dir = "cone"
	}
	line := fmt.Sprintf(" %s | vision: %s | [v] toggle cone  [q] quit ", sess.Name, dir)
	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		screen.SetContent(col, h-1, r, nil, style)
		col++
	}
	for ; col < w; col++ {
		screen.SetContent(col, h-1, ' ', nil, style)
	}
}
