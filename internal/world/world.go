// Package world is the binding facade over the collision engine: the
// only entry point the surrounding simulation sees. It owns the grid and
// kind index exclusively — actors and the outer driver observe the world
// solely through the query API.
package world

import (
	"go.uber.org/zap"

	"github.com/gridfoot/engine/internal/collision"
	"github.com/gridfoot/engine/internal/core/event"
	"github.com/gridfoot/engine/internal/core/kind"
	"github.com/gridfoot/engine/internal/core/system"
)

// World is a bounded or toroidal grid of width×height cells, cellSize
// pixels each. All methods must be called from the simulation goroutine;
// mutations are visible to every query issued after them, including
// queries made later within the same step.
type World struct {
	width    int
	height   int
	cellSize int
	wrap     bool

	reg     *kind.Registry
	checker *collision.Checker
	bus     *event.Bus
	runner  *system.Runner

	actors   []*Actor
	actOrder []kind.Kind
	step     uint64
	log      *zap.Logger
}

// New creates a world. wrap selects the location policy applied by
// SetLocation: false clamps positions into range, true folds them modulo
// the world size. Query topology never wraps either way.
func New(reg *kind.Registry, width, height, cellSize int, wrap bool, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		width:    width,
		height:   height,
		cellSize: cellSize,
		wrap:     wrap,
		reg:      reg,
		checker:  collision.New(reg),
		bus:      event.NewBus(),
		runner:   system.NewRunner(),
		log:      log,
	}
	w.checker.Initialize(width, height, cellSize, wrap)
	w.runner.Register(&startSystem{w: w})
	w.runner.Register(&actSystem{w: w})
	log.Info("world initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("cell_size", cellSize),
		zap.Bool("wrap", wrap),
	)
	return w
}

func (w *World) Width() int    { return w.width }
func (w *World) Height() int   { return w.height }
func (w *World) CellSize() int { return w.cellSize }
func (w *World) Wrapped() bool { return w.wrap }

// Bus returns the step event bus for observer subscriptions.
func (w *World) Bus() *event.Bus { return w.bus }

// Registry returns the kind registry the world was built over.
func (w *World) Registry() *kind.Registry { return w.reg }

// AddSystem registers an additional step system with the world's runner.
func (w *World) AddSystem(s system.System) { w.runner.Register(s) }

// SetActOrder makes actors of the listed kinds act first, in list order;
// actors of unlisted kinds act afterwards in registration order.
func (w *World) SetActOrder(kinds ...kind.Kind) {
	w.actOrder = kinds
}

// AddObject places the actor at cell (x, y) and makes it known to the
// collision engine. An actor already in another world is moved.
func (w *World) AddObject(a *Actor, x, y int) {
	if a == nil {
		return
	}
	if a.world == w {
		a.SetLocation(x, y)
		return
	}
	if a.world != nil {
		a.world.RemoveObject(a)
	}
	a.world = w
	a.x, a.y = w.confine(x, y)
	a.updateBounds()
	w.checker.AddObject(a)
	w.actors = append(w.actors, a)
	event.Emit(w.bus, event.ActorAdded{ActorID: a.id, Kind: a.kind, X: a.x, Y: a.y})
	if n, ok := a.behavior.(AddedNotifier); ok {
		n.AddedToWorld(a)
	}
}

// RemoveObject takes the actor out of the world. From the next query
// onward it is unreachable.
func (w *World) RemoveObject(a *Actor) {
	if a == nil || a.world != w {
		return
	}
	w.checker.RemoveObject(a)
	for i, o := range w.actors {
		if o == a {
			w.actors = append(w.actors[:i], w.actors[i+1:]...)
			break
		}
	}
	a.world = nil
	event.Emit(w.bus, event.ActorRemoved{ActorID: a.id, Kind: a.kind, X: a.x, Y: a.y})
}

// RemoveObjects removes every actor in the slice.
func (w *World) RemoveObjects(actors []*Actor) {
	for _, a := range actors {
		w.RemoveObject(a)
	}
}

// NumberOfObjects returns the number of actors in the world.
func (w *World) NumberOfObjects() int {
	return w.checker.NumberOfObjects()
}

// Step runs one simulation step: the start boundary (event dispatch and
// sequence start), then every actor's behavior in act order.
func (w *World) Step() {
	w.step++
	w.runner.Tick(w.step)
}

// StepN runs n simulation steps.
func (w *World) StepN(n int) {
	for i := 0; i < n; i++ {
		w.Step()
	}
}

// StepCount returns the number of the step currently running (or last run).
func (w *World) StepCount() uint64 { return w.step }

// ── Queries ───────────────────────────────────────────────────────

// ObjectsAt returns the actors whose grid position is exactly (x, y).
func (w *World) ObjectsAt(x, y int, k kind.Kind) []*Actor {
	return toActors(w.checker.ObjectsAt(x, y, k))
}

// IntersectingObjects returns the actors whose bounds overlap a's,
// excluding a itself.
func (w *World) IntersectingObjects(a *Actor, k kind.Kind) ([]*Actor, error) {
	out, err := w.checker.IntersectingObjects(a, k)
	if err != nil {
		return nil, err
	}
	return toActors(out), nil
}

// ObjectsInRange returns the actors within radius r cells of the center
// of cell (x, y), by Euclidean pixel distance.
func (w *World) ObjectsInRange(x, y, r int, k kind.Kind) ([]*Actor, error) {
	out, err := w.checker.ObjectsInRange(x, y, r, k)
	if err != nil {
		return nil, err
	}
	return toActors(out), nil
}

// Neighbours returns the actors in cells within distance d of a's cell:
// Chebyshev distance when diagonal is true, axis-aligned offsets only
// when false. a's own cell is excluded.
func (w *World) Neighbours(a *Actor, d int, diagonal bool, k kind.Kind) ([]*Actor, error) {
	out, err := w.checker.Neighbours(a, d, diagonal, k)
	if err != nil {
		return nil, err
	}
	return toActors(out), nil
}

// ObjectsInDirection returns the actors along the line from cell (x, y)
// toward angle (degrees) for length cells, closest first.
func (w *World) ObjectsInDirection(x, y, angle, length int, k kind.Kind) []*Actor {
	return toActors(w.checker.ObjectsInDirection(x, y, angle, length, k))
}

// OneObjectAt returns one actor at the cell offset (dx, dy) from a, or nil.
func (w *World) OneObjectAt(a *Actor, dx, dy int, k kind.Kind) *Actor {
	return toActor(w.checker.OneObjectAt(a, dx, dy, k))
}

// OneIntersectingObject returns one actor overlapping a, or nil.
func (w *World) OneIntersectingObject(a *Actor, k kind.Kind) *Actor {
	return toActor(w.checker.OneIntersectingObject(a, k))
}

// Objects returns every actor of the given kind or its subtypes.
func (w *World) Objects(k kind.Kind) []*Actor {
	return toActors(w.checker.Objects(k))
}

// ActorList returns every actor in the world.
func (w *World) ActorList() []*Actor {
	return toActors(w.checker.ObjectsList())
}

// ── Internal ──────────────────────────────────────────────────────

// confine applies the world's location policy to a requested cell.
func (w *World) confine(x, y int) (int, int) {
	if w.wrap {
		return mod(x, w.width), mod(y, w.height)
	}
	return clamp(x, 0, w.width-1), clamp(y, 0, w.height-1)
}

func (w *World) locationChanged(a *Actor, oldX, oldY int) {
	w.checker.UpdateObjectLocation(a, oldX, oldY)
	event.Emit(w.bus, event.ActorMoved{
		ActorID: a.id, Kind: a.kind,
		FromX: oldX, FromY: oldY, ToX: a.x, ToY: a.y,
	})
}

func (w *World) sizeChanged(a *Actor) {
	w.checker.UpdateObjectSize(a)
}

// actOrdered returns a snapshot of the world's actors in act order.
func (w *World) actOrdered() []*Actor {
	if len(w.actOrder) == 0 {
		return append([]*Actor(nil), w.actors...)
	}
	out := make([]*Actor, 0, len(w.actors))
	taken := make(map[uint64]struct{}, len(w.actors))
	for _, k := range w.actOrder {
		for _, a := range w.actors {
			if _, done := taken[a.id]; done {
				continue
			}
			if w.reg.Is(a.kind, k) {
				taken[a.id] = struct{}{}
				out = append(out, a)
			}
		}
	}
	for _, a := range w.actors {
		if _, done := taken[a.id]; !done {
			out = append(out, a)
		}
	}
	return out
}

func toActors(in []collision.Actor) []*Actor {
	if in == nil {
		return nil
	}
	out := make([]*Actor, len(in))
	for i, a := range in {
		out[i] = a.(*Actor)
	}
	return out
}

func toActor(a collision.Actor) *Actor {
	if a == nil {
		return nil
	}
	return a.(*Actor)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}
