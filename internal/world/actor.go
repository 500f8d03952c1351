package world

import (
	"math"
	"sync/atomic"

	"github.com/gridfoot/engine/internal/core/geom"
	"github.com/gridfoot/engine/internal/core/kind"
)

var nextActorID atomic.Uint64

// Behavior is the per-step logic of an actor, run once per simulation
// step while the actor is in a world.
type Behavior interface {
	Act(a *Actor)
}

// BehaviorFunc adapts a function to the Behavior interface.
type BehaviorFunc func(a *Actor)

func (f BehaviorFunc) Act(a *Actor) { f(a) }

// AddedNotifier is implemented by behaviors that want a callback when
// their actor is placed into a world.
type AddedNotifier interface {
	AddedToWorld(a *Actor)
}

// Actor is a positioned entity with a footprint rectangle. Actors are
// created by the host program and become known to the collision engine
// only when added to a World; all position and footprint changes go
// through the actor's setters so the engine stays consistent.
type Actor struct {
	id       uint64
	kind     kind.Kind
	x, y     int
	rotation int
	wCells   int
	hCells   int
	bounds   geom.Rect
	world    *World
	behavior Behavior
}

// NewActor creates a detached actor of the given kind with a 1×1-cell
// footprint and no behavior.
func NewActor(k kind.Kind) *Actor {
	return &Actor{
		id:     nextActorID.Add(1),
		kind:   k,
		wCells: 1,
		hCells: 1,
	}
}

// SetBehavior attaches the actor's per-step logic.
func (a *Actor) SetBehavior(b Behavior) { a.behavior = b }

func (a *Actor) ID() uint64      { return a.id }
func (a *Actor) Kind() kind.Kind { return a.kind }

// Cell returns the actor's grid position.
func (a *Actor) Cell() (int, int) { return a.x, a.y }

func (a *Actor) X() int { return a.x }
func (a *Actor) Y() int { return a.y }

// Bounds returns the actor's pixel-space bounding rectangle. Zero while
// the actor is not in a world.
func (a *Actor) Bounds() geom.Rect { return a.bounds }

// World returns the world the actor is in, or nil.
func (a *Actor) World() *World { return a.world }

// Rotation returns the actor's rotation in degrees (0–359).
func (a *Actor) Rotation() int { return a.rotation }

// Footprint returns the actor's footprint in cells.
func (a *Actor) Footprint() (w, h int) { return a.wCells, a.hCells }

// SetRotation sets the actor's rotation, normalized to 0–359. Bounds stay
// axis-aligned: rotation never changes the collision rectangle.
func (a *Actor) SetRotation(deg int) {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	a.rotation = deg
}

// Turn rotates the actor by the given amount in degrees.
func (a *Actor) Turn(amount int) {
	a.SetRotation(a.rotation + amount)
}

// TurnTowards points the actor at the given cell.
func (a *Actor) TurnTowards(x, y int) {
	a.SetRotation(int(math.Round(math.Atan2(float64(y-a.y), float64(x-a.x)) * 180 / math.Pi)))
}

// SetLocation moves the actor to cell (x, y), subject to the world's
// location policy: bounded worlds clamp into range, wrapped worlds fold
// modulo the world size. The collision engine is updated immediately.
func (a *Actor) SetLocation(x, y int) {
	if a.world == nil {
		a.x, a.y = x, y
		return
	}
	oldX, oldY := a.x, a.y
	a.x, a.y = a.world.confine(x, y)
	a.updateBounds()
	if a.x != oldX || a.y != oldY {
		a.world.locationChanged(a, oldX, oldY)
	}
}

// Move advances the actor by distance cells along its current rotation.
func (a *Actor) Move(distance int) {
	rad := float64(a.rotation) * math.Pi / 180
	dx := int(math.Round(math.Cos(rad) * float64(distance)))
	dy := int(math.Round(math.Sin(rad) * float64(distance)))
	a.SetLocation(a.x+dx, a.y+dy)
}

// SetFootprint resizes the actor to w×h cells (minimum 1×1) and
// re-indexes it in the collision engine.
func (a *Actor) SetFootprint(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	a.wCells, a.hCells = w, h
	if a.world != nil {
		a.updateBounds()
		a.world.sizeChanged(a)
	}
}

// IsAtEdge reports whether the actor sits on the outermost cell ring of
// a bounded world. Always false in wrapped worlds.
func (a *Actor) IsAtEdge() bool {
	if a.world == nil || a.world.Wrapped() {
		return false
	}
	return a.x <= 0 || a.y <= 0 || a.x >= a.world.Width()-1 || a.y >= a.world.Height()-1
}

// updateBounds recomputes the pixel rectangle: the w×h-cell footprint
// centered on the actor's cell center.
func (a *Actor) updateBounds() {
	cs := float64(a.world.CellSize())
	cx := float64(a.x)*cs + cs/2
	cy := float64(a.y)*cs + cs/2
	w := float64(a.wCells) * cs
	h := float64(a.hCells) * cs
	a.bounds = geom.NewRect(cx-w/2, cy-h/2, w, h)
}

// ── Query helpers (origin Actor API) ──────────────────────────────

// Neighbours returns actors in cells within distance d of this actor's
// cell; see World.Neighbours for the diagonal rule.
func (a *Actor) Neighbours(d int, diagonal bool, k kind.Kind) ([]*Actor, error) {
	if a.world == nil {
		return nil, nil
	}
	return a.world.Neighbours(a, d, diagonal, k)
}

// ObjectsAtOffset returns the actors at cell (dx, dy) relative to this one.
func (a *Actor) ObjectsAtOffset(dx, dy int, k kind.Kind) []*Actor {
	if a.world == nil {
		return nil
	}
	return a.world.ObjectsAt(a.x+dx, a.y+dy, k)
}

// OneObjectAtOffset returns one actor at cell (dx, dy) relative to this
// one, or nil.
func (a *Actor) OneObjectAtOffset(dx, dy int, k kind.Kind) *Actor {
	if a.world == nil {
		return nil
	}
	return a.world.OneObjectAt(a, dx, dy, k)
}

// ObjectsInRange returns actors within radius r cells of this actor,
// excluding itself.
func (a *Actor) ObjectsInRange(r int, k kind.Kind) ([]*Actor, error) {
	if a.world == nil {
		return nil, nil
	}
	out, err := a.world.ObjectsInRange(a.x, a.y, r, k)
	if err != nil {
		return nil, err
	}
	return exclude(out, a), nil
}

// IntersectingObjects returns actors whose bounds overlap this actor's.
func (a *Actor) IntersectingObjects(k kind.Kind) ([]*Actor, error) {
	if a.world == nil {
		return nil, nil
	}
	return a.world.IntersectingObjects(a, k)
}

// OneIntersectingObject returns one actor overlapping this one, or nil.
func (a *Actor) OneIntersectingObject(k kind.Kind) *Actor {
	if a.world == nil {
		return nil
	}
	return a.world.OneIntersectingObject(a, k)
}

// IsTouching reports whether any actor of the given kind overlaps this one.
func (a *Actor) IsTouching(k kind.Kind) bool {
	return a.OneIntersectingObject(k) != nil
}

// RemoveTouching removes one touching actor of the given kind, if any.
func (a *Actor) RemoveTouching(k kind.Kind) {
	if t := a.OneIntersectingObject(k); t != nil {
		a.world.RemoveObject(t)
	}
}

func exclude(s []*Actor, a *Actor) []*Actor {
	for i, o := range s {
		if o == a {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
