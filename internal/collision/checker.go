package collision

import (
	"math"

	"github.com/gridfoot/engine/internal/core/geom"
	"github.com/gridfoot/engine/internal/core/kind"
)

// Checker is the collision and spatial query engine. It keeps the spatial
// hash grid and the kind index consistent as actors are added, removed,
// moved, and resized, and answers the world's queries against that state.
//
// Every query is a pure function of the current grid and index state;
// mutations issued before a query are fully visible to it. StartSequence
// marks the boundary of a simulation step.
type Checker struct {
	worldWidth  int
	worldHeight int
	cellSize    int
	wrap        bool

	buckets *grid
	kinds   *kindIndex
	step    uint64
}

// New creates a Checker over the given kind registry. Initialize must be
// called before any actors are added.
func New(reg *kind.Registry) *Checker {
	return &Checker{kinds: newKindIndex(reg)}
}

// Initialize sizes the engine for a world of worldWidth×worldHeight cells
// of cellSize pixels. The bucket size is fixed at twice the cell size,
// bounding the buckets touched per query. wrap records a toroidal world:
// it affects only how the caller folds positions, never query topology.
func (c *Checker) Initialize(worldWidth, worldHeight, cellSize int, wrap bool) {
	c.worldWidth = worldWidth
	c.worldHeight = worldHeight
	c.cellSize = cellSize
	c.wrap = wrap
	c.buckets = newGrid(2 * cellSize)
	c.step = 0
}

// CellSize returns the pixel size of one grid cell.
func (c *Checker) CellSize() int { return c.cellSize }

// Wrap reports whether the world was initialized as toroidal.
func (c *Checker) Wrap() bool { return c.wrap }

// Step returns the current sequence number.
func (c *Checker) Step() uint64 { return c.step }

// StartSequence marks the start of a simulation step. Queries issued
// after it observe every mutation applied before it.
func (c *Checker) StartSequence() {
	c.step++
}

// AddObject makes the actor known to the engine. Re-adding a known actor
// is a no-op.
func (c *Checker) AddObject(a Actor) {
	if a == nil {
		return
	}
	c.buckets.add(a)
	c.kinds.add(a)
}

// RemoveObject makes the actor unknown to the engine. From the next query
// onward the actor is universally unreachable.
func (c *Checker) RemoveObject(a Actor) {
	if a == nil {
		return
	}
	c.buckets.remove(a)
	c.kinds.remove(a)
}

// UpdateObjectLocation re-indexes the actor after a position change. The
// actor's bounds must already reflect the new position.
func (c *Checker) UpdateObjectLocation(a Actor, oldX, oldY int) {
	if a == nil || !c.known(a) {
		return
	}
	c.buckets.update(a)
}

// UpdateObjectSize re-indexes the actor after a footprint change.
func (c *Checker) UpdateObjectSize(a Actor) {
	if a == nil || !c.known(a) {
		return
	}
	c.buckets.update(a)
}

// ObjectsAt returns the actors whose grid position is exactly (x, y),
// filtered by kind. Cells outside a non-wrapped world are empty.
func (c *Checker) ObjectsAt(x, y int, k kind.Kind) []Actor {
	if c.outOfWorld(x, y) {
		return nil
	}
	var out []Actor
	px, py := c.cellCenter(x, y)
	for _, a := range c.buckets.bucketAt(px, py) {
		ax, ay := a.Cell()
		if ax == x && ay == y && c.match(a, k) {
			out = append(out, a)
		}
	}
	return out
}

// IntersectingObjects returns the actors whose bounds overlap a's bounds,
// excluding a itself. Touching edges do not count as overlap.
func (c *Checker) IntersectingObjects(a Actor, k kind.Kind) ([]Actor, error) {
	if a == nil {
		return nil, ErrNilActor
	}
	if !c.known(a) {
		return nil, nil
	}
	bounds := a.Bounds()
	var out []Actor
	for _, other := range c.buckets.actorsOverlapping(bounds) {
		if other.ID() == a.ID() || !c.match(other, k) {
			continue
		}
		if bounds.Overlaps(other.Bounds()) {
			out = append(out, other)
		}
	}
	return out, nil
}

// ObjectsInRange returns the actors whose pixel center lies within
// r cells (Euclidean, in pixels) of the center of cell (x, y).
func (c *Checker) ObjectsInRange(x, y, r int, k kind.Kind) ([]Actor, error) {
	if r < 0 {
		return nil, ErrNegativeRadius
	}
	px, py := c.cellCenter(x, y)
	pr := float64(r * c.cellSize)
	window := geom.NewRect(px-pr, py-pr, 2*pr, 2*pr)
	var out []Actor
	for _, a := range c.buckets.actorsOverlapping(window) {
		if !c.match(a, k) {
			continue
		}
		b := a.Bounds()
		dx := b.CenterX() - px
		dy := b.CenterY() - py
		if dx*dx+dy*dy <= pr*pr {
			out = append(out, a)
		}
	}
	return out, nil
}

// Neighbours returns the actors positioned in cells around a's cell: all
// cells within Chebyshev distance d when diagonal is true, only
// axis-aligned offsets when false. a's own cell is excluded.
func (c *Checker) Neighbours(a Actor, d int, diagonal bool, k kind.Kind) ([]Actor, error) {
	if a == nil {
		return nil, ErrNilActor
	}
	if d < 0 {
		return nil, ErrNegativeDistance
	}
	if !c.known(a) {
		return nil, nil
	}
	cx, cy := a.Cell()
	var out []Actor
	for dx := -d; dx <= d; dx++ {
		for dy := -d; dy <= d; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !diagonal && dx != 0 && dy != 0 {
				continue
			}
			out = append(out, c.ObjectsAt(cx+dx, cy+dy, k)...)
		}
	}
	return out, nil
}

// ObjectsInDirection returns the actors along the discrete line from cell
// (x, y) toward angle (degrees, 0 = +x, 90 = +y) for length cells,
// ordered closest first. The origin cell is included.
func (c *Checker) ObjectsInDirection(x, y, angle, length int, k kind.Kind) []Actor {
	rad := float64(angle) * math.Pi / 180
	endX := x + int(math.Round(math.Cos(rad)*float64(length)))
	endY := y + int(math.Round(math.Sin(rad)*float64(length)))
	var out []Actor
	geom.Line(x, y, endX, endY, func(cx, cy int) bool {
		out = append(out, c.ObjectsAt(cx, cy, k)...)
		return true
	})
	return out
}

// OneObjectAt returns one actor at the cell offset (dx, dy) from a's
// position, or nil. Ties resolve to the first actor in ObjectsAt order.
func (c *Checker) OneObjectAt(a Actor, dx, dy int, k kind.Kind) Actor {
	if a == nil || !c.known(a) {
		return nil
	}
	ax, ay := a.Cell()
	return first(c.ObjectsAt(ax+dx, ay+dy, k))
}

// OneIntersectingObject returns one actor intersecting a, or nil. Ties
// resolve to the first actor in IntersectingObjects order.
func (c *Checker) OneIntersectingObject(a Actor, k kind.Kind) Actor {
	if a == nil || !c.known(a) {
		return nil
	}
	matches, err := c.IntersectingObjects(a, k)
	if err != nil {
		return nil
	}
	return first(matches)
}

// Objects returns every live actor of the given kind or its subtypes.
func (c *Checker) Objects(k kind.Kind) []Actor {
	return c.kinds.collect(k)
}

// ObjectsList returns every live actor.
func (c *Checker) ObjectsList() []Actor {
	return c.kinds.collect(kind.Any)
}

// NumberOfObjects returns the number of live actors.
func (c *Checker) NumberOfObjects() int {
	return c.kinds.count()
}

// BucketSpan returns the bucket window the actor's bounds would cover.
// Exposed for invariant checks.
func (c *Checker) BucketSpan(r geom.Rect) (minX, minY, maxX, maxY int32) {
	sp := c.buckets.spanOf(r)
	return sp.minX, sp.minY, sp.maxX, sp.maxY
}

func (c *Checker) known(a Actor) bool {
	return c.kinds.has(a.ID())
}

func (c *Checker) match(a Actor, k kind.Kind) bool {
	return k == kind.Any || c.kinds.reg.Is(a.Kind(), k)
}

// cellCenter returns the pixel center of cell (x, y).
func (c *Checker) cellCenter(x, y int) (float64, float64) {
	cs := float64(c.cellSize)
	return float64(x)*cs + cs/2, float64(y)*cs + cs/2
}

// outOfWorld reports whether cell (x, y) is outside a non-wrapped world.
// Nothing lives there, so queries over it are empty rather than errors.
func (c *Checker) outOfWorld(x, y int) bool {
	if c.wrap {
		return false
	}
	return x < 0 || y < 0 || x >= c.worldWidth || y >= c.worldHeight
}

func first(s []Actor) Actor {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}
