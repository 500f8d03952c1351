package collision

import (
	"math"

	"github.com/gridfoot/engine/internal/core/geom"
)

// grid partitions pixel space into square buckets, each holding the
// actors whose bounds overlap it. Buckets live in a map keyed by bucket
// coordinate so unbounded worlds need no array sizing; bucket slices keep
// insertion order so query results are deterministic for a fixed state.
//
// The span an actor was indexed under is tracked per actor, making
// removal O(span) even when the actor's bounds have since changed.
type grid struct {
	bucketSize int
	buckets    map[bucketKey][]Actor
	spans      map[uint64]span
}

type bucketKey struct {
	bx, by int32
}

// span is an inclusive bucket-coordinate window.
type span struct {
	minX, minY int32
	maxX, maxY int32
}

func newGrid(bucketSize int) *grid {
	return &grid{
		bucketSize: bucketSize,
		buckets:    make(map[bucketKey][]Actor, 256),
		spans:      make(map[uint64]span, 256),
	}
}

func (g *grid) toBucket(v float64) int32 {
	return int32(math.Floor(v / float64(g.bucketSize)))
}

func (g *grid) spanOf(r geom.Rect) span {
	return span{
		minX: g.toBucket(r.X),
		minY: g.toBucket(r.Y),
		maxX: g.toBucket(r.MaxX()),
		maxY: g.toBucket(r.MaxY()),
	}
}

// has reports whether the actor is currently indexed.
func (g *grid) has(id uint64) bool {
	_, ok := g.spans[id]
	return ok
}

// add indexes the actor under every bucket its bounds overlap. Re-adding
// an already-present actor is a no-op.
func (g *grid) add(a Actor) {
	id := a.ID()
	if g.has(id) {
		return
	}
	sp := g.spanOf(a.Bounds())
	for bx := sp.minX; bx <= sp.maxX; bx++ {
		for by := sp.minY; by <= sp.maxY; by++ {
			k := bucketKey{bx: bx, by: by}
			g.buckets[k] = append(g.buckets[k], a)
		}
	}
	g.spans[id] = sp
}

// remove deletes the actor from every bucket of its tracked span.
// Removing an unknown actor is a no-op.
func (g *grid) remove(a Actor) {
	id := a.ID()
	sp, ok := g.spans[id]
	if !ok {
		return
	}
	for bx := sp.minX; bx <= sp.maxX; bx++ {
		for by := sp.minY; by <= sp.maxY; by++ {
			k := bucketKey{bx: bx, by: by}
			g.buckets[k] = removeActor(g.buckets[k], id)
			if len(g.buckets[k]) == 0 {
				delete(g.buckets, k)
			}
		}
	}
	delete(g.spans, id)
}

// update re-indexes the actor under its current bounds.
func (g *grid) update(a Actor) {
	g.remove(a)
	g.add(a)
}

// bucketAt returns the bucket containing the pixel point (px, py).
func (g *grid) bucketAt(px, py float64) []Actor {
	return g.buckets[bucketKey{bx: g.toBucket(px), by: g.toBucket(py)}]
}

// actorsOverlapping returns every indexed actor whose bucket span
// intersects r, each exactly once, in bucket scan order.
func (g *grid) actorsOverlapping(r geom.Rect) []Actor {
	sp := g.spanOf(r)
	var out []Actor
	var seen map[uint64]struct{}
	for bx := sp.minX; bx <= sp.maxX; bx++ {
		for by := sp.minY; by <= sp.maxY; by++ {
			for _, a := range g.buckets[bucketKey{bx: bx, by: by}] {
				if seen == nil {
					seen = make(map[uint64]struct{}, 16)
				}
				if _, dup := seen[a.ID()]; dup {
					continue
				}
				seen[a.ID()] = struct{}{}
				out = append(out, a)
			}
		}
	}
	return out
}

func removeActor(s []Actor, id uint64) []Actor {
	for i, a := range s {
		if a.ID() == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
