// Package collision implements the spatial index and query engine for a
// grid-addressed world of actors: a bucketed spatial hash over pixel
// space, a per-kind index, and the query operations built on both.
//
// The engine references actors, it never owns them. Lifecycle and
// mutation stay with the caller, which must report every position or
// footprint change through the Checker's update methods; the engine never
// observes mutation implicitly. Accessed only from the simulation
// goroutine — no locks.
package collision

import (
	"github.com/gridfoot/engine/internal/core/geom"
	"github.com/gridfoot/engine/internal/core/kind"
)

// Actor is the engine's view of a world object.
type Actor interface {
	// ID is a stable identity used for set membership and deduplication.
	ID() uint64
	// Cell returns the actor's grid position.
	Cell() (x, y int)
	// Bounds returns the actor's pixel-space bounding rectangle.
	Bounds() geom.Rect
	// Kind returns the actor's concrete kind tag.
	Kind() kind.Kind
}
