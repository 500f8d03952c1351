package event

import "github.com/gridfoot/engine/internal/core/kind"

// World lifecycle events, emitted by the facade as mutations happen and
// delivered at the start of the following step.

type ActorAdded struct {
	ActorID uint64
	Kind    kind.Kind
	X, Y    int
}

type ActorRemoved struct {
	ActorID uint64
	Kind    kind.Kind
	X, Y    int
}

type ActorMoved struct {
	ActorID      uint64
	Kind         kind.Kind
	FromX, FromY int
	ToX, ToY     int
}
