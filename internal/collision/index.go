package collision

import "github.com/gridfoot/engine/internal/core/kind"

// kindIndex maps each concrete kind to its live actors, in add order.
// Every actor lives in exactly one entry (its own kind); subtype matching
// is resolved at query time from the registry's closure, never by
// duplicating entries.
type kindIndex struct {
	reg     *kind.Registry
	byKind  map[kind.Kind][]Actor
	present map[uint64]kind.Kind
}

func newKindIndex(reg *kind.Registry) *kindIndex {
	return &kindIndex{
		reg:     reg,
		byKind:  make(map[kind.Kind][]Actor, 16),
		present: make(map[uint64]kind.Kind, 256),
	}
}

func (ix *kindIndex) add(a Actor) {
	id := a.ID()
	if _, ok := ix.present[id]; ok {
		return
	}
	k := a.Kind()
	ix.byKind[k] = append(ix.byKind[k], a)
	ix.present[id] = k
}

func (ix *kindIndex) remove(a Actor) {
	id := a.ID()
	k, ok := ix.present[id]
	if !ok {
		return
	}
	ix.byKind[k] = removeActor(ix.byKind[k], id)
	if len(ix.byKind[k]) == 0 {
		delete(ix.byKind, k)
	}
	delete(ix.present, id)
}

func (ix *kindIndex) has(id uint64) bool {
	_, ok := ix.present[id]
	return ok
}

func (ix *kindIndex) count() int {
	return len(ix.present)
}

// collect returns every live actor whose kind is target or a subtype of
// it, walking entry lists in kind registration order.
func (ix *kindIndex) collect(target kind.Kind) []Actor {
	var out []Actor
	for _, k := range ix.reg.Subtypes(target) {
		out = append(out, ix.byKind[k]...)
	}
	return out
}
