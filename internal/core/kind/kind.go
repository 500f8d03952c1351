// Package kind implements the actor type-tag scheme. Actor kinds form an
// explicit hierarchy declared at registration time; subtype relationships
// are answered from a parent table instead of host-language reflection.
package kind

import (
	"errors"
	"fmt"
)

// Kind identifies a registered actor kind. The zero value Any is the
// wildcard that matches every actor in a query filter.
type Kind int32

// Any matches actors of every kind.
const Any Kind = 0

var ErrUnknownParent = errors.New("kind: unknown parent")

// Registry holds the kind hierarchy. Kinds are registered once, up front;
// the subtype closure per kind is cached and invalidated only when a new
// kind is registered. Accessed only from the simulation goroutine.
type Registry struct {
	names   []string // index 0 reserved for Any
	parents []Kind
	byName  map[string]Kind
	closure map[Kind][]Kind
}

func NewRegistry() *Registry {
	return &Registry{
		names:   []string{""},
		parents: []Kind{Any},
		byName:  make(map[string]Kind, 16),
		closure: make(map[Kind][]Kind),
	}
}

// Register declares a new kind with the given parent. Pass Any for a root
// kind. The parent must already be registered.
func (r *Registry) Register(name string, parent Kind) (Kind, error) {
	if name == "" {
		return Any, errors.New("kind: empty name")
	}
	if _, exists := r.byName[name]; exists {
		return Any, fmt.Errorf("kind: %q already registered", name)
	}
	if !r.valid(parent) {
		return Any, fmt.Errorf("%w: %d", ErrUnknownParent, parent)
	}
	k := Kind(len(r.names))
	r.names = append(r.names, name)
	r.parents = append(r.parents, parent)
	r.byName[name] = k
	// A new kind extends the subtype closure of all its ancestors.
	r.closure = make(map[Kind][]Kind)
	return k, nil
}

// Lookup resolves a kind by its registered name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Name returns the registered name of k, or "" for Any.
func (r *Registry) Name(k Kind) string {
	if !r.valid(k) {
		return ""
	}
	return r.names[k]
}

// Parent returns the declared parent of k (Any for root kinds).
func (r *Registry) Parent(k Kind) Kind {
	if !r.valid(k) {
		return Any
	}
	return r.parents[k]
}

// Is reports whether k is target or a descendant of target. Any matches
// everything.
func (r *Registry) Is(k, target Kind) bool {
	if target == Any {
		return true
	}
	for k != Any {
		if k == target {
			return true
		}
		if !r.valid(k) {
			return false
		}
		k = r.parents[k]
	}
	return false
}

// Subtypes returns target plus every registered descendant of target, in
// registration order. For Any it returns all registered kinds. The result
// is cached until the next Register call; callers must not mutate it.
func (r *Registry) Subtypes(target Kind) []Kind {
	if cached, ok := r.closure[target]; ok {
		return cached
	}
	out := make([]Kind, 0, len(r.names)-1)
	for k := Kind(1); int(k) < len(r.names); k++ {
		if r.Is(k, target) {
			out = append(out, k)
		}
	}
	r.closure[target] = out
	return out
}

// Count returns the number of registered kinds, excluding Any.
func (r *Registry) Count() int {
	return len(r.names) - 1
}

func (r *Registry) valid(k Kind) bool {
	return k >= Any && int(k) < len(r.names)
}
