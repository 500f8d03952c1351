// Package scenario loads the YAML files that declare a world's actor
// kinds and initial spawns.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridfoot/engine/internal/core/kind"
	"github.com/gridfoot/engine/internal/world"
)

// KindDef declares one actor kind. Parent is the name of an earlier kind
// in the file, or empty for a root kind. Script names the Lua behavior
// registered for this kind; empty means inert.
type KindDef struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent"`
	Width  int    `yaml:"width"`  // footprint cells, default 1
	Height int    `yaml:"height"` // footprint cells, default 1
	Script string `yaml:"script"`
}

// SpawnDef places Count actors of a kind at a cell.
type SpawnDef struct {
	Kind     string `yaml:"kind"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Count    int    `yaml:"count"` // default 1
	Rotation int    `yaml:"rotation"`
}

type File struct {
	Kinds  []KindDef  `yaml:"kinds"`
	Spawns []SpawnDef `yaml:"spawns"`
}

// Load reads and validates a scenario file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	for i := range f.Kinds {
		if f.Kinds[i].Name == "" {
			return nil, fmt.Errorf("scenario %s: kind %d has no name", path, i)
		}
	}
	return &f, nil
}

// RegisterKinds registers the file's kinds into the registry, in file
// order. Parents must be declared before their children.
func (f *File) RegisterKinds(reg *kind.Registry) (map[string]kind.Kind, error) {
	kinds := make(map[string]kind.Kind, len(f.Kinds))
	for _, kd := range f.Kinds {
		parent := kind.Any
		if kd.Parent != "" {
			p, ok := reg.Lookup(kd.Parent)
			if !ok {
				return nil, fmt.Errorf("kind %q: parent %q not declared before it", kd.Name, kd.Parent)
			}
			parent = p
		}
		k, err := reg.Register(kd.Name, parent)
		if err != nil {
			return nil, err
		}
		kinds[kd.Name] = k
	}
	return kinds, nil
}

// Populate instantiates the file's spawns into the world. behaviorFor
// resolves a kind's script name to a behavior; it may return nil for
// inert actors.
func (f *File) Populate(w *world.World, behaviorFor func(script string) world.Behavior) (int, error) {
	defs := make(map[string]KindDef, len(f.Kinds))
	for _, kd := range f.Kinds {
		defs[kd.Name] = kd
	}
	total := 0
	for _, sp := range f.Spawns {
		k, ok := w.Registry().Lookup(sp.Kind)
		if !ok {
			return total, fmt.Errorf("spawn: unknown kind %q", sp.Kind)
		}
		kd := defs[sp.Kind]
		count := sp.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			a := world.NewActor(k)
			if kd.Width > 1 || kd.Height > 1 {
				a.SetFootprint(max(kd.Width, 1), max(kd.Height, 1))
			}
			a.SetRotation(sp.Rotation)
			if kd.Script != "" && behaviorFor != nil {
				a.SetBehavior(behaviorFor(kd.Script))
			}
			w.AddObject(a, sp.X, sp.Y)
			total++
		}
	}
	return total, nil
}
