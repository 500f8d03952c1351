// Package scripting runs actor behaviors written in Lua. Scripts declare
// behaviors with
//
//	behavior("wander", function(actor) ... end)
//
// and the scenario binds each kind's script name to one of them.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gridfoot/engine/internal/core/kind"
	"github.com/gridfoot/engine/internal/world"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only
// (simulation loop).
type Engine struct {
	vm        *lua.LState
	reg       *kind.Registry
	log       *zap.Logger
	behaviors map[string]*lua.LFunction
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir.
// A missing directory is not an error; the engine simply has no behaviors.
func NewEngine(scriptsDir string, reg *kind.Registry, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:        vm,
		reg:       reg,
		log:       log,
		behaviors: make(map[string]*lua.LFunction, 16),
	}
	e.registerActorType()
	vm.SetGlobal("behavior", vm.NewFunction(e.registerBehavior))

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// registerBehavior is the Lua-side behavior(name, fn) entry point.
func (e *Engine) registerBehavior(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if _, dup := e.behaviors[name]; dup {
		L.RaiseError("behavior %q already registered", name)
	}
	e.behaviors[name] = fn
	return 0
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a behavior with the given name is registered.
func (e *Engine) Has(name string) bool {
	_, ok := e.behaviors[name]
	return ok
}

// Behavior returns the named scripted behavior, or nil if no script
// registered it. A script error during a step is logged, not fatal —
// one broken actor must not kill the simulation.
func (e *Engine) Behavior(name string) world.Behavior {
	fn, ok := e.behaviors[name]
	if !ok {
		e.log.Warn("no lua behavior registered", zap.String("name", name))
		return nil
	}
	return world.BehaviorFunc(func(a *world.Actor) {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, e.wrapActor(a)); err != nil {
			e.log.Error("lua behavior error",
				zap.String("behavior", name),
				zap.Uint64("actor_id", a.ID()),
				zap.Error(err),
			)
		}
	})
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
