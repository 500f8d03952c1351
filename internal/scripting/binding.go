package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/gridfoot/engine/internal/core/kind"
	"github.com/gridfoot/engine/internal/world"
)

const actorTypeName = "actor"

// registerActorType installs the metatable for actor userdata. Methods
// mirror the Go actor API; kind filters are kind names, nil means any.
func (e *Engine) registerActorType() {
	mt := e.vm.NewTypeMetatable(actorTypeName)
	methods := map[string]lua.LGFunction{
		"id":                   e.luaID,
		"x":                    e.luaX,
		"y":                    e.luaY,
		"kind":                 e.luaKind,
		"rotation":             e.luaRotation,
		"set_rotation":         e.luaSetRotation,
		"set_location":         e.luaSetLocation,
		"move":                 e.luaMove,
		"turn":                 e.luaTurn,
		"turn_towards":         e.luaTurnTowards,
		"is_at_edge":           e.luaIsAtEdge,
		"objects_at_offset":    e.luaObjectsAtOffset,
		"one_object_at_offset": e.luaOneObjectAtOffset,
		"neighbours":           e.luaNeighbours,
		"objects_in_range":     e.luaObjectsInRange,
		"one_intersecting":     e.luaOneIntersecting,
		"is_touching":          e.luaIsTouching,
		"remove_touching":      e.luaRemoveTouching,
		"remove":               e.luaRemove,
	}
	e.vm.SetField(mt, "__index", e.vm.SetFuncs(e.vm.NewTable(), methods))
}

func (e *Engine) wrapActor(a *world.Actor) *lua.LUserData {
	ud := e.vm.NewUserData()
	ud.Value = a
	e.vm.SetMetatable(ud, e.vm.GetTypeMetatable(actorTypeName))
	return ud
}

func checkActor(L *lua.LState) *world.Actor {
	ud := L.CheckUserData(1)
	if a, ok := ud.Value.(*world.Actor); ok {
		return a
	}
	L.ArgError(1, "actor expected")
	return nil
}

// optKind reads an optional kind-name argument at position n.
func (e *Engine) optKind(L *lua.LState, n int) kind.Kind {
	v := L.Get(n)
	if v == lua.LNil {
		return kind.Any
	}
	name := L.CheckString(n)
	k, ok := e.reg.Lookup(name)
	if !ok {
		L.RaiseError("unknown kind %q", name)
	}
	return k
}

func (e *Engine) pushActors(L *lua.LState, actors []*world.Actor) int {
	t := L.NewTable()
	for i, a := range actors {
		t.RawSetInt(i+1, e.wrapActor(a))
	}
	L.Push(t)
	return 1
}

func (e *Engine) pushActorOrNil(L *lua.LState, a *world.Actor) int {
	if a == nil {
		L.Push(lua.LNil)
	} else {
		L.Push(e.wrapActor(a))
	}
	return 1
}

func (e *Engine) luaID(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).ID()))
	return 1
}

func (e *Engine) luaX(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).X()))
	return 1
}

func (e *Engine) luaY(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).Y()))
	return 1
}

func (e *Engine) luaKind(L *lua.LState) int {
	L.Push(lua.LString(e.reg.Name(checkActor(L).Kind())))
	return 1
}

func (e *Engine) luaRotation(L *lua.LState) int {
	L.Push(lua.LNumber(checkActor(L).Rotation()))
	return 1
}

func (e *Engine) luaSetRotation(L *lua.LState) int {
	checkActor(L).SetRotation(L.CheckInt(2))
	return 0
}

func (e *Engine) luaSetLocation(L *lua.LState) int {
	checkActor(L).SetLocation(L.CheckInt(2), L.CheckInt(3))
	return 0
}

func (e *Engine) luaMove(L *lua.LState) int {
	checkActor(L).Move(L.CheckInt(2))
	return 0
}

func (e *Engine) luaTurn(L *lua.LState) int {
	checkActor(L).Turn(L.CheckInt(2))
	return 0
}

func (e *Engine) luaTurnTowards(L *lua.LState) int {
	checkActor(L).TurnTowards(L.CheckInt(2), L.CheckInt(3))
	return 0
}

func (e *Engine) luaIsAtEdge(L *lua.LState) int {
	L.Push(lua.LBool(checkActor(L).IsAtEdge()))
	return 1
}

func (e *Engine) luaObjectsAtOffset(L *lua.LState) int {
	a := checkActor(L)
	return e.pushActors(L, a.ObjectsAtOffset(L.CheckInt(2), L.CheckInt(3), e.optKind(L, 4)))
}

func (e *Engine) luaOneObjectAtOffset(L *lua.LState) int {
	a := checkActor(L)
	return e.pushActorOrNil(L, a.OneObjectAtOffset(L.CheckInt(2), L.CheckInt(3), e.optKind(L, 4)))
}

func (e *Engine) luaNeighbours(L *lua.LState) int {
	a := checkActor(L)
	out, err := a.Neighbours(L.CheckInt(2), L.CheckBool(3), e.optKind(L, 4))
	if err != nil {
		L.RaiseError("neighbours: %s", err)
	}
	return e.pushActors(L, out)
}

func (e *Engine) luaObjectsInRange(L *lua.LState) int {
	a := checkActor(L)
	out, err := a.ObjectsInRange(L.CheckInt(2), e.optKind(L, 3))
	if err != nil {
		L.RaiseError("objects_in_range: %s", err)
	}
	return e.pushActors(L, out)
}

func (e *Engine) luaOneIntersecting(L *lua.LState) int {
	a := checkActor(L)
	return e.pushActorOrNil(L, a.OneIntersectingObject(e.optKind(L, 2)))
}

func (e *Engine) luaIsTouching(L *lua.LState) int {
	a := checkActor(L)
	L.Push(lua.LBool(a.IsTouching(e.optKind(L, 2))))
	return 1
}

func (e *Engine) luaRemoveTouching(L *lua.LState) int {
	a := checkActor(L)
	a.RemoveTouching(e.optKind(L, 2))
	return 0
}

func (e *Engine) luaRemove(L *lua.LState) int {
	a := checkActor(L)
	if w := a.World(); w != nil {
		w.RemoveObject(a)
	}
	return 0
}
