package world

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridfoot/engine/internal/core/event"
	"github.com/gridfoot/engine/internal/core/kind"
)

func newTestWorld(t *testing.T, wrap bool) (*World, *kind.Registry) {
	t.Helper()
	reg := kind.NewRegistry()
	return New(reg, 10, 10, 32, wrap, nil), reg
}

func actorIDs(actors []*Actor) []uint64 {
	out := make([]uint64, 0, len(actors))
	for _, a := range actors {
		out = append(out, a.ID())
	}
	return out
}

func TestAddObject(t *testing.T) {
	w, _ := newTestWorld(t, false)
	a := NewActor(kind.Any)
	w.AddObject(a, 2, 2)

	require.Same(t, w, a.World())
	require.Equal(t, 2, a.X())
	require.Equal(t, 2, a.Y())
	require.Equal(t, 1, w.NumberOfObjects())
	require.Equal(t, []uint64{a.ID()}, actorIDs(w.ObjectsAt(2, 2, kind.Any)))

	t.Run("re-add in same world moves", func(t *testing.T) {
		w.AddObject(a, 4, 4)
		require.Equal(t, 1, w.NumberOfObjects())
		require.Empty(t, w.ObjectsAt(2, 2, kind.Any))
		require.Equal(t, []uint64{a.ID()}, actorIDs(w.ObjectsAt(4, 4, kind.Any)))
	})

	t.Run("add to another world removes from the first", func(t *testing.T) {
		other, _ := newTestWorld(t, false)
		other.AddObject(a, 1, 1)
		require.Same(t, other, a.World())
		require.Zero(t, w.NumberOfObjects())
		require.Equal(t, 1, other.NumberOfObjects())
	})
}

func TestRemoveObject(t *testing.T) {
	w, _ := newTestWorld(t, false)
	a := NewActor(kind.Any)
	b := NewActor(kind.Any)
	w.AddObject(a, 1, 1)
	w.AddObject(b, 2, 2)

	w.RemoveObject(a)
	require.Nil(t, a.World())
	require.Empty(t, w.ObjectsAt(1, 1, kind.Any))
	require.Equal(t, 1, w.NumberOfObjects())

	// Removing again, or removing a foreign actor, is a no-op.
	w.RemoveObject(a)
	w.RemoveObject(NewActor(kind.Any))
	require.Equal(t, 1, w.NumberOfObjects())

	w.RemoveObjects([]*Actor{b})
	require.Zero(t, w.NumberOfObjects())
}

func TestLocationPolicy(t *testing.T) {
	t.Run("bounded world clamps", func(t *testing.T) {
		w, _ := newTestWorld(t, false)
		a := NewActor(kind.Any)
		w.AddObject(a, 5, 5)

		a.SetLocation(-5, 99)
		require.Equal(t, 0, a.X())
		require.Equal(t, 9, a.Y())
		require.Equal(t, []uint64{a.ID()}, actorIDs(w.ObjectsAt(0, 9, kind.Any)))
	})

	t.Run("wrapped world folds", func(t *testing.T) {
		w, _ := newTestWorld(t, true)
		a := NewActor(kind.Any)
		w.AddObject(a, 5, 5)

		a.SetLocation(-1, 12)
		require.Equal(t, 9, a.X())
		require.Equal(t, 2, a.Y())

		a.SetLocation(-11, 20)
		require.Equal(t, 9, a.X())
		require.Equal(t, 0, a.Y())
	})

	t.Run("placement is confined too", func(t *testing.T) {
		w, _ := newTestWorld(t, false)
		a := NewActor(kind.Any)
		w.AddObject(a, 42, -3)
		require.Equal(t, 9, a.X())
		require.Equal(t, 0, a.Y())
	})
}

func TestRotationAndMove(t *testing.T) {
	w, _ := newTestWorld(t, false)
	a := NewActor(kind.Any)
	w.AddObject(a, 5, 5)

	t.Run("rotation normalizes", func(t *testing.T) {
		a.SetRotation(370)
		require.Equal(t, 10, a.Rotation())
		a.SetRotation(-90)
		require.Equal(t, 270, a.Rotation())
		a.Turn(180)
		require.Equal(t, 90, a.Rotation())
	})

	t.Run("move follows rotation", func(t *testing.T) {
		a.SetLocation(5, 5)
		a.SetRotation(0)
		a.Move(2)
		require.Equal(t, 7, a.X())
		require.Equal(t, 5, a.Y())

		a.SetRotation(90)
		a.Move(1)
		require.Equal(t, 7, a.X())
		require.Equal(t, 6, a.Y())

		a.SetRotation(180)
		a.Move(3)
		require.Equal(t, 4, a.X())
		require.Equal(t, 6, a.Y())
	})

	t.Run("turn towards", func(t *testing.T) {
		a.SetLocation(5, 5)
		a.TurnTowards(9, 5)
		require.Equal(t, 0, a.Rotation())
		a.TurnTowards(5, 9)
		require.Equal(t, 90, a.Rotation())
		a.TurnTowards(1, 5)
		require.Equal(t, 180, a.Rotation())
		a.TurnTowards(5, 1)
		require.Equal(t, 270, a.Rotation())
	})
}

func TestIsAtEdge(t *testing.T) {
	w, _ := newTestWorld(t, false)
	a := NewActor(kind.Any)
	w.AddObject(a, 5, 5)
	require.False(t, a.IsAtEdge())

	a.SetLocation(0, 5)
	require.True(t, a.IsAtEdge())
	a.SetLocation(5, 9)
	require.True(t, a.IsAtEdge())

	t.Run("never at edge when wrapped", func(t *testing.T) {
		ww, _ := newTestWorld(t, true)
		b := NewActor(kind.Any)
		ww.AddObject(b, 0, 0)
		require.False(t, b.IsAtEdge())
	})
}

func TestTouching(t *testing.T) {
	w, reg := newTestWorld(t, false)
	grass, err := reg.Register("grass", kind.Any)
	require.NoError(t, err)

	a := NewActor(kind.Any)
	g := NewActor(grass)
	w.AddObject(a, 3, 3)
	w.AddObject(g, 4, 3)

	require.False(t, a.IsTouching(grass), "adjacent cells do not touch")

	g.SetFootprint(2, 2)
	require.True(t, a.IsTouching(grass))
	require.True(t, a.IsTouching(kind.Any))

	a.RemoveTouching(grass)
	require.Nil(t, g.World())
	require.False(t, a.IsTouching(grass))
	require.Equal(t, 1, w.NumberOfObjects())
}

func TestActorQueryHelpers(t *testing.T) {
	w, _ := newTestWorld(t, false)
	a := NewActor(kind.Any)
	east := NewActor(kind.Any)
	north := NewActor(kind.Any)
	w.AddObject(a, 5, 5)
	w.AddObject(east, 6, 5)
	w.AddObject(north, 5, 4)

	require.Equal(t, []uint64{east.ID()}, actorIDs(a.ObjectsAtOffset(1, 0, kind.Any)))
	require.Equal(t, east.ID(), a.OneObjectAtOffset(1, 0, kind.Any).ID())
	require.Nil(t, a.OneObjectAtOffset(-1, 0, kind.Any))

	got, err := a.Neighbours(1, false, kind.Any)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{east.ID(), north.ID()}, actorIDs(got))

	t.Run("range excludes self", func(t *testing.T) {
		got, err := a.ObjectsInRange(3, kind.Any)
		require.NoError(t, err)
		require.NotContains(t, actorIDs(got), a.ID())
		require.ElementsMatch(t, []uint64{east.ID(), north.ID()}, actorIDs(got))
	})

	t.Run("detached actor queries are empty", func(t *testing.T) {
		loose := NewActor(kind.Any)
		require.Empty(t, loose.ObjectsAtOffset(0, 0, kind.Any))
		got, err := loose.Neighbours(1, true, kind.Any)
		require.NoError(t, err)
		require.Empty(t, got)
		require.False(t, loose.IsTouching(kind.Any))
	})
}

func TestStepRunsBehaviors(t *testing.T) {
	w, _ := newTestWorld(t, false)
	var acted int
	a := NewActor(kind.Any)
	a.SetBehavior(BehaviorFunc(func(self *Actor) {
		acted++
		self.SetLocation(self.X()+1, self.Y())
	}))
	w.AddObject(a, 0, 0)

	w.StepN(3)
	require.Equal(t, 3, acted)
	require.Equal(t, 3, a.X())
	require.Equal(t, uint64(3), w.StepCount())
}

func TestMidStepRemovalSkipsVictim(t *testing.T) {
	w, _ := newTestWorld(t, false)
	victim := NewActor(kind.Any)
	victimActed := false
	victim.SetBehavior(BehaviorFunc(func(*Actor) { victimActed = true }))

	hunter := NewActor(kind.Any)
	hunter.SetBehavior(BehaviorFunc(func(*Actor) { w.RemoveObject(victim) }))

	// Hunter acts first; the victim is gone before its turn.
	w.AddObject(hunter, 0, 0)
	w.AddObject(victim, 5, 5)

	w.Step()
	require.False(t, victimActed)
	require.Nil(t, victim.World())
}

func TestMidStepMutationVisibility(t *testing.T) {
	w, _ := newTestWorld(t, false)
	mover := NewActor(kind.Any)
	mover.SetBehavior(BehaviorFunc(func(self *Actor) { self.SetLocation(3, 3) }))

	var seen []uint64
	watcher := NewActor(kind.Any)
	watcher.SetBehavior(BehaviorFunc(func(*Actor) {
		seen = actorIDs(w.ObjectsAt(3, 3, kind.Any))
	}))

	w.AddObject(mover, 0, 0)
	w.AddObject(watcher, 9, 9)

	// The watcher acts after the mover within the same step and must
	// already see the move.
	w.Step()
	require.Equal(t, []uint64{mover.ID()}, seen)
}

func TestSetActOrder(t *testing.T) {
	w, reg := newTestWorld(t, false)
	creature, _ := reg.Register("creature", kind.Any)
	wolf, _ := reg.Register("wolf", creature)
	rock, _ := reg.Register("rock", kind.Any)

	var order []string
	record := func(name string) Behavior {
		return BehaviorFunc(func(*Actor) { order = append(order, name) })
	}

	r := NewActor(rock)
	r.SetBehavior(record("rock"))
	c := NewActor(creature)
	c.SetBehavior(record("creature"))
	wf := NewActor(wolf)
	wf.SetBehavior(record("wolf"))

	w.AddObject(r, 0, 0)
	w.AddObject(c, 1, 1)
	w.AddObject(wf, 2, 2)

	t.Run("default is insertion order", func(t *testing.T) {
		order = nil
		w.Step()
		require.Equal(t, []string{"rock", "creature", "wolf"}, order)
	})

	t.Run("listed kinds act first, subtypes included", func(t *testing.T) {
		w.SetActOrder(creature)
		order = nil
		w.Step()
		require.Equal(t, []string{"creature", "wolf", "rock"}, order)
	})

	t.Run("multiple listed kinds keep list order", func(t *testing.T) {
		w.SetActOrder(rock, wolf)
		order = nil
		w.Step()
		require.Equal(t, []string{"rock", "wolf", "creature"}, order)
	})
}

func TestEventsDeliveredNextStep(t *testing.T) {
	w, _ := newTestWorld(t, false)

	var added []uint64
	var moved []event.ActorMoved
	var removed []uint64
	event.Subscribe(w.Bus(), func(ev event.ActorAdded) { added = append(added, ev.ActorID) })
	event.Subscribe(w.Bus(), func(ev event.ActorMoved) { moved = append(moved, ev) })
	event.Subscribe(w.Bus(), func(ev event.ActorRemoved) { removed = append(removed, ev.ActorID) })

	a := NewActor(kind.Any)
	a.SetBehavior(BehaviorFunc(func(self *Actor) {
		if w.StepCount() == 1 {
			self.SetLocation(4, 2)
		}
	}))
	w.AddObject(a, 2, 2)
	require.Empty(t, added, "add event waits for the step boundary")

	w.Step()
	require.Equal(t, []uint64{a.ID()}, added)
	require.Empty(t, moved, "move happened during this step")

	w.Step()
	require.Len(t, moved, 1)
	require.Equal(t, event.ActorMoved{
		ActorID: a.ID(), Kind: a.Kind(),
		FromX: 2, FromY: 2, ToX: 4, ToY: 2,
	}, moved[0])

	w.RemoveObject(a)
	require.Empty(t, removed)
	w.Step()
	require.Equal(t, []uint64{a.ID()}, removed)
}

func TestFacadeQueries(t *testing.T) {
	w, reg := newTestWorld(t, false)
	creature, _ := reg.Register("creature", kind.Any)

	a := NewActor(creature)
	b := NewActor(kind.Any)
	c := NewActor(creature)
	w.AddObject(a, 1, 0)
	w.AddObject(b, 3, 0)
	w.AddObject(c, 5, 0)

	got := w.ObjectsInDirection(0, 0, 0, 6, kind.Any)
	require.Equal(t, []uint64{a.ID(), b.ID(), c.ID()}, actorIDs(got))

	require.ElementsMatch(t, []uint64{a.ID(), c.ID()}, actorIDs(w.Objects(creature)))
	require.Len(t, w.ActorList(), 3)

	inRange, err := w.ObjectsInRange(0, 0, 3, kind.Any)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint64{a.ID(), b.ID()}, actorIDs(inRange))

	_, err = w.ObjectsInRange(0, 0, -1, kind.Any)
	require.Error(t, err)
}
