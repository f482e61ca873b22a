package ecs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/milk9111/loopdeloop/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false for a dead entity")
				}
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	w.DestroyEntity(a)
	b := w.CreateEntity()
	if a.id() != b.id() {
		t.Fatalf("expected slot reuse, got %v and %v", a, b)
	}
	if a == b || w.IsAlive(a) {
		t.Fatalf("stale handle %v must not alias %v", a, b)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, ints, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, strs, "a"); err != nil {
					return err
				}
				return Add(w, e2, strs, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, strs) || !Has(w, e2, strs) {
					t.Fatalf("expected both entities to have string component")
				}
				if got := w.Query(ints.Kind(), strs.Kind()); len(got) != 1 || got[0] != e1 {
					t.Fatalf("expected only e1 to match both kinds, got %v", got)
				}
			},
		},
		{
			name:  "remove_int",
			setup: func() error { return nil },
			check: func(t *testing.T) {
				if !Remove(w, e1, ints) {
					t.Fatalf("expected remove to succeed")
				}
				if Has(w, e1, ints) {
					t.Fatalf("component should be gone")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}

	dead := w.CreateEntity()
	w.DestroyEntity(dead)
	if err := Add(w, dead, ints, 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	if err := Add(w, e1, h, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	seen := map[Entity]int{}
	ForEach(w, h, func(e Entity, v int) { seen[e] = v })

	if seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected ForEach result %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestHierarchy(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntity()
	mid := w.CreateEntity()
	leaf := w.CreateEntity()
	w.SetName(root, "Terrain")
	w.SetName(mid, "Loop")
	w.SetName(leaf, "Segment")

	if err := w.SetParent(mid, root); err != nil {
		t.Fatal(err)
	}
	if err := w.SetParent(leaf, mid); err != nil {
		t.Fatal(err)
	}

	t.Run("parent_has_name", func(t *testing.T) {
		cases := []struct {
			e    Entity
			name string
			want bool
		}{
			{leaf, "Segment", true},
			{leaf, "Loop", true},
			{leaf, "Terrain", true},
			{mid, "Segment", false},
			{root, "Loop", false},
			{leaf, "", false},
		}
		for _, c := range cases {
			if got := w.ParentHasName(c.e, c.name); got != c.want {
				t.Fatalf("ParentHasName(%s, %q) = %v, want %v", w.Name(c.e), c.name, got, c.want)
			}
		}
	})

	t.Run("ancestors_nearest_first", func(t *testing.T) {
		var got []Entity
		w.EachAncestor(leaf, func(a Entity) bool {
			got = append(got, a)
			return true
		})
		if len(got) != 2 || got[0] != mid || got[1] != root {
			t.Fatalf("unexpected ancestor order %v", got)
		}
	})

	t.Run("cycle_rejected", func(t *testing.T) {
		if err := w.SetParent(root, leaf); !errors.Is(err, ErrHierarchyCycle) {
			t.Fatalf("expected ErrHierarchyCycle, got %v", err)
		}
	})

	t.Run("destroy_takes_descendants", func(t *testing.T) {
		w.DestroyEntity(mid)
		if w.IsAlive(leaf) {
			t.Fatalf("leaf should be destroyed with its parent")
		}
		if !w.IsAlive(root) {
			t.Fatalf("root should survive")
		}
	})
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(w *World) {
	*s.calls = append(*s.calls, s.name)
}

func TestUpdateRunsSystemsInOrder(t *testing.T) {
	w := NewWorld()
	var calls []string
	w.AddSystem(countingSystem{calls: &calls, name: "a"})
	w.AddSystem(countingSystem{calls: &calls, name: "b"})
	w.AddSystem(nil)

	w.Update()
	w.Update()

	if len(calls) != 4 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("unexpected system order %v", calls)
	}
	if w.Tick() != 2 {
		t.Fatalf("expected tick 2, got %d", w.Tick())
	}
}

func TestSchedulerGroupsSystems(t *testing.T) {
	w := NewWorld()
	var calls []string
	group := NewScheduler(countingSystem{calls: &calls, name: "a"}, nil)
	group.Add(countingSystem{calls: &calls, name: "b"})
	group.Add(nil)
	w.AddSystem(group)
	w.AddSystem(SystemFunc(func(w *World) {
		calls = append(calls, "func")
	}))

	w.Update()

	if group.Len() != 2 || len(group.Systems()) != 2 {
		t.Fatalf("nil systems must be skipped, got %d", group.Len())
	}
	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "func" {
		t.Fatalf("unexpected system order %v", calls)
	}
}

func TestSparseSetRemoveKeepsOthers(t *testing.T) {
	var s SparseSet
	for id := 1; id <= 4; id++ {
		s.Set(id, id*10)
	}
	if !s.Remove(2) || s.Remove(2) {
		t.Fatalf("remove should succeed exactly once")
	}
	if s.Len() != 3 || s.Has(2) {
		t.Fatalf("len %d, has 2 %v", s.Len(), s.Has(2))
	}
	for _, id := range []int{1, 3, 4} {
		if got := s.Get(id); got != id*10 {
			t.Fatalf("Get(%d) = %v, want %d", id, got, id*10)
		}
	}
	s.Set(9, 90)
	if s.Get(9) != 90 || s.Has(8) {
		t.Fatalf("growing the index broke lookups")
	}
}

func TestEntityString(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.DestroyEntity(e)
	again := w.CreateEntity()
	if again == e {
		t.Fatalf("recycled slot reused the old handle")
	}
	if got, want := again.String(), fmt.Sprintf("%d:%d", again.id(), again.generation()); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if Entity(0).Valid() {
		t.Fatalf("zero entity must not be valid")
	}
}
