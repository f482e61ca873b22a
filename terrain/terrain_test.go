package terrain

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/loopdeloop/ecs"
	"github.com/milk9111/loopdeloop/ecs/component"
)

type fakeSource struct {
	entity   ecs.Entity
	grounded bool
	paths    []string
}

func (f *fakeSource) Entity() ecs.Entity { return f.entity }
func (f *fakeSource) Grounded() bool { return f.grounded }
func (f *fakeSource) Surfaces() (ecs.Entity, ecs.Entity) { return 0, 0 }
func (f *fakeSource) PathNames() []string { return f.paths }

func addSegment(t *testing.T, w *ecs.World, name string, parent ecs.Entity, a, b cp.Vector) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	w.SetName(e, name)
	if parent != 0 {
		if err := w.SetParent(e, parent); err != nil {
			t.Fatalf("set parent: %v", err)
		}
	}
	col := component.Collider{Shapes: []component.ColliderShape{{Kind: component.ShapeSegment, Points: []cp.Vector{a, b}}}}
	if err := ecs.Add(w, e, component.ColliderComponent, col); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	return e
}

func syncSpace(t *testing.T, w *ecs.World) *Space {
	t.Helper()
	s := NewSpace()
	if err := s.Sync(w); err != nil {
		t.Fatalf("sync: %v", err)
	}
	return s
}

func TestSideAngleRoundTrip(t *testing.T) {
	for _, side := range []Side{SideRight, SideTop, SideLeft, SideBottom} {
		deg, ok := SideAngle(side)
		if !ok {
			t.Fatalf("SideAngle(%s) reported no angle", side)
		}
		if got := AngleSide(deg); got != side {
			t.Fatalf("AngleSide(SideAngle(%s)) = %s", side, got)
		}
	}
	if _, ok := SideAngle(SideAll); ok {
		t.Fatalf("SideAll should have no angle")
	}
}

func TestAngleSideBucketsAreContiguous(t *testing.T) {
	changes := 0
	prev := AngleSide(0)
	for deg := 0.25; deg < 360; deg += 0.25 {
		side := AngleSide(deg)
		if side == SideAll {
			t.Fatalf("AngleSide(%v) = all", deg)
		}
		if side != prev {
			changes++
			prev = side
		}
	}
	if changes != 3 {
		t.Fatalf("expected 3 bucket changes over [0,360), got %d", changes)
	}

	cases := []struct {
		deg  float64
		want Side
	}{
		{44.9, SideRight},
		{45, SideTop},
		{134.9, SideTop},
		{135, SideLeft},
		{225, SideBottom},
		{315, SideRight},
		{-45, SideRight},
		{-90, SideBottom},
		{720 + 90, SideTop},
	}
	for _, tc := range cases {
		if got := AngleSide(tc.deg); got != tc.want {
			t.Fatalf("AngleSide(%v) = %s, want %s", tc.deg, got, tc.want)
		}
	}
}

func TestParseSide(t *testing.T) {
	for s := SideAll; s <= SideBottom; s++ {
		got, ok := ParseSide(s.String())
		if !ok || got != s {
			t.Fatalf("ParseSide(%q) = %s, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseSide("diagonal"); ok {
		t.Fatalf("unexpected parse of unknown side")
	}
}

func TestBufferKeepsNearestWhenFull(t *testing.T) {
	var b Buffer
	for i := MaxResults + 40; i > 0; i-- {
		b.Insert(Hit{Alpha: float64(i) / 1000})
	}
	if b.Len() != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, b.Len())
	}
	hits := b.Hits()
	for i := 1; i < len(hits); i++ {
		if hits[i-1].Alpha > hits[i].Alpha {
			t.Fatalf("results out of order at %d", i)
		}
	}
	if hits[0].Alpha != 0.001 {
		t.Fatalf("nearest result dropped, first alpha %v", hits[0].Alpha)
	}
	if last := hits[len(hits)-1].Alpha; last != float64(MaxResults)/1000 {
		t.Fatalf("expected furthest kept alpha %v, got %v", float64(MaxResults)/1000, last)
	}

	b.Insert(Hit{Alpha: 0.9})
	if b.Hits()[MaxResults-1].Alpha == 0.9 {
		t.Fatalf("full buffer accepted a result further than all kept ones")
	}

	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("reset left %d results", b.Len())
	}
}

func TestBufferIsStableForEqualDistances(t *testing.T) {
	var b Buffer
	for i := 1; i <= 3; i++ {
		b.Insert(Hit{Alpha: 0.5, Entity: ecs.Entity(i)})
	}
	b.Insert(Hit{Alpha: 0.1, Entity: ecs.Entity(9)})
	want := []ecs.Entity{9, 1, 2, 3}
	for i, h := range b.Hits() {
		if h.Entity != want[i] {
			t.Fatalf("hit %d entity %v, want %v", i, h.Entity, want[i])
		}
	}
}

func TestSelectBest(t *testing.T) {
	shape := cp.NewSegment(cp.NewStaticBody(), cp.Vector{X: -1}, cp.Vector{X: 1}, 0)
	a := Hit{Alpha: 0.1, Entity: ecs.Entity(1), Shape: shape}
	b := Hit{Alpha: 0.2, Entity: ecs.Entity(2), Shape: shape}
	invalid := Hit{Alpha: 0.05}

	rejectA := func(h Hit) bool { return h.Entity != a.Entity }

	cases := []struct {
		name string
		hits []Hit
		sel  Selector
		want ecs.Entity
	}{
		{name: "empty", hits: nil, sel: AcceptAll, want: 0},
		{name: "skips non-hits", hits: []Hit{invalid, a, b}, sel: AcceptAll, want: a.Entity},
		{name: "first accepted", hits: []Hit{a, b}, sel: rejectA, want: b.Entity},
		{name: "none accepted", hits: []Hit{a, b}, sel: func(Hit) bool { return false }, want: 0},
		{name: "nil selector", hits: []Hit{a}, sel: nil, want: a.Entity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectBest(tc.hits, tc.sel)
			if got.Entity != tc.want {
				t.Fatalf("SelectBest entity = %v, want %v", got.Entity, tc.want)
			}
			if tc.want == 0 && got.Valid() {
				t.Fatalf("expected no hit, got %+v", got)
			}
			again := SelectBest(tc.hits, tc.sel)
			if again.Entity != got.Entity || again.Alpha != got.Alpha {
				t.Fatalf("selection not idempotent: %+v then %+v", got, again)
			}
		})
	}
}

func TestCasterHitsFloor(t *testing.T) {
	w := ecs.NewWorld()
	floor := addSegment(t, w, "floor", 0, cp.Vector{X: -100}, cp.Vector{X: 100})
	s := syncSpace(t, w)
	c := NewCaster(s, 0, nil)
	src := &fakeSource{}

	hit := c.Cast(cp.Vector{X: 5, Y: 10}, cp.Vector{X: 5, Y: -10}, SideBottom, src)
	if !hit.Valid() {
		t.Fatalf("expected a hit")
	}
	if hit.Entity != floor {
		t.Fatalf("hit entity %v, want %v", hit.Entity, floor)
	}
	if !hit.Point.Near(cp.Vector{X: 5, Y: 0}, 1e-9) {
		t.Fatalf("hit point %v", hit.Point)
	}
	if hit.NormalAngle() != 90 || hit.NormalSide() != SideTop {
		t.Fatalf("normal %v classified %s at %v", hit.Normal, hit.NormalSide(), hit.NormalAngle())
	}
	if hit.SurfaceAngle() != 0 {
		t.Fatalf("surface angle %v, want 0", hit.SurfaceAngle())
	}
	if hit.Side != SideBottom || hit.Source != src {
		t.Fatalf("hit did not carry cast side/source: %+v", hit)
	}

	miss := c.Cast(cp.Vector{X: 500, Y: 10}, cp.Vector{X: 500, Y: -10}, SideBottom, src)
	if miss.Valid() {
		t.Fatalf("expected a miss beyond the floor, got %+v", miss)
	}
}

func TestCasterDegenerateCast(t *testing.T) {
	w := ecs.NewWorld()
	addSegment(t, w, "floor", 0, cp.Vector{X: -100}, cp.Vector{X: 100})
	c := NewCaster(syncSpace(t, w), 0, nil)

	p := cp.Vector{X: 0, Y: 0}
	if hit := c.Cast(p, p, SideAll, nil); hit.Valid() {
		t.Fatalf("degenerate cast returned %+v", hit)
	}
	var nilCaster *Caster
	if hit := nilCaster.Cast(cp.Vector{}, cp.Vector{Y: 1}, SideAll, nil); hit.Valid() {
		t.Fatalf("nil caster returned a hit")
	}
}

func TestCasterSkipsRejectedCandidates(t *testing.T) {
	w := ecs.NewWorld()
	near := addSegment(t, w, "near", 0, cp.Vector{X: -50, Y: 0}, cp.Vector{X: 50, Y: 0})
	far := addSegment(t, w, "far", 0, cp.Vector{X: -50, Y: -5}, cp.Vector{X: 50, Y: -5})
	c := NewCaster(syncSpace(t, w), 0, func(h Hit) bool { return h.Entity != near })

	hit := c.Cast(cp.Vector{Y: 10}, cp.Vector{Y: -10}, SideBottom, nil)
	if hit.Entity != far {
		t.Fatalf("expected the far segment, got %v", hit.Entity)
	}

	all := c.CastAll(cp.Vector{Y: 10}, cp.Vector{Y: -10}, SideBottom, nil)
	if len(all) != 2 || all[0].Entity != near || all[1].Entity != far {
		t.Fatalf("raw hits not ordered by distance: %+v", all)
	}
}

func TestCasterMask(t *testing.T) {
	w := ecs.NewWorld()
	floor := addSegment(t, w, "floor", 0, cp.Vector{X: -50}, cp.Vector{X: 50})
	if err := ecs.Add(w, floor, component.CollisionLayerComponent, component.CollisionLayer{Category: 4}); err != nil {
		t.Fatalf("add layer: %v", err)
	}
	s := syncSpace(t, w)

	if hit := NewCaster(s, 2, nil).Cast(cp.Vector{Y: 10}, cp.Vector{Y: -10}, SideBottom, nil); hit.Valid() {
		t.Fatalf("masked-out category was hit")
	}
	if hit := NewCaster(s, 4|2, nil).Cast(cp.Vector{Y: 10}, cp.Vector{Y: -10}, SideBottom, nil); hit.Entity != floor {
		t.Fatalf("expected floor hit with matching mask")
	}
}

func TestCollisionModeSelector(t *testing.T) {
	w := ecs.NewWorld()
	pathA := w.CreateEntity()
	w.SetName(pathA, "pathA")
	loop := addSegment(t, w, "loopFloor", pathA, cp.Vector{X: -50}, cp.Vector{X: 50})
	other := addSegment(t, w, "other", 0, cp.Vector{X: -50, Y: -20}, cp.Vector{X: 50, Y: -20})

	sel := CollisionModeSelector(w)
	cases := []struct {
		name   string
		entity ecs.Entity
		source Source
		want   bool
	}{
		{name: "no source", entity: loop, source: nil, want: false},
		{name: "ancestor name allowed", entity: loop, source: &fakeSource{paths: []string{"pathA"}}, want: true},
		{name: "own name allowed", entity: other, source: &fakeSource{paths: []string{"other"}}, want: true},
		{name: "name not allowed", entity: other, source: &fakeSource{paths: []string{"pathA"}}, want: false},
		{name: "no paths", entity: loop, source: &fakeSource{}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Hit{Entity: tc.entity, Source: tc.source}
			if got := sel(h); got != tc.want {
				t.Fatalf("selector = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpaceSyncTracksNodes(t *testing.T) {
	w := ecs.NewWorld()
	parent := w.CreateEntity()
	if err := ecs.Add(w, parent, component.TransformComponent, component.Transform{X: 0, Y: 100}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	child := addSegment(t, w, "ledge", parent, cp.Vector{X: -10}, cp.Vector{X: 10})
	s := syncSpace(t, w)
	c := NewCaster(s, 0, nil)

	if hit := c.Cast(cp.Vector{Y: 110}, cp.Vector{Y: 90}, SideBottom, nil); hit.Entity != child {
		t.Fatalf("child collider not placed under its parent transform")
	}
	col, _ := ecs.Get(w, child, component.ColliderComponent)
	if len(col.Built) != 1 || len(s.Shapes(child)) != 1 {
		t.Fatalf("expected one built shape, got %d/%d", len(col.Built), len(s.Shapes(child)))
	}

	if err := ecs.Add(w, parent, component.TransformComponent, component.Transform{X: 0, Y: 200}); err != nil {
		t.Fatalf("move parent: %v", err)
	}
	if err := s.Sync(w); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if hit := c.Cast(cp.Vector{Y: 110}, cp.Vector{Y: 90}, SideBottom, nil); hit.Valid() {
		t.Fatalf("stale shape left at the old position")
	}
	if hit := c.Cast(cp.Vector{Y: 210}, cp.Vector{Y: 190}, SideBottom, nil); hit.Entity != child {
		t.Fatalf("moved collider not rebuilt")
	}

	w.DestroyEntity(parent)
	if err := s.Sync(w); err != nil {
		t.Fatalf("resync after destroy: %v", err)
	}
	if hit := c.Cast(cp.Vector{Y: 210}, cp.Vector{Y: 190}, SideBottom, nil); hit.Valid() {
		t.Fatalf("destroyed node still hit")
	}
}

func TestSpaceRejectsInvalidShapes(t *testing.T) {
	cases := []struct {
		name  string
		shape component.ColliderShape
	}{
		{name: "segment one point", shape: component.ColliderShape{Kind: component.ShapeSegment, Points: []cp.Vector{{}}}},
		{name: "box without size", shape: component.ColliderShape{Kind: component.ShapeBox}},
		{name: "circle without radius", shape: component.ColliderShape{Kind: component.ShapeCircle}},
		{name: "unknown kind", shape: component.ColliderShape{Kind: "spline"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSpace()
			_, err := s.AddNode(ecs.Entity(1), component.Transform{}, component.Collider{Shapes: []component.ColliderShape{tc.shape}}, component.CollisionLayer{})
			if !errors.Is(err, ErrInvalidShape) {
				t.Fatalf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestArcNormalsFaceTheCaster(t *testing.T) {
	w := ecs.NewWorld()
	loop := w.CreateEntity()
	col := component.Collider{Shapes: []component.ColliderShape{{
		Kind: component.ShapeArc, Radius: 100, StartAngle: 0, EndAngle: 360, Steps: 64,
	}}}
	if err := ecs.Add(w, loop, component.ColliderComponent, col); err != nil {
		t.Fatalf("add collider: %v", err)
	}
	c := NewCaster(syncSpace(t, w), 0, nil)

	hit := c.Cast(cp.Vector{}, cp.Vector{Y: 150}, SideTop, nil)
	if !hit.Valid() {
		t.Fatalf("expected to hit the top of the loop from inside")
	}
	if hit.NormalSide() != SideBottom {
		t.Fatalf("inside of the loop ceiling should face down, got normal %v", hit.Normal)
	}
}
