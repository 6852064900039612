package spatial

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/san-kum/physim/internal/vmath"
)

var world = vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(100, 100))

func box(id int, x, y, size float64) Item {
	return Item{ID: id, Bounds: vmath.AABBFromCenter(vmath.Vec(x, y), vmath.Vec(size/2, size/2))}
}

func TestQuadtree_EmptyRebuild(t *testing.T) {
	qt := New(world, 4, 5)
	qt.Rebuild(world, nil)

	if qt.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", qt.NodeCount())
	}
	if _, ok := qt.Children(0); ok {
		t.Error("empty root should be a leaf")
	}
	if got := qt.CandidatePairs(nil); len(got) != 0 {
		t.Errorf("CandidatePairs on empty tree = %v, want none", got)
	}
}

func TestQuadtree_SplitsWhenCapacityExceeded(t *testing.T) {
	qt := New(world, 4, 5)
	for i := 0; i < 4; i++ {
		qt.Insert(box(i, 10+float64(i)*20, 10, 2))
	}
	if _, ok := qt.Children(0); ok {
		t.Fatal("root split before exceeding capacity")
	}

	qt.Insert(box(4, 90, 90, 2))

	children, ok := qt.Children(0)
	if !ok {
		t.Fatal("root did not split after exceeding capacity")
	}
	quads := world.Quadrants()
	for k, c := range children {
		if qt.Bounds(c) != quads[k] {
			t.Errorf("child %d bounds = %v, want %v", k, qt.Bounds(c), quads[k])
		}
		if qt.Level(c) != 1 {
			t.Errorf("child %d level = %d, want 1", k, qt.Level(c))
		}
	}
}

func TestQuadtree_StraddlingStaysAtParent(t *testing.T) {
	qt := New(world, 1, 5)
	qt.Insert(box(0, 10, 10, 2))
	qt.Insert(box(1, 50, 50, 4)) // straddles the center
	qt.Insert(box(2, 90, 90, 2))

	root := qt.Items(0)
	if len(root) != 1 || root[0] != 1 {
		t.Errorf("root items = %v, want [1]", root)
	}
}

func TestQuadtree_RespectsMaxLevels(t *testing.T) {
	qt := New(world, 1, 2)
	for i := 0; i < 20; i++ {
		qt.Insert(box(i, 1+float64(i)*0.1, 1, 0.05))
	}
	if d := qt.Depth(); d > 2 {
		t.Errorf("Depth = %d, want <= 2", d)
	}
}

func TestQuadtree_EachItemStoredOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	qt := New(world, 4, 5)
	items := randomItems(rng, 200)
	qt.Rebuild(world, items)

	seen := make(map[int]int)
	for n := 0; n < qt.NodeCount(); n++ {
		for _, id := range qt.Items(n) {
			seen[id]++
		}
	}
	if len(seen) != len(items) {
		t.Fatalf("stored %d distinct items, want %d", len(seen), len(items))
	}
	for id, c := range seen {
		if c != 1 {
			t.Errorf("item %d stored %d times", id, c)
		}
	}
}

func TestQuadtree_OutOfBoundsItemsKeptAtRoot(t *testing.T) {
	qt := New(world, 1, 5)
	qt.Insert(box(0, 10, 10, 2))
	qt.Insert(box(1, 90, 90, 2))
	qt.Insert(box(2, -50, -50, 2))
	qt.Insert(box(3, -50.5, -50, 2))

	pairs := qt.CandidatePairs(nil)
	if len(pairs) != 1 || pairs[0] != (Pair{A: 2, B: 3}) {
		t.Errorf("CandidatePairs = %v, want [{2 3}]", pairs)
	}
}

func TestQuadtree_Query(t *testing.T) {
	qt := New(world, 2, 5)
	qt.Rebuild(world, []Item{
		box(0, 10, 10, 2),
		box(1, 12, 10, 2),
		box(2, 80, 80, 2),
		box(3, 20, 80, 2),
	})

	got := qt.Query(vmath.NewAABB(vmath.Vec(0, 0), vmath.Vec(15, 15)), nil)
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Query = %v, want [0 1]", got)
	}

	got = qt.QueryPoint(vmath.Vec(80, 80), nil)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("QueryPoint = %v, want [2]", got)
	}
}

func TestBroadPhase_MatchesExhaustiveScan(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		items := randomItems(rng, 150)

		qt := New(world, 4, 5)
		qt.Rebuild(world, items)

		got := sortedPairs(qt.CandidatePairs(nil))
		want := sortedPairs(ExhaustivePairs(items, nil))

		if len(got) != len(want) {
			t.Fatalf("seed %d: got %d pairs, want %d", seed, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("seed %d: pair %d = %v, want %v", seed, i, got[i], want[i])
			}
		}
	}
}

func TestBroadPhase_NoDuplicatesOrSelfPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := randomItems(rng, 100)
	qt := New(world, 3, 6)
	qt.Rebuild(world, items)

	seen := make(map[Pair]bool)
	for _, p := range qt.CandidatePairs(nil) {
		if p.A == p.B {
			t.Errorf("self pair %v", p)
		}
		if p.A > p.B {
			t.Errorf("pair %v not normalised", p)
		}
		if seen[p] {
			t.Errorf("duplicate pair %v", p)
		}
		seen[p] = true
	}
}

func randomItems(rng *rand.Rand, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		size := 1 + rng.Float64()*8
		items[i] = box(i, rng.Float64()*110-5, rng.Float64()*110-5, size)
	}
	return items
}

func sortedPairs(p []Pair) []Pair {
	sort.Slice(p, func(i, j int) bool {
		if p[i].A != p[j].A {
			return p[i].A < p[j].A
		}
		return p[i].B < p[j].B
	})
	return p
}
