package spatial

import "github.com/san-kum/physim/internal/vmath"

const (
	DefaultMaxObjects = 4
	DefaultMaxLevels  = 5

	noChild = -1
)

// Item is an object stored in the tree. ID is opaque to the tree.
type Item struct {
	ID     int
	Bounds vmath.AABB
}

type node struct {
	bounds vmath.AABB
	level  int
	items  []int32 // indices into Quadtree.items
	child  int32   // index of the first of four contiguous children, or noChild
}

// Quadtree is rebuilt from scratch every frame; there is no incremental update.
type Quadtree struct {
	maxObjects int
	maxLevels  int
	nodes      []node
	items      []Item
}

// New returns an empty tree covering bounds. Non-positive limits fall back to defaults.
func New(bounds vmath.AABB, maxObjects, maxLevels int) *Quadtree {
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}
	if maxLevels < 0 {
		maxLevels = DefaultMaxLevels
	}
	qt := &Quadtree{maxObjects: maxObjects, maxLevels: maxLevels}
	qt.Reset(bounds)
	return qt
}

// Reset drops every node and item and leaves a single empty root.
func (qt *Quadtree) Reset(bounds vmath.AABB) {
	qt.nodes = qt.nodes[:0]
	qt.items = qt.items[:0]
	qt.nodes = append(qt.nodes, node{bounds: bounds, child: noChild})
}

// Rebuild resets the tree to bounds and inserts every item.
func (qt *Quadtree) Rebuild(bounds vmath.AABB, items []Item) {
	qt.Reset(bounds)
	for _, it := range items {
		qt.Insert(it)
	}
}

func (qt *Quadtree) Insert(it Item) {
	qt.items = append(qt.items, it)
	qt.insert(0, int32(len(qt.items)-1))
}

func (qt *Quadtree) insert(n int32, idx int32) {
	if qt.nodes[n].child != noChild {
		if c := qt.childThatContains(n, qt.items[idx].Bounds); c != noChild {
			qt.insert(c, idx)
			return
		}
	}

	qt.nodes[n].items = append(qt.nodes[n].items, idx)

	if len(qt.nodes[n].items) > qt.maxObjects && qt.nodes[n].level < qt.maxLevels && qt.nodes[n].child == noChild {
		qt.subdivide(n)
		held := qt.nodes[n].items
		kept := held[:0]
		for _, i := range held {
			if c := qt.childThatContains(n, qt.items[i].Bounds); c != noChild {
				qt.insert(c, i)
			} else {
				kept = append(kept, i)
			}
		}
		qt.nodes[n].items = kept
	}
}

func (qt *Quadtree) subdivide(n int32) {
	first := int32(len(qt.nodes))
	level := qt.nodes[n].level + 1
	for _, q := range qt.nodes[n].bounds.Quadrants() {
		qt.nodes = append(qt.nodes, node{bounds: q, level: level, child: noChild})
	}
	qt.nodes[n].child = first
}

func (qt *Quadtree) childThatContains(n int32, b vmath.AABB) int32 {
	first := qt.nodes[n].child
	for c := first; c < first+4; c++ {
		if qt.nodes[c].bounds.Contains(b) {
			return c
		}
	}
	return noChild
}

// Query appends the IDs of items whose bounds strictly overlap area.
func (qt *Quadtree) Query(area vmath.AABB, out []int) []int {
	return qt.query(0, area, out)
}

func (qt *Quadtree) query(n int32, area vmath.AABB, out []int) []int {
	nd := &qt.nodes[n]
	// The root also holds items lying outside its bounds, so it is always scanned.
	if n != 0 && !nd.bounds.Overlaps(area) {
		return out
	}
	for _, i := range nd.items {
		if qt.items[i].Bounds.Overlaps(area) {
			out = append(out, qt.items[i].ID)
		}
	}
	if nd.child == noChild {
		return out
	}
	for c := nd.child; c < nd.child+4; c++ {
		out = qt.query(c, area, out)
	}
	return out
}

// QueryPoint appends the IDs of items whose bounds contain p.
func (qt *Quadtree) QueryPoint(p vmath.Vector2D, out []int) []int {
	return qt.queryPoint(0, p, out)
}

func (qt *Quadtree) queryPoint(n int32, p vmath.Vector2D, out []int) []int {
	nd := &qt.nodes[n]
	if n != 0 && !nd.bounds.ContainsPoint(p) {
		return out
	}
	for _, i := range nd.items {
		if qt.items[i].Bounds.ContainsPoint(p) {
			out = append(out, qt.items[i].ID)
		}
	}
	if nd.child == noChild {
		return out
	}
	for c := nd.child; c < nd.child+4; c++ {
		out = qt.queryPoint(c, p, out)
	}
	return out
}

// Len is the number of items in the tree.
func (qt *Quadtree) Len() int { return len(qt.items) }

// NodeCount is the number of nodes in the arena, including the root.
func (qt *Quadtree) NodeCount() int { return len(qt.nodes) }

// Bounds returns the bounds of node n; node 0 is the root.
func (qt *Quadtree) Bounds(n int) vmath.AABB { return qt.nodes[n].bounds }

// Level returns the depth of node n; the root is level 0.
func (qt *Quadtree) Level(n int) int { return qt.nodes[n].level }

// Children returns the four child node indices of n, or false for a leaf.
func (qt *Quadtree) Children(n int) ([4]int, bool) {
	c := qt.nodes[n].child
	if c == noChild {
		return [4]int{}, false
	}
	return [4]int{int(c), int(c + 1), int(c + 2), int(c + 3)}, true
}

// Items returns the IDs held directly by node n.
func (qt *Quadtree) Items(n int) []int {
	ids := make([]int, len(qt.nodes[n].items))
	for k, i := range qt.nodes[n].items {
		ids[k] = qt.items[i].ID
	}
	return ids
}

// Depth returns the deepest level currently in use.
func (qt *Quadtree) Depth() int {
	d := 0
	for i := range qt.nodes {
		d = max(d, qt.nodes[i].level)
	}
	return d
}
