package spatial

// Pair is an unordered candidate pair, normalised so that A < B.
type Pair struct {
	A, B int
}

func MakePair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// CandidatePairs appends every pair of items whose bounds strictly overlap.
//
// Each item is tested against the items of its own node and of every
// ancestor node, which covers all ancestor/descendant combinations exactly
// once. Items in sibling subtrees lie in disjoint quadrants and are skipped.
func (qt *Quadtree) CandidatePairs(out []Pair) []Pair {
	if len(qt.nodes) == 0 {
		return out
	}
	stack := make([]int32, 0, len(qt.items))
	return qt.collect(0, stack, out)
}

func (qt *Quadtree) collect(n int32, ancestors []int32, out []Pair) []Pair {
	held := qt.nodes[n].items
	for k, i := range held {
		bi := qt.items[i].Bounds
		for _, j := range ancestors {
			if bi.Overlaps(qt.items[j].Bounds) {
				out = qt.appendPair(out, i, j)
			}
		}
		for _, j := range held[k+1:] {
			if bi.Overlaps(qt.items[j].Bounds) {
				out = qt.appendPair(out, i, j)
			}
		}
	}

	c := qt.nodes[n].child
	if c == noChild {
		return out
	}
	ancestors = append(ancestors, held...)
	for k := c; k < c+4; k++ {
		out = qt.collect(k, ancestors, out)
	}
	return out
}

func (qt *Quadtree) appendPair(out []Pair, i, j int32) []Pair {
	a, b := qt.items[i].ID, qt.items[j].ID
	if a == b {
		return out
	}
	return append(out, MakePair(a, b))
}

// ExhaustivePairs is the O(n²) reference scan the indexed broad phase must match.
func ExhaustivePairs(items []Item, out []Pair) []Pair {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].ID != items[j].ID && items[i].Bounds.Overlaps(items[j].Bounds) {
				out = append(out, MakePair(items[i].ID, items[j].ID))
			}
		}
	}
	return out
}
