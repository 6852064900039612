// Package spatial holds the per-frame spatial index and the broad phase built on it.
//
// The [Quadtree] is an index-based tree: nodes live in a flat arena and refer
// to their children by index, so a rebuild is a truncate-and-reinsert with no
// pointer graph to tear down. [Quadtree.CandidatePairs] walks the tree and only
// tests objects that share a node or sit in an ancestor/descendant
// relationship; objects in disjoint subtrees are never compared.
package spatial
