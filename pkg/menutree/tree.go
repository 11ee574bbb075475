package menutree

import (
	"cmp"
	"slices"
)

// Report describes the repairs BuildTree had to make to produce a tree.
type Report struct {
	// Dangling holds IDs of items whose parent is missing from the input.
	// They are placed at the top level.
	Dangling []int64
	// CyclesBroken holds one ID per parent cycle found. That item was promoted
	// to the top level and its ParentID cleared in the output.
	CyclesBroken []int64
}

// Clean reports whether the input needed no repair.
func (r Report) Clean() bool {
	return len(r.Dangling) == 0 && len(r.CyclesBroken) == 0
}

// BuildTree turns a flat item list into an ordered forest.
//
// Items with no parent, or whose parent is not in items, become roots. Every
// level is ordered by ascending SortOrder with input order breaking ties. The
// result holds copies; items itself is left untouched.
func BuildTree(items []Item) []Item {
	roots, _ := BuildTreeWithReport(items)
	return roots
}

// BuildTreeWithReport is BuildTree that also reports dangling parents and
// broken cycles.
func BuildTreeWithReport(items []Item) ([]Item, Report) {
	var rep Report
	if len(items) == 0 {
		return []Item{}, rep
	}

	// ID -> position; the first occurrence of a duplicated ID owns the slot.
	index := make(map[int64]int, len(items))
	for i, it := range items {
		if _, dup := index[it.ID]; !dup {
			index[it.ID] = i
		}
	}

	parent := make([]int, len(items))
	for i, it := range items {
		parent[i] = -1
		if it.ParentID == nil {
			continue
		}
		p, ok := index[*it.ParentID]
		if !ok {
			rep.Dangling = append(rep.Dangling, it.ID)
			continue
		}
		parent[i] = p
	}

	broken := breakCycles(parent)

	children := make([][]int, len(items))
	roots := make([]int, 0)
	for i := range items {
		if broken[i] {
			rep.CyclesBroken = append(rep.CyclesBroken, items[i].ID)
		}
		if parent[i] < 0 {
			roots = append(roots, i)
			continue
		}
		children[parent[i]] = append(children[parent[i]], i)
	}

	bySortOrder := func(a, b int) int {
		return cmp.Compare(items[a].SortOrder, items[b].SortOrder)
	}

	var assemble func(i int) Item
	assemble = func(i int) Item {
		node := items[i]
		if broken[i] {
			node.ParentID = nil
		}
		kids := children[i]
		slices.SortStableFunc(kids, bySortOrder)
		node.Children = make([]Item, 0, len(kids))
		for _, k := range kids {
			node.Children = append(node.Children, assemble(k))
		}
		return node
	}

	slices.SortStableFunc(roots, bySortOrder)
	out := make([]Item, 0, len(roots))
	for _, r := range roots {
		out = append(out, assemble(r))
	}
	return out, rep
}

// breakCycles rewrites parent so that every chain ends at a root. For each
// cycle the member with the lowest input position is detached. The returned
// slice marks detached positions.
func breakCycles(parent []int) []bool {
	const (
		unvisited = iota
		onPath
		rooted
	)

	state := make([]uint8, len(parent))
	broken := make([]bool, len(parent))
	path := make([]int, 0, 8)

	for start := range parent {
		if state[start] == rooted {
			continue
		}

		path = path[:0]
		i := start
		for i >= 0 && state[i] == unvisited {
			state[i] = onPath
			path = append(path, i)
			i = parent[i]
		}

		if i >= 0 && state[i] == onPath {
			cycle := path[slices.Index(path, i):]
			cut := slices.Min(cycle)
			parent[cut] = -1
			broken[cut] = true
		}

		for _, j := range path {
			state[j] = rooted
		}
	}
	return broken
}

// FlattenTree emits the tree in pre-order: every parent immediately before its
// subtree, siblings in their existing order. Children are cleared on the
// emitted copies; ParentID is left as it was.
func FlattenTree(roots []Item) []Item {
	out := make([]Item, 0, Count(roots))
	var walk func(nodes []Item)
	walk = func(nodes []Item) {
		for _, n := range nodes {
			flat := n
			flat.Children = nil
			out = append(out, flat)
			walk(n.Children)
		}
	}
	walk(roots)
	return out
}

// Count returns the number of nodes in the forest.
func Count(roots []Item) int {
	total := 0
	for _, n := range roots {
		total += 1 + Count(n.Children)
	}
	return total
}

// PruneInactive returns a copy of the forest without inactive nodes. An
// inactive node takes its whole subtree with it.
func PruneInactive(roots []Item) []Item {
	out := make([]Item, 0, len(roots))
	for _, n := range roots {
		if !n.IsActive {
			continue
		}
		kept := n
		kept.Children = PruneInactive(n.Children)
		out = append(out, kept)
	}
	return out
}

// Resolve returns a copy of the forest with every URL replaced by its
// resolved navigable URL.
func Resolve(roots []Item) []Item {
	out := make([]Item, 0, len(roots))
	for _, n := range roots {
		r := n
		r.URL = ResolveURL(n)
		r.Children = Resolve(n.Children)
		out = append(out, r)
	}
	return out
}

// WouldCycle reports whether moving item id under newParent would make id its
// own ancestor, given the current parent links in items.
func WouldCycle(items []Item, id int64, newParent *int64) bool {
	if newParent == nil {
		return false
	}

	parents := make(map[int64]*int64, len(items))
	for _, it := range items {
		if _, dup := parents[it.ID]; !dup {
			parents[it.ID] = it.ParentID
		}
	}

	seen := make(map[int64]bool)
	cur := *newParent
	for {
		if cur == id {
			return true
		}
		if seen[cur] {
			// existing loop above newParent that does not pass through id
			return false
		}
		seen[cur] = true

		p, ok := parents[cur]
		if !ok || p == nil {
			return false
		}
		cur = *p
	}
}
