package fptree

import (
	"sort"

	"github.com/patternminer/sigitemsets/internal/arena"
)

// basePath is one root-to-node path recovered from a conditional
// pattern base, in ascending-rank (root-to-child) order, still
// numbered in the parent tree's ranks.
type basePath struct {
	ranks          []int32
	count0, count1 int64
}

// PatternBase is the conditional pattern base for one item (spec
// 4.E "Conditional pattern base for item i"): every root-to-parent
// path of the item's header-list nodes, plus the subset of ancestor
// items whose accumulated support still clears theta. LocalToParent
// maps a local rank in the projected tree back to its rank in the
// tree the base was built from, letting the mining driver compose the
// chain back to original item IDs one recursion level at a time.
type PatternBase struct {
	paths         []basePath
	localOfParent map[int32]int32 // parent rank -> local rank, retained items only
	LocalToParent []int32         // local rank -> parent rank
}

// NumItems returns m, the number of items retained in the base --
// spec 4.G step 3/4 branches on whether this is zero.
func (b *PatternBase) NumItems() int { return len(b.LocalToParent) }

// ConditionalBase builds the conditional pattern base for item rank
// (spec 4.E): walk the header chain for rank, walk each node's
// ancestors accumulating Count0/Count1 per ancestor item, and keep
// the ancestors whose total support clears theta.
func (t *Tree) ConditionalBase(rank int32, theta int) *PatternBase {
	var paths []basePath

	var retained map[int32]int64 // ancestor rank -> total support, only used without a precomputed matrix
	if t.Adjacency == nil {
		retained = make(map[int32]int64)
	}

	for n := t.Header.Head[rank]; n != nil; n = n.Next {
		if n.Count0+n.Count1 == 0 {
			continue
		}
		var reversed []int32 // nearest-parent first
		for p := n.Parent; p != nil && p.ItemRank >= 0; p = p.Parent {
			reversed = append(reversed, p.ItemRank)
			if retained != nil {
				retained[p.ItemRank] += n.Count0 + n.Count1
			}
		}
		if len(reversed) == 0 {
			continue
		}
		ranks := make([]int32, len(reversed))
		for i, r := range reversed {
			ranks[len(reversed)-1-i] = r
		}
		paths = append(paths, basePath{ranks: ranks, count0: n.Count0, count1: n.Count1})
	}

	type kept struct {
		rank  int32
		count int64
	}
	var items []kept
	if t.Adjacency != nil {
		// read the precomputed co-occurrence row directly, instead of
		// re-deriving it from the parent walk above (spec 4.E: "if a
		// precomputed adjacency row is available, read it directly
		// instead of walking").
		for _, anc := range t.Adjacency.RetainedAncestors(rank, theta) {
			c0, c1, _ := t.Adjacency.Supp(anc, rank)
			items = append(items, kept{anc, c0 + c1})
		}
	} else {
		items = make([]kept, 0, len(retained))
		for r, total := range retained {
			if total >= int64(theta) {
				items = append(items, kept{r, total})
			}
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].rank < items[j].rank
	})

	b := &PatternBase{
		paths:         paths,
		localOfParent: make(map[int32]int32, len(items)),
		LocalToParent: make([]int32, len(items)),
	}
	for i, it := range items {
		b.localOfParent[it.rank] = int32(i)
		b.LocalToParent[i] = it.rank
	}
	return b
}

// projectRanks maps a path's parent-numbered ranks through the base's
// retained item set, dropping anything pruned, and re-sorts ascending
// by local rank (the projected tree's own frequency order).
func (b *PatternBase) projectRanks(parentRanks []int32) []int32 {
	out := make([]int32, 0, len(parentRanks))
	for _, r := range parentRanks {
		if lr, ok := b.localOfParent[r]; ok {
			out = append(out, lr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Project builds the conditional FP-tree for a pattern base (spec 4.E
// "Projected tree construction"): a fresh tree, allocated from its own
// arena sized by hint, with every retained path reinserted under the
// base's local item order.
func Project(base *PatternBase, hint arena.Hint) *Tree {
	numItems := int32(len(base.LocalToParent))
	a := arena.New[Node](hint)
	t := NewTree(numItems, a)
	for _, p := range base.paths {
		ranks := base.projectRanks(p.ranks)
		if len(ranks) == 0 {
			continue
		}
		t.insertCounts(ranks, p.count0, p.count1)
	}
	t.Level25 = t.calLevel25()
	return t
}
