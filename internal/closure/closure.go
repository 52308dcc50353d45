// Package closure implements the CFI-tree/MFI-tree index of spec 4.F:
// a record of already-emitted closed (or maximal) itemsets, queried to
// decide whether the current mining-driver prefix is dominated by one
// already inserted.
package closure

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/patternminer/sigitemsets/internal/arena"
)

// baseNode is one node of a CFI/MFI tree: a chain from root to a node
// represents one previously inserted itemset, items in ascending rank
// order (spec 4.F "Invariants: child ordering within a parent follows
// the local order"). membership is the bitmap of every rank from root
// to this node, letting isSubset test containment with one BitSet
// comparison instead of climbing and comparing the chain rank by rank.
type baseNode struct {
	rank  int32
	level int32
	count int64

	parent      *baseNode
	firstChild  *baseNode
	nextSibling *baseNode
	next        *baseNode // header-table link
	membership  *bitset.BitSet
}

// tree is the shared machinery behind CFITree and MFITree; the two
// wrappers differ only in what Insert records and what IsSubset
// requires of a match (spec 4.F).
type tree struct {
	root   *baseNode
	header []*baseNode // indexed by rank
	arena  *arena.Arena[baseNode]
}

func newTree(numRanks int32, a *arena.Arena[baseNode]) *tree {
	root := a.Alloc()
	root.rank = -1
	root.level = -1
	return &tree{root: root, header: make([]*baseNode, numRanks), arena: a}
}

// insert splices origin (ascending ranks) into the tree, reusing any
// matching prefix and lifting its count to max(existing, count) along
// the way, then forking fresh nodes for whatever does not match (spec
// 4.F Insert: "reuse any matching prefix...fork a new branch where
// the prefix diverges"). originBits, when non-nil, is the caller's own
// bitmap of origin's ranks (spec 4.F's bitmap-based Insert): it is
// cloned directly into the terminal node's membership instead of
// rebuilding the same bitmap one Set call at a time.
func (t *tree) insert(origin []int32, originBits *bitset.BitSet, count int64) {
	cur := t.root
	i := 0
	for i < len(origin) {
		var match *baseNode
		for c := cur.firstChild; c != nil; c = c.nextSibling {
			if c.rank == origin[i] {
				match = c
				break
			}
		}
		if match == nil {
			break
		}
		if count > match.count {
			match.count = count
		}
		cur = match
		i++
	}
	for ; i < len(origin); i++ {
		n := t.arena.Alloc()
		n.rank = origin[i]
		n.level = cur.level + 1
		n.count = count
		n.parent = cur
		n.nextSibling = cur.firstChild
		cur.firstChild = n
		n.next = t.header[n.rank]
		t.header[n.rank] = n
		if i == len(origin)-1 && originBits != nil {
			n.membership = originBits.Clone()
		} else if cur.membership != nil {
			n.membership = cur.membership.Clone()
			n.membership.Set(uint(n.rank))
		} else {
			n.membership = bitset.New(uint(n.rank) + 1)
			n.membership.Set(uint(n.rank))
		}
		cur = n
	}
}

// isSubset reports whether prefix (ascending ranks) is a subset of
// some previously inserted itemset whose recorded count is >= minCount
// (spec 4.F Is-subset: "look up head[rank(prefix_top)]..."). Each
// header-list candidate's full root-to-node membership bitmap is
// compared against prefix's own bitmap in one BitSet.IsSuperSet call,
// in place of climbing parent links and comparing ranks one at a time.
func (t *tree) isSubset(prefix []int32, minCount int64) bool {
	if len(prefix) == 0 {
		return true
	}
	top := prefix[len(prefix)-1]
	if int(top) >= len(t.header) || top < 0 {
		return false
	}
	var prefixBits *bitset.BitSet
	for n := t.header[top]; n != nil; n = n.next {
		if n.count < minCount {
			continue
		}
		if prefixBits == nil {
			prefixBits = bitset.New(uint(top) + 1)
			for _, r := range prefix {
				prefixBits.Set(uint(r))
			}
		}
		if n.membership != nil && n.membership.IsSuperSet(prefixBits) {
			return true
		}
	}
	return false
}
