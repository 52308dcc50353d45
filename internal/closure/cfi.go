package closure

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/patternminer/sigitemsets/internal/arena"
)

// CFITree indexes already-emitted closed frequent itemsets. A
// candidate prefix is dominated when some inserted set with support
// at least the candidate's own support already contains it --
// inserting a superset with equal or higher support makes any of its
// subsets redundant to emit.
type CFITree struct {
	t *tree
}

// NewCFITree allocates a CFI index over numRanks distinct item ranks.
func NewCFITree(numRanks int32, hint arena.Hint) *CFITree {
	return &CFITree{t: newTree(numRanks, arena.New[baseNode](hint))}
}

// Insert records an emitted closed itemset (ascending ranks, with an
// optional precomputed bitmap of the same ranks) with its support.
// origin, when supplied, becomes the terminal node's membership bitmap
// directly (spec 4.F's bitmap-based Insert), letting IsSubset answer
// later queries with one BitSet comparison instead of a parent climb.
func (c *CFITree) Insert(origin *bitset.BitSet, ranks []int32, support int64) {
	c.t.insert(ranks, origin, support)
}

// IsSubset reports whether prefix (its own support is currentSupport)
// is dominated by an already-inserted closed itemset: dominated means
// contained in a stored set whose recorded support is >= currentSupport.
func (c *CFITree) IsSubset(prefix []int32, currentSupport int64) bool {
	return c.t.isSubset(prefix, currentSupport)
}

// MFITree indexes already-emitted maximal frequent itemsets. Unlike
// CFI, support is irrelevant to domination: any inserted maximal
// itemset dominates every one of its subsets regardless of count.
type MFITree struct {
	t *tree
}

// NewMFITree allocates an MFI index over numRanks distinct item ranks.
func NewMFITree(numRanks int32, hint arena.Hint) *MFITree {
	return &MFITree{t: newTree(numRanks, arena.New[baseNode](hint))}
}

// Insert records an emitted maximal itemset; count is carried only so
// the shared tree machinery has something to lift, IsSubset ignores
// it. origin, when supplied, seeds the terminal node's membership
// bitmap directly, the same fast path CFITree.Insert uses.
func (m *MFITree) Insert(origin *bitset.BitSet, ranks []int32) {
	m.t.insert(ranks, origin, 1)
}

// IsSubset reports whether prefix is a subset of any already-inserted
// maximal itemset.
func (m *MFITree) IsSubset(prefix []int32) bool {
	return m.t.isSubset(prefix, 1)
}
