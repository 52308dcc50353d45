package fptree

// HeaderTable is the per-rank index into an FP-tree: Head[r] is the
// most recently created node of item rank r, threaded back to earlier
// ones by Node.Next; Count0/Count1 are the tree-wide totals for that rank,
// used by Scan1-equivalent pruning when building a conditional tree.
type HeaderTable struct {
	Head   []*Node
	Count0 []int64
	Count1 []int64
}

// NewHeaderTable allocates a header table for numItems distinct ranks.
func NewHeaderTable(numItems int32) *HeaderTable {
	return &HeaderTable{
		Head:   make([]*Node, numItems),
		Count0: make([]int64, numItems),
		Count1: make([]int64, numItems),
	}
}

// link threads n onto the head of its rank's chain; totals are folded
// in separately by addCounts.
func (h *HeaderTable) link(n *Node) {
	n.Next = h.Head[n.ItemRank]
	h.Head[n.ItemRank] = n
}

func (h *HeaderTable) addCounts(rank int32, count0, count1 int64) {
	h.Count0[rank] += count0
	h.Count1[rank] += count1
}
