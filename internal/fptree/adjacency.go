package fptree

import "github.com/bits-and-blooms/bitset"

// DefaultSwitchThreshold is the cal_level_25 cutoff above which a tree
// is dense enough on its shallow levels that precomputing the
// adjacency matrix once pays for itself across every item's
// conditional-base computation at that recursion level (spec 4.E
// "Statistics"). Configurable via --adjacency-threshold.
const DefaultSwitchThreshold = 0.25

// AdjacencyMatrix is the triangular co-occurrence accumulator of spec
// 4.E: count0[j][i] / count1[j][i] for i < j is the label-split count
// of transactions in which both items i and j (by rank) appear.
// Built once per tree and consulted by ConditionalBase instead of
// walking parent pointers once per header-list node.
type AdjacencyMatrix struct {
	numItems int32
	count0   [][]int64 // count0[j][i], i < j
	count1   [][]int64
	present  []*bitset.BitSet // present[j] has bit i set if pair (i,j) was ever observed
}

// NewAdjacencyMatrix allocates a triangular matrix over numItems
// ranks.
func NewAdjacencyMatrix(numItems int32) *AdjacencyMatrix {
	m := &AdjacencyMatrix{numItems: numItems}
	m.count0 = make([][]int64, numItems)
	m.count1 = make([][]int64, numItems)
	m.present = make([]*bitset.BitSet, numItems)
	for j := int32(0); j < numItems; j++ {
		m.count0[j] = make([]int64, j)
		m.count1[j] = make([]int64, j)
		m.present[j] = bitset.New(uint(j))
	}
	return m
}

func (m *AdjacencyMatrix) add(i, j int32, count0, count1 int64) {
	if i > j {
		i, j = j, i
	}
	m.count0[j][i] += count0
	m.count1[j][i] += count1
	m.present[j].Set(uint(i))
}

// BuildAdjacency walks every root-to-node path in t exactly once,
// folding each node's count into every (ancestor, node) pair along
// its path -- equivalent to, but far cheaper than, running
// ConditionalBase's parent walk separately for every item in t.
func BuildAdjacency(t *Tree) *AdjacencyMatrix {
	m := NewAdjacencyMatrix(t.NumItems)
	path := make([]int32, 0, 16)
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.ItemRank >= 0 {
			if n.Count0+n.Count1 > 0 {
				for _, anc := range path {
					m.add(anc, n.ItemRank, n.Count0, n.Count1)
				}
			}
			path = append(path, n.ItemRank)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.ItemRank >= 0 {
			path = path[:len(path)-1]
		}
	}
	walk(t.Root)
	return m
}

// Supp returns the accumulated (count0, count1) support for the pair
// (ancestorRank, rank), ancestorRank < rank, or (0,0,false) if the
// pair was never observed.
func (m *AdjacencyMatrix) Supp(ancestorRank, rank int32) (count0, count1 int64, ok bool) {
	if ancestorRank >= rank || rank >= m.numItems {
		return 0, 0, false
	}
	if !m.present[rank].Test(uint(ancestorRank)) {
		return 0, 0, false
	}
	return m.count0[rank][ancestorRank], m.count1[rank][ancestorRank], true
}

// RetainedAncestors returns every ancestor rank whose accumulated
// support with rank clears theta, used by ConditionalBase as a
// shortcut when the tree carries a precomputed adjacency matrix.
func (m *AdjacencyMatrix) RetainedAncestors(rank int32, theta int) []int32 {
	var out []int32
	for anc := int32(0); anc < rank; anc++ {
		c0, c1, ok := m.Supp(anc, rank)
		if ok && c0+c1 >= int64(theta) {
			out = append(out, anc)
		}
	}
	return out
}
