package fptree

import (
	"sort"

	"github.com/patternminer/sigitemsets/internal/arena"
	"github.com/patternminer/sigitemsets/internal/model"
)

// Tree is one FP-tree: either the master tree built from the whole
// dataset, or a conditional tree projected for one item during
// mining. Arena owns every Node in the tree and is released as a unit
// when the owning recursion frame unwinds.
type Tree struct {
	Root     *Node
	Header   *HeaderTable
	Arena    *arena.Arena[Node]
	NumItems int32
	Level25  float64 // cal_level_25 statistic from the build that created this tree

	Adjacency *AdjacencyMatrix // non-nil once MaybeBuildAdjacency has triggered
}

// MaybeBuildAdjacency materializes the adjacency matrix when Level25
// exceeds threshold (spec 4.E: "if it exceeds SWITCH, the next
// conditional tree materializes its adjacency matrix").
func (t *Tree) MaybeBuildAdjacency(threshold float64) bool {
	if t.Level25 <= threshold {
		return false
	}
	t.Adjacency = BuildAdjacency(t)
	return true
}

// NewTree allocates an empty tree with numItems ranks, backed by a.
func NewTree(numItems int32, a *arena.Arena[Node]) *Tree {
	root := a.Alloc()
	root.ItemRank = -1
	return &Tree{
		Root:     root,
		Header:   NewHeaderTable(numItems),
		Arena:    a,
		NumItems: numItems,
	}
}

// Scan1 counts item occurrences, keeps items with count >= theta,
// sorts them descending by count (ties broken by original ID for
// determinism), and assigns ranks 0..k-1 in that order -- rank 0 is
// the most frequent surviving item. order[originalID] is the
// resulting rank, or -1 if the item was pruned. table[rank] is the
// item's total count (spec 4.E "Scan 1").
func Scan1(transactions []model.Transaction, theta int) (order []int32, table []int32, numItems int32) {
	maxID := int32(-1)
	for _, tx := range transactions {
		for _, it := range tx.Items {
			if it > maxID {
				maxID = it
			}
		}
	}
	if maxID < 0 {
		return nil, nil, 0
	}

	counts := make([]int64, maxID+1)
	for _, tx := range transactions {
		for _, it := range tx.Items {
			counts[it]++
		}
	}

	type entry struct {
		id    int32
		count int64
	}
	kept := make([]entry, 0, len(counts))
	for id, c := range counts {
		if c >= int64(theta) {
			kept = append(kept, entry{int32(id), c})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].count != kept[j].count {
			return kept[i].count > kept[j].count
		}
		return kept[i].id < kept[j].id
	})

	order = make([]int32, maxID+1)
	for i := range order {
		order[i] = -1
	}
	table = make([]int32, len(kept))
	for rank, e := range kept {
		order[e.id] = int32(rank)
		table[rank] = int32(e.count)
	}
	return order, table, int32(len(kept))
}

// RankTransaction maps a transaction's raw item IDs through order,
// drops pruned items, and sorts what remains ascending by rank (most
// frequent item first), ready for tree insertion (spec 4.E "Scan 2").
func RankTransaction(items []int32, order []int32) []int32 {
	ranks := make([]int32, 0, len(items))
	for _, it := range items {
		if int(it) < len(order) {
			if r := order[it]; r >= 0 {
				ranks = append(ranks, r)
			}
		}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

// Insert threads one pre-ranked, pre-sorted transaction into the
// tree, reusing the longest existing common prefix and extending with
// new nodes for the rest (spec 4.E "Scan 2": "reuse common prefix,
// increment count, extend with new nodes").
func (t *Tree) Insert(ranks []int32, label uint8) {
	count0, count1 := int64(1), int64(0)
	if label == 1 {
		count0, count1 = 0, 1
	}
	t.insertCounts(ranks, count0, count1)
}

// insertCounts is Insert generalized to an arbitrary (count0, count1)
// weight, used when projecting a conditional tree where each path
// already carries a merged multi-transaction weight.
func (t *Tree) insertCounts(ranks []int32, count0, count1 int64) {
	cur := t.Root
	for _, r := range ranks {
		child := findChild(cur, r)
		if child == nil {
			child = t.Arena.Alloc()
			child.ItemRank = r
			child.Parent = cur
			child.NextSibling = cur.FirstChild
			cur.FirstChild = child
			t.Header.link(child)
		}
		child.Count0 += count0
		child.Count1 += count1
		t.Header.addCounts(r, count0, count1)
		cur = child
	}
}

// Build constructs the master FP-tree for a dataset: scan 1 over its
// transactions at the given support threshold, then scan 2 inserting
// every non-empty, surviving transaction. ds.Order and ds.Table are
// populated as a side effect. hint sizes the backing arena.
func Build(ds *model.Dataset, theta int, hint arena.Hint) *Tree {
	order, table, numItems := Scan1(ds.Transactions, theta)
	ds.Order = order
	ds.Table = table

	a := arena.New[Node](hint)
	t := NewTree(numItems, a)
	for _, tx := range ds.Transactions {
		ranks := RankTransaction(tx.Items, order)
		if len(ranks) == 0 {
			continue
		}
		t.Insert(ranks, tx.Label)
	}
	t.Level25 = t.calLevel25()
	return t
}

// IsSinglePath reports whether every node from the root down has at
// most one child, i.e. the whole tree is one chain -- every subset of
// that chain is then trivially frequent (spec 4.E "Single-path test").
func (t *Tree) IsSinglePath() bool {
	for n := t.Root; n != nil; n = n.FirstChild {
		if n.FirstChild != nil && n.FirstChild.NextSibling != nil {
			return false
		}
	}
	return true
}

// PathNode is one node along a single-path tree, carrying its own
// support split by label -- distinct nodes on a path can have
// different counts when transactions terminate partway along the
// chain (a shorter transaction's path is a prefix of a longer one's).
type PathNode struct {
	Rank           int32
	Count0, Count1 int64
}

// SinglePathNodes returns every node from the root's child down to
// the leaf of a single-path tree, each with its own support. The
// support of any non-empty subset of these ranks equals the deepest
// (highest-index) member's node counts, since that node's count is
// exactly the number of transactions containing every item from the
// root down to it (spec 4.E "Single-path test").
func (t *Tree) SinglePathNodes() []PathNode {
	var out []PathNode
	for n := t.Root.FirstChild; n != nil; n = n.FirstChild {
		out = append(out, PathNode{Rank: n.ItemRank, Count0: n.Count0, Count1: n.Count1})
	}
	return out
}

// calLevel25 estimates the fraction of branching concentrated in the
// first quarter of tree depths (spec 4.E "Statistics"): the count of
// nodes with more than one child, restricted to the shallowest 25% of
// depths, over the total branching node count.
func (t *Tree) calLevel25() float64 {
	depth := t.maxDepth()
	cutoff := depth / 4
	var shallow, total int
	var walk func(n *Node, d int)
	walk = func(n *Node, d int) {
		children := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children++
			walk(c, d+1)
		}
		if children > 1 {
			total++
			if d <= cutoff {
				shallow++
			}
		}
	}
	walk(t.Root, 0)
	if total == 0 {
		return 0
	}
	return float64(shallow) / float64(total)
}

func (t *Tree) maxDepth() int {
	var walk func(n *Node, d int) int
	walk = func(n *Node, d int) int {
		best := d
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if v := walk(c, d+1); v > best {
				best = v
			}
		}
		return best
	}
	return walk(t.Root, 0)
}
