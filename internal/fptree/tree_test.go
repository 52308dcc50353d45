package fptree

import (
	"testing"

	"github.com/patternminer/sigitemsets/internal/arena"
	"github.com/patternminer/sigitemsets/internal/model"
)

func TestScan1PrunesAndRanks(t *testing.T) {
	t.Parallel()

	ds := []model.Transaction{
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{3}, Label: 0},
		{Items: []int32{3}, Label: 0},
	}
	order, table, numItems := Scan1(ds, 2)
	if numItems != 3 {
		t.Fatalf("numItems = %d, want 3", numItems)
	}
	// items 1 and 2 tie at count 3, ties broken by ascending original ID
	if order[1] != 0 {
		t.Errorf("order[1] = %d, want 0", order[1])
	}
	if order[2] != 1 {
		t.Errorf("order[2] = %d, want 1", order[2])
	}
	if table[order[1]] != 3 {
		t.Errorf("table[rank(1)] = %d, want 3", table[order[1]])
	}
	if order[3] == -1 {
		t.Fatal("item 3 has count 2 and theta=2, should not be pruned")
	}
	if table[order[3]] != 2 {
		t.Errorf("table[rank(3)] = %d, want 2", table[order[3]])
	}
}

func TestScan1PruneBelowTheta(t *testing.T) {
	t.Parallel()

	ds := []model.Transaction{
		{Items: []int32{1}, Label: 0},
		{Items: []int32{2, 2}, Label: 0}, // duplicate within a transaction, counted twice
	}
	order, _, _ := Scan1(ds, 2)
	if order[1] != -1 {
		t.Errorf("item 1 has count 1 < theta=2, should be pruned, got rank %d", order[1])
	}
}

func TestBuildAndHeaderCounts(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{3}, Label: 0},
		{Items: []int32{3}, Label: 0},
	}}
	tree := Build(ds, 2, arena.Hint{ItemCount: 8})

	rank1 := ds.Order[1]
	if x := tree.Header.Count0[rank1] + tree.Header.Count1[rank1]; x != 3 {
		t.Errorf("support of item 1 = %d, want 3", x)
	}
	if a := tree.Header.Count1[rank1]; a != 3 {
		t.Errorf("minority count of item 1 = %d, want 3", a)
	}
}

func TestIsSinglePath(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2, 3}, Label: 0},
		{Items: []int32{1, 2, 3}, Label: 0},
		{Items: []int32{1, 2, 3}, Label: 0},
	}}
	tree := Build(ds, 3, arena.Hint{ItemCount: 8})
	if !tree.IsSinglePath() {
		t.Fatal("tree built from identical transactions should be a single path")
	}
	nodes := tree.SinglePathNodes()
	if len(nodes) != 3 {
		t.Fatalf("single path has %d items, want 3", len(nodes))
	}
	// every transaction has all 3 items, so every node on the path
	// carries the same (x, a) as the full path.
	for _, n := range nodes {
		if x := n.Count0 + n.Count1; x != 5 || n.Count1 != 2 {
			t.Errorf("node rank %d support = %d,%d, want 5,2", n.Rank, x, n.Count1)
		}
	}
}

func TestSinglePathNodesDifferByTerminationPoint(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1}, Label: 0},
		{Items: []int32{1}, Label: 0},
		{Items: []int32{1}, Label: 0},
	}}
	tree := Build(ds, 3, arena.Hint{ItemCount: 8})
	if !tree.IsSinglePath() {
		t.Fatal("tree should be a single path")
	}
	nodes := tree.SinglePathNodes()
	if len(nodes) != 2 {
		t.Fatalf("single path has %d items, want 2", len(nodes))
	}
	if x := nodes[0].Count0 + nodes[0].Count1; x != 8 {
		t.Errorf("shallow node support = %d, want 8", x)
	}
	if x := nodes[1].Count0 + nodes[1].Count1; x != 5 {
		t.Errorf("deep node support = %d, want 5", x)
	}
}

func TestIsSinglePathFalseOnBranching(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 3}, Label: 0},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 3}, Label: 0},
	}}
	tree := Build(ds, 2, arena.Hint{ItemCount: 8})
	if tree.IsSinglePath() {
		t.Fatal("branching tree reported as single path")
	}
}

func TestConditionalBaseAndProject(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2}, Label: 0},
		{Items: []int32{1, 2}, Label: 0},
	}}
	tree := Build(ds, 2, arena.Hint{ItemCount: 8})

	rank3 := ds.Order[3]
	base := tree.ConditionalBase(rank3, 2)
	if base.NumItems() != 2 {
		t.Fatalf("conditional base of item 3 should retain 2 ancestors, got %d", base.NumItems())
	}

	child := Project(base, arena.Hint{ItemCount: 4, Depth: 1})
	if child.NumItems != 2 {
		t.Fatalf("projected tree numItems = %d, want 2", child.NumItems)
	}
	var total int64
	for r := int32(0); r < child.NumItems; r++ {
		total += child.Header.Count0[r] + child.Header.Count1[r]
	}
	if total == 0 {
		t.Fatal("projected tree carries no support")
	}
}

func TestBuildAdjacencyMatchesWalkingConditionalBase(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2, 3}, Label: 1},
		{Items: []int32{1, 2}, Label: 0},
		{Items: []int32{1, 3}, Label: 0},
	}}
	tree := Build(ds, 1, arena.Hint{ItemCount: 8})

	withoutMatrix := tree.ConditionalBase(ds.Order[3], 1)

	tree.Adjacency = BuildAdjacency(tree)
	withMatrix := tree.ConditionalBase(ds.Order[3], 1)

	if withoutMatrix.NumItems() != withMatrix.NumItems() {
		t.Fatalf("retained item count differs: %d vs %d", withoutMatrix.NumItems(), withMatrix.NumItems())
	}
}
