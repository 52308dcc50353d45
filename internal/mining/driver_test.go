package mining

import (
	"testing"

	"github.com/patternminer/sigitemsets/internal/arena"
	"github.com/patternminer/sigitemsets/internal/closure"
	"github.com/patternminer/sigitemsets/internal/fptree"
	"github.com/patternminer/sigitemsets/internal/mathx"
	"github.com/patternminer/sigitemsets/internal/model"
	"github.com/patternminer/sigitemsets/internal/pvalue"
	"github.com/patternminer/sigitemsets/internal/report"
	"go.uber.org/zap"
)

func newContext(n, n1, theta int, delta, epsilon float64, mode Mode) *Context {
	tbl := mathx.NewLogGammaTable(n)
	eng := pvalue.NewEngine(tbl, n, n1)
	gate := pvalue.NewGate(eng, delta, epsilon, pvalue.StrategyFastTailed)
	return &Context{
		N: n, N1: n1, Theta: theta,
		Delta: delta, Epsilon: epsilon,
		Tbl: tbl, Gate: gate,
		Strategy: pvalue.StrategyFastTailed,
		Mode:     mode,
		Counters: &report.Counters{Gate: &gate.Counters},
		Logger:   zap.NewNop(),
	}
}

func identity(n int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

func TestMineEmitsPairOverSingletons(t *testing.T) {
	t.Parallel()

	ds := &model.Dataset{Transactions: []model.Transaction{
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{1, 2}, Label: 1},
		{Items: []int32{3}, Label: 0},
		{Items: []int32{3}, Label: 0},
	}}
	tree := fptree.Build(ds, 2, arena.Hint{ItemCount: 8})

	ctx := newContext(5, 2, 2, 0.1, 1.0, ModeFrequent)
	var got []Pattern
	ctx.Sink = func(p Pattern) { got = append(got, p) }

	d := &Driver{}
	d.Mine(ctx, tree, identity(tree.NumItems), nil, 0)

	if len(got) != 1 {
		t.Fatalf("got %d significant patterns, want 1: %+v", len(got), got)
	}
	if got[0].X != 3 || got[0].A != 3 {
		t.Errorf("pattern = %+v, want x=3 a=3", got[0])
	}
	if len(got[0].Items) != 2 {
		t.Errorf("pattern items = %v, want 2 items ({1,2})", got[0].Items)
	}
}

func TestMineSinglePathEmitsAllSubsets(t *testing.T) {
	t.Parallel()

	txs := make([]model.Transaction, 10)
	for i := range txs {
		label := uint8(0)
		if i < 5 {
			label = 1
		}
		txs[i] = model.Transaction{Items: []int32{1, 2, 3}, Label: label}
	}
	ds := &model.Dataset{Transactions: txs}
	tree := fptree.Build(ds, 5, arena.Hint{ItemCount: 8})

	if !tree.IsSinglePath() {
		t.Fatal("setup: expected a single-path tree")
	}

	ctx := newContext(10, 5, 5, 0.5, 1.0, ModeFrequent)
	var got []Pattern
	ctx.Sink = func(p Pattern) { got = append(got, p) }

	d := &Driver{}
	d.Mine(ctx, tree, identity(tree.NumItems), nil, 0)

	// 2^3 - 1 = 7 non-empty subsets, all with p-value 1 (x=N, the trivial boundary case)
	if ctx.Counters.TestedPatterns != 7 {
		t.Fatalf("tested %d patterns, want 7", ctx.Counters.TestedPatterns)
	}
}

func TestMineClosedModeSkipsDominatedSubsets(t *testing.T) {
	t.Parallel()

	txs := make([]model.Transaction, 8)
	for i := range txs {
		items := []int32{1, 2}
		if i >= 5 {
			items = []int32{1}
		}
		label := uint8(0)
		if i < 5 {
			label = 1
		}
		txs[i] = model.Transaction{Items: items, Label: label}
	}
	ds := &model.Dataset{Transactions: txs}
	tree := fptree.Build(ds, 3, arena.Hint{ItemCount: 8})

	ctx := newContext(8, 3, 3, 0.9, 1.0, ModeClosed)
	ctx.CFI = closure.NewCFITree(tree.NumItems, arena.Hint{ItemCount: 16})
	var got []Pattern
	ctx.Sink = func(p Pattern) { got = append(got, p) }

	d := &Driver{}
	d.Mine(ctx, tree, identity(tree.NumItems), nil, 0)

	// closed mode should not emit duplicate-support subsets of {1,2}
	if len(got) == 0 {
		t.Fatal("expected at least one closed itemset emitted")
	}
	for _, p := range got {
		if p.X == 5 && len(p.Items) != 2 {
			t.Errorf("emitted %v at support 5, a subset of {1,2} with the same support", p.Items)
		}
	}
}
