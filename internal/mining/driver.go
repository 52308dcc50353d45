package mining

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/patternminer/sigitemsets/internal/arena"
	"github.com/patternminer/sigitemsets/internal/fptree"
)

// Driver runs the DFS recursion of spec 4.G over a master or
// conditional FP-tree.
type Driver struct{}

// Mine visits every item of tree in reverse frequency order (spec
// 4.G: "for each item i in T in reverse frequency order"). prefix
// holds the working itemset so far, as master item ranks, ascending.
// rankToMaster maps tree's local item ranks back to master ranks, so
// the recursion can compose projections across levels (Design Notes
// item 5, "current_trans"-style scratch replaced by an explicit
// value -- here the rank-mapping plays the analogous role for
// identity instead of raw transaction membership).
func (d *Driver) Mine(ctx *Context, tree *fptree.Tree, rankToMaster []int32, prefix []int32, depth int) {
	if ctx.aborted() {
		return
	}

	if tree.IsSinglePath() {
		nodes := tree.SinglePathNodes()
		masterNodes := make([]fptree.PathNode, len(nodes))
		for i, n := range nodes {
			masterNodes[i] = fptree.PathNode{Rank: rankToMaster[n.Rank], Count0: n.Count0, Count1: n.Count1}
		}
		d.emitAllSubsets(ctx, prefix, masterNodes)
		return
	}

	for rank := int32(tree.NumItems) - 1; rank >= 0; rank-- {
		if ctx.aborted() {
			return
		}
		x := tree.Header.Count0[rank] + tree.Header.Count1[rank]
		if x == 0 || x < int64(ctx.Theta) {
			continue
		}
		a := tree.Header.Count1[rank]
		masterRank := rankToMaster[rank]

		candidate := sortedAppend(prefix, masterRank)

		if ctx.dominated(candidate, x) {
			continue
		}

		base := tree.ConditionalBase(rank, ctx.Theta)

		if base.NumItems() == 0 {
			ctx.emit(candidate, x, a)
			ctx.insertClosureIndex(candidate, x)
			continue
		}

		childHint := arena.Hint{ItemCount: base.NumItems(), Depth: depth + 1}
		child := fptree.Project(base, childHint)
		if ctx.AdjacencyThreshold > 0 {
			child.MaybeBuildAdjacency(ctx.AdjacencyThreshold)
		}

		childRankToMaster := make([]int32, len(base.LocalToParent))
		for i, parentRank := range base.LocalToParent {
			childRankToMaster[i] = rankToMaster[parentRank]
		}

		d.Mine(ctx, child, childRankToMaster, candidate, depth+1)
		child.Arena.Release()
	}
}

// emitAllSubsets enumerates every non-empty subset of a single-path
// tree's remaining items (spec 4.E "Single-path test": "all subsets
// of that path are frequent"), each combined with prefix. A node's
// count is the number of transactions containing it and every node
// above it on the path, so a subset's true (x, a) is the count of its
// deepest (highest-index) member, not a single value shared across
// every subset -- distinct path nodes can carry different counts when
// transactions of different lengths terminate at different points
// along the chain. Masks are visited in descending order, so every
// superset is emitted (and, in closed/maximal mode, indexed) before
// any of its subsets is checked for domination.
func (d *Driver) emitAllSubsets(ctx *Context, prefix []int32, nodes []fptree.PathNode) {
	k := len(nodes)
	for mask := (1 << k) - 1; mask >= 1; mask-- {
		var subset []int32
		deepest := -1
		for i := 0; i < k; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, nodes[i].Rank)
				deepest = i
			}
		}
		x := nodes[deepest].Count0 + nodes[deepest].Count1
		a := nodes[deepest].Count1
		if x < int64(ctx.Theta) {
			continue
		}
		candidate := sortedAppendAll(prefix, subset)
		if ctx.dominated(candidate, x) {
			continue
		}
		ctx.emit(candidate, x, a)
		ctx.insertClosureIndex(candidate, x)
	}
}

func sortedAppend(prefix []int32, item int32) []int32 {
	out := make([]int32, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = item
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedAppendAll(prefix, items []int32) []int32 {
	out := make([]int32, 0, len(prefix)+len(items))
	out = append(out, prefix...)
	out = append(out, items...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// dominated checks CFI/MFI containment under the current mode;
// frequent mode never dominates (spec 4.G step 2).
func (ctx *Context) dominated(candidate []int32, support int64) bool {
	switch ctx.Mode {
	case ModeClosed:
		return ctx.CFI.IsSubset(candidate, support)
	case ModeMaximal:
		return ctx.MFI.IsSubset(candidate)
	default:
		return false
	}
}

func (ctx *Context) insertClosureIndex(candidate []int32, support int64) {
	switch ctx.Mode {
	case ModeClosed:
		ctx.CFI.Insert(candidateBitset(candidate), candidate, support)
	case ModeMaximal:
		ctx.MFI.Insert(candidateBitset(candidate), candidate)
	}
}

// candidateBitset converts a candidate's item ranks into a bitmap the
// CFI/MFI index stores directly as the inserted node's membership, so
// later IsSubset queries resolve with one BitSet comparison (spec 4.F).
func candidateBitset(candidate []int32) *bitset.BitSet {
	b := bitset.New(0)
	for _, r := range candidate {
		b.Set(uint(r))
	}
	return b
}

// emit runs the significance path of spec 4.H: gate the (x, a) table
// and, if significant, hand the pattern to the sink.
func (ctx *Context) emit(candidate []int32, x, a int64) {
	p, significant := ctx.Gate.Evaluate(int(x), int(a))
	ctx.Counters.RecordEmission(significant)
	if !significant {
		return
	}
	p0 := ctx.Gate.Engine.P0(int(x), int(a))
	items := make([]int32, len(candidate))
	for i, rank := range candidate {
		if ctx.OriginalID != nil {
			items[i] = ctx.OriginalID[rank]
		} else {
			items[i] = rank
		}
	}
	ctx.Sink(Pattern{Items: items, X: x, A: a, P0: p0, PLower: p, PUpper: p})
}
