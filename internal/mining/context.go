// Package mining implements the DFS mining driver of spec 4.G/4.H:
// recursion over conditional FP-trees, routed through the pruning
// gate and exact p-value engine for every emitted candidate.
package mining

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/patternminer/sigitemsets/internal/closure"
	"github.com/patternminer/sigitemsets/internal/mathx"
	"github.com/patternminer/sigitemsets/internal/pvalue"
	"github.com/patternminer/sigitemsets/internal/report"
)

// Mode selects which itemsets the driver keeps (spec 4.G step 1/4).
type Mode int

const (
	ModeFrequent Mode = iota
	ModeClosed
	ModeMaximal
)

func (m Mode) String() string {
	switch m {
	case ModeFrequent:
		return "frequent"
	case ModeClosed:
		return "closed"
	case ModeMaximal:
		return "maximal"
	default:
		return "unknown"
	}
}

// Pattern is one significant itemset handed to the sink (spec 4.H):
// item IDs are in original numbering, x/a are the contingency-table
// margins, and the three p-values are what *.pvalues reports.
type Pattern struct {
	Items               []int32
	X, A                int64
	P0, PLower, PUpper float64
}

// Context is the single value threaded through the whole recursion
// (Design Notes item 3: "Reformulate as a single MiningContext value
// passed by reference"). It owns the log-gamma table, the pruning
// gate, the CFI/MFI indexes for closed/maximal mode, the run's
// counters, and an optional cooperative abort flag polled between
// pattern emissions (spec section 5 "Cancellation / timeouts").
type Context struct {
	N, N1 int // dataset margins; N1 is the minority class size after normalization
	Theta int // minimum support count

	Delta   float64
	Epsilon float64

	Tbl  *mathx.LogGammaTable
	Gate *pvalue.Gate

	Strategy pvalue.Strategy
	Mode     Mode

	CFI *closure.CFITree
	MFI *closure.MFITree

	// OriginalID translates a master-tree rank back to the item ID the
	// input file used, applied only at final emission (spec section 6,
	// "*.significant ... item IDs in original numbering"). candidate
	// itemsets threaded through the recursion and the CFI/MFI index
	// stay in master-rank numbering throughout, since the closure index
	// is array-indexed by rank and must not see IDs outside [0,
	// numItems). Nil means "report ranks as-is" (used by tests that
	// never built a dataset's original numbering).
	OriginalID []int32

	AdjacencyThreshold float64

	Sink func(Pattern)

	Counters *report.Counters
	Logger   *zap.Logger

	AbortFlag *atomic.Bool
}

// aborted reports whether the run's cooperative abort flag is set.
func (ctx *Context) aborted() bool {
	return ctx.AbortFlag != nil && ctx.AbortFlag.Load()
}
