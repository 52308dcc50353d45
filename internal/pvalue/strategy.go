package pvalue

// Strategy selects how Gate.Evaluate computes an exact p-value once
// the cheap rejections have failed to prune a candidate itemset. It
// reifies what the donor unconditional test expressed as build-time
// preprocessor flags (VERSION2/3/4/NAIVE) as a runtime choice instead,
// so a single binary can cross-check one strategy against another.
type Strategy int

const (
	// StrategyConfidenceIntervalOnly decides purely from the
	// confidence-interval test (Gate.ciReject): reject H0 outright when
	// the f1/f0 intervals don't intersect, otherwise report
	// non-significant without ever invoking the exact engine. Cheapest
	// and loosest of the four; a candidate it can't reject it simply
	// gives up on.
	StrategyConfidenceIntervalOnly Strategy = iota
	// StrategyBoundsPlusEnum skips the fast tail closure and instead
	// keeps sweeping a1 row by row to completion, adding whole any row
	// whose mode cell is already within the region and binary searching
	// the a0 boundaries of every other row. Slower, useful for isolating
	// whether a discrepancy comes from the closed-form tail step.
	StrategyBoundsPlusEnum
	// StrategyFastTailed is the default: the sweep-from-mode algorithm
	// with binary-search boundaries and incomplete-beta tail closure
	// (spec 4.C).
	StrategyFastTailed
	// StrategyNaive is the full double loop over every (a1, a0) pair,
	// with no pruning at all. Reference only; never selected by
	// default since it defeats the purpose of the gate.
	StrategyNaive
)

func (s Strategy) String() string {
	switch s {
	case StrategyConfidenceIntervalOnly:
		return "confidence-interval-only"
	case StrategyBoundsPlusEnum:
		return "bounds-plus-enum"
	case StrategyFastTailed:
		return "fast-tailed"
	case StrategyNaive:
		return "naive"
	default:
		return "unknown"
	}
}
