package pvalue

import "math"

// Counters tallies how many candidate itemsets were disposed of at
// each stage of the gate, for the *.summary report (spec 4.D /
// SUPPLEMENTED FEATURES).
type Counters struct {
	Trivial            int64 // x == 1 or x == N
	SimpleUB           int64 // accepted outright by the exp(p0)*(n+1)(N-n+1) bound
	CIReject           int64 // H0 rejected by the confidence-interval check
	ThresholdHit       int64 // rejected: prob_thr[x] already proves non-significance
	CacheHit           int64
	EnumerateReject    int64 // exact/naive evaluation rejected H0 (pattern significant)
	EnumerateNonReject int64 // exact/naive evaluation did not reject H0
}

// Gate is the ordered pruning pipeline of spec 4.D: cheapest and most
// conservative checks run first, and only a candidate that survives
// all of them pays for an exact p-value evaluation.
type Gate struct {
	Engine *Engine
	Cache  *Cache
	// ProbThr is prob_thr[x] (spec 4.D step 4/6, section 3): the
	// smallest observed-table log-probability p0 seen at support x
	// that did NOT reject the null. It starts at 0.0, a value no real
	// p0 ever reaches (p0 <= 0 always), so the threshold is inert until
	// Evaluate has actually found a non-significant table at that
	// support; from then on it only tightens, via min(), every time
	// another non-significant table is observed there.
	ProbThr  []float64
	Delta    float64 // significance threshold
	Epsilon  float64 // confidence-interval slack
	Strategy Strategy
	NoCI     bool
	NoCache  bool

	Counters Counters
}

// NewGate builds a gate over engine. ProbThr starts unseeded at every
// support and tightens only as Evaluate actually runs the exact/naive
// engine and finds a table that is not significant.
func NewGate(engine *Engine, delta, epsilon float64, strategy Strategy) *Gate {
	g := &Gate{
		Engine:   engine,
		Delta:    delta,
		Epsilon:  epsilon,
		Strategy: strategy,
	}
	if !g.NoCache {
		g.Cache = NewCache(engine.N, engine.N1)
	}
	g.ProbThr = make([]float64, engine.N+1)
	return g
}

// ciReject implements spec 4.D step 3, the confidence-interval
// rejection test (confidenceIntervalsNHReject in the donor
// unconditional-test source). f1 = a/n1 and f0 = (x-a)/n0 are the
// observed minority/majority frequencies; eps1, eps0 scale the shared
// slack Epsilon by (n0+n1)/n1 and (n0+n1)/n0 respectively. When the
// resulting intervals [f1±eps1] and [f0±eps0] do not intersect, H0 is
// rejected outright (p-value 0, pattern significant) without running
// the expensive exact test.
func (g *Gate) ciReject(x, a int) bool {
	if g.NoCI {
		return false
	}
	n1 := float64(g.Engine.N1)
	n0 := float64(g.Engine.N - g.Engine.N1)
	f1 := float64(a) / n1
	f0 := float64(x-a) / n0
	eps1 := g.Epsilon * (n0 + n1) / n1
	eps0 := g.Epsilon * (n0 + n1) / n0

	ilb := f1 + eps1
	if f0 < f1 {
		ilb = f0 + eps0
	}
	iub := f1 - eps1
	if f0 > f1 {
		iub = f0 - eps0
	}
	return ilb < iub
}

// Evaluate runs candidate (x, a) through the ordered checks of spec
// 4.D and returns a p-value (lower bound, exact wherever the fast
// algorithm is exact) together with whether it clears Delta.
func (g *Gate) Evaluate(x, a int) (p float64, significant bool) {
	if x == 1 || x == g.Engine.N {
		g.Counters.Trivial++
		return 1, false
	}

	p0 := g.Engine.tableP0(x, a)

	if g.Strategy == StrategyConfidenceIntervalOnly {
		// Decides purely from the confidence-interval test: a
		// non-intersection rejects H0 outright, anything else is
		// reported non-significant without ever running the engine.
		if g.ciReject(x, a) {
			g.Counters.CIReject++
			return 0, true
		}
		return 1, false
	}

	n1 := float64(g.Engine.N1)
	n0 := float64(g.Engine.N - g.Engine.N1)
	if simpleUB := math.Exp(p0) * (n1 + 1) * (n0 + 1); simpleUB <= g.Delta {
		// spec 4.D step 2: at most (n1+1)*(n0+1) distinct tables share
		// this support, so the p-value can never exceed this table's
		// own probability times that count.
		g.Counters.SimpleUB++
		return simpleUB, true
	}

	if g.ciReject(x, a) {
		g.Counters.CIReject++
		return 0, true
	}

	if g.ProbThr[x] <= p0 {
		// a more extreme (or equally extreme) table at this support
		// already ran the exact test and came back non-significant;
		// monotonicity of the p-value in p0 means this one can't do
		// better.
		g.Counters.ThresholdHit++
		return 1, false
	}

	if !g.NoCache && g.Cache != nil {
		if cached, ok := g.Cache.Get(x, a); ok {
			g.Counters.CacheHit++
			return cached, cached <= g.Delta
		}
	}

	var result float64
	switch g.Strategy {
	case StrategyNaive:
		result = g.Engine.Naive(x, a)
	case StrategyBoundsPlusEnum:
		lower, _ := g.Engine.ExactEnumerate(x, a)
		result = lower
	default: // StrategyFastTailed
		lower, _ := g.Engine.Exact(x, a)
		result = lower
	}

	significant = result <= g.Delta
	if significant {
		g.Counters.EnumerateReject++
	} else {
		g.Counters.EnumerateNonReject++
		if p0 < g.ProbThr[x] {
			g.ProbThr[x] = p0
		}
	}

	if !g.NoCache && g.Cache != nil {
		g.Cache.Put(x, a, result)
	}
	return result, significant
}
