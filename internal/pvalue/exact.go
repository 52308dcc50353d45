// Package pvalue implements the unconditional exact test on 2x2
// contingency tables: the fast sweep-and-tail algorithm of spec 4.C,
// its naive double-loop reference, and the pruning gate of spec 4.D
// that decides whether the fast algorithm needs to run at all.
package pvalue

import (
	"math"

	"github.com/patternminer/sigitemsets/internal/mathx"
)

// Engine evaluates the unconditional exact p-value for a contingency
// table with support x and minority-class count a, given the fixed
// dataset margins N (total observations) and n (minority class size,
// n <= N/2 by the caller's labeling convention).
type Engine struct {
	Tbl  *mathx.LogGammaTable
	N, N1 int // N1 is the minority margin ("n" in spec notation)
}

// NewEngine builds an engine over a precomputed log-gamma table.
func NewEngine(tbl *mathx.LogGammaTable, n, n1 int) *Engine {
	return &Engine{Tbl: tbl, N: n, N1: n1}
}

// tableP0 returns p0, the log-probability of the observed table
// (x, a) under the null at pi = x/N (spec section 4.C / GLOSSARY).
func (e *Engine) tableP0(x, a int) float64 {
	n1 := e.N1
	n0 := e.N - e.N1
	pi := float64(x) / float64(e.N)
	p0 := float64(x)*math.Log(pi) + float64(e.N-x)*math.Log(1-pi)
	p0 += e.Tbl.LogChoose(n1, a)
	p0 += e.Tbl.LogChoose(n0, x-a)
	return p0
}

// P0 exposes the observed table's log-probability, used by the
// pruning gate and reported verbatim in the *.pvalues output.
func (e *Engine) P0(x, a int) float64 {
	return e.tableP0(x, a)
}

// binomialMode returns floor((n+1)*pi + 0.5), the mode of Bin(n, pi).
func binomialMode(n int, pi float64) int {
	m := int(float64(n+1)*pi + 0.5)
	if m < 0 {
		return 0
	}
	if m > n {
		return n
	}
	return m
}

// rowLogProb returns the log-probability of a0 under Bin(n0, pi):
// a0*log(pi) + (n0-a0)*log(1-pi) + logC(n0,a0).
func (e *Engine) rowLogProb(n0, a0 int, logPi, log1Pi float64) float64 {
	if a0 < 0 || a0 > n0 {
		return math.Inf(-1)
	}
	return float64(a0)*logPi + float64(n0-a0)*log1Pi + e.Tbl.LogChoose(n0, a0)
}

// rowTail finds the boundary a0 beyond which (moving away from the
// mode in the given direction) every row probability is <= p0Prime,
// then returns the closed-form tail mass via the incomplete beta
// function (spec 4.C, "Boundary a0 values are found by binary
// search..."). hint carries the previous call's boundary so that,
// across a monotone sequence of a1 values, the boundary only needs to
// advance by one step (spec: "only advance by 1 in the appropriate
// direction -- monotonicity of boundaries in a1 makes this O(1)
// amortized per step"). hint < 0 means "no prior boundary".
func (e *Engine) rowTail(n0 int, pi, logPi, log1Pi, p0Prime float64, side int, hint *int) float64 {
	mode := binomialMode(n0, pi)

	var minA0, maxA0, a0 int
	if *hint < 0 {
		if side < 0 {
			maxA0, minA0 = mode, 0
			a0 = maxA0
		} else {
			minA0, maxA0 = mode-1, n0
			a0 = minA0
		}
		if minA0 < 0 {
			minA0 = 0
		}
		if a0 < 0 {
			a0 = 0
		}

		if e.rowLogProb(n0, a0, logPi, log1Pi) > p0Prime {
			// binary search down to a 3-wide window
			for maxA0-minA0 > 3 {
				mid := (maxA0 + minA0) / 2
				if e.rowLogProb(n0, mid, logPi, log1Pi) > p0Prime {
					if side > 0 {
						minA0 = mid
					} else {
						maxA0 = mid
					}
				} else {
					if side > 0 {
						maxA0 = mid
					} else {
						minA0 = mid
					}
				}
			}
			// linear scan to the exact boundary
			if side < 0 {
				a0 = maxA0
				for a0 >= minA0 && e.rowLogProb(n0, a0, logPi, log1Pi) > p0Prime {
					a0--
				}
			} else {
				a0 = minA0
				for a0 <= maxA0 && e.rowLogProb(n0, a0, logPi, log1Pi) > p0Prime {
					a0++
				}
			}
		}
		*hint = a0
	} else {
		a0 = *hint
		if e.rowLogProb(n0, a0, logPi, log1Pi) > p0Prime {
			for a0 >= 0 && a0 <= n0 && e.rowLogProb(n0, a0, logPi, log1Pi) > p0Prime {
				a0 += side
			}
		} else {
			for a0-side >= 0 && a0-side <= n0 && e.rowLogProb(n0, a0-side, logPi, log1Pi) <= p0Prime {
				a0 -= side
			}
		}
		*hint = a0
	}

	if side > 0 {
		return mathx.UpperTail(a0, n0, pi)
	}
	return mathx.LowerTail(a0, n0, pi)
}

// Exact computes the unconditional exact p-value for (x, a): the sum
// of exp(p_table) over every table no more probable than the observed
// one, under the profile-likelihood nuisance estimate pi = x/N (spec
// 4.C). Returns the same value as both the lower and upper bound --
// the fast algorithm is exact, it only differs from the naive
// reference in how the sum is organized.
func (e *Engine) Exact(x, a int) (lower, upper float64) {
	if x == e.N || x == 1 {
		return 1, 1
	}

	n1 := e.N1
	n0 := e.N - e.N1
	pi := float64(x) / float64(e.N)
	logPi := math.Log(pi)
	log1Pi := math.Log(1 - pi)
	p0 := e.tableP0(x, a)

	logPValue := math.Inf(-1)

	hintUp, hintDown := -1, -1
	a1 := binomialMode(n1, pi)
	a0Mode := binomialMode(n0, pi)

	rowP0 := func(a1v int) float64 {
		return float64(a1v)*logPi + float64(n1-a1v)*log1Pi + e.Tbl.LogChoose(n1, a1v) +
			e.rowLogProb(n0, a0Mode, logPi, log1Pi)
	}

	// sweep upward from the mode
	for cur := a1; cur <= n1; cur++ {
		if rowP0(cur) <= p0 {
			// closed form for this and every further a1: the entire
			// a0 row is within the rejection region.
			logPValue = mathx.SumLogs(logPValue, math.Log(mathx.UpperTail(cur, n1, pi)))
			break
		}
		probA1 := float64(cur)*logPi + float64(n1-cur)*log1Pi + e.Tbl.LogChoose(n1, cur)
		p0Prime := p0 - probA1
		tail := e.rowTail(n0, pi, logPi, log1Pi, p0Prime, 1, &hintUp) +
			e.rowTail(n0, pi, logPi, log1Pi, p0Prime, -1, &hintDown)
		if tail > 0 {
			logPValue = mathx.SumLogs(logPValue, probA1+math.Log(tail))
		}
		if cur == n1 {
			break
		}
	}

	hintUp, hintDown = -1, -1
	for cur := a1 - 1; cur >= 0; cur-- {
		if rowP0(cur) <= p0 {
			logPValue = mathx.SumLogs(logPValue, math.Log(mathx.LowerTail(cur, n1, pi)))
			break
		}
		probA1 := float64(cur)*logPi + float64(n1-cur)*log1Pi + e.Tbl.LogChoose(n1, cur)
		p0Prime := p0 - probA1
		tail := e.rowTail(n0, pi, logPi, log1Pi, p0Prime, 1, &hintUp) +
			e.rowTail(n0, pi, logPi, log1Pi, p0Prime, -1, &hintDown)
		if tail > 0 {
			logPValue = mathx.SumLogs(logPValue, probA1+math.Log(tail))
		}
	}

	p := math.Exp(mathx.Clamp(logPValue))
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p, p
}

// ExactEnumerate computes the same quantity as Exact but never takes
// the closed-form tail-completion shortcut: once the sweep starts from
// the a1 mode it keeps visiting every row out to n1 (and down to 0)
// rather than closing the remaining rows off with a single incbeta
// call (StrategyBoundsPlusEnum). A row whose mode-column table is
// already no more probable than the observed one is added whole; every
// other row's a0 boundaries are binary-searched via rowTail. Slower
// than Exact, useful for isolating whether a discrepancy comes from
// the closed-form tail step.
func (e *Engine) ExactEnumerate(x, a int) (lower, upper float64) {
	if x == e.N || x == 1 {
		return 1, 1
	}

	n1 := e.N1
	n0 := e.N - e.N1
	pi := float64(x) / float64(e.N)
	logPi := math.Log(pi)
	log1Pi := math.Log(1 - pi)
	p0 := e.tableP0(x, a)

	logPValue := math.Inf(-1)
	a1 := binomialMode(n1, pi)
	modeRow := e.rowLogProb(n0, binomialMode(n0, pi), logPi, log1Pi)

	hintUp, hintDown := -1, -1
	for cur := a1; cur <= n1; cur++ {
		probA1 := float64(cur)*logPi + float64(n1-cur)*log1Pi + e.Tbl.LogChoose(n1, cur)
		if probA1+modeRow <= p0 {
			logPValue = mathx.SumLogs(logPValue, probA1)
			continue
		}
		p0Prime := p0 - probA1
		tail := e.rowTail(n0, pi, logPi, log1Pi, p0Prime, 1, &hintUp) +
			e.rowTail(n0, pi, logPi, log1Pi, p0Prime, -1, &hintDown)
		if tail > 0 {
			logPValue = mathx.SumLogs(logPValue, probA1+math.Log(tail))
		}
	}

	hintUp, hintDown = -1, -1
	for cur := a1 - 1; cur >= 0; cur-- {
		probA1 := float64(cur)*logPi + float64(n1-cur)*log1Pi + e.Tbl.LogChoose(n1, cur)
		if probA1+modeRow <= p0 {
			logPValue = mathx.SumLogs(logPValue, probA1)
			continue
		}
		p0Prime := p0 - probA1
		tail := e.rowTail(n0, pi, logPi, log1Pi, p0Prime, 1, &hintUp) +
			e.rowTail(n0, pi, logPi, log1Pi, p0Prime, -1, &hintDown)
		if tail > 0 {
			logPValue = mathx.SumLogs(logPValue, probA1+math.Log(tail))
		}
	}

	p := math.Exp(mathx.Clamp(logPValue))
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p, p
}

// Naive is the double-loop reference implementation of spec 4.C,
// used only for cross-validation in tests: it enumerates every
// (a1, a0) pair directly rather than exploiting unimodality.
func (e *Engine) Naive(x, a int) float64 {
	if x == e.N || x == 1 {
		return 1
	}

	n1 := e.N1
	n0 := e.N - e.N1
	pi := float64(x) / float64(e.N)
	logPi := math.Log(pi)
	log1Pi := math.Log(1 - pi)
	p0 := e.tableP0(x, a)

	logPValue := math.Inf(-1)
	for a1 := 0; a1 <= n1; a1++ {
		probA1 := float64(a1)*logPi + float64(n1-a1)*log1Pi + e.Tbl.LogChoose(n1, a1)
		for a0 := 0; a0 <= n0; a0++ {
			pTable := probA1 + e.rowLogProb(n0, a0, logPi, log1Pi)
			if pTable <= p0 {
				logPValue = mathx.SumLogs(logPValue, pTable)
			}
		}
	}
	p := math.Exp(mathx.Clamp(logPValue))
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}
