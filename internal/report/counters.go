// Package report accumulates the run-level counters that feed the
// *.summary output file (spec 4.H / section 6).
package report

import (
	"fmt"
	"io"

	"github.com/patternminer/sigitemsets/internal/pvalue"
)

// Counters tallies miner-level outcomes on top of the gate's own
// per-stage counters (spec section 6 "*.summary": counts of tested
// patterns, explored contingency tables, CI rejects, simple-UB
// rejects, enumerate rejects, enumerate non-rejects, n significant
// patterns, effective delta, theta").
type Counters struct {
	TestedPatterns      int64
	SignificantPatterns int64
	ExploredTables      int64

	Gate *pvalue.Counters
}

// RecordEmission folds the outcome of one gate evaluation into the
// run totals.
func (c *Counters) RecordEmission(significant bool) {
	c.TestedPatterns++
	c.ExploredTables++
	if significant {
		c.SignificantPatterns++
	}
}

// Write renders the *.summary text format: one "key = value" line per
// counter, plus the effective theta/delta the run used.
func (c *Counters) Write(w io.Writer, theta int, delta, epsilon float64, mode string, effectiveN, n int) error {
	rows := []struct {
		key string
		val int64
	}{
		{"tested_patterns", c.TestedPatterns},
		{"significant_patterns", c.SignificantPatterns},
		{"explored_tables", c.ExploredTables},
		{"ci_rejects", c.Gate.CIReject},
		{"simple_ub_accepts", c.Gate.SimpleUB},
		{"threshold_rejects", c.Gate.ThresholdHit},
		{"trivial_boundary", c.Gate.Trivial},
		{"cache_hits", c.Gate.CacheHit},
		{"enumerate_rejects", c.Gate.EnumerateReject},
		{"enumerate_nonrejects", c.Gate.EnumerateNonReject},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s = %d\n", r.key, r.val); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "theta = %d\n", theta); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "delta = %g\n", delta); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "epsilon = %g\n", epsilon); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "mode = %s\n", mode); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "effective_n = %d\n", effectiveN); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "n = %d\n", n)
	return err
}
