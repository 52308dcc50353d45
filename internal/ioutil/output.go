package ioutil

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patternminer/sigitemsets/internal/mining"
	"github.com/patternminer/sigitemsets/internal/report"
)

// Writer owns the three (plus optional fourth) output files a run
// produces, named by prefix (spec section 6, "Output files").
type Writer struct {
	significant io.WriteCloser
	pvalues     io.WriteCloser
	thresholds  io.WriteCloser // nil unless debugThresholds is set
}

// NewWriter creates prefix.significant and prefix.pvalues, and
// prefix.thresholds when debugThresholds is true (spec section 7,
// "per-support probability-threshold short-circuit is itself
// emitted").
func NewWriter(prefix string, debugThresholds bool) (*Writer, error) {
	sig, err := os.Create(prefix + ".significant")
	if err != nil {
		return nil, fmt.Errorf("create significant file: %w", err)
	}
	pv, err := os.Create(prefix + ".pvalues")
	if err != nil {
		sig.Close()
		return nil, fmt.Errorf("create pvalues file: %w", err)
	}
	w := &Writer{significant: sig, pvalues: pv}
	if debugThresholds {
		th, err := os.Create(prefix + ".thresholds")
		if err != nil {
			sig.Close()
			pv.Close()
			return nil, fmt.Errorf("create thresholds file: %w", err)
		}
		w.thresholds = th
	}
	return w, nil
}

// Emit appends one significant pattern to both the .significant and
// .pvalues files.
func (w *Writer) Emit(p mining.Pattern) error {
	items := make([]string, len(p.Items))
	for i, id := range p.Items {
		items[i] = strconv.FormatInt(int64(id), 10)
	}
	if _, err := fmt.Fprintln(w.significant, strings.Join(items, " ")); err != nil {
		return fmt.Errorf("write significant file: %w", err)
	}
	if _, err := fmt.Fprintf(w.pvalues, "%d,%d,%d,%g,%g,%g\n",
		p.A, p.X-p.A, p.X, p.P0, p.PLower, p.PUpper); err != nil {
		return fmt.Errorf("write pvalues file: %w", err)
	}
	return nil
}

// WriteThresholds dumps prob_thr[x], the tightest observed-table p0
// seen at each support that did not reject the null, behind
// --debug-thresholds (spec section 7 supplement). No-op if the
// thresholds file was not requested.
func (w *Writer) WriteThresholds(probThr []float64) error {
	if w.thresholds == nil {
		return nil
	}
	for x, p := range probThr {
		if x == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w.thresholds, "%d,%g\n", x, p); err != nil {
			return fmt.Errorf("write thresholds file: %w", err)
		}
	}
	return nil
}

// WriteSummary renders prefix.summary from the run's counters.
func WriteSummary(prefix string, counters *report.Counters, theta int, delta, epsilon float64, mode string, effectiveN, n int) error {
	f, err := os.Create(prefix + ".summary")
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()
	return counters.Write(f, theta, delta, epsilon, mode, effectiveN, n)
}

// Close closes every open output file, returning the first error
// encountered.
func (w *Writer) Close() error {
	var firstErr error
	for _, c := range []io.WriteCloser{w.significant, w.pvalues, w.thresholds} {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
