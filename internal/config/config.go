// Package config holds the parsed command-line configuration for one
// mining run, bound directly from Cobra flags (spec section 3
// "Configuration").
package config

import (
	"fmt"

	"github.com/patternminer/sigitemsets/internal/mining"
)

// RunConfig is every knob a single `sigminer mine` invocation accepts
// (spec section 6 "CLI surface", section 7 supplement for the
// independently switchable toggles).
type RunConfig struct {
	TransactionsPath string
	LabelsPath       string
	OutputPrefix     string

	MinSupport int
	Delta      float64
	Epsilon    float64

	Mode mining.Mode

	NoCache            bool
	NoCI               bool
	AdjacencyThreshold float64
	DebugThresholds    bool
}

// ParseMode maps the --mode flag's string value to a mining.Mode,
// rejecting anything else (spec section 6: "mode (frequent|closed|maximal,
// default frequent)").
func ParseMode(s string) (mining.Mode, error) {
	switch s {
	case "", "frequent":
		return mining.ModeFrequent, nil
	case "closed":
		return mining.ModeClosed, nil
	case "maximal":
		return mining.ModeMaximal, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: want frequent, closed, or maximal", s)
	}
}

// Validate checks the margins that aren't enforceable by Cobra's own
// flag type system (spec section 7 "Input inconsistency").
func (c *RunConfig) Validate() error {
	if c.MinSupport < 1 {
		return fmt.Errorf("min-support must be >= 1, got %d", c.MinSupport)
	}
	if c.Delta <= 0 || c.Delta >= 1 {
		return fmt.Errorf("delta must be in (0, 1), got %g", c.Delta)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be > 0, got %g", c.Epsilon)
	}
	if c.AdjacencyThreshold < 0 || c.AdjacencyThreshold > 1 {
		return fmt.Errorf("adjacency-threshold must be in [0, 1], got %g", c.AdjacencyThreshold)
	}
	return nil
}
