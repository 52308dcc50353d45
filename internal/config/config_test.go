package config

import (
	"testing"

	"github.com/patternminer/sigitemsets/internal/mining"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want mining.Mode
		ok   bool
	}{
		{"", mining.ModeFrequent, true},
		{"frequent", mining.ModeFrequent, true},
		{"closed", mining.ModeClosed, true},
		{"maximal", mining.ModeMaximal, true},
		{"bogus", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseMode(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	base := RunConfig{MinSupport: 2, Delta: 0.1, Epsilon: 1.0, AdjacencyThreshold: 0.25}
	if err := base.Validate(); err != nil {
		t.Fatalf("baseline config should validate, got %v", err)
	}

	bad := base
	bad.MinSupport = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for MinSupport=0")
	}

	bad = base
	bad.Delta = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for Delta=0")
	}

	bad = base
	bad.Delta = 1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for Delta=1")
	}

	bad = base
	bad.Epsilon = -1
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative Epsilon")
	}

	bad = base
	bad.AdjacencyThreshold = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for AdjacencyThreshold > 1")
	}
}
