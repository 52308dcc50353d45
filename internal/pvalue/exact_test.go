package pvalue

import (
	"math"
	"testing"

	"github.com/patternminer/sigitemsets/internal/mathx"
)

func TestExactMatchesNaive(t *testing.T) {
	t.Parallel()

	const N, n1 = 40, 15
	tbl := mathx.NewLogGammaTable(N)
	eng := NewEngine(tbl, N, n1)

	cases := []struct{ x, a int }{
		{2, 1}, {5, 3}, {10, 7}, {20, 10}, {30, 12}, {39, 14},
	}
	for _, tc := range cases {
		tc := tc
		t.Run("", func(t *testing.T) {
			t.Parallel()
			lower, upper := eng.Exact(tc.x, tc.a)
			naive := eng.Naive(tc.x, tc.a)
			if math.Abs(lower-naive) > 1e-6 {
				t.Errorf("x=%d a=%d: Exact=%v Naive=%v differ", tc.x, tc.a, lower, naive)
			}
			if lower != upper {
				t.Errorf("x=%d a=%d: Exact lower/upper disagree: %v vs %v", tc.x, tc.a, lower, upper)
			}
		})
	}
}

func TestExactTrivialBoundary(t *testing.T) {
	t.Parallel()

	tbl := mathx.NewLogGammaTable(20)
	eng := NewEngine(tbl, 20, 8)

	if lower, upper := eng.Exact(1, 0); lower != 1 || upper != 1 {
		t.Errorf("Exact(1,0) = %v,%v, want 1,1", lower, upper)
	}
	if lower, upper := eng.Exact(20, 8); lower != 1 || upper != 1 {
		t.Errorf("Exact(N,n) = %v,%v, want 1,1", lower, upper)
	}
}

func TestExactEnumerateMatchesExact(t *testing.T) {
	t.Parallel()

	const N, n1 = 40, 15
	tbl := mathx.NewLogGammaTable(N)
	eng := NewEngine(tbl, N, n1)

	cases := []struct{ x, a int }{
		{2, 1}, {5, 3}, {10, 7}, {20, 10}, {30, 12}, {39, 14},
	}
	for _, tc := range cases {
		tc := tc
		t.Run("", func(t *testing.T) {
			t.Parallel()
			fast, _ := eng.Exact(tc.x, tc.a)
			enumerate, _ := eng.ExactEnumerate(tc.x, tc.a)
			if math.Abs(fast-enumerate) > 1e-6 {
				t.Errorf("x=%d a=%d: Exact=%v ExactEnumerate=%v differ", tc.x, tc.a, fast, enumerate)
			}
		})
	}
}

func TestExactBoundedBetweenZeroAndOne(t *testing.T) {
	t.Parallel()

	tbl := mathx.NewLogGammaTable(30)
	eng := NewEngine(tbl, 30, 12)

	for x := 2; x < 30; x++ {
		maxA := x
		if maxA > 12 {
			maxA = 12
		}
		for a := 0; a <= maxA; a++ {
			p, _ := eng.Exact(x, a)
			if p < 0 || p > 1 {
				t.Fatalf("Exact(%d,%d) = %v out of [0,1]", x, a, p)
			}
		}
	}
}
