package mathx

import "gonum.org/v1/gonum/mathext"

// UpperTail returns Pr[X >= a] for X ~ Bin(n, pi), evaluated via the
// regularized incomplete beta function: I_pi(a, n-a+1). a == 0 is the
// whole sample space.
func UpperTail(a, n int, pi float64) float64 {
	if a <= 0 {
		return 1
	}
	if a > n {
		return 0
	}
	return mathext.RegIncBeta(float64(a), float64(n-a+1), pi)
}

// LowerTail returns Pr[X <= a] for X ~ Bin(n, pi), evaluated as
// I_{1-pi}(n-a+1, a+1), the complementary tail of UpperTail(a+1, n, pi).
func LowerTail(a, n int, pi float64) float64 {
	if a >= n {
		return 1
	}
	if a < 0 {
		return 0
	}
	return mathext.RegIncBeta(float64(n-a+1), float64(a+1), 1-pi)
}
