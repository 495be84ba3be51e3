package formula

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3.0, roundHalfAwayFromZero(2.5, 0))
	assert.Equal(t, -2.0, roundHalfAwayFromZero(-1.5, 0))
	assert.Equal(t, 2.3, roundHalfAwayFromZero(2.25, 1))
	assert.Equal(t, 120.0, roundHalfAwayFromZero(123.0, -1))
	assert.Equal(t, -130.0, roundHalfAwayFromZero(-125.0, -1))
}

func TestCombinationsSymmetry(t *testing.T) {
	e := testEngine()
	for n := 0.0; n <= 20; n++ {
		for k := 0.0; k <= n; k++ {
			assert.Equal(t, eval(e, "COMBIN", n, k), eval(e, "COMBIN", n, n-k),
				"COMBIN(%v,%v) should equal COMBIN(%v,%v)", n, k, n, n-k)
		}
		assert.Equal(t, 1.0, eval(e, "COMBIN", n, 0.0))
		assert.Equal(t, n, eval(e, "COMBIN", math.Max(n, 1), 1.0))
	}
	assert.Equal(t, 10.0, eval(e, "COMBIN", 5.0, 2.0))
	assertError(t, eval(e, "COMBIN", 2.0, 5.0), ErrorCodeNum)
	assertError(t, eval(e, "COMBIN", -1.0, 0.0), ErrorCodeNum)
}

func TestFactorials(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 1.0, eval(e, "FACT", 0.0))
	assert.Equal(t, 120.0, eval(e, "FACT", 5.0))
	assert.Equal(t, 120.0, eval(e, "FACT", 5.7)) // truncates
	assert.Equal(t, 48.0, eval(e, "FACTDOUBLE", 6.0))
	assert.Equal(t, 105.0, eval(e, "FACTDOUBLE", 7.0))
	assertError(t, eval(e, "FACT", -1.0), ErrorCodeNum)
	assertError(t, eval(e, "FACT", 200.0), ErrorCodeNum) // overflows float64
}

func TestPermutations(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 20.0, eval(e, "PERMUT", 5.0, 2.0))
	assert.Equal(t, 1.0, eval(e, "PERMUT", 5.0, 0.0))
	assertError(t, eval(e, "PERMUT", 2.0, 5.0), ErrorCodeNum)
}

func TestErfApproximation(t *testing.T) {
	// maximum absolute error of the rational approximation is 1.5e-7
	const tol = 1.5e-7
	assert.InDelta(t, 0.8427007929, erfApprox(1), tol)
	assert.InDelta(t, 0.5204998778, erfApprox(0.5), tol)
	assert.InDelta(t, 0.9953222650, erfApprox(2), tol)
	assert.Equal(t, 0.0, erfApprox(0))

	// odd symmetry
	for _, x := range []float64{0.1, 0.5, 1, 2, 3} {
		assert.InDelta(t, -erfApprox(x), erfApprox(-x), 1e-15)
	}

	// erfc is the complement
	for _, x := range []float64{-1, 0, 0.5, 2} {
		assert.InDelta(t, 1.0, erfApprox(x)+erfcApprox(x), 1e-15)
	}
}

func TestErfFunctions(t *testing.T) {
	e := testEngine()
	assert.InDelta(t, 0.8427007929, eval(e, "ERF", 1.0).(float64), 1.5e-7)
	// two-argument form integrates between bounds
	lo := eval(e, "ERF", 0.5, 1.0).(float64)
	assert.InDelta(t, erfApprox(1)-erfApprox(0.5), lo, 1e-15)
	assert.InDelta(t, 0.1572992071, eval(e, "ERFC", 1.0).(float64), 1.5e-7)
	assert.Equal(t, eval(e, "ERF", 1.0), eval(e, "ERF.PRECISE", 1.0))
	assert.Equal(t, eval(e, "ERFC", 1.0), eval(e, "ERFC.PRECISE", 1.0))
}

func TestGcdLcm(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 6.0, eval(e, "GCD", 12.0, 18.0))
	assert.Equal(t, 1.0, eval(e, "GCD", 7.0, 13.0))
	assert.Equal(t, 12.0, eval(e, "GCD", 12.0))
	assert.Equal(t, 36.0, eval(e, "LCM", 12.0, 18.0))
	assert.Equal(t, 0.0, eval(e, "LCM", 0.0, 5.0))
	assertError(t, eval(e, "GCD", -4.0, 2.0), ErrorCodeNum)
}
