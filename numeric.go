package formula

import "math"

// roundHalfAwayFromZero rounds to the given number of decimal places with
// halves moving away from zero, the host application's ROUND behavior
func roundHalfAwayFromZero(num float64, places float64) float64 {
	multiplier := math.Pow(10, math.Trunc(places))
	return math.Round(num*multiplier) / multiplier
}

// combinations computes C(n, k) by running multiply/divide instead of
// forming raw factorials, checking after each step so overflow surfaces
// as an explicit failure rather than a silently wrong value
func combinations(n, k int64) (float64, *FormulaError) {
	if k < 0 || n < 0 || k > n {
		return 0, errNum("combinations out of domain")
	}
	if k > n-k {
		k = n - k
	}
	result := 1.0
	for i := int64(1); i <= k; i++ {
		result = result * float64(n-k+i) / float64(i)
		if math.IsInf(result, 0) {
			return 0, errNum("combinations overflow")
		}
	}
	return math.Round(result), nil
}

// permutations computes P(n, k) iteratively with the same overflow check
func permutations(n, k int64) (float64, *FormulaError) {
	if k < 0 || n < 0 || k > n {
		return 0, errNum("permutations out of domain")
	}
	result := 1.0
	for i := int64(0); i < k; i++ {
		result *= float64(n - i)
		if math.IsInf(result, 0) {
			return 0, errNum("permutations overflow")
		}
	}
	return result, nil
}

// factorial computes n! iteratively, failing on overflow
func factorial(n int64) (float64, *FormulaError) {
	if n < 0 {
		return 0, errNum("factorial of a negative number")
	}
	result := 1.0
	for i := int64(2); i <= n; i++ {
		result *= float64(i)
		if math.IsInf(result, 0) {
			return 0, errNum("factorial overflow")
		}
	}
	return result, nil
}

// factorialDouble computes n!! (product of same-parity terms down to 1)
func factorialDouble(n int64) (float64, *FormulaError) {
	if n < 0 {
		return 0, errNum("double factorial of a negative number")
	}
	result := 1.0
	for i := n; i > 1; i -= 2 {
		result *= float64(i)
		if math.IsInf(result, 0) {
			return 0, errNum("double factorial overflow")
		}
	}
	return result, nil
}

// Abramowitz and Stegun 7.1.26 rational approximation coefficients,
// accurate to about 1.5e-7
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// erfApprox evaluates the error function by reflecting |x| through the
// rational approximation and restoring the sign on the result
func erfApprox(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)
	return sign * y
}

// erfcApprox is the complement 1 - erf(x)
func erfcApprox(x float64) float64 {
	return 1.0 - erfApprox(x)
}

// gcdInt computes the greatest common divisor of two non-negative integers
func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
