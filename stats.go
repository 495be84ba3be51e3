package formula

import (
	"errors"
	"math"
)

// Distribution helpers backing the statistical functions. Each returns a
// plain Go error on out-of-domain parameters; the calling function bodies
// catch that and map it to #NUM! before returning, so no failure here ever
// escapes a formula evaluation.

var errDomain = errors.New("parameter out of domain")

// normalPDF is the normal density with mean mu and deviation sigma
func normalPDF(x, mu, sigma float64) (float64, error) {
	if sigma <= 0 {
		return 0, errDomain
	}
	z := (x - mu) / sigma
	return math.Exp(-z*z/2) / (sigma * math.Sqrt(2*math.Pi)), nil
}

// normalCDF is the normal cumulative distribution
func normalCDF(x, mu, sigma float64) (float64, error) {
	if sigma <= 0 {
		return 0, errDomain
	}
	return 0.5 * math.Erfc(-(x-mu)/(sigma*math.Sqrt2)), nil
}

// normalInv inverts the normal CDF using Acklam's rational approximation
// refined by one Halley step
func normalInv(p, mu, sigma float64) (float64, error) {
	if sigma <= 0 || p <= 0 || p >= 1 {
		return 0, errDomain
	}

	// Acklam coefficients
	a := [6]float64{-3.969683028665376e+01, 2.209460984245205e+02,
		-2.759285104469687e+02, 1.383577518672690e+02,
		-3.066479806614716e+01, 2.506628277459239e+00}
	b := [5]float64{-5.447609879822406e+01, 1.615858368580409e+02,
		-1.556989798598866e+02, 6.680131188771972e+01,
		-1.328068155288572e+01}
	c := [6]float64{-7.784894002430293e-03, -3.223964580411365e-01,
		-2.400758277161838e+00, -2.549732539343734e+00,
		4.374664141464968e+00, 2.938163982698783e+00}
	d := [4]float64{7.784695709041462e-03, 3.224671290700398e-01,
		2.445134137142996e+00, 3.754408661907416e+00}

	const pLow = 0.02425
	var z float64
	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		z = (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p <= 1-pLow:
		q := p - 0.5
		r := q * q
		z = (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	default:
		q := math.Sqrt(-2 * math.Log(1-p))
		z = -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	}

	// one Halley refinement step
	e := 0.5*math.Erfc(-z/math.Sqrt2) - p
	u := e * math.Sqrt(2*math.Pi) * math.Exp(z*z/2)
	z = z - u/(1+z*u/2)

	return mu + sigma*z, nil
}

// logNormalDist is the log-normal density or cumulative distribution
func logNormalDist(x, mu, sigma float64, cumulative bool) (float64, error) {
	if x <= 0 || sigma <= 0 {
		return 0, errDomain
	}
	if cumulative {
		return normalCDF(math.Log(x), mu, sigma)
	}
	pdf, err := normalPDF(math.Log(x), mu, sigma)
	if err != nil {
		return 0, err
	}
	return pdf / x, nil
}

// exponentialDist is the exponential density or cumulative distribution
func exponentialDist(x, lambda float64, cumulative bool) (float64, error) {
	if x < 0 || lambda <= 0 {
		return 0, errDomain
	}
	if cumulative {
		return 1 - math.Exp(-lambda*x), nil
	}
	return lambda * math.Exp(-lambda*x), nil
}

// weibullDist is the Weibull density or cumulative distribution
func weibullDist(x, shape, scale float64, cumulative bool) (float64, error) {
	if x < 0 || shape <= 0 || scale <= 0 {
		return 0, errDomain
	}
	t := math.Pow(x/scale, shape)
	if cumulative {
		return 1 - math.Exp(-t), nil
	}
	if x == 0 {
		if shape < 1 {
			return 0, errDomain
		}
		if shape == 1 {
			return 1 / scale, nil
		}
		return 0, nil
	}
	return shape / scale * math.Pow(x/scale, shape-1) * math.Exp(-t), nil
}

// incompleteGamma is the regularized lower incomplete gamma P(a, x),
// computed by series expansion for x < a+1 and continued fraction
// otherwise (the classic gser/gcf split)
func incompleteGamma(a, x float64) (float64, error) {
	if a <= 0 || x < 0 {
		return 0, errDomain
	}
	if x == 0 {
		return 0, nil
	}
	lg, _ := math.Lgamma(a)
	if x < a+1 {
		// series representation
		sum := 1.0 / a
		term := sum
		ap := a
		for i := 0; i < 200; i++ {
			ap++
			term *= x / ap
			sum += term
			if math.Abs(term) < math.Abs(sum)*1e-15 {
				break
			}
		}
		return sum * math.Exp(-x+a*math.Log(x)-lg), nil
	}
	// continued fraction representation
	const tiny = 1e-300
	b := x + 1 - a
	c := 1 / tiny
	d := 1 / b
	h := d
	for i := 1; i < 200; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < tiny {
			d = tiny
		}
		c = b + an/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < 1e-15 {
			break
		}
	}
	return 1 - math.Exp(-x+a*math.Log(x)-lg)*h, nil
}

// chiSquareCDF is the chi-square cumulative distribution with df degrees
// of freedom
func chiSquareCDF(x, df float64) (float64, error) {
	if x < 0 || df < 1 {
		return 0, errDomain
	}
	return incompleteGamma(df/2, x/2)
}

// chiSquareInvRT inverts the right-tailed chi-square distribution by
// bisection over the CDF
func chiSquareInvRT(p, df float64) (float64, error) {
	if p <= 0 || p > 1 || df < 1 {
		return 0, errDomain
	}
	lo, hi := 0.0, df
	for {
		cdf, err := chiSquareCDF(hi, df)
		if err != nil {
			return 0, err
		}
		if 1-cdf <= p || hi > 1e12 {
			break
		}
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		cdf, err := chiSquareCDF(mid, df)
		if err != nil {
			return 0, err
		}
		if 1-cdf > p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

// incompleteBeta is the regularized incomplete beta I_x(a, b), computed
// with the symmetric continued fraction
func incompleteBeta(x, a, b float64) (float64, error) {
	if a <= 0 || b <= 0 || x < 0 || x > 1 {
		return 0, errDomain
	}
	if x == 0 || x == 1 {
		return x, nil
	}
	lga, _ := math.Lgamma(a)
	lgb, _ := math.Lgamma(b)
	lgab, _ := math.Lgamma(a + b)
	front := math.Exp(lgab - lga - lgb + a*math.Log(x) + b*math.Log(1-x))
	if x < (a+1)/(a+b+2) {
		return front * betaContinuedFraction(x, a, b) / a, nil
	}
	cf := betaContinuedFraction(1-x, b, a)
	return 1 - front*cf/b, nil
}

// betaContinuedFraction evaluates the Lentz continued fraction for the
// incomplete beta function
func betaContinuedFraction(x, a, b float64) float64 {
	const tiny = 1e-300
	c := 1.0
	d := 1 - (a+b)*x/(a+1)
	if math.Abs(d) < tiny {
		d = tiny
	}
	d = 1 / d
	h := d
	for m := 1; m <= 200; m++ {
		fm := float64(m)
		// even step
		num := fm * (b - fm) * x / ((a + 2*fm - 1) * (a + 2*fm))
		d = 1 + num*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		d = 1 / d
		c = 1 + num/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		h *= d * c
		// odd step
		num = -(a + fm) * (a + b + fm) * x / ((a + 2*fm) * (a + 2*fm + 1))
		d = 1 + num*d
		if math.Abs(d) < tiny {
			d = tiny
		}
		d = 1 / d
		c = 1 + num/c
		if math.Abs(c) < tiny {
			c = tiny
		}
		del := d * c
		h *= del
		if math.Abs(del-1) < 1e-15 {
			break
		}
	}
	return h
}

// betaDist is the beta density or cumulative distribution on [0, 1]
func betaDist(x, a, b float64, cumulative bool) (float64, error) {
	if a <= 0 || b <= 0 || x < 0 || x > 1 {
		return 0, errDomain
	}
	if cumulative {
		return incompleteBeta(x, a, b)
	}
	lga, _ := math.Lgamma(a)
	lgb, _ := math.Lgamma(b)
	lgab, _ := math.Lgamma(a + b)
	return math.Exp(lgab - lga - lgb + (a-1)*math.Log(x) + (b-1)*math.Log(1-x)), nil
}

// betaInv inverts the beta CDF by bisection
func betaInv(p, a, b float64) (float64, error) {
	if p < 0 || p > 1 || a <= 0 || b <= 0 {
		return 0, errDomain
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		cdf, err := incompleteBeta(mid, a, b)
		if err != nil {
			return 0, err
		}
		if cdf < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

// binomialDist is the binomial mass or cumulative distribution
func binomialDist(k, n int64, p float64, cumulative bool) (float64, error) {
	if n < 0 || k < 0 || k > n || p < 0 || p > 1 {
		return 0, errDomain
	}
	pmf := func(k int64) (float64, error) {
		comb, err := combinations(n, k)
		if err != nil {
			return 0, errDomain
		}
		return comb * math.Pow(p, float64(k)) * math.Pow(1-p, float64(n-k)), nil
	}
	if !cumulative {
		return pmf(k)
	}
	sum := 0.0
	for i := int64(0); i <= k; i++ {
		v, err := pmf(i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

// negBinomialDist is the negative binomial mass or cumulative
// distribution: the probability of k failures before the r-th success
func negBinomialDist(k, r int64, p float64, cumulative bool) (float64, error) {
	if k < 0 || r < 1 || p <= 0 || p > 1 {
		return 0, errDomain
	}
	pmf := func(k int64) (float64, error) {
		comb, err := combinations(k+r-1, r-1)
		if err != nil {
			return 0, errDomain
		}
		return comb * math.Pow(p, float64(r)) * math.Pow(1-p, float64(k)), nil
	}
	if !cumulative {
		return pmf(k)
	}
	sum := 0.0
	for i := int64(0); i <= k; i++ {
		v, err := pmf(i)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}
