package formula

import "math"

// Statistical functions delegate their numerics to the distribution
// helpers; any out-of-domain failure there is caught here and mapped to
// #NUM! so nothing escapes as a Go error.
func (e *Engine) registerStatistical() {
	e.register(&Function{
		Name: "NORM.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			mu, err := numberArg(args[1])
			if err != nil {
				return err
			}
			sigma, err := numberArg(args[2])
			if err != nil {
				return err
			}
			var result float64
			var derr error
			if isTruthy(args[3]) {
				result, derr = normalCDF(x, mu, sigma)
			} else {
				result, derr = normalPDF(x, mu, sigma)
			}
			if derr != nil {
				return errNum("NORM.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "NORM.S.DIST", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			z, err := numberArg(args[0])
			if err != nil {
				return err
			}
			var result float64
			var derr error
			if isTruthy(args[1]) {
				result, derr = normalCDF(z, 0, 1)
			} else {
				result, derr = normalPDF(z, 0, 1)
			}
			if derr != nil {
				return errNum("NORM.S.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "NORM.INV", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			p, err := numberArg(args[0])
			if err != nil {
				return err
			}
			mu, err := numberArg(args[1])
			if err != nil {
				return err
			}
			sigma, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := normalInv(p, mu, sigma)
			if derr != nil {
				return errNum("NORM.INV parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "NORM.S.INV", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			p, err := numberArg(args[0])
			if err != nil {
				return err
			}
			result, derr := normalInv(p, 0, 1)
			if derr != nil {
				return errNum("NORM.S.INV parameter out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "LOGNORM.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			mu, err := numberArg(args[1])
			if err != nil {
				return err
			}
			sigma, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := logNormalDist(x, mu, sigma, isTruthy(args[3]))
			if derr != nil {
				return errNum("LOGNORM.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "EXPON.DIST", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			lambda, err := numberArg(args[1])
			if err != nil {
				return err
			}
			result, derr := exponentialDist(x, lambda, isTruthy(args[2]))
			if derr != nil {
				return errNum("EXPON.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "WEIBULL.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			shape, err := numberArg(args[1])
			if err != nil {
				return err
			}
			scale, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := weibullDist(x, shape, scale, isTruthy(args[3]))
			if derr != nil {
				return errNum("WEIBULL.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "CHISQ.DIST.RT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			df, err := numberArg(args[1])
			if err != nil {
				return err
			}
			cdf, derr := chiSquareCDF(x, math.Trunc(df))
			if derr != nil {
				return errNum("CHISQ.DIST.RT parameters out of domain")
			}
			return 1 - cdf
		},
	})

	e.register(&Function{
		Name: "CHISQ.INV.RT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			p, err := numberArg(args[0])
			if err != nil {
				return err
			}
			df, err := numberArg(args[1])
			if err != nil {
				return err
			}
			result, derr := chiSquareInvRT(p, math.Trunc(df))
			if derr != nil {
				return errNum("CHISQ.INV.RT parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "BETA.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			alpha, err := numberArg(args[1])
			if err != nil {
				return err
			}
			beta, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := betaDist(x, alpha, beta, isTruthy(args[3]))
			if derr != nil {
				return errNum("BETA.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "BETA.INV", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			p, err := numberArg(args[0])
			if err != nil {
				return err
			}
			alpha, err := numberArg(args[1])
			if err != nil {
				return err
			}
			beta, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := betaInv(p, alpha, beta)
			if derr != nil {
				return errNum("BETA.INV parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "BINOM.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			k, err := toInt(args[0])
			if err != nil {
				return err
			}
			n, err := toInt(args[1])
			if err != nil {
				return err
			}
			p, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := binomialDist(k, n, p, isTruthy(args[3]))
			if derr != nil {
				return errNum("BINOM.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "NEGBINOM.DIST", MinArgs: 4, MaxArgs: 4,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			k, err := toInt(args[0])
			if err != nil {
				return err
			}
			r, err := toInt(args[1])
			if err != nil {
				return err
			}
			p, err := numberArg(args[2])
			if err != nil {
				return err
			}
			result, derr := negBinomialDist(k, r, p, isTruthy(args[3]))
			if derr != nil {
				return errNum("NEGBINOM.DIST parameters out of domain")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "GAMMA", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			if x == 0 || (x < 0 && x == math.Trunc(x)) {
				return errNum("GAMMA at a non-positive integer")
			}
			result := math.Gamma(x)
			if math.IsInf(result, 0) || math.IsNaN(result) {
				return errNum("GAMMA overflow")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "GAMMALN", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			if x <= 0 {
				return errNum("GAMMALN of a non-positive number")
			}
			result, _ := math.Lgamma(x)
			return result
		},
	})

	variance := func(args []Primitive, population bool) Primitive {
		nums, err := aggregateNumbers(args)
		if err != nil {
			return err
		}
		minCount := 2
		if population {
			minCount = 1
		}
		if len(nums) < minCount {
			return errDiv0("not enough values for variance")
		}
		mean := 0.0
		for _, num := range nums {
			mean += num
		}
		mean /= float64(len(nums))
		sumSq := 0.0
		for _, num := range nums {
			d := num - mean
			sumSq += d * d
		}
		if population {
			return sumSq / float64(len(nums))
		}
		return sumSq / float64(len(nums)-1)
	}

	e.register(&Function{
		Name: "VAR.S", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return variance(args, false)
		},
	})

	e.register(&Function{
		Name: "VAR.P", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return variance(args, true)
		},
	})

	stdev := func(args []Primitive, population bool) Primitive {
		v := variance(args, population)
		if num, ok := v.(float64); ok {
			return math.Sqrt(num)
		}
		return v
	}

	e.register(&Function{
		Name: "STDEV.S", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return stdev(args, false)
		},
	})

	e.register(&Function{
		Name: "STDEV.P", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return stdev(args, true)
		},
	})
}
