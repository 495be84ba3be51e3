package formula

import (
	"math"
	"sort"
)

// numberArg coerces a single argument for an arithmetic function
func numberArg(arg Primitive) (float64, *FormulaError) {
	return toNumber(arg)
}

// aggregateNumbers coerces every argument of an aggregate. Empty cells are
// skipped rather than counted as zero so AVERAGE divides by the number of
// populated inputs.
func aggregateNumbers(args []Primitive) ([]float64, *FormulaError) {
	nums := make([]float64, 0, len(args))
	for _, arg := range args {
		if isEmpty(arg) {
			continue
		}
		num, err := toNumber(arg)
		if err != nil {
			return nil, err
		}
		nums = append(nums, num)
	}
	return nums, nil
}

func (e *Engine) registerMath() {
	oneNumber := func(name string, fn func(x float64) Primitive) *Function {
		return &Function{
			Name: name, MinArgs: 1, MaxArgs: 1,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				num, err := numberArg(args[0])
				if err != nil {
					return err
				}
				return fn(num)
			},
		}
	}

	e.register(oneNumber("ABS", func(x float64) Primitive { return math.Abs(x) }))
	e.register(oneNumber("SIGN", func(x float64) Primitive {
		if x > 0 {
			return 1.0
		}
		if x < 0 {
			return -1.0
		}
		return 0.0
	}))
	e.register(oneNumber("INT", func(x float64) Primitive { return math.Floor(x) }))
	e.register(oneNumber("EXP", func(x float64) Primitive { return math.Exp(x) }))
	e.register(oneNumber("LN", func(x float64) Primitive {
		if x <= 0 {
			return errNum("LN of a non-positive number")
		}
		return math.Log(x)
	}))
	e.register(oneNumber("LOG10", func(x float64) Primitive {
		if x <= 0 {
			return errNum("LOG10 of a non-positive number")
		}
		return math.Log10(x)
	}))
	e.register(oneNumber("SQRT", func(x float64) Primitive {
		if x < 0 {
			return errNum("SQRT of a negative number")
		}
		return math.Sqrt(x)
	}))
	e.register(oneNumber("SQRTPI", func(x float64) Primitive {
		if x < 0 {
			return errNum("SQRTPI of a negative number")
		}
		return math.Sqrt(x * math.Pi)
	}))
	e.register(oneNumber("DEGREES", func(x float64) Primitive { return x * 180 / math.Pi }))
	e.register(oneNumber("RADIANS", func(x float64) Primitive { return x * math.Pi / 180 }))

	// EVEN and ODD round away from zero to the next integer of the
	// requested parity
	e.register(oneNumber("EVEN", func(x float64) Primitive {
		n := math.Ceil(math.Abs(x))
		if math.Mod(n, 2) != 0 {
			n++
		}
		return math.Copysign(n, x)
	}))
	e.register(oneNumber("ODD", func(x float64) Primitive {
		n := math.Ceil(math.Abs(x))
		if math.Mod(n, 2) == 0 {
			n++
		}
		return math.Copysign(n, x)
	}))

	e.register(&Function{
		Name: "TRUNC", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			places := 0.0
			if len(args) == 2 {
				places, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			multiplier := math.Pow(10, math.Trunc(places))
			return math.Trunc(num*multiplier) / multiplier
		},
	})

	e.register(&Function{
		Name: "ROUND", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			places := 0.0
			if len(args) == 2 {
				places, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			return roundHalfAwayFromZero(num, places)
		},
	})

	e.register(&Function{
		Name: "ROUNDUP", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			places, err := numberArg(args[1])
			if err != nil {
				return err
			}
			multiplier := math.Pow(10, math.Trunc(places))
			return math.Copysign(math.Ceil(math.Abs(num)*multiplier)/multiplier, num)
		},
	})

	e.register(&Function{
		Name: "ROUNDDOWN", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			places, err := numberArg(args[1])
			if err != nil {
				return err
			}
			multiplier := math.Pow(10, math.Trunc(places))
			return math.Copysign(math.Floor(math.Abs(num)*multiplier)/multiplier, num)
		},
	})

	e.register(&Function{
		Name: "CEILING", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			significance := 1.0
			if len(args) == 2 {
				significance, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			if significance == 0 {
				return 0.0
			}
			if num > 0 && significance < 0 {
				return errNum("CEILING: mismatched signs")
			}
			return math.Ceil(num/significance) * significance
		},
	})

	e.register(&Function{
		Name: "FLOOR", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			significance := 1.0
			if len(args) == 2 {
				significance, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			if significance == 0 {
				return errDiv0("FLOOR: zero significance")
			}
			if num > 0 && significance < 0 {
				return errNum("FLOOR: mismatched signs")
			}
			return math.Floor(num/significance) * significance
		},
	})

	e.register(&Function{
		Name: "POWER", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			base, err := numberArg(args[0])
			if err != nil {
				return err
			}
			exp, err := numberArg(args[1])
			if err != nil {
				return err
			}
			result := math.Pow(base, exp)
			if math.IsNaN(result) || math.IsInf(result, 0) {
				return errNum("POWER result out of range")
			}
			return result
		},
	})

	e.register(&Function{
		Name: "LOG", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, err := numberArg(args[0])
			if err != nil {
				return err
			}
			base := 10.0
			if len(args) == 2 {
				base, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			if num <= 0 || base <= 0 || base == 1 {
				return errNum("LOG out of domain")
			}
			return math.Log(num) / math.Log(base)
		},
	})

	e.register(&Function{
		Name: "MOD", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			dividend, err := numberArg(args[0])
			if err != nil {
				return err
			}
			divisor, err := numberArg(args[1])
			if err != nil {
				return err
			}
			if divisor == 0 {
				return errDiv0("MOD: division by zero")
			}
			// result carries the divisor's sign
			m := math.Mod(dividend, divisor)
			if m != 0 && (m < 0) != (divisor < 0) {
				m += divisor
			}
			return m
		},
	})

	e.register(&Function{
		Name: "QUOTIENT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			dividend, err := numberArg(args[0])
			if err != nil {
				return err
			}
			divisor, err := numberArg(args[1])
			if err != nil {
				return err
			}
			if divisor == 0 {
				return errDiv0("QUOTIENT: division by zero")
			}
			return math.Trunc(dividend / divisor)
		},
	})

	e.register(&Function{
		Name: "PI", MinArgs: 0, MaxArgs: 0,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return math.Pi
		},
	})

	e.register(&Function{
		Name: "SUM", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			sum := 0.0
			for _, num := range nums {
				sum += num
			}
			return sum
		},
	})

	e.register(&Function{
		Name: "PRODUCT", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			product := 1.0
			for _, num := range nums {
				product *= num
			}
			return product
		},
	})

	e.register(&Function{
		Name: "AVERAGE", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			if len(nums) == 0 {
				return errDiv0("AVERAGE of no values")
			}
			sum := 0.0
			for _, num := range nums {
				sum += num
			}
			return sum / float64(len(nums))
		},
	})

	e.register(&Function{
		Name: "MIN", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			if len(nums) == 0 {
				return 0.0
			}
			min := nums[0]
			for _, num := range nums[1:] {
				if num < min {
					min = num
				}
			}
			return min
		},
	})

	e.register(&Function{
		Name: "MAX", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			if len(nums) == 0 {
				return 0.0
			}
			max := nums[0]
			for _, num := range nums[1:] {
				if num > max {
					max = num
				}
			}
			return max
		},
	})

	e.register(&Function{
		Name: "MEDIAN", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			nums, err := aggregateNumbers(args)
			if err != nil {
				return err
			}
			if len(nums) == 0 {
				return errNum("MEDIAN of no values")
			}
			sort.Float64s(nums)
			mid := len(nums) / 2
			if len(nums)%2 == 0 {
				return (nums[mid-1] + nums[mid]) / 2
			}
			return nums[mid]
		},
	})

	// COUNT counts only numeric arguments, skipping everything else
	// including errors, so it is declared inspecting
	e.register(&Function{
		Name: "COUNT", MinArgs: 1, MaxArgs: Variadic, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			count := 0
			for _, arg := range args {
				if _, ok := arg.(float64); ok {
					count++
				}
			}
			return float64(count)
		},
	})

	// COUNTA counts every non-empty argument, errors included
	e.register(&Function{
		Name: "COUNTA", MinArgs: 1, MaxArgs: Variadic, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			count := 0
			for _, arg := range args {
				if !isEmpty(arg) {
					count++
				}
			}
			return float64(count)
		},
	})

	e.register(&Function{
		Name: "FACT", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			result, ferr := factorial(n)
			if ferr != nil {
				return ferr
			}
			return result
		},
	})

	e.register(&Function{
		Name: "FACTDOUBLE", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			result, ferr := factorialDouble(n)
			if ferr != nil {
				return ferr
			}
			return result
		},
	})

	e.register(&Function{
		Name: "COMBIN", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			k, err := toInt(args[1])
			if err != nil {
				return err
			}
			result, cerr := combinations(n, k)
			if cerr != nil {
				return cerr
			}
			return result
		},
	})

	// COMBINA counts combinations with repetition: C(n+k-1, k)
	e.register(&Function{
		Name: "COMBINA", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			k, err := toInt(args[1])
			if err != nil {
				return err
			}
			if n == 0 && k == 0 {
				return 1.0
			}
			if n < 1 || k < 0 {
				return errNum("COMBINA out of domain")
			}
			result, cerr := combinations(n+k-1, k)
			if cerr != nil {
				return cerr
			}
			return result
		},
	})

	e.register(&Function{
		Name: "PERMUT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			k, err := toInt(args[1])
			if err != nil {
				return err
			}
			result, perr := permutations(n, k)
			if perr != nil {
				return perr
			}
			return result
		},
	})

	// MULTINOMIAL computes (sum ni)! / prod(ni!) by interleaved
	// multiply/divide so intermediate factorials never overflow first
	e.register(&Function{
		Name: "MULTINOMIAL", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			result := 1.0
			total := int64(0)
			for _, arg := range args {
				n, err := toInt(arg)
				if err != nil {
					return err
				}
				if n < 0 {
					return errNum("MULTINOMIAL of a negative number")
				}
				for i := int64(1); i <= n; i++ {
					total++
					result = result * float64(total) / float64(i)
					if math.IsInf(result, 0) {
						return errNum("MULTINOMIAL overflow")
					}
				}
			}
			return math.Round(result)
		},
	})

	e.register(&Function{
		Name: "GCD", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			g := int64(0)
			for _, arg := range args {
				n, err := toInt(arg)
				if err != nil {
					return err
				}
				if n < 0 {
					return errNum("GCD of a negative number")
				}
				g = gcdInt(g, n)
			}
			return float64(g)
		},
	})

	e.register(&Function{
		Name: "LCM", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			l := int64(1)
			for _, arg := range args {
				n, err := toInt(arg)
				if err != nil {
					return err
				}
				if n < 0 {
					return errNum("LCM of a negative number")
				}
				if n == 0 {
					return 0.0
				}
				l = l / gcdInt(l, n) * n
				if l < 0 {
					return errNum("LCM overflow")
				}
			}
			return float64(l)
		},
	})

	e.register(&Function{
		Name: "RAND", MinArgs: 0, MaxArgs: 0, Volatile: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return e.rng.Float64()
		},
	})

	e.register(&Function{
		Name: "RANDBETWEEN", MinArgs: 2, MaxArgs: 2, Volatile: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			lo, err := toInt(args[0])
			if err != nil {
				return err
			}
			hi, err := toInt(args[1])
			if err != nil {
				return err
			}
			if hi < lo {
				return errNum("RANDBETWEEN: bottom exceeds top")
			}
			span := float64(hi - lo + 1)
			return float64(lo) + math.Floor(e.rng.Float64()*span)
		},
	})
}
