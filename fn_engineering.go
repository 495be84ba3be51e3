package formula

import (
	"math"
	"strings"
)

func (e *Engine) registerEngineering() {
	// BASE(n, radix, [minLength]) renders a non-negative integer in an
	// arbitrary radix 2-36 with digits 0-9A-Z
	e.register(&Function{
		Name: "BASE", MinArgs: 2, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			radix, err := toInt(args[1])
			if err != nil {
				return err
			}
			if n < 0 || radix < 2 || radix > 36 {
				return errNum("BASE out of domain")
			}
			s := encodeRadix(n, int(radix))
			if len(args) == 3 {
				minLength, err := toInt(args[2])
				if err != nil {
					return err
				}
				if minLength < 0 {
					return errNum("BASE: negative minimum length")
				}
				if int64(len(s)) < minLength {
					s = strings.Repeat("0", int(minLength)-len(s)) + s
				}
			}
			return s
		},
	})

	e.register(&Function{
		Name: "DECIMAL", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			radix, err := toInt(args[1])
			if err != nil {
				return err
			}
			if radix < 2 || radix > 36 {
				return errNum("DECIMAL: radix out of range")
			}
			n, derr := decodeRadix(toText(args[0]), int(radix))
			if derr != nil {
				return derr
			}
			return float64(n)
		},
	})

	// the *2* family converts between fixed-width two's-complement
	// positional formats
	radixPair := func(name string, fromRadix, toRadix int) *Function {
		return &Function{
			Name: name, MinArgs: 1, MaxArgs: 2,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				n, err := decodeSigned(toText(args[0]), fromRadix)
				if err != nil {
					return err
				}
				if toRadix == 10 {
					return float64(n)
				}
				places := -1
				if len(args) == 2 {
					p, err := toInt(args[1])
					if err != nil {
						return err
					}
					if p < 1 || p > 10 {
						return errNum(name + ": places out of range")
					}
					places = int(p)
				}
				s, eerr := encodeSigned(n, toRadix, places)
				if eerr != nil {
					return eerr
				}
				return s
			},
		}
	}

	fromDecimal := func(name string, toRadix int) *Function {
		return &Function{
			Name: name, MinArgs: 1, MaxArgs: 2,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				n, err := toInt(args[0])
				if err != nil {
					return err
				}
				places := -1
				if len(args) == 2 {
					p, err := toInt(args[1])
					if err != nil {
						return err
					}
					if p < 1 || p > 10 {
						return errNum(name + ": places out of range")
					}
					places = int(p)
				}
				s, eerr := encodeSigned(n, toRadix, places)
				if eerr != nil {
					return eerr
				}
				return s
			},
		}
	}

	e.register(fromDecimal("DEC2BIN", 2))
	e.register(fromDecimal("DEC2OCT", 8))
	e.register(fromDecimal("DEC2HEX", 16))
	e.register(radixPair("BIN2DEC", 2, 10))
	e.register(radixPair("BIN2OCT", 2, 8))
	e.register(radixPair("BIN2HEX", 2, 16))
	e.register(radixPair("OCT2BIN", 8, 2))
	e.register(radixPair("OCT2DEC", 8, 10))
	e.register(radixPair("OCT2HEX", 8, 16))
	e.register(radixPair("HEX2BIN", 16, 2))
	e.register(radixPair("HEX2OCT", 16, 8))
	e.register(radixPair("HEX2DEC", 16, 10))

	e.register(&Function{
		Name: "BITAND", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			a, err := bitOperand(args[0])
			if err != nil {
				return err
			}
			b, err := bitOperand(args[1])
			if err != nil {
				return err
			}
			return float64(a & b)
		},
	})

	e.register(&Function{
		Name: "BITOR", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			a, err := bitOperand(args[0])
			if err != nil {
				return err
			}
			b, err := bitOperand(args[1])
			if err != nil {
				return err
			}
			return float64(a | b)
		},
	})

	e.register(&Function{
		Name: "BITXOR", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			a, err := bitOperand(args[0])
			if err != nil {
				return err
			}
			b, err := bitOperand(args[1])
			if err != nil {
				return err
			}
			return float64(a ^ b)
		},
	})

	e.register(&Function{
		Name: "BITLSHIFT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := bitOperand(args[0])
			if err != nil {
				return err
			}
			amount, err := toInt(args[1])
			if err != nil {
				return err
			}
			return shiftBits(n, amount)
		},
	})

	e.register(&Function{
		Name: "BITRSHIFT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := bitOperand(args[0])
			if err != nil {
				return err
			}
			amount, err := toInt(args[1])
			if err != nil {
				return err
			}
			return shiftBits(n, -amount)
		},
	})

	e.register(&Function{
		Name: "DELTA", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			a, err := numberArg(args[0])
			if err != nil {
				return err
			}
			b := 0.0
			if len(args) == 2 {
				b, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			if a == b {
				return 1.0
			}
			return 0.0
		},
	})

	e.register(&Function{
		Name: "GESTEP", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			a, err := numberArg(args[0])
			if err != nil {
				return err
			}
			step := 0.0
			if len(args) == 2 {
				step, err = numberArg(args[1])
				if err != nil {
					return err
				}
			}
			if a >= step {
				return 1.0
			}
			return 0.0
		},
	})

	erf := &Function{
		Name: "ERF", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			lower, err := numberArg(args[0])
			if err != nil {
				return err
			}
			if len(args) == 2 {
				upper, err := numberArg(args[1])
				if err != nil {
					return err
				}
				return erfApprox(upper) - erfApprox(lower)
			}
			return erfApprox(lower)
		},
	}
	e.register(erf)
	e.register(&Function{
		Name: "ERF.PRECISE", MinArgs: 1, MaxArgs: 1,
		Call: erf.Call,
	})

	erfc := &Function{
		Name: "ERFC", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			x, err := numberArg(args[0])
			if err != nil {
				return err
			}
			return erfcApprox(x)
		},
	}
	e.register(erfc)
	e.register(&Function{
		Name: "ERFC.PRECISE", MinArgs: 1, MaxArgs: 1,
		Call: erfc.Call,
	})

	e.register(&Function{
		Name: "COMPLEX", MinArgs: 2, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			re, err := numberArg(args[0])
			if err != nil {
				return err
			}
			im, err := numberArg(args[1])
			if err != nil {
				return err
			}
			suffix := "i"
			if len(args) == 3 {
				suffix = toText(args[2])
				if suffix != "i" && suffix != "j" {
					return errValue("COMPLEX: suffix must be i or j")
				}
			}
			return formatComplex(complexNumber{real: re, imag: im, suffix: suffix})
		},
	})

	e.register(&Function{
		Name: "IMREAL", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			c, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			return c.real
		},
	})

	e.register(&Function{
		Name: "IMAGINARY", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			c, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			return c.imag
		},
	})

	e.register(&Function{
		Name: "IMABS", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			c, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			return complexAbs(c)
		},
	})

	e.register(&Function{
		Name: "IMARGUMENT", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			c, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			if c.real == 0 && c.imag == 0 {
				return errDiv0("IMARGUMENT of zero")
			}
			return math.Atan2(c.imag, c.real)
		},
	})

	e.register(&Function{
		Name: "IMCONJUGATE", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			c, err := parseComplex(args[0])
			if err != nil {
				return err
			}
			c.imag = -c.imag
			return formatComplex(c)
		},
	})

	e.register(&Function{
		Name: "IMSUM", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			operands, suffix, err := complexOperands(args)
			if err != nil {
				return err
			}
			sum := complexNumber{suffix: suffix}
			for _, c := range operands {
				sum = complexAdd(sum, c)
			}
			return formatComplex(sum)
		},
	})

	e.register(&Function{
		Name: "IMSUB", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			operands, suffix, err := complexOperands(args)
			if err != nil {
				return err
			}
			result := complexSub(operands[0], operands[1])
			result.suffix = suffix
			return formatComplex(result)
		},
	})

	e.register(&Function{
		Name: "IMPRODUCT", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			operands, suffix, err := complexOperands(args)
			if err != nil {
				return err
			}
			product := complexNumber{real: 1, suffix: suffix}
			for _, c := range operands {
				product = complexMul(product, c)
			}
			return formatComplex(product)
		},
	})

	e.register(&Function{
		Name: "IMDIV", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			operands, suffix, err := complexOperands(args)
			if err != nil {
				return err
			}
			result, derr := complexDiv(operands[0], operands[1])
			if derr != nil {
				return derr
			}
			result.suffix = suffix
			return formatComplex(result)
		},
	})
}
