package formula

import "math"

// The IS* family inspects its argument instead of propagating it: an error
// value is data to be classified, and an unrelated type answers false
// rather than raising a new error.
func (e *Engine) registerInformation() {
	e.register(&Function{
		Name: "ISBLANK", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return isEmpty(args[0])
		},
	})

	// ISERR is true for any error except #N/A
	e.register(&Function{
		Name: "ISERR", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			err := checkForError(args[0])
			return err != nil && err.ErrorCode != ErrorCodeNA
		},
	})

	e.register(&Function{
		Name: "ISERROR", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return checkForError(args[0]) != nil
		},
	})

	e.register(&Function{
		Name: "ISNA", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			err := checkForError(args[0])
			return err != nil && err.ErrorCode == ErrorCodeNA
		},
	})

	e.register(&Function{
		Name: "ISLOGICAL", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			_, ok := args[0].(bool)
			return ok
		},
	})

	e.register(&Function{
		Name: "ISNUMBER", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			_, ok := args[0].(float64)
			return ok
		},
	})

	e.register(&Function{
		Name: "ISTEXT", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			_, ok := args[0].(string)
			return ok
		},
	})

	e.register(&Function{
		Name: "ISNONTEXT", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			_, ok := args[0].(string)
			return !ok
		},
	})

	e.register(&Function{
		Name: "ISEVEN", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, ok := args[0].(float64)
			if !ok {
				return false
			}
			return int64(math.Trunc(num))%2 == 0
		},
	})

	e.register(&Function{
		Name: "ISODD", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			num, ok := args[0].(float64)
			if !ok {
				return false
			}
			return int64(math.Trunc(num))%2 != 0
		},
	})

	// ISREF and ISFORMULA answer conservatively: the evaluation context
	// does not yet expose reference identity or formula text for other
	// cells, a documented integration gap rather than an engine defect
	e.register(&Function{
		Name: "ISREF", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return false
		},
	})

	e.register(&Function{
		Name: "ISFORMULA", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return false
		},
	})

	e.register(&Function{
		Name: "FORMULATEXT", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return errNA("FORMULATEXT: formula text is not exposed to the engine")
		},
	})

	e.register(&Function{
		Name: "NA", MinArgs: 0, MaxArgs: 0,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return errNA("")
		},
	})

	// N converts to the numeric interpretation: numbers pass through,
	// TRUE is 1, everything else is 0
	e.register(&Function{
		Name: "N", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			switch v := args[0].(type) {
			case float64:
				return v
			case bool:
				if v {
					return 1.0
				}
				return 0.0
			default:
				return 0.0
			}
		},
	})

	// TYPE reports 1=number, 2=text, 4=logical, 16=error
	e.register(&Function{
		Name: "TYPE", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			switch args[0].(type) {
			case float64, nil:
				return 1.0
			case string:
				return 2.0
			case bool:
				return 4.0
			case *FormulaError:
				return 16.0
			default:
				return 1.0
			}
		},
	})

	// ERROR.TYPE translates an error value into its integer code 1-8,
	// with 7 the fallback for anything unrecognized. A non-error
	// argument has no error type and answers #N/A.
	e.register(&Function{
		Name: "ERROR.TYPE", MinArgs: 1, MaxArgs: 1, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			err := checkForError(args[0])
			if err == nil {
				return errNA("ERROR.TYPE: argument is not an error")
			}
			if _, known := ErrorMapper[err.ErrorCode]; !known {
				return float64(ErrorCodeNA)
			}
			return float64(err.ErrorCode)
		},
	})

	// ROW and COLUMN with no argument introspect the current cell,
	// reported 1-based
	e.register(&Function{
		Name: "ROW", MinArgs: 0, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if len(args) == 0 {
				return float64(ctx.Ref.Row + 1)
			}
			num, err := toNumber(args[0])
			if err != nil {
				return err
			}
			return math.Trunc(num)
		},
	})

	e.register(&Function{
		Name: "COLUMN", MinArgs: 0, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if len(args) == 0 {
				return float64(ctx.Ref.Column + 1)
			}
			num, err := toNumber(args[0])
			if err != nil {
				return err
			}
			return math.Trunc(num)
		},
	})
}
