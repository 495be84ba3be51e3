package formula

func (e *Engine) registerLogical() {
	e.register(&Function{
		Name: "TRUE", MinArgs: 0, MaxArgs: 0,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return true
		},
	})

	e.register(&Function{
		Name: "FALSE", MinArgs: 0, MaxArgs: 0,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return false
		},
	})

	e.register(&Function{
		Name: "AND", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			for _, arg := range args {
				if !isTruthy(arg) {
					return false
				}
			}
			return true
		},
	})

	e.register(&Function{
		Name: "OR", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			for _, arg := range args {
				if isTruthy(arg) {
					return true
				}
			}
			return false
		},
	})

	e.register(&Function{
		Name: "XOR", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			odd := false
			for _, arg := range args {
				if isTruthy(arg) {
					odd = !odd
				}
			}
			return odd
		},
	})

	e.register(&Function{
		Name: "NOT", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return !isTruthy(args[0])
		},
	})

	// IF receives all branches already evaluated: dispatch is eager, so
	// the untaken branch has been computed by the time we select. Hosts
	// needing branch-level laziness special-case IF above dispatch.
	e.register(&Function{
		Name: "IF", MinArgs: 2, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if isTruthy(args[0]) {
				return args[1]
			}
			if len(args) == 3 {
				return args[2]
			}
			return false
		},
	})

	// IFS condition slots consume errors as data: an erroring condition
	// is a non-match, not a propagated failure
	e.register(&Function{
		Name: "IFS", MinArgs: 2, MaxArgs: Variadic, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if len(args)%2 != 0 {
				return errValue("IFS: conditions and values must pair up")
			}
			for i := 0; i < len(args); i += 2 {
				if checkForError(args[i]) != nil {
					continue
				}
				if isTruthy(args[i]) {
					return args[i+1]
				}
			}
			return errNA("IFS: no condition matched")
		},
	})

	e.register(&Function{
		Name: "IFERROR", MinArgs: 2, MaxArgs: 2, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if checkForError(args[0]) != nil {
				return args[1]
			}
			return args[0]
		},
	})

	e.register(&Function{
		Name: "IFNA", MinArgs: 2, MaxArgs: 2, Inspecting: true,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if err := checkForError(args[0]); err != nil && err.ErrorCode == ErrorCodeNA {
				return args[1]
			}
			return args[0]
		},
	})

	// SWITCH(subject, case1, result1, ..., [default])
	e.register(&Function{
		Name: "SWITCH", MinArgs: 3, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			subject := args[0]
			rest := args[1:]
			for len(rest) >= 2 {
				if primitiveEquals(subject, rest[0]) {
					return rest[1]
				}
				rest = rest[2:]
			}
			if len(rest) == 1 {
				return rest[0]
			}
			return errNA("SWITCH: no case matched")
		},
	})
}

// primitiveEquals compares two values for SWITCH-style equality: same
// dynamic type and equal payload; text compares case-insensitively the
// way the host application matches
func primitiveEquals(a, b Primitive) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && equalFold(av, bv)
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}
