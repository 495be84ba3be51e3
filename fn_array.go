package formula

// Array-shaped operations receive their array already flattened into the
// argument list with no row/column metadata; a Shape is inferred on demand.
// Because the engine's return channel is single-valued, reshaping
// operations answer with the first element of the result they would have
// produced.
func (e *Engine) registerArray() {
	e.register(&Function{
		Name: "ROWS", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return float64(InferShape(args).Rows)
		},
	})

	e.register(&Function{
		Name: "COLUMNS", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return float64(InferShape(args).Cols)
		},
	})

	// TAKE(array..., rows): the trailing argument is the row count, the
	// rest is the flattened array. Negative counts take from the end.
	e.register(&Function{
		Name: "TAKE", MinArgs: 2, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			rows, err := toInt(args[len(args)-1])
			if err != nil {
				return err
			}
			shape := InferShape(args[:len(args)-1])
			if rows == 0 {
				return errValue("TAKE: zero rows")
			}
			if rows > int64(shape.Rows) {
				rows = int64(shape.Rows)
			}
			if rows < -int64(shape.Rows) {
				rows = -int64(shape.Rows)
			}
			startRow := 0
			if rows < 0 {
				startRow = shape.Rows + int(rows)
			}
			return shape.At(startRow, 0)
		},
	})

	e.register(&Function{
		Name: "TOCOL", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			shape := InferShape(args)
			if len(shape.Values) == 0 {
				return errValue("TOCOL of nothing")
			}
			return shape.Values[0]
		},
	})

	e.register(&Function{
		Name: "TOROW", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			shape := InferShape(args)
			if len(shape.Values) == 0 {
				return errValue("TOROW of nothing")
			}
			return shape.Values[0]
		},
	})

	// WRAPROWS(vector..., wrapCount): the trailing argument is the wrap
	// width
	wrap := func(name string) *Function {
		return &Function{
			Name: name, MinArgs: 2, MaxArgs: Variadic,
			Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
				count, err := toInt(args[len(args)-1])
				if err != nil {
					return err
				}
				if count < 1 {
					return errNum(name + ": wrap count must be positive")
				}
				vector := args[:len(args)-1]
				if len(vector) == 0 {
					return errValue(name + " of nothing")
				}
				return vector[0]
			},
		}
	}
	e.register(wrap("WRAPROWS"))
	e.register(wrap("WRAPCOLS"))

	// EXPAND(array..., rows): the trailing argument is the target row
	// count, which may not shrink the inferred shape
	e.register(&Function{
		Name: "EXPAND", MinArgs: 2, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			rows, err := toInt(args[len(args)-1])
			if err != nil {
				return err
			}
			shape := InferShape(args[:len(args)-1])
			if rows < int64(shape.Rows) {
				return errValue("EXPAND: target smaller than source")
			}
			if len(shape.Values) == 0 {
				return errValue("EXPAND of nothing")
			}
			return shape.Values[0]
		},
	})

	// TRIMRANGE drops fully empty leading and trailing rows and columns
	// of the inferred shape
	e.register(&Function{
		Name: "TRIMRANGE", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			shape := InferShape(args)
			rowEmpty := func(r int) bool {
				for c := 0; c < shape.Cols; c++ {
					if !isEmpty(shape.At(r, c)) {
						return false
					}
				}
				return true
			}
			colEmpty := func(c int) bool {
				for r := 0; r < shape.Rows; r++ {
					if !isEmpty(shape.At(r, c)) {
						return false
					}
				}
				return true
			}

			top, bottom := 0, shape.Rows-1
			for top <= bottom && rowEmpty(top) {
				top++
			}
			if top > bottom {
				return errRef("TRIMRANGE: all values are empty")
			}
			for bottom > top && rowEmpty(bottom) {
				bottom--
			}
			left, right := 0, shape.Cols-1
			for left <= right && colEmpty(left) {
				left++
			}
			for right > left && colEmpty(right) {
				right--
			}
			return shape.At(top, left)
		},
	})
}
