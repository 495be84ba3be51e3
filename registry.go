package formula

import (
	"sort"
)

// Variadic marks a function with no upper bound on argument count
const Variadic = -1

// Impl is the body of a built-in function. Arguments arrive fully
// evaluated; the body returns exactly one value. Error values are returned
// in-band as *FormulaError, never as a panic or a Go error.
type Impl func(ctx *Context, e *Engine, args []Primitive) Primitive

// Function is an immutable, stateless function implementation registered
// under its published spreadsheet name.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // Variadic for unbounded

	// Volatile functions return a fresh value on every invocation and
	// must never be memoized by a caching layer above this engine.
	Volatile bool

	// Inspecting functions consume error arguments as data instead of
	// forwarding them (the IS* family, ERROR.TYPE, IFERROR).
	Inspecting bool

	Call Impl
}

// Engine dispatches formula function calls. The registry is populated once
// at construction and read-only afterward, so a single Engine is safe to
// share across concurrent evaluations. The one shared mutable collaborator
// is the random generator, whose synchronization is the caller's contract.
type Engine struct {
	funcs map[string]*Function
	clock Clock
	rng   RandomGenerator
}

// NewEngine creates an engine with wall-clock time and the default
// random generator
func NewEngine() *Engine {
	return NewEngineWith(&WallClock{}, &DefaultRandomGenerator{})
}

// NewEngineWith creates an engine with injected time and randomness,
// used by tests and by hosts that need deterministic evaluation
func NewEngineWith(clock Clock, rng RandomGenerator) *Engine {
	e := &Engine{
		funcs: make(map[string]*Function),
		clock: clock,
		rng:   rng,
	}
	e.registerLogical()
	e.registerInformation()
	e.registerMath()
	e.registerText()
	e.registerEngineering()
	e.registerArray()
	e.registerDateTime()
	e.registerStatistical()
	e.registerAliases()
	return e
}

// register adds a function to the registry. Called only during
// construction; the map is never written afterward.
func (e *Engine) register(fn *Function) {
	e.funcs[fn.Name] = fn
}

// Lookup returns the implementation registered under the exact name
func (e *Engine) Lookup(name string) (*Function, bool) {
	fn, ok := e.funcs[name]
	return fn, ok
}

// Names returns all registered function names in sorted order
func (e *Engine) Names() []string {
	names := make([]string, 0, len(e.funcs))
	for name := range e.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsVolatile reports whether the named function must be recalculated on
// every evaluation pass
func (e *Engine) IsVolatile(name string) bool {
	fn, ok := e.funcs[name]
	return ok && fn.Volatile
}

// Evaluate dispatches a single function call. The calling convention is
// eager: args are fully evaluated before dispatch, so IF and friends see
// every branch already computed. Callers wanting branch-level laziness
// must hoist it above this method.
//
// Propagating functions return their first error argument unchanged before
// arity or type validation. Arity violations yield #VALUE!.
func (e *Engine) Evaluate(ctx *Context, name string, args []Primitive) Primitive {
	fn, ok := e.funcs[name]
	if !ok {
		return errName("unknown function: " + name)
	}
	if !fn.Inspecting {
		if err := firstError(args); err != nil {
			return err
		}
	}
	if len(args) < fn.MinArgs {
		return errValue(fn.Name + ": too few arguments")
	}
	if fn.MaxArgs != Variadic && len(args) > fn.MaxArgs {
		return errValue(fn.Name + ": too many arguments")
	}
	return fn.Call(ctx, e, args)
}
