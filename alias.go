package formula

// Legacy function names delegate to their modern equivalents with zero
// independent logic: the alias invokes the modern implementation with the
// identical argument list, appending a fixed trailing argument where the
// legacy form omits a later parameter (e.g. NORMSDIST has no cumulative
// flag, NORM.S.DIST requires one).
func (e *Engine) registerAliases() {
	e.alias("BETAINV", "BETA.INV")
	e.alias("CHIDIST", "CHISQ.DIST.RT")
	e.alias("CHIINV", "CHISQ.INV.RT")
	e.alias("WEIBULL", "WEIBULL.DIST")
	e.alias("EXPONDIST", "EXPON.DIST")
	e.alias("NORMDIST", "NORM.DIST")
	e.alias("NORMINV", "NORM.INV")
	e.alias("NORMSINV", "NORM.S.INV")
	e.alias("BINOMDIST", "BINOM.DIST")
	e.alias("GAMMALN.PRECISE", "GAMMALN")
	e.alias("STDEV", "STDEV.S")
	e.alias("STDEVP", "STDEV.P")
	e.alias("VAR", "VAR.S")
	e.alias("VARP", "VAR.P")

	e.alias("NORMSDIST", "NORM.S.DIST", true)
	e.alias("LOGNORMDIST", "LOGNORM.DIST", true)
	e.alias("NEGBINOMDIST", "NEGBINOM.DIST", false)
}

// alias registers a deprecated name forwarding to target, with optional
// fixed arguments appended to the caller's list
func (e *Engine) alias(name, target string, extra ...Primitive) {
	modern, ok := e.funcs[target]
	if !ok {
		panic("alias target not registered: " + target)
	}
	minArgs := modern.MinArgs - len(extra)
	maxArgs := modern.MaxArgs
	if maxArgs != Variadic {
		maxArgs -= len(extra)
	}
	e.register(&Function{
		Name:       name,
		MinArgs:    minArgs,
		MaxArgs:    maxArgs,
		Volatile:   modern.Volatile,
		Inspecting: modern.Inspecting,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			forwarded := args
			if len(extra) > 0 {
				forwarded = make([]Primitive, 0, len(args)+len(extra))
				forwarded = append(forwarded, args...)
				forwarded = append(forwarded, extra...)
			}
			return modern.Call(ctx, e, forwarded)
		},
	})
}
