package formula

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins NOW/TODAY for deterministic tests
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

// sequenceRandom plays back a fixed sequence of draws
type sequenceRandom struct {
	values []float64
	next   int
}

func (r *sequenceRandom) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func testEngine() *Engine {
	return NewEngineWith(
		&fixedClock{t: time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)},
		&sequenceRandom{values: []float64{0.25, 0.5, 0.75}},
	)
}

func eval(e *Engine, name string, args ...Primitive) Primitive {
	return e.Evaluate(NewContext(CellRef{}), name, args)
}

func assertError(t *testing.T, result Primitive, code ErrorCode) {
	t.Helper()
	err, ok := result.(*FormulaError)
	require.True(t, ok, "expected an error value, got %v (%T)", result, result)
	assert.Equal(t, code, err.ErrorCode, "expected %s, got %s", ErrorMapper[code], err.Code())
}

func TestDispatchUnknownName(t *testing.T) {
	e := testEngine()
	assertError(t, eval(e, "NO.SUCH.FUNCTION", 1.0), ErrorCodeName)
}

func TestDispatchNamesAreExact(t *testing.T) {
	e := testEngine()
	// registered names are the published spreadsheet names, punctuation
	// included; a lowercase lookup misses
	_, ok := e.Lookup("ERROR.TYPE")
	assert.True(t, ok)
	_, ok = e.Lookup("error.type")
	assert.False(t, ok)
}

func TestDispatchArity(t *testing.T) {
	e := testEngine()
	assertError(t, eval(e, "NOT"), ErrorCodeValue)
	assertError(t, eval(e, "NOT", true, false), ErrorCodeValue)
	assertError(t, eval(e, "COMBIN", 5.0), ErrorCodeValue)
	assertError(t, eval(e, "PI", 1.0), ErrorCodeValue)
}

// every propagating function returns an erroring argument unchanged,
// before arity or type validation sees it
func TestErrorShortCircuit(t *testing.T) {
	poison := NewFormulaError(ErrorCodeNum, "poison")
	cases := []struct {
		name string
		args []Primitive
	}{
		{"SUM", []Primitive{1.0, 2.0, 3.0}},
		{"PRODUCT", []Primitive{2.0, 3.0}},
		{"ROUND", []Primitive{2.5, 0.0}},
		{"POWER", []Primitive{2.0, 10.0}},
		{"MOD", []Primitive{7.0, 3.0}},
		{"CONCAT", []Primitive{"a", "b"}},
		{"LEN", []Primitive{"abc"}},
		{"AND", []Primitive{true, true}},
		{"IF", []Primitive{true, 1.0, 2.0}},
		{"BASE", []Primitive{255.0, 16.0}},
		{"BITAND", []Primitive{6.0, 3.0}},
		{"COMBIN", []Primitive{5.0, 2.0}},
		{"DATE", []Primitive{2020.0, 1.0, 1.0}},
		{"NORM.DIST", []Primitive{0.0, 0.0, 1.0, true}},
		{"IMSUM", []Primitive{"1+2i", "3+4i"}},
		{"ERF", []Primitive{1.0}},
	}
	e := testEngine()
	for _, tc := range cases {
		for i := range tc.args {
			args := make([]Primitive, len(tc.args))
			copy(args, tc.args)
			args[i] = poison
			result := eval(e, tc.name, args...)
			err, ok := result.(*FormulaError)
			require.True(t, ok, "%s with poisoned arg %d returned %v", tc.name, i, result)
			assert.Same(t, poison, err, "%s did not forward the error unchanged", tc.name)
		}
	}
}

// when several arguments are errors, the first in argument order wins
func TestFirstErrorWins(t *testing.T) {
	e := testEngine()
	first := NewFormulaError(ErrorCodeDiv0, "first")
	second := NewFormulaError(ErrorCodeNum, "second")
	result := eval(e, "SUM", 1.0, first, second)
	err, ok := result.(*FormulaError)
	require.True(t, ok)
	assert.Same(t, first, err)
}

func TestVolatileFlags(t *testing.T) {
	e := testEngine()
	for _, name := range []string{"RAND", "RANDBETWEEN", "NOW", "TODAY"} {
		assert.True(t, e.IsVolatile(name), "%s should be volatile", name)
	}
	for _, name := range []string{"SUM", "IF", "ERROR.TYPE", "BASE"} {
		assert.False(t, e.IsVolatile(name), "%s should not be volatile", name)
	}
}

func TestNamesSorted(t *testing.T) {
	e := testEngine()
	names := e.Names()
	require.NotEmpty(t, names)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}

// aliases forward argument-for-argument to their modern equivalents
func TestAliasForwarding(t *testing.T) {
	e := testEngine()
	cases := []struct {
		legacy string
		modern string
		args   []Primitive
	}{
		{"BETAINV", "BETA.INV", []Primitive{0.5, 2.0, 2.0}},
		{"CHIDIST", "CHISQ.DIST.RT", []Primitive{2.0, 2.0}},
		{"CHIINV", "CHISQ.INV.RT", []Primitive{0.05, 2.0}},
		{"WEIBULL", "WEIBULL.DIST", []Primitive{1.0, 2.0, 3.0, true}},
		{"NORMDIST", "NORM.DIST", []Primitive{1.0, 0.0, 1.0, true}},
		{"NORMINV", "NORM.INV", []Primitive{0.3, 0.0, 1.0}},
		{"STDEV", "STDEV.S", []Primitive{2.0, 4.0, 6.0}},
		{"VARP", "VAR.P", []Primitive{2.0, 4.0, 6.0}},
	}
	for _, tc := range cases {
		legacy := eval(e, tc.legacy, tc.args...)
		modern := eval(e, tc.modern, tc.args...)
		assert.Equal(t, modern, legacy, "%s should match %s", tc.legacy, tc.modern)
	}
}

// legacy forms missing a trailing parameter forward with the fixed value
// inserted
func TestAliasInsertsFixedArgument(t *testing.T) {
	e := testEngine()
	assert.Equal(t,
		eval(e, "NORM.S.DIST", 1.0, true),
		eval(e, "NORMSDIST", 1.0))
	assert.Equal(t,
		eval(e, "NEGBINOM.DIST", 3.0, 2.0, 0.4, false),
		eval(e, "NEGBINOMDIST", 3.0, 2.0, 0.4))
	assert.Equal(t,
		eval(e, "LOGNORM.DIST", 2.0, 0.0, 1.0, true),
		eval(e, "LOGNORMDIST", 2.0, 0.0, 1.0))
}

func BenchmarkDispatchSum(b *testing.B) {
	e := NewEngine()
	ctx := NewContext(CellRef{})
	args := []Primitive{1.0, 2.0, 3.0, 4.0, 5.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Evaluate(ctx, "SUM", args)
	}
}

func BenchmarkDispatchNestedValidation(b *testing.B) {
	e := NewEngine()
	ctx := NewContext(CellRef{})
	args := []Primitive{255.0, 16.0, 4.0}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Evaluate(ctx, "BASE", args)
	}
}
