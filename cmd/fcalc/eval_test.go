package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcalc/formula"
)

func run(t *testing.T, text string, bindings ...string) formula.Primitive {
	t.Helper()
	store := newCellStore()
	for _, b := range bindings {
		require.NoError(t, store.bind(b))
	}
	engine := formula.NewEngine()
	ctx := formula.NewContext(formula.CellRef{})
	ctx.Cells = store
	return evalFormula(engine, ctx, store, text)
}

func runText(t *testing.T, text string, bindings ...string) string {
	t.Helper()
	return formula.ToText(run(t, text, bindings...))
}

func TestLiterals(t *testing.T) {
	assert.Equal(t, 42.0, run(t, "42"))
	assert.Equal(t, "hello", run(t, "hello"))
	assert.Equal(t, true, run(t, "TRUE"))
	assert.Equal(t, 5.0, run(t, "=5"))
	assert.Equal(t, "abc", run(t, `="abc"`))
}

func TestArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, 7.0, run(t, "=1+2*3"))
	assert.Equal(t, 9.0, run(t, "=(1+2)*3"))
	assert.Equal(t, 2.0, run(t, "=10/5"))
	assert.Equal(t, 8.0, run(t, "=2^3"))
	// exponent binds tighter than multiplication
	assert.Equal(t, 18.0, run(t, "=2*3^2"))
	assert.Equal(t, 1.0, run(t, "=10-6-3"))
}

func TestUnaryAndPercent(t *testing.T) {
	assert.Equal(t, -3.0, run(t, "=-3"))
	assert.Equal(t, -1.0, run(t, "=-3+2"))
	assert.Equal(t, 5.0, run(t, "=--5"))
	assert.Equal(t, 0.5, run(t, "=50%"))
	assert.Equal(t, 1.5, run(t, "=1+50%"))
}

func TestDivisionByZero(t *testing.T) {
	assert.Equal(t, "#DIV/0!", runText(t, "=1/0"))
	// the error keeps propagating through outer arithmetic
	assert.Equal(t, "#DIV/0!", runText(t, "=1+1/0"))
	// IFERROR absorbs it
	assert.Equal(t, 99.0, run(t, "=IFERROR(1/0,99)"))
}

func TestTextConcatenation(t *testing.T) {
	assert.Equal(t, "ab", run(t, `="a"&"b"`))
	assert.Equal(t, "x5", run(t, `="x"&5`))
	// & binds looser than +
	assert.Equal(t, "33", run(t, `=1+2&3`))
}

func TestComparisons(t *testing.T) {
	assert.Equal(t, true, run(t, "=2>1"))
	assert.Equal(t, false, run(t, "=2<1"))
	assert.Equal(t, true, run(t, "=2>=2"))
	assert.Equal(t, true, run(t, "=1<>2"))
	assert.Equal(t, true, run(t, `="abc"="ABC"`))
	assert.Equal(t, true, run(t, "=1+1=2"))
}

func TestFunctionCalls(t *testing.T) {
	assert.Equal(t, 6.0, run(t, "=SUM(1,2,3)"))
	assert.Equal(t, 9.0, run(t, "=SUM(1,2,3)+3"))
	assert.Equal(t, 4.0, run(t, "=MAX(1,SUM(1,3),2)"))
	assert.Equal(t, "FF", run(t, "=BASE(255,16)"))
	assert.Equal(t, 3.0, run(t, "=ROUND(2.5)"))
	assert.Equal(t, "#NAME?", runText(t, "=NOSUCHFN(1)"))
	// lowercase names dispatch the same
	assert.Equal(t, 6.0, run(t, "=sum(1,2,3)"))
}

func TestCellReferences(t *testing.T) {
	assert.Equal(t, 15.0, run(t, "=A1+A2", "A1=5", "A2=10"))
	assert.Equal(t, 30.0, run(t, "=SUM(A1:A3)", "A1=5", "A2=10", "A3=15"))
	// an unbound cell reads as empty, which SUM skips
	assert.Equal(t, 5.0, run(t, "=SUM(A1:A3)", "A1=5"))
	assert.Equal(t, "hi there", run(t, `=A1&" there"`, "A1=hi"))
	// rectangular ranges flatten row-major
	assert.Equal(t, 10.0, run(t, "=SUM(A1:B2)", "A1=1", "B1=2", "A2=3", "B2=4"))
}

func TestNestedExpressions(t *testing.T) {
	assert.Equal(t, 14.0, run(t, "=SUM(1,2*3,IF(TRUE,7,0))"))
	assert.Equal(t, 2.0, run(t, "=IF(A1>3,1,2)", "A1=2"))
	assert.Equal(t, 1.0, run(t, "=IF(A1>3,1,2)", "A1=4"))
}

func TestStoreBindings(t *testing.T) {
	store := newCellStore()
	require.NoError(t, store.bind("A1=5"))
	require.NoError(t, store.bind("B2=TRUE"))
	require.NoError(t, store.bind("C3=hello"))
	require.Error(t, store.bind("nonsense"))
	require.Error(t, store.bind("123=5"))

	v, ok := store.Get(formula.CellRef{Row: 0, Column: 0})
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
	v, ok = store.Get(formula.CellRef{Row: 1, Column: 1})
	assert.True(t, ok)
	assert.Equal(t, true, v)
	_, ok = store.Get(formula.CellRef{Row: 9, Column: 9})
	assert.False(t, ok)
}

func TestParseCellRef(t *testing.T) {
	ref, err := parseCellRef("A1")
	require.NoError(t, err)
	assert.Equal(t, formula.CellRef{Row: 0, Column: 0}, ref)

	ref, err = parseCellRef("$B$3")
	require.NoError(t, err)
	assert.Equal(t, formula.CellRef{Row: 2, Column: 1}, ref)

	ref, err = parseCellRef("aa10")
	require.NoError(t, err)
	assert.Equal(t, formula.CellRef{Row: 9, Column: 26}, ref)

	_, err = parseCellRef("A0")
	assert.Error(t, err)
	_, err = parseCellRef("42")
	assert.Error(t, err)
	_, err = parseCellRef("ABC")
	assert.Error(t, err)
}

func TestExpandRange(t *testing.T) {
	refs, err := expandRange("A1:B2")
	require.NoError(t, err)
	assert.Equal(t, []formula.CellRef{
		{Row: 0, Column: 0}, {Row: 0, Column: 1},
		{Row: 1, Column: 0}, {Row: 1, Column: 1},
	}, refs)

	refs, err = expandRange("C5")
	require.NoError(t, err)
	assert.Equal(t, []formula.CellRef{{Row: 4, Column: 2}}, refs)

	_, err = expandRange("B2:A1")
	assert.Error(t, err)
}
