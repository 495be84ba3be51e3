package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBlank(t *testing.T) {
	e := testEngine()
	assert.Equal(t, true, eval(e, "ISBLANK", nil))
	assert.Equal(t, false, eval(e, "ISBLANK", ""))
	assert.Equal(t, false, eval(e, "ISBLANK", 0.0))
}

func TestErrorClassifiers(t *testing.T) {
	e := testEngine()
	assert.Equal(t, true, eval(e, "ISERROR", errDiv0("")))
	assert.Equal(t, true, eval(e, "ISERROR", errNA("")))
	assert.Equal(t, false, eval(e, "ISERROR", 1.0))

	// ISERR excludes #N/A
	assert.Equal(t, true, eval(e, "ISERR", errValue("")))
	assert.Equal(t, false, eval(e, "ISERR", errNA("")))
	assert.Equal(t, false, eval(e, "ISERR", "text"))

	assert.Equal(t, true, eval(e, "ISNA", errNA("")))
	assert.Equal(t, false, eval(e, "ISNA", errDiv0("")))
	assert.Equal(t, false, eval(e, "ISNA", nil))
}

func TestTypePredicates(t *testing.T) {
	e := testEngine()
	assert.Equal(t, true, eval(e, "ISLOGICAL", true))
	assert.Equal(t, false, eval(e, "ISLOGICAL", 1.0))
	assert.Equal(t, true, eval(e, "ISNUMBER", 2.5))
	assert.Equal(t, false, eval(e, "ISNUMBER", "2.5"))
	assert.Equal(t, true, eval(e, "ISTEXT", "x"))
	assert.Equal(t, false, eval(e, "ISTEXT", 1.0))
	assert.Equal(t, false, eval(e, "ISNONTEXT", "x"))
	assert.Equal(t, true, eval(e, "ISNONTEXT", nil))
}

func TestParityPredicates(t *testing.T) {
	e := testEngine()
	assert.Equal(t, true, eval(e, "ISEVEN", 4.0))
	assert.Equal(t, false, eval(e, "ISEVEN", 3.0))
	assert.Equal(t, true, eval(e, "ISODD", 3.0))
	// fractional part is ignored
	assert.Equal(t, true, eval(e, "ISEVEN", 2.7))
	// non-numbers classify as false rather than erroring
	assert.Equal(t, false, eval(e, "ISEVEN", "2"))
	assert.Equal(t, false, eval(e, "ISODD", true))
}

func TestNAAndN(t *testing.T) {
	e := testEngine()
	assertError(t, eval(e, "NA"), ErrorCodeNA)
	assert.Equal(t, 5.0, eval(e, "N", 5.0))
	assert.Equal(t, 1.0, eval(e, "N", true))
	assert.Equal(t, 0.0, eval(e, "N", false))
	assert.Equal(t, 0.0, eval(e, "N", "text"))
	assert.Equal(t, 0.0, eval(e, "N", nil))
}

func TestTypeCodes(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 1.0, eval(e, "TYPE", 5.0))
	assert.Equal(t, 1.0, eval(e, "TYPE", nil))
	assert.Equal(t, 2.0, eval(e, "TYPE", "x"))
	assert.Equal(t, 4.0, eval(e, "TYPE", true))
	assert.Equal(t, 16.0, eval(e, "TYPE", errDiv0("")))
}

func TestErrorType(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 1.0, eval(e, "ERROR.TYPE", NewFormulaError(ErrorCodeNull, "")))
	assert.Equal(t, 2.0, eval(e, "ERROR.TYPE", errDiv0("")))
	assert.Equal(t, 3.0, eval(e, "ERROR.TYPE", errValue("")))
	assert.Equal(t, 4.0, eval(e, "ERROR.TYPE", errRef("")))
	assert.Equal(t, 5.0, eval(e, "ERROR.TYPE", errName("")))
	assert.Equal(t, 6.0, eval(e, "ERROR.TYPE", errNum("")))
	assert.Equal(t, 7.0, eval(e, "ERROR.TYPE", errNA("")))
	assert.Equal(t, 8.0, eval(e, "ERROR.TYPE", NewFormulaError(ErrorCodeOther, "")))
	// a non-error argument has no error type
	assertError(t, eval(e, "ERROR.TYPE", 5.0), ErrorCodeNA)
	// unrecognized codes fall back to 7
	assert.Equal(t, 7.0, eval(e, "ERROR.TYPE", &FormulaError{ErrorCode: 42}))
}

func TestRowColumnIntrospection(t *testing.T) {
	e := testEngine()
	ctx := NewContext(CellRef{Row: 4, Column: 2})
	assert.Equal(t, 5.0, e.Evaluate(ctx, "ROW", nil))
	assert.Equal(t, 3.0, e.Evaluate(ctx, "COLUMN", nil))
	assert.Equal(t, 9.0, e.Evaluate(ctx, "ROW", []Primitive{9.3}))
}
