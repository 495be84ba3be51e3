package formula

import (
	"math"
	"strconv"
	"strings"
)

// Primitive represents basic spreadsheet value types.
// types:
//   - float64: numeric values (integers are converted to float64)
//   - string: text values
//   - bool: boolean values (TRUE/FALSE)
//   - nil: empty/unset cells (distinct from the empty string)
//   - *FormulaError: error values (#DIV/0!, #VALUE!, etc.)
type Primitive any

// ErrorCode represents standard spreadsheet error codes following
// Excel conventions. The numeric values are the ones ERROR.TYPE reports.
type ErrorCode uint8

const (
	ErrorCodeNull  ErrorCode = 1 // #NULL! - no cells in common between ranges
	ErrorCodeDiv0  ErrorCode = 2 // #DIV/0! - division by zero
	ErrorCodeValue ErrorCode = 3 // #VALUE! - wrong type or count of arguments
	ErrorCodeRef   ErrorCode = 4 // #REF! - invalid cell reference
	ErrorCodeName  ErrorCode = 5 // #NAME? - unrecognized function name
	ErrorCodeNum   ErrorCode = 6 // #NUM! - out-of-domain or unrepresentable number
	ErrorCodeNA    ErrorCode = 7 // #N/A - no applicable value
	ErrorCodeOther ErrorCode = 8 // all other errors
)

// ErrorMapper maps error code numbers to their string representations
var ErrorMapper = map[ErrorCode]string{
	ErrorCodeNull:  "#NULL!",
	ErrorCodeDiv0:  "#DIV/0!",
	ErrorCodeValue: "#VALUE!",
	ErrorCodeRef:   "#REF!",
	ErrorCodeName:  "#NAME?",
	ErrorCodeNum:   "#NUM!",
	ErrorCodeNA:    "#N/A",
	ErrorCodeOther: "#ERROR!",
}

// FormulaError is an in-band error value. It is returned as an ordinary
// Primitive result rather than as a Go error: formula errors flow through
// evaluation like any other value and never escape as exceptions.
type FormulaError struct {
	ErrorCode ErrorCode
	Message   string
}

func (e *FormulaError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return ErrorMapper[e.ErrorCode]
}

// Code returns the canonical error string, e.g. "#DIV/0!".
func (e *FormulaError) Code() string {
	return ErrorMapper[e.ErrorCode]
}

func NewFormulaError(code ErrorCode, message string) *FormulaError {
	if message == "" {
		message = ErrorMapper[code]
	}
	return &FormulaError{
		ErrorCode: code,
		Message:   message,
	}
}

// ErrorCodeFromString maps a canonical error string back to its code.
// Unrecognized strings map to ErrorCodeOther.
func ErrorCodeFromString(s string) ErrorCode {
	for code, str := range ErrorMapper {
		if str == s {
			return code
		}
	}
	return ErrorCodeOther
}

func errValue(message string) *FormulaError  { return NewFormulaError(ErrorCodeValue, message) }
func errNum(message string) *FormulaError    { return NewFormulaError(ErrorCodeNum, message) }
func errDiv0(message string) *FormulaError   { return NewFormulaError(ErrorCodeDiv0, message) }
func errNA(message string) *FormulaError     { return NewFormulaError(ErrorCodeNA, message) }
func errName(message string) *FormulaError   { return NewFormulaError(ErrorCodeName, message) }
func errRef(message string) *FormulaError    { return NewFormulaError(ErrorCodeRef, message) }

// checkForError returns the error if value is a *FormulaError, nil otherwise
func checkForError(value Primitive) *FormulaError {
	if err, ok := value.(*FormulaError); ok {
		return err
	}
	return nil
}

// firstError returns the first error value in argument order, nil if none.
// Propagating functions return this unchanged before any other validation.
func firstError(args []Primitive) *FormulaError {
	for _, arg := range args {
		if err := checkForError(arg); err != nil {
			return err
		}
	}
	return nil
}

// toNumber coerces value to a number for arithmetic use. Booleans are
// rejected: arithmetic never implicitly treats TRUE as 1. Text is parsed
// as an invariant floating-point literal; failure is caller-visible, never
// a silent zero. Empty cells coerce to 0.
func toNumber(value Primitive) (float64, *FormulaError) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, errValue("expected a number, got text " + strconv.Quote(v))
		}
		return num, nil
	case bool:
		return 0, errValue("expected a number, got a logical value")
	case nil:
		return 0, nil
	case *FormulaError:
		return 0, v
	default:
		return 0, errValue("expected a number")
	}
}

// toInt truncates a numeric argument toward zero, the engine's integral
// semantics (there is no separate integer type).
func toInt(value Primitive) (int64, *FormulaError) {
	num, err := toNumber(value)
	if err != nil {
		return 0, err
	}
	return int64(math.Trunc(num)), nil
}

// toText renders a value the way text-producing functions see it
func toText(value Primitive) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatNumber(v)
	case *FormulaError:
		return v.Code()
	default:
		return ""
	}
}

// formatNumber renders a float with invariant round-trip formatting
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'G', -1, 64)
}

// isTruthy evaluates conditional truthiness: booleans as themselves,
// numbers truthy iff non-zero, non-empty text truthy, empty cells falsy.
func isTruthy(value Primitive) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	case *FormulaError:
		return false
	default:
		return true
	}
}

// isEmpty is true only for an unset cell, never for Text("")
func isEmpty(value Primitive) bool {
	return value == nil
}

// equalFold compares text the case-insensitive way the host application
// matches unless a function's contract is explicitly case-sensitive
func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ToNumber exposes the arithmetic coercion contract to embedding hosts
func ToNumber(value Primitive) (float64, *FormulaError) {
	return toNumber(value)
}

// ToText exposes the text rendering contract to embedding hosts
func ToText(value Primitive) string {
	return toText(value)
}

// IsTruthy exposes conditional truthiness to embedding hosts
func IsTruthy(value Primitive) bool {
	return isTruthy(value)
}
