package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/efp"

	"github.com/gridcalc/formula"
)

// The evaluator reduces an efp token stream to a single value, dispatching
// every function call into the formula engine. The engine itself never
// parses; this adapter is the parser collaborator.

type evaluator struct {
	engine *formula.Engine
	ctx    *formula.Context
	store  *cellStore
}

// evalFormula evaluates a formula string. Text without a leading "=" is a
// literal, the same convention spreadsheet cells use.
func evalFormula(engine *formula.Engine, ctx *formula.Context, store *cellStore, text string) formula.Primitive {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "=") {
		return parseLiteral(text)
	}
	parser := efp.ExcelParser()
	tokens := parser.Parse(text[1:])
	ev := &evaluator{engine: engine, ctx: ctx, store: store}
	return ev.reduce(tokens)
}

// item is either a resolved value or an infix operator awaiting folding
type item struct {
	value formula.Primitive
	op    string
	isOp  bool
}

// reduce evaluates a token span to one value: operands and nested
// calls resolve to values first, then infix operators fold in precedence
// order
func (ev *evaluator) reduce(tokens []efp.Token) formula.Primitive {
	items := make([]item, 0, len(tokens))
	negate := false

	pushValue := func(v formula.Primitive) {
		if negate {
			negate = false
			if num, err := formula.ToNumber(v); err != nil {
				v = err
			} else {
				v = -num
			}
		}
		items = append(items, item{value: v})
	}

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.TType {
		case efp.TokenTypeWhitespace, efp.TokenTypeNoop:
			// skip

		case efp.TokenTypeOperand:
			pushValue(ev.operand(t))

		case efp.TokenTypeOperatorPrefix:
			if t.TValue == "-" {
				negate = !negate
			}

		case efp.TokenTypeOperatorPostfix:
			// percent applies to the value just produced
			if t.TValue == "%" && len(items) > 0 && !items[len(items)-1].isOp {
				last := items[len(items)-1].value
				if num, err := formula.ToNumber(last); err != nil {
					items[len(items)-1].value = err
				} else {
					items[len(items)-1].value = num / 100
				}
			}

		case efp.TokenTypeOperatorInfix:
			items = append(items, item{op: t.TValue, isOp: true})

		case efp.TokenTypeSubexpression:
			if t.TSubType != efp.TokenSubTypeStart {
				return formula.NewFormulaError(formula.ErrorCodeValue, "unbalanced parentheses")
			}
			end := matchingStop(tokens, i)
			if end < 0 {
				return formula.NewFormulaError(formula.ErrorCodeValue, "unbalanced parentheses")
			}
			pushValue(ev.reduce(tokens[i+1 : end]))
			i = end

		case efp.TokenTypeFunction:
			if t.TSubType != efp.TokenSubTypeStart {
				return formula.NewFormulaError(formula.ErrorCodeValue, "unbalanced function call")
			}
			end := matchingStop(tokens, i)
			if end < 0 {
				return formula.NewFormulaError(formula.ErrorCodeValue, "unbalanced function call")
			}
			args := ev.callArgs(tokens[i+1 : end])
			pushValue(ev.engine.Evaluate(ev.ctx, strings.ToUpper(t.TValue), args))
			i = end

		default:
			return formula.NewFormulaError(formula.ErrorCodeValue, "unsupported token "+t.TValue)
		}
	}

	return foldInfix(items)
}

// matchingStop finds the Stop token balancing the Start at index start
func matchingStop(tokens []efp.Token, start int) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch tokens[i].TSubType {
		case efp.TokenSubTypeStart:
			depth++
		case efp.TokenSubTypeStop:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// callArgs splits a function body on top-level argument separators and
// evaluates each argument, flattening ranges into the flat argument list
// the engine's calling convention expects
func (ev *evaluator) callArgs(tokens []efp.Token) []formula.Primitive {
	groups := [][]efp.Token{{}}
	depth := 0
	for _, t := range tokens {
		switch t.TSubType {
		case efp.TokenSubTypeStart:
			depth++
		case efp.TokenSubTypeStop:
			depth--
		}
		if depth == 0 && t.TType == efp.TokenTypeArgument {
			groups = append(groups, []efp.Token{})
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], t)
	}

	if len(groups) == 1 && len(groups[0]) == 0 {
		return nil
	}

	args := make([]formula.Primitive, 0, len(groups))
	for _, group := range groups {
		if len(group) == 0 {
			args = append(args, nil)
			continue
		}
		// a lone range operand flattens into multiple arguments
		if len(group) == 1 && group[0].TType == efp.TokenTypeOperand && group[0].TSubType == efp.TokenSubTypeRange {
			args = append(args, ev.rangeValues(group[0].TValue)...)
			continue
		}
		args = append(args, ev.reduce(group))
	}
	return args
}

// operand resolves a literal or cell reference token to a value
func (ev *evaluator) operand(t efp.Token) formula.Primitive {
	switch t.TSubType {
	case efp.TokenSubTypeNumber:
		num, err := strconv.ParseFloat(t.TValue, 64)
		if err != nil {
			return formula.NewFormulaError(formula.ErrorCodeValue, "malformed number "+t.TValue)
		}
		return num
	case efp.TokenSubTypeText:
		return t.TValue
	case efp.TokenSubTypeLogical:
		return strings.EqualFold(t.TValue, "TRUE")
	case efp.TokenSubTypeError:
		return formula.NewFormulaError(formula.ErrorCodeFromString(t.TValue), "")
	case efp.TokenSubTypeRange:
		values := ev.rangeValues(t.TValue)
		if len(values) == 0 {
			return nil
		}
		return values[0]
	default:
		return formula.NewFormulaError(formula.ErrorCodeValue, "unsupported operand "+t.TValue)
	}
}

// rangeValues reads every cell of a reference in row-major order; an
// unresolvable reference is #REF!
func (ev *evaluator) rangeValues(rangeText string) []formula.Primitive {
	refs, err := expandRange(rangeText)
	if err != nil {
		return []formula.Primitive{formula.NewFormulaError(formula.ErrorCodeRef, err.Error())}
	}
	values := make([]formula.Primitive, 0, len(refs))
	for _, ref := range refs {
		value, _ := ev.store.Get(ref)
		values = append(values, value)
	}
	return values
}

// infix precedence levels, folded left to right within each level
var precedenceLevels = [][]string{
	{"^"},
	{"*", "/"},
	{"+", "-"},
	{"&"},
	{"=", "<>", "<", ">", "<=", ">="},
}

func foldInfix(items []item) formula.Primitive {
	for _, ops := range precedenceLevels {
		for i := 0; i < len(items); i++ {
			if !items[i].isOp || !contains(ops, items[i].op) {
				continue
			}
			if i == 0 || i+1 >= len(items) || items[i-1].isOp || items[i+1].isOp {
				return formula.NewFormulaError(formula.ErrorCodeValue, "malformed expression")
			}
			result := applyInfix(items[i-1].value, items[i].op, items[i+1].value)
			items[i-1] = item{value: result}
			items = append(items[:i], items[i+2:]...)
			i -= 2
		}
	}
	if len(items) != 1 || items[0].isOp {
		return formula.NewFormulaError(formula.ErrorCodeValue, "malformed expression")
	}
	return items[0].value
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

// applyInfix evaluates one binary operation. Errors in either operand
// propagate unchanged, left operand first.
func applyInfix(left formula.Primitive, op string, right formula.Primitive) formula.Primitive {
	if err, ok := left.(*formula.FormulaError); ok {
		return err
	}
	if err, ok := right.(*formula.FormulaError); ok {
		return err
	}

	switch op {
	case "+", "-", "*", "/", "^":
		a, err := formula.ToNumber(left)
		if err != nil {
			return err
		}
		b, err := formula.ToNumber(right)
		if err != nil {
			return err
		}
		switch op {
		case "+":
			return a + b
		case "-":
			return a - b
		case "*":
			return a * b
		case "/":
			if b == 0 {
				return formula.NewFormulaError(formula.ErrorCodeDiv0, "division by zero")
			}
			return a / b
		default:
			return math.Pow(a, b)
		}

	case "&":
		return formula.ToText(left) + formula.ToText(right)

	case "=", "<>", "<", ">", "<=", ">=":
		return compare(left, op, right)
	}
	return formula.NewFormulaError(formula.ErrorCodeValue, "unsupported operator "+op)
}

func compare(left formula.Primitive, op string, right formula.Primitive) formula.Primitive {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	var cmp int
	if lok && rok {
		switch {
		case ln < rn:
			cmp = -1
		case ln > rn:
			cmp = 1
		}
	} else {
		ls := strings.ToUpper(formula.ToText(left))
		rs := strings.ToUpper(formula.ToText(right))
		cmp = strings.Compare(ls, rs)
	}
	switch op {
	case "=":
		return cmp == 0
	case "<>":
		return cmp != 0
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	default:
		return cmp >= 0
	}
}
