package formula

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// textLen counts UTF-16 code units, the host application's unit of text
// length
func textLen(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func (e *Engine) registerText() {
	concat := &Function{
		Name: "CONCAT", MinArgs: 1, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			var sb strings.Builder
			for _, arg := range args {
				sb.WriteString(toText(arg))
			}
			return sb.String()
		},
	}
	e.register(concat)
	e.register(&Function{
		Name: "CONCATENATE", MinArgs: concat.MinArgs, MaxArgs: concat.MaxArgs,
		Call: concat.Call,
	})

	e.register(&Function{
		Name: "TEXTJOIN", MinArgs: 3, MaxArgs: Variadic,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			delimiter := toText(args[0])
			ignoreEmpty := isTruthy(args[1])
			parts := make([]string, 0, len(args)-2)
			for _, arg := range args[2:] {
				text := toText(arg)
				if ignoreEmpty && text == "" {
					continue
				}
				parts = append(parts, text)
			}
			return strings.Join(parts, delimiter)
		},
	})

	e.register(&Function{
		Name: "LEN", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return float64(textLen(toText(args[0])))
		},
	})

	e.register(&Function{
		Name: "UPPER", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return strings.ToUpper(toText(args[0]))
		},
	})

	e.register(&Function{
		Name: "LOWER", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return strings.ToLower(toText(args[0]))
		},
	})

	// TRIM removes leading/trailing spaces and collapses interior runs
	e.register(&Function{
		Name: "TRIM", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return strings.Join(strings.Fields(toText(args[0])), " ")
		},
	})

	e.register(&Function{
		Name: "LEFT", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			text := []rune(toText(args[0]))
			count := int64(1)
			if len(args) == 2 {
				var err *FormulaError
				count, err = toInt(args[1])
				if err != nil {
					return err
				}
			}
			if count < 0 {
				return errValue("LEFT: negative count")
			}
			if count > int64(len(text)) {
				count = int64(len(text))
			}
			return string(text[:count])
		},
	})

	e.register(&Function{
		Name: "RIGHT", MinArgs: 1, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			text := []rune(toText(args[0]))
			count := int64(1)
			if len(args) == 2 {
				var err *FormulaError
				count, err = toInt(args[1])
				if err != nil {
					return err
				}
			}
			if count < 0 {
				return errValue("RIGHT: negative count")
			}
			if count > int64(len(text)) {
				count = int64(len(text))
			}
			return string(text[int64(len(text))-count:])
		},
	})

	e.register(&Function{
		Name: "MID", MinArgs: 3, MaxArgs: 3,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			text := []rune(toText(args[0]))
			start, err := toInt(args[1])
			if err != nil {
				return err
			}
			count, err := toInt(args[2])
			if err != nil {
				return err
			}
			if start < 1 || count < 0 {
				return errValue("MID: start or count out of range")
			}
			start-- // formulas index text from 1
			if start >= int64(len(text)) {
				return ""
			}
			end := start + count
			if end > int64(len(text)) {
				end = int64(len(text))
			}
			return string(text[start:end])
		},
	})

	e.register(&Function{
		Name: "REPT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			count, err := toInt(args[1])
			if err != nil {
				return err
			}
			if count < 0 {
				return errValue("REPT: negative count")
			}
			return strings.Repeat(toText(args[0]), int(count))
		},
	})

	// EXACT compares text ordinally, case-sensitively
	e.register(&Function{
		Name: "EXACT", MinArgs: 2, MaxArgs: 2,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			return toText(args[0]) == toText(args[1])
		},
	})

	// T passes text through and yields empty text for anything else
	e.register(&Function{
		Name: "T", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			if s, ok := args[0].(string); ok {
				return s
			}
			return ""
		},
	})

	e.register(&Function{
		Name: "VALUE", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			switch v := args[0].(type) {
			case float64:
				return v
			case string:
				num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
				if err != nil {
					return errValue("VALUE: cannot parse " + strconv.Quote(v))
				}
				return num
			default:
				return errValue("VALUE: expected text")
			}
		},
	})

	// CHAR and CODE use the Windows-1252 ANSI codepage, matching the host
	// application rather than raw Unicode code points
	e.register(&Function{
		Name: "CHAR", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			if n < 1 || n > 255 {
				return errValue("CHAR: code out of range")
			}
			r := charmap.Windows1252.DecodeByte(byte(n))
			return string(r)
		},
	})

	e.register(&Function{
		Name: "CODE", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			text := toText(args[0])
			if text == "" {
				return errValue("CODE of empty text")
			}
			r := []rune(text)[0]
			if b, ok := charmap.Windows1252.EncodeRune(r); ok {
				return float64(b)
			}
			return errValue("CODE: character outside the codepage")
		},
	})

	e.register(&Function{
		Name: "UNICHAR", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			n, err := toInt(args[0])
			if err != nil {
				return err
			}
			if n < 1 || n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF) {
				return errValue("UNICHAR: code point out of range")
			}
			return string(rune(n))
		},
	})

	e.register(&Function{
		Name: "UNICODE", MinArgs: 1, MaxArgs: 1,
		Call: func(ctx *Context, e *Engine, args []Primitive) Primitive {
			text := toText(args[0])
			if text == "" {
				return errValue("UNICODE of empty text")
			}
			return float64([]rune(text)[0])
		},
	})
}
