package formula

import (
	"math"
	"strconv"
	"strings"
)

// complexNumber is a complex value decoded from its text encoding
// "a+bi" / "a+bj". The suffix letter is carried so results render with
// the unit marker of the first operand seen.
type complexNumber struct {
	real   float64
	imag   float64
	suffix string // "i" or "j"
}

// parseComplex decodes the textual complex encoding. Real numbers decode
// with an empty imaginary part; bare "i"/"j" decode as the unit. Parse
// failure is #NUM! rather than #VALUE!: the text is itself the encoded
// numeric domain, not the wrong value kind.
func parseComplex(value Primitive) (complexNumber, *FormulaError) {
	switch v := value.(type) {
	case float64:
		return complexNumber{real: v, suffix: "i"}, nil
	case nil:
		return complexNumber{suffix: "i"}, nil
	case string:
		return parseComplexText(v)
	case *FormulaError:
		return complexNumber{}, v
	default:
		return complexNumber{}, errNum("not a complex number")
	}
}

func parseComplexText(text string) (complexNumber, *FormulaError) {
	s := strings.TrimSpace(text)
	if s == "" {
		return complexNumber{}, errNum("empty complex number")
	}

	suffix := "i"
	last := s[len(s)-1]
	if last == 'i' || last == 'j' {
		suffix = string(last)
		body := s[:len(s)-1]

		// locate the split between real and imaginary coefficients:
		// the last +/- not part of an exponent and not leading
		split := -1
		for i := len(body) - 1; i > 0; i-- {
			if body[i] != '+' && body[i] != '-' {
				continue
			}
			if body[i-1] == 'e' || body[i-1] == 'E' {
				continue
			}
			split = i
			break
		}

		if split < 0 {
			// pure imaginary: "3i", "-i", "i"
			im, err := parseCoefficient(body)
			if err != nil {
				return complexNumber{}, err
			}
			return complexNumber{imag: im, suffix: suffix}, nil
		}

		re, parseErr := strconv.ParseFloat(body[:split], 64)
		if parseErr != nil {
			return complexNumber{}, errNum("malformed complex number: " + text)
		}
		im, err := parseCoefficient(body[split:])
		if err != nil {
			return complexNumber{}, err
		}
		return complexNumber{real: re, imag: im, suffix: suffix}, nil
	}

	// no unit marker: a plain real
	re, parseErr := strconv.ParseFloat(s, 64)
	if parseErr != nil {
		return complexNumber{}, errNum("malformed complex number: " + text)
	}
	return complexNumber{real: re, suffix: "i"}, nil
}

// parseCoefficient parses an imaginary coefficient where a bare sign (or
// nothing) means 1
func parseCoefficient(s string) (float64, *FormulaError) {
	switch s {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNum("malformed complex coefficient: " + s)
	}
	return f, nil
}

// formatComplex renders a complex value back into its text encoding
func formatComplex(c complexNumber) string {
	suffix := c.suffix
	if suffix == "" {
		suffix = "i"
	}
	if c.imag == 0 {
		return formatNumber(c.real)
	}

	var im string
	switch c.imag {
	case 1:
		im = suffix
	case -1:
		im = "-" + suffix
	default:
		im = formatNumber(c.imag) + suffix
	}
	if c.real == 0 {
		return im
	}
	if c.imag > 0 {
		return formatNumber(c.real) + "+" + im
	}
	return formatNumber(c.real) + im
}

// complexOperands parses all operands of a multi-argument complex function
// and enforces suffix consistency; the first seen suffix wins for output
func complexOperands(args []Primitive) ([]complexNumber, string, *FormulaError) {
	operands := make([]complexNumber, 0, len(args))
	suffix := ""
	for _, arg := range args {
		c, err := parseComplex(arg)
		if err != nil {
			return nil, "", err
		}
		if suffix == "" {
			suffix = c.suffix
		} else if c.suffix != suffix && c.imag != 0 {
			return nil, "", errNum("mismatched imaginary unit suffixes")
		}
		operands = append(operands, c)
	}
	if suffix == "" {
		suffix = "i"
	}
	return operands, suffix, nil
}

func complexAdd(a, b complexNumber) complexNumber {
	return complexNumber{real: a.real + b.real, imag: a.imag + b.imag, suffix: a.suffix}
}

func complexSub(a, b complexNumber) complexNumber {
	return complexNumber{real: a.real - b.real, imag: a.imag - b.imag, suffix: a.suffix}
}

func complexMul(a, b complexNumber) complexNumber {
	return complexNumber{
		real:   a.real*b.real - a.imag*b.imag,
		imag:   a.real*b.imag + a.imag*b.real,
		suffix: a.suffix,
	}
}

func complexDiv(a, b complexNumber) (complexNumber, *FormulaError) {
	denom := b.real*b.real + b.imag*b.imag
	if denom == 0 {
		return complexNumber{}, errNum("complex division by zero")
	}
	return complexNumber{
		real:   (a.real*b.real + a.imag*b.imag) / denom,
		imag:   (a.imag*b.real - a.real*b.imag) / denom,
		suffix: a.suffix,
	}, nil
}

func complexAbs(c complexNumber) float64 {
	return math.Hypot(c.real, c.imag)
}
