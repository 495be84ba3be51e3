package formula

import (
	"math"
	"strings"
)

const radixDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// maxBitValue is the inclusive ceiling for bitwise operands and results
const maxBitValue = float64(1<<48) - 1

// encodeRadix converts a non-negative integer to a string in the given
// radix (2-36) using digits 0-9A-Z
func encodeRadix(n int64, radix int) string {
	if n == 0 {
		return "0"
	}
	var sb strings.Builder
	digits := make([]byte, 0, 48)
	for n > 0 {
		digits = append(digits, radixDigits[n%int64(radix)])
		n /= int64(radix)
	}
	for i := len(digits) - 1; i >= 0; i-- {
		sb.WriteByte(digits[i])
	}
	return sb.String()
}

// decodeRadix parses text in the given radix (2-36). Characters outside
// the radix alphabet are a domain error, reported as #NUM! because the
// text itself is the encoded numeric domain.
func decodeRadix(text string, radix int) (int64, *FormulaError) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return 0, errNum("empty numeral")
	}
	var n int64
	for i := 0; i < len(text); i++ {
		d := strings.IndexByte(radixDigits, text[i])
		if d < 0 || d >= radix {
			return 0, errNum("invalid digit " + string(text[i]) + " for radix")
		}
		n = n*int64(radix) + int64(d)
		if n < 0 {
			return 0, errNum("numeral out of range")
		}
	}
	return n, nil
}

// twosComplementWidth gives the fixed bit window used for two's-complement
// interpretation of each positional format: 10 binary digits, 10 octal
// digits (30 bits), 10 hex digits (40 bits). A numeral is negative iff the
// top bit of its window is set.
func twosComplementWidth(radix int) int {
	switch radix {
	case 2:
		return 10
	case 8:
		return 30
	case 16:
		return 40
	default:
		return 0
	}
}

// decodeSigned parses a fixed-width two's-complement numeral in radix
// 2, 8 or 16
func decodeSigned(text string, radix int) (int64, *FormulaError) {
	width := twosComplementWidth(radix)
	maxDigits := 10
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > maxDigits {
		return 0, errNum("numeral has too many digits")
	}
	n, err := decodeRadix(trimmed, radix)
	if err != nil {
		return 0, err
	}
	if n >= int64(1)<<(width-1) {
		n -= int64(1) << width
	}
	return n, nil
}

// encodeSigned renders an integer as a fixed-width two's-complement
// numeral when negative, or a plain numeral when non-negative. places
// pads with leading zeros; places < 0 means no padding requested.
func encodeSigned(n int64, radix int, places int) (string, *FormulaError) {
	width := twosComplementWidth(radix)
	min := -(int64(1) << (width - 1))
	max := int64(1)<<(width-1) - 1
	if n < min || n > max {
		return "", errNum("value out of range for format")
	}
	var s string
	if n < 0 {
		s = encodeRadix(n+int64(1)<<width, radix)
		// negative values always occupy the full window, ignoring places
		return s, nil
	}
	s = encodeRadix(n, radix)
	if places >= 0 {
		if places > 10 || len(s) > places {
			return "", errNum("places too small for value")
		}
		s = strings.Repeat("0", places-len(s)) + s
	}
	return s, nil
}

// bitOperand validates a bitwise operand: integral, within [0, 2^48-1]
func bitOperand(v Primitive) (uint64, *FormulaError) {
	num, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	if num < 0 || num > maxBitValue || num != math.Trunc(num) {
		return 0, errNum("bitwise operand out of range")
	}
	return uint64(num), nil
}

// bitResult checks a bitwise result against the 48-bit ceiling
func bitResult(v float64) Primitive {
	if v < 0 || v > maxBitValue {
		return errNum("bitwise result out of range")
	}
	return v
}

// shiftBits shifts n left by amount bits, negative amounts shifting right.
// The amount is bounded to [-53, 53].
func shiftBits(n uint64, amount int64) Primitive {
	if amount < -53 || amount > 53 {
		return errNum("shift amount out of range")
	}
	if amount < 0 {
		return float64(n >> uint(-amount))
	}
	shifted := float64(n) * math.Pow(2, float64(amount))
	return bitResult(shifted)
}
