package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseAndDecimal(t *testing.T) {
	e := testEngine()
	assert.Equal(t, "FF", eval(e, "BASE", 255.0, 16.0))
	assert.Equal(t, "00FF", eval(e, "BASE", 255.0, 16.0, 4.0))
	assert.Equal(t, "0", eval(e, "BASE", 0.0, 2.0))
	assert.Equal(t, "ZZ", eval(e, "BASE", 1295.0, 36.0))

	assert.Equal(t, 255.0, eval(e, "DECIMAL", "FF", 16.0))
	assert.Equal(t, 255.0, eval(e, "DECIMAL", "ff", 16.0))
	assert.Equal(t, 5.0, eval(e, "DECIMAL", "101", 2.0))

	assertError(t, eval(e, "BASE", -1.0, 16.0), ErrorCodeNum)
	assertError(t, eval(e, "BASE", 255.0, 37.0), ErrorCodeNum)
	assertError(t, eval(e, "DECIMAL", "G", 16.0), ErrorCodeNum)
	assertError(t, eval(e, "DECIMAL", "2", 2.0), ErrorCodeNum)
}

func TestRadixRoundTrip(t *testing.T) {
	e := testEngine()
	samples := []float64{0, 1, 7, 255, 4095, 1 << 20, 1<<48 - 1}
	for _, radix := range []float64{2, 8, 16, 36} {
		for _, n := range samples {
			encoded := eval(e, "BASE", n, radix)
			text, ok := encoded.(string)
			require.True(t, ok, "BASE(%v, %v) = %v", n, radix, encoded)
			assert.Equal(t, n, eval(e, "DECIMAL", text, radix),
				"DECIMAL(BASE(%v, %v)) should round-trip", n, radix)
		}
	}
}

func TestTwosComplementWindows(t *testing.T) {
	e := testEngine()
	// hex reads through a 40-bit window, octal 30-bit, binary 10-bit:
	// a numeral with its top bit set is negative
	assert.Equal(t, -1.0, eval(e, "HEX2DEC", "FFFFFFFFFF"))
	assert.Equal(t, -1.0, eval(e, "OCT2DEC", "7777777777"))
	assert.Equal(t, -1.0, eval(e, "BIN2DEC", "1111111111"))
	assert.Equal(t, -512.0, eval(e, "BIN2DEC", "1000000000"))
	assert.Equal(t, 511.0, eval(e, "BIN2DEC", "0111111111"))
	assert.Equal(t, 255.0, eval(e, "HEX2DEC", "FF"))

	assert.Equal(t, "FFFFFFFFFF", eval(e, "DEC2HEX", -1.0))
	assert.Equal(t, "7777777777", eval(e, "DEC2OCT", -1.0))
	assert.Equal(t, "1111111111", eval(e, "DEC2BIN", -1.0))
	assert.Equal(t, "00001010", eval(e, "DEC2BIN", 10.0, 8.0))

	// out of window
	assertError(t, eval(e, "DEC2BIN", 512.0), ErrorCodeNum)
	assertError(t, eval(e, "DEC2BIN", -513.0), ErrorCodeNum)
	assertError(t, eval(e, "HEX2DEC", "10000000000"), ErrorCodeNum)
}

func TestRadixCrossConversion(t *testing.T) {
	e := testEngine()
	assert.Equal(t, "FF", eval(e, "BIN2HEX", "11111111"))
	assert.Equal(t, "777", eval(e, "BIN2OCT", "111111111"))
	assert.Equal(t, "1010", eval(e, "HEX2BIN", "A"))
	assert.Equal(t, "12", eval(e, "OCT2HEX", "22"))
	// negative values render the full window regardless of places
	assert.Equal(t, "FFFFFFFFFF", eval(e, "OCT2HEX", "7777777777"))
}

func TestBitwiseOperations(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 2.0, eval(e, "BITAND", 6.0, 3.0))
	assert.Equal(t, 7.0, eval(e, "BITOR", 6.0, 3.0))
	assert.Equal(t, 5.0, eval(e, "BITXOR", 6.0, 3.0))
	assert.Equal(t, 16.0, eval(e, "BITLSHIFT", 4.0, 2.0))
	assert.Equal(t, 1.0, eval(e, "BITRSHIFT", 4.0, 2.0))

	// negative shift amounts reverse direction
	assert.Equal(t, 1.0, eval(e, "BITLSHIFT", 4.0, -2.0))
	assert.Equal(t, 16.0, eval(e, "BITRSHIFT", 4.0, -2.0))
}

func TestDeltaGestep(t *testing.T) {
	e := testEngine()
	assert.Equal(t, 1.0, eval(e, "DELTA", 5.0, 5.0))
	assert.Equal(t, 0.0, eval(e, "DELTA", 5.0, 4.0))
	assert.Equal(t, 1.0, eval(e, "DELTA", 0.0))
	assert.Equal(t, 1.0, eval(e, "GESTEP", 5.0, 4.0))
	assert.Equal(t, 1.0, eval(e, "GESTEP", 4.0, 4.0))
	assert.Equal(t, 0.0, eval(e, "GESTEP", 3.0, 4.0))
	assert.Equal(t, 1.0, eval(e, "GESTEP", 0.0))
}

func TestBitWidthBoundary(t *testing.T) {
	e := testEngine()
	// 2^46 << 1 = 2^47 fits; 2^47 << 1 = 2^48 exceeds the 48-bit ceiling
	assert.Equal(t, float64(int64(1)<<47), eval(e, "BITLSHIFT", float64(int64(1)<<46), 1.0))
	assertError(t, eval(e, "BITLSHIFT", float64(int64(1)<<47), 1.0), ErrorCodeNum)

	// operands themselves are bounded to [0, 2^48-1]
	assertError(t, eval(e, "BITAND", -1.0, 1.0), ErrorCodeNum)
	assertError(t, eval(e, "BITAND", float64(int64(1)<<48), 1.0), ErrorCodeNum)
	assertError(t, eval(e, "BITAND", 1.5, 1.0), ErrorCodeNum)

	// shift amounts are bounded to [-53, 53]
	assertError(t, eval(e, "BITLSHIFT", 1.0, 54.0), ErrorCodeNum)
	assertError(t, eval(e, "BITRSHIFT", 1.0, 54.0), ErrorCodeNum)
}
