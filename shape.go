package formula

// Shape is a 2-D view reconstructed over a flat value sequence. The engine
// represents array-like inputs as flat sequences with no row/column
// metadata, so consumers that need a shape infer one on demand. Keeping the
// reconstruction in one place keeps the approximation visible and testable
// instead of baking it into each consumer.
type Shape struct {
	Rows   int
	Cols   int
	Values []Primitive
}

// InferShape reconstructs the most nearly square (rows, cols) factorization
// of len(values). Divisors d are scanned in ascending order as candidate
// row counts with cols = n/d, minimizing |rows-cols|; the first minimum in
// scan order wins ties, so 6 values infer as (2,3) rather than (3,2).
// A single value is (1,1) without searching.
func InferShape(values []Primitive) Shape {
	n := len(values)
	if n <= 1 {
		return Shape{Rows: 1, Cols: 1, Values: values}
	}

	bestRows, bestCols := 1, n
	bestDiff := n - 1
	for d := 1; d <= n; d++ {
		if n%d != 0 {
			continue
		}
		rows, cols := d, n/d
		diff := rows - cols
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestRows, bestCols, bestDiff = rows, cols, diff
		}
	}
	return Shape{Rows: bestRows, Cols: bestCols, Values: values}
}

// At returns the value at a row/column position in row-major order
func (s Shape) At(row, col int) Primitive {
	return s.Values[row*s.Cols+col]
}

// Row returns one full row of the shape
func (s Shape) Row(row int) []Primitive {
	return s.Values[row*s.Cols : (row+1)*s.Cols]
}
