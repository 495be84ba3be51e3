package formula

import (
	"math/rand"
	"time"
)

// Clock interface provides time functionality for testing
type Clock interface {
	Now() time.Time
}

// WallClock is the default implementation using system time
type WallClock struct{}

func (w *WallClock) Now() time.Time {
	return time.Now()
}

// RandomGenerator interface provides random number generation for testing.
// The engine holds a single shared generator; concurrent evaluations must
// serialize access to it or inject an independent generator per goroutine.
type RandomGenerator interface {
	Float64() float64
}

// DefaultRandomGenerator uses the standard library's rand package
type DefaultRandomGenerator struct{}

func (d *DefaultRandomGenerator) Float64() float64 {
	return rand.Float64()
}

// CellRef identifies a cell by zero-based row and column
type CellRef struct {
	Row    uint32
	Column uint32
}

// CellReader gives read access to other cells' values. Get reports
// ok=false for a reference outside the store; an unset cell inside the
// store reads as nil.
type CellReader interface {
	Get(ref CellRef) (Primitive, bool)
}

// Context carries the per-evaluation cell context: the current cell's own
// reference and read access to the rest of the store. It is created per
// formula evaluation and never mutated by a function implementation. Most
// functions ignore it entirely.
type Context struct {
	// Ref is the address of the cell whose formula is being evaluated
	Ref CellRef

	// Cells is the backing store, nil when evaluating outside a workbook
	Cells CellReader
}

// NewContext creates an evaluation context for a cell with no backing store
func NewContext(ref CellRef) *Context {
	return &Context{Ref: ref}
}
