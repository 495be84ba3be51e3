package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gridcalc/formula"
)

// cellStore is a minimal in-memory cell backing for the evaluator
type cellStore struct {
	cells map[formula.CellRef]formula.Primitive
}

func newCellStore() *cellStore {
	return &cellStore{cells: make(map[formula.CellRef]formula.Primitive)}
}

func (s *cellStore) Get(ref formula.CellRef) (formula.Primitive, bool) {
	value, ok := s.cells[ref]
	return value, ok
}

// bind parses a --set binding of the form A1=value. Values that parse as
// numbers or TRUE/FALSE bind as such; everything else binds as text.
func (s *cellStore) bind(binding string) error {
	name, raw, found := strings.Cut(binding, "=")
	if !found {
		return fmt.Errorf("invalid binding %q, expected NAME=VALUE", binding)
	}
	ref, err := parseCellRef(name)
	if err != nil {
		return err
	}
	s.cells[ref] = parseLiteral(raw)
	return nil
}

func parseLiteral(raw string) formula.Primitive {
	if num, err := strconv.ParseFloat(raw, 64); err == nil {
		return num
	}
	switch strings.ToUpper(raw) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return raw
}

// parseCellRef converts an A1-style reference to a zero-based CellRef
func parseCellRef(name string) (formula.CellRef, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "$", "")
	colEnd := 0
	for colEnd < len(name) && name[colEnd] >= 'A' && name[colEnd] <= 'Z' {
		colEnd++
	}
	if colEnd == 0 || colEnd == len(name) {
		return formula.CellRef{}, fmt.Errorf("invalid cell reference %q", name)
	}
	col := uint32(0)
	for i := 0; i < colEnd; i++ {
		col = col*26 + uint32(name[i]-'A'+1)
	}
	row, err := strconv.ParseUint(name[colEnd:], 10, 32)
	if err != nil || row == 0 {
		return formula.CellRef{}, fmt.Errorf("invalid cell reference %q", name)
	}
	return formula.CellRef{Row: uint32(row - 1), Column: col - 1}, nil
}

// expandRange lists every reference in a rectangular A1:B2-style range
// in row-major order
func expandRange(rangeText string) ([]formula.CellRef, error) {
	parts := strings.Split(rangeText, ":")
	if len(parts) == 1 {
		ref, err := parseCellRef(parts[0])
		if err != nil {
			return nil, err
		}
		return []formula.CellRef{ref}, nil
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q", rangeText)
	}
	start, err := parseCellRef(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := parseCellRef(parts[1])
	if err != nil {
		return nil, err
	}
	if end.Row < start.Row || end.Column < start.Column {
		return nil, fmt.Errorf("inverted range %q", rangeText)
	}
	refs := make([]formula.CellRef, 0, (end.Row-start.Row+1)*(end.Column-start.Column+1))
	for row := start.Row; row <= end.Row; row++ {
		for col := start.Column; col <= end.Column; col++ {
			refs = append(refs, formula.CellRef{Row: row, Column: col})
		}
	}
	return refs, nil
}
