// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package frame is a minimal column-oriented table model for feeding
// spreadsheet exporters: named, typed columns with nullable cells.
//
// It deliberately implements only what a sheet-layout planner needs
// (names, kinds, windowed views) and no dataframe algebra.
package frame

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the element type of a Column.
type Kind uint8

const (
	String Kind = iota
	Bool
	Int
	Float
	Time
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Time:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Numeric reports whether the kind is written as a number.
func (k Kind) Numeric() bool { return k == Int || k == Float }

// Integer reports whether the kind is a whole number.
func (k Kind) Integer() bool { return k == Int }

// Column is one named, typed column. Cells holds int64 for Int,
// float64 for Float, bool for Bool, time.Time for Time and string for
// String kinds; a nil cell is a missing value.
type Column struct {
	Name  string
	Kind  Kind
	Cells []any
}

// Frame is an ordered set of equally long Columns.
type Frame struct {
	cols   []Column
	height int
}

// New builds a Frame from the given columns.
// All columns must have the same length.
func New(cols ...Column) (*Frame, error) {
	f := Frame{cols: cols}
	if len(cols) != 0 {
		f.height = len(cols[0].Cells)
		for _, c := range cols[1:] {
			if len(c.Cells) != f.height {
				return nil, fmt.Errorf("column %q has %d cells, want %d", c.Name, len(c.Cells), f.height)
			}
		}
	}
	return &f, nil
}

// MustNew is New, panicking on ragged columns. For tests and literals.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Height returns the number of rows.
func (f *Frame) Height() int { return f.height }

// Col returns the i-th column.
func (f *Frame) Col(i int) *Column { return &f.cols[i] }

// Names returns the column names, in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i := range f.cols {
		names[i] = f.cols[i].Name
	}
	return names
}

// Cell returns the value at (row, col); nil means missing.
func (f *Frame) Cell(row, col int) any { return f.cols[col].Cells[row] }

// Slice returns a view of n rows starting at off.
// The view shares the backing cell slices.
func (f *Frame) Slice(off, n int) *Frame {
	if off < 0 {
		off = 0
	}
	if off > f.height {
		off = f.height
	}
	if n < 0 || off+n > f.height {
		n = f.height - off
	}
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = Column{Name: c.Name, Kind: c.Kind, Cells: c.Cells[off : off+n]}
	}
	return &Frame{cols: cols, height: n}
}

// SelectRange returns a view of the columns in [c0, c1).
func (f *Frame) SelectRange(c0, c1 int) *Frame {
	if c0 < 0 {
		c0 = 0
	}
	if c1 > len(f.cols) {
		c1 = len(f.cols)
	}
	if c1 < c0 {
		c1 = c0
	}
	return &Frame{cols: f.cols[c0:c1], height: f.height}
}

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i := range f.cols {
		if f.cols[i].Name == name {
			return i
		}
	}
	return -1
}

// FromRecords builds a Frame from CSV-style string records, sniffing
// each column's kind: a column where every non-empty value parses as an
// integer becomes Int, as a float becomes Float, otherwise String.
// Empty strings become missing cells in numeric columns and stay empty
// strings in String columns.
func FromRecords(names []string, records [][]string) (*Frame, error) {
	for i, rec := range records {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("record %d has %d fields, want %d", i, len(rec), len(names))
		}
	}
	cols := make([]Column, len(names))
	for j, name := range names {
		kind := sniffKind(records, j)
		cells := make([]any, len(records))
		for i, rec := range records {
			s := rec[j]
			switch kind {
			case Int:
				if s == "" {
					cells[i] = nil
				} else {
					v, _ := strconv.ParseInt(s, 10, 64)
					cells[i] = v
				}
			case Float:
				if s == "" {
					cells[i] = nil
				} else {
					v, _ := strconv.ParseFloat(s, 64)
					cells[i] = v
				}
			default:
				cells[i] = s
			}
		}
		cols[j] = Column{Name: name, Kind: kind, Cells: cells}
	}
	return New(cols...)
}

func sniffKind(records [][]string, col int) Kind {
	kind, seen := Int, false
	for _, rec := range records {
		s := rec[col]
		if s == "" {
			continue
		}
		seen = true
		if kind == Int {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil {
				continue
			}
			kind = Float
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return String
		}
	}
	if !seen {
		return String
	}
	return kind
}

// FormatTime renders a cell's time the way the exporter writes it.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
