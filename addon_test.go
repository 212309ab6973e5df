// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"testing"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

func TestScientificAddon(t *testing.T) {
	f := frame.MustNew(
		frame.Column{Name: "tiny", Kind: frame.Float, Cells: []any{1e-6, 0.5}},
		frame.Column{Name: "huge", Kind: frame.Float, Cells: []any{2.0, 1e13}},
		frame.Column{Name: "mid", Kind: frame.Float, Cells: []any{0.5, 2.0}},
		frame.Column{Name: "count", Kind: frame.Int, Cells: []any{int64(1e14), int64(2)}},
		frame.Column{Name: "label", Kind: frame.String, Cells: []any{"1e-9", "x"}},
	)
	fmts := DefaultFormats()

	got := ScientificAddon{}.ColumnOverrides(f, fmts)
	if len(got) != 2 {
		t.Fatalf("got %d overrides: %v", len(got), got)
	}
	for _, col := range []int{0, 1} {
		ov, ok := got[col]
		if !ok {
			t.Errorf("column %d missing", col)
			continue
		}
		if ov.Key() != fmts.Scientific.Key() {
			t.Errorf("column %d: %q", col, ov.Key())
		}
	}

	// Integer scope picks up the huge count column instead.
	got = ScientificAddon{Scope: ScientificInteger}.ColumnOverrides(f, fmts)
	if len(got) != 1 {
		t.Fatalf("integer scope: got %v", got)
	}
	if _, ok := got[3]; !ok {
		t.Errorf("integer scope: got %v", got)
	}

	if got = (ScientificAddon{Scope: ScientificNone}).ColumnOverrides(f, fmts); got != nil {
		t.Errorf("none scope: got %v", got)
	}
}

func TestScientificAddonSampleCap(t *testing.T) {
	cells := make([]any, 100)
	for i := range cells {
		cells[i] = 1.0
	}
	cells[99] = 1e15
	f := frame.MustNew(frame.Column{Name: "v", Kind: frame.Float, Cells: cells})
	fmts := DefaultFormats()
	if got := (ScientificAddon{MaxRows: 10}).ColumnOverrides(f, fmts); len(got) != 0 {
		t.Errorf("capped scan found %v", got)
	}
	if got := (ScientificAddon{MaxRows: -1}).ColumnOverrides(f, fmts); len(got) != 1 {
		t.Errorf("unlimited scan found %v", got)
	}
}

type cellPatcher struct{}

func (cellPatcher) ColumnOverrides(*frame.Frame, Formats) map[int]CellFormat { return nil }
func (cellPatcher) CellOverride(row, col int, value any) (CellFormat, bool) {
	return CellFormat{}, false
}

func TestRequiresCellWrite(t *testing.T) {
	if requiresCellWrite([]Addon{ScientificAddon{}}) {
		t.Error("column-only addon must not force the cell path")
	}
	if !requiresCellWrite([]Addon{ScientificAddon{}, cellPatcher{}}) {
		t.Error("cell addon must force the cell path")
	}
	if requiresCellWrite(nil) {
		t.Error("no addons")
	}
}
