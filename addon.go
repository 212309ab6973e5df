// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"math"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

// Addon supplies per-column format overrides for a sheet being
// written. ColumnOverrides must be cheap (O(1) or near per column);
// it is consulted once per WriteSheet call, before the table is
// split into slices, so keys are absolute column indices.
//
// Later addons merge on top of earlier ones, non-nil fields winning,
// the same rule CellFormat.Merge applies everywhere.
type Addon interface {
	ColumnOverrides(f *frame.Frame, defaults Formats) map[int]CellFormat
}

// CellAddon is an Addon that also patches individual cells. Its mere
// presence forces the writer onto the slower per-cell body path, so
// implement it only when column-level overrides cannot express the
// styling. Coordinates are 0-based and relative to the data region of
// the slice being written (header rows excluded).
type CellAddon interface {
	Addon
	CellOverride(row, col int, value any) (CellFormat, bool)
}

// requiresCellWrite reports whether any addon forces the per-cell
// path.
func requiresCellWrite(addons []Addon) bool {
	for _, ad := range addons {
		if _, ok := ad.(CellAddon); ok {
			return true
		}
	}
	return false
}

// ScientificScope selects which numeric columns ScientificAddon may
// switch to scientific notation.
type ScientificScope string

const (
	ScientificNone    = ScientificScope("none")
	ScientificDecimal = ScientificScope("decimal")
	ScientificInteger = ScientificScope("integer")
	ScientificAll     = ScientificScope("all")
)

// ScientificAddon switches a numeric column to the scientific number
// format when any sampled magnitude falls outside [ThrMin, ThrMax).
// Zero thresholds default to 1e-4 and 1e12; MaxRows caps the scan at
// 20000 rows by default (negative: unlimited). The zero value scopes
// to decimal columns.
type ScientificAddon struct {
	Scope          ScientificScope
	ThrMin, ThrMax float64
	MaxRows        int
}

// ColumnOverrides implements Addon.
func (ad ScientificAddon) ColumnOverrides(f *frame.Frame, defaults Formats) map[int]CellFormat {
	scope := ad.Scope
	if scope == "" {
		scope = ScientificDecimal
	}
	if scope == ScientificNone {
		return nil
	}
	thrMin, thrMax := ad.ThrMin, ad.ThrMax
	if thrMin == 0 {
		thrMin = 1e-4
	}
	if thrMax == 0 {
		thrMax = 1e12
	}
	limit := ad.MaxRows
	if limit == 0 {
		limit = 20000
	}

	overrides := make(map[int]CellFormat)
	for col := 0; col < f.Width(); col++ {
		kind := f.Col(col).Kind
		if !kind.Numeric() {
			continue
		}
		switch scope {
		case ScientificDecimal:
			if kind.Integer() {
				continue
			}
		case ScientificInteger:
			if !kind.Integer() {
				continue
			}
		}
		for row, cell := range f.Col(col).Cells {
			if limit >= 0 && row >= limit {
				break
			}
			v, ok := toFloat(cell)
			if !ok || !isFinite(v) || v == 0 {
				continue
			}
			if a := math.Abs(v); a < thrMin || a >= thrMax {
				overrides[col] = defaults.Scientific
				break
			}
		}
	}
	return overrides
}
