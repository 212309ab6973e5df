// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"strconv"
)

// AutofitRule selects which region feeds the width estimate.
type AutofitRule string

const (
	AutofitNone   = AutofitRule("none")
	AutofitHeader = AutofitRule("header")
	AutofitBody   = AutofitRule("body")
	AutofitAll    = AutofitRule("all")
)

// AutofitPolicy controls the column width heuristic. Excel widths are
// not exactly character counts; this estimates ascii + 1.6×non-ascii
// characters of the rendered value and clamps the observed maximum.
type AutofitPolicy struct {
	// Rule defaults to AutofitHeader.
	Rule AutofitRule
	// MaxRows caps how many body rows are sampled; 0 means the
	// default 20000, negative means unlimited.
	MaxRows int
	// MinWidth and MaxWidth clamp the final width (defaults 8, 60);
	// Padding (default 2) is added to the observed maximum.
	MinWidth, MaxWidth, Padding int
}

// DefaultAutofitPolicy is what a nil SheetOptions.Autofit means.
func DefaultAutofitPolicy() AutofitPolicy {
	return AutofitPolicy{Rule: AutofitHeader, MaxRows: 20000, MinWidth: 8, MaxWidth: 60, Padding: 2}
}

func (p AutofitPolicy) withDefaults() AutofitPolicy {
	def := DefaultAutofitPolicy()
	if p.Rule == "" {
		p.Rule = def.Rule
	}
	if p.MaxRows == 0 {
		p.MaxRows = def.MaxRows
	}
	if p.MinWidth == 0 {
		p.MinWidth = def.MinWidth
	}
	if p.MaxWidth == 0 {
		p.MaxWidth = def.MaxWidth
	}
	return p
}

// sampleLimit returns the body-row sample cap, or -1 for unlimited.
func (p AutofitPolicy) sampleLimit() int {
	if p.MaxRows < 0 {
		return -1
	}
	return p.MaxRows
}

// clampWidth turns an observed maximum estimate into the final column
// width.
func (p AutofitPolicy) clampWidth(observed int) int {
	lo := max(1, p.MinWidth)
	hi := min(255, max(lo, p.MaxWidth))
	return min(hi, max(lo, observed+max(0, p.Padding)))
}

// estimateWidth estimates the display width of one cell: ascii
// characters count 1, others 1.6; numeric cells are measured on their
// rendered representation ("%d" for integers, "%.4f" for decimals,
// the policy strings for NaN/Inf and missing).
func estimateWidth(v any, numericCol, integerCol, keepMissing bool, vp ValuePolicy) int {
	if v == nil {
		if keepMissing {
			return len(vp.MissingStr)
		}
		return 0
	}
	s := stringifyCell(v)
	est := 0
	for _, r := range s {
		if r < 128 {
			est++
		}
	}
	est += int(1.6 * float64(len([]rune(s))-est))
	if !numericCol {
		return est
	}
	f, ok := toFloat(v)
	if !ok {
		return est
	}
	if !isFinite(f) {
		if !keepMissing {
			return 0
		}
		return len(vp.nanInfString(f))
	}
	if integerCol {
		return len(strconv.FormatInt(int64(f), 10))
	}
	return len(strconv.FormatFloat(f, 'f', 4, 64))
}
