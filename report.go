// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import "fmt"

// SheetSlice is one rectangular sub-region of the logical table,
// mapped to one worksheet. Row/col bounds are 0-based, end-exclusive,
// in source table coordinates (data rows, header excluded).
type SheetSlice struct {
	SheetName        string
	RowStart, RowEnd int
	ColStart, ColEnd int
}

// HorizontalMerge is a true merged-cell range: a run of at least two
// adjacent equal non-empty header cells in one row. ColEnd is
// inclusive.
type HorizontalMerge struct {
	Row, ColStart, ColEnd int
	Text                  string
}

// Report accumulates the observable result of one WriteSheet call:
// the sheet slices produced (with their final, de-duplicated names)
// and any warnings. Overflow splits warn here instead of failing.
type Report struct {
	Sheets   []SheetSlice
	Warnings []string
}

// Warnf records a warning.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
