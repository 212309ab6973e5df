// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"fmt"
	"strings"
)

// Excel rejects these characters in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	"*", "_", ":", "_", "?", "_", "/", "_", "\\", "_", "[", "_", "]", "_",
)

// SanitizeSheetName replaces Excel-illegal characters with "_", trims
// whitespace, substitutes "Sheet" for an empty result and truncates to
// 31 characters.
func SanitizeSheetName(name string) string {
	name = strings.TrimSpace(sheetNameReplacer.Replace(name))
	if name == "" {
		name = "Sheet"
	}
	return truncateRunes(name, MaxSheetNameLen)
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// PlanSheetSlices partitions a heightDF×widthDF table (data rows only,
// header excluded) into slices that fit Excel's row and column
// ceilings. Column slabs are computed first and rows within them, and
// the slices are emitted columns-outer, rows-inner; the 1-based
// position in that order is the "_k" sheet-name suffix, so the order
// is part of the contract. A single slice keeps sheetName unmodified.
// Zero-row tables still get one header-only slice. When the table is
// split, one warning is recorded on report.
func PlanSheetSlices(heightDF, widthDF, headerHeight int, sheetName string, report *Report) ([]SheetSlice, error) {
	if headerHeight <= 0 {
		return nil, fmt.Errorf("%w: header height %d, want >= 1", ErrHeaderEmpty, headerHeight)
	}
	maxDataRows := MaxRows - headerHeight
	if maxDataRows <= 0 {
		return nil, fmt.Errorf("%w: header height %d", ErrHeaderTooTall, headerHeight)
	}

	type span struct{ start, end int }
	var colSpans []span
	for c := 0; c < widthDF; c += MaxCols {
		colSpans = append(colSpans, span{c, min(widthDF, c+MaxCols)})
	}
	var rowSpans []span
	for r := 0; r < heightDF; r += maxDataRows {
		rowSpans = append(rowSpans, span{r, min(heightDF, r+maxDataRows)})
	}
	if len(rowSpans) == 0 {
		// Still emit a sheet so headers get written for empty tables.
		rowSpans = append(rowSpans, span{0, 0})
	}

	total := len(colSpans) * len(rowSpans)
	slices := make([]SheetSlice, 0, total)
	k := 1
	for _, cs := range colSpans {
		for _, rs := range rowSpans {
			name := sheetName
			if total > 1 {
				name = suffixSheetName(sheetName, k)
			}
			slices = append(slices, SheetSlice{
				SheetName: name,
				RowStart:  rs.start, RowEnd: rs.end,
				ColStart: cs.start, ColEnd: cs.end,
			})
			k++
		}
	}
	if total > 1 {
		report.Warnf("Excel limit overflow: split into %d sheets (columns-first, then rows).", total)
	}
	return slices, nil
}

// suffixSheetName appends "_k", pre-truncating the base so the result
// stays within the 31-character limit.
func suffixSheetName(base string, k int) string {
	suffix := fmt.Sprintf("_%d", k)
	return truncateRunes(base, max(1, MaxSheetNameLen-len(suffix))) + suffix
}

// nameRegistry issues workbook-unique sheet names. Collisions bump a
// deterministic "__2", "__3", ... suffix, shortening the base as the
// suffix grows so candidates stay within the limit and distinct for
// any counter value. Order-dependent: the n-th registration of equal
// input always yields the same output.
type nameRegistry map[string]struct{}

func (reg nameRegistry) unique(name string) string {
	if _, exists := reg[name]; !exists {
		reg[name] = struct{}{}
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("__%d", i)
		candidate := truncateRunes(name, max(1, MaxSheetNameLen-len(suffix))) + suffix
		if _, exists := reg[candidate]; !exists {
			reg[candidate] = struct{}{}
			return candidate
		}
	}
}
