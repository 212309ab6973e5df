// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlsxgrid plans and writes tabular data as XLSX workbooks.
//
// The planning layer is pure: it partitions a logical table into sheet
// slices that respect Excel's hard limits, plans header merges (true
// horizontal merges, visual vertical merges) and resolves per-column
// cell formats and autofit widths. The Writer feeds those plans to an
// excelize stream writer. Each WriteSheet call returns a Report with
// the slices actually produced and any warnings.
package xlsxgrid

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

// Excel structural limits.
const (
	MaxRows         = 1_048_576
	MaxCols         = 16_384
	MaxSheetNameLen = 31
)

// Configuration errors. They are returned before any worksheet is
// created; overflowing a sheet's row or column ceiling is not an error
// but a split plus a Report warning.
var (
	ErrDuplicateColumns = errors.New("duplicate column names")
	ErrHeaderEmpty      = errors.New("header grid is empty")
	ErrHeaderMismatch   = errors.New("header width differs from table width")
	ErrHeaderTooTall    = errors.New("header exceeds the row limit")
	ErrHeaderRagged     = errors.New("header grid rows differ in length")
)

// ColRef selects a column by name or by 0-based index.
type ColRef struct {
	name    string
	index   int
	byIndex bool
}

// ColName references a column by name.
func ColName(name string) ColRef { return ColRef{name: name} }

// ColIndex references a column by 0-based index.
func ColIndex(i int) ColRef { return ColRef{index: i, byIndex: true} }

func (r ColRef) resolve(f *frame.Frame) (int, error) {
	if r.byIndex {
		if r.index < 0 || r.index >= f.Width() {
			return 0, fmt.Errorf("column index %d out of range [0,%d)", r.index, f.Width())
		}
		return r.index, nil
	}
	if i := f.Index(r.name); i >= 0 {
		return i, nil
	}
	return 0, fmt.Errorf("column not found: %q", r.name)
}

// sortedIndices resolves refs to a sorted, de-duplicated index slice.
func sortedIndices(f *frame.Frame, refs []ColRef) ([]int, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	seen := make(map[int]struct{}, len(refs))
	idx := make([]int, 0, len(refs))
	for _, r := range refs {
		i, err := r.resolve(f)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx, nil
}

// validateUniqueColumns returns ErrDuplicateColumns with the offending
// names and positions when the frame has repeated column names.
func validateUniqueColumns(f *frame.Frame) error {
	names := f.Names()
	seen := make(map[string]int, len(names))
	var dups []string
	for i, name := range names {
		if j, ok := seen[name]; ok {
			dups = append(dups, fmt.Sprintf("%q at %d and %d", name, j, i))
			continue
		}
		seen[name] = i
	}
	if dups == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrDuplicateColumns, strings.Join(dups, "; "))
}
