// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

// Grid is a rectangular header grid, rows × columns, indexed
// [row][col]. Width must equal the table's column count.
type Grid [][]string

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	c := make(Grid, len(g))
	for i, row := range g {
		c[i] = append([]string(nil), row...)
	}
	return c
}

// slice returns a copy of the grid restricted to columns [c0, c1).
func (g Grid) slice(c0, c1 int) Grid {
	s := make(Grid, len(g))
	for i, row := range g {
		s[i] = append([]string(nil), row[c0:c1]...)
	}
	return s
}

// validate checks rectangularity and the width contract.
func (g Grid) validate(width int) error {
	if len(g) == 0 {
		return ErrHeaderEmpty
	}
	for _, row := range g {
		if len(row) != len(g[0]) {
			return ErrHeaderRagged
		}
	}
	if len(g[0]) != width {
		return ErrHeaderMismatch
	}
	return nil
}

// Range is an inclusive [Start, End] run of column indices.
type Range struct{ Start, End int }

// ContiguousRanges groups a sorted sequence of distinct non-negative
// integers into maximal runs of consecutive values. The ranges are
// disjoint, sorted, and expand back to exactly the input.
func ContiguousRanges(sorted []int) []Range {
	if len(sorted) == 0 {
		return nil
	}
	var ranges []Range
	start, end := sorted[0], sorted[0]
	for _, i := range sorted[1:] {
		if i == end+1 {
			end = i
			continue
		}
		ranges = append(ranges, Range{start, end})
		start, end = i, i
	}
	return append(ranges, Range{start, end})
}

// CellPos addresses one header cell, 0-based.
type CellPos struct{ Row, Col int }

// PlanHorizontalMerges scans each row left to right for maximal runs
// of at least two adjacent equal non-empty cells and returns the
// merges keyed by row. Empty cells never start or extend a run.
func PlanHorizontalMerges(g Grid) map[int][]HorizontalMerge {
	merges := make(map[int][]HorizontalMerge)
	if len(g) == 0 {
		return merges
	}
	nCols := len(g[0])
	for row, cells := range g {
		for col := 0; col < nCols; {
			val := cells[col]
			if val == "" {
				col++
				continue
			}
			end := col + 1
			for end < nCols && cells[end] == val {
				end++
			}
			if end-col > 1 {
				merges[row] = append(merges[row], HorizontalMerge{
					Row: row, ColStart: col, ColEnd: end - 1, Text: val,
				})
			}
			col = end
		}
	}
	return merges
}

type verticalRun struct {
	col, rowStart, rowEnd int
	value                 string
}

// verticalRuns yields maximal runs (length >= 2) of identical
// non-empty cells stacked in one column, column by column.
func verticalRuns(g Grid) []verticalRun {
	if len(g) == 0 {
		return nil
	}
	nRows, nCols := len(g), len(g[0])
	var runs []verticalRun
	for col := 0; col < nCols; col++ {
		for row := 0; row < nRows; {
			val := g[row][col]
			if val == "" {
				row++
				continue
			}
			next := row + 1
			for next < nRows && g[next][col] == val {
				next++
			}
			if next-row > 1 {
				runs = append(runs, verticalRun{col: col, rowStart: row, rowEnd: next - 1, value: val})
			}
			row = next
		}
	}
	return runs
}

// PlanVerticalBorders renders each vertical run as one visual block:
// the top cell keeps its top border, the bottom cell its bottom
// border, interior cells get neither; left and right are always drawn.
// Cells outside any run are absent from the map and should get the
// full default border. True vertical merges are avoided on purpose:
// they cannot be emitted once earlier rows have been streamed out.
func PlanVerticalBorders(g Grid) map[CellPos]Border {
	plan := make(map[CellPos]Border)
	for _, run := range verticalRuns(g) {
		for row := run.rowStart; row <= run.rowEnd; row++ {
			b := Border{Left: 1, Right: 1}
			if row == run.rowStart {
				b.Top = 1
			}
			if row == run.rowEnd {
				b.Bottom = 1
			}
			plan[CellPos{Row: row, Col: run.col}] = b
		}
	}
	return plan
}

// BlankVerticalRuns clears the text of every non-top cell in each
// vertical run, in place, and returns g. Run this before
// PlanHorizontalMerges so the horizontal pass sees the final grid.
func BlankVerticalRuns(g Grid) Grid {
	for _, run := range verticalRuns(g) {
		for row := run.rowStart + 1; row <= run.rowEnd; row++ {
			g[row][run.col] = ""
		}
	}
	return g
}

// MergeCoveredCells marks every cell of each horizontal merge except
// the leftmost. Writing into a covered cell after the merge is an
// Excel format violation, so the writer must skip them.
func MergeCoveredCells(merges map[int][]HorizontalMerge) map[CellPos]bool {
	covered := make(map[CellPos]bool)
	for row, runs := range merges {
		for _, m := range runs {
			for col := m.ColStart + 1; col <= m.ColEnd; col++ {
				covered[CellPos{Row: row, Col: col}] = true
			}
		}
	}
	return covered
}
