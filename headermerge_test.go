// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContiguousRanges(t *testing.T) {
	for i, tc := range []struct {
		in   []int
		want []Range
	}{
		{nil, nil},
		{[]int{3}, []Range{{3, 3}}},
		{[]int{0, 1, 2, 4, 5, 7}, []Range{{0, 2}, {4, 5}, {7, 7}}},
		{[]int{1, 3, 5}, []Range{{1, 1}, {3, 3}, {5, 5}}},
		{[]int{0, 1, 2, 3}, []Range{{0, 3}}},
	} {
		got := ContiguousRanges(tc.in)
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%d. %v: %s", i, tc.in, d)
		}
	}
}

func TestPlanHorizontalMerges(t *testing.T) {
	for i, tc := range []struct {
		grid Grid
		want map[int][]HorizontalMerge
	}{
		{
			Grid{{"a", "b", "c"}},
			map[int][]HorizontalMerge{},
		},
		{
			Grid{
				{"G1", "G1", "x"},
				{"sub1", "sub2", "x"},
			},
			map[int][]HorizontalMerge{
				0: {{Row: 0, ColStart: 0, ColEnd: 1, Text: "G1"}},
			},
		},
		{
			// Empty cells never join a run.
			Grid{{"a", "", "", "a"}},
			map[int][]HorizontalMerge{},
		},
		{
			Grid{{"a", "a", "b", "b", "b"}},
			map[int][]HorizontalMerge{
				0: {
					{Row: 0, ColStart: 0, ColEnd: 1, Text: "a"},
					{Row: 0, ColStart: 2, ColEnd: 4, Text: "b"},
				},
			},
		},
	} {
		got := PlanHorizontalMerges(tc.grid)
		if d := cmp.Diff(tc.want, got); d != "" {
			t.Errorf("%d. %v: %s", i, tc.grid, d)
		}
	}
}

func TestVerticalRuns(t *testing.T) {
	grid := Grid{
		{"A", "X", "p"},
		{"A", "X", "q"},
		{"A", "Y", "q"},
		{"", "Y", "r"},
		{"B", "", "r"},
		{"B", "Y", "r"},
	}
	want := []verticalRun{
		{col: 0, rowStart: 0, rowEnd: 2, value: "A"},
		{col: 0, rowStart: 4, rowEnd: 5, value: "B"},
		{col: 1, rowStart: 0, rowEnd: 1, value: "X"},
		{col: 1, rowStart: 2, rowEnd: 3, value: "Y"},
		{col: 2, rowStart: 1, rowEnd: 2, value: "q"},
		{col: 2, rowStart: 3, rowEnd: 5, value: "r"},
	}
	got := verticalRuns(grid)
	if d := cmp.Diff(want, got, cmp.AllowUnexported(verticalRun{})); d != "" {
		t.Error(d)
	}
}

func TestPlanVerticalBorders(t *testing.T) {
	grid := Grid{
		{"A", "x"},
		{"A", "y"},
		{"A", "z"},
	}
	want := map[CellPos]Border{
		{Row: 0, Col: 0}: {Top: 1, Left: 1, Right: 1},
		{Row: 1, Col: 0}: {Left: 1, Right: 1},
		{Row: 2, Col: 0}: {Bottom: 1, Left: 1, Right: 1},
	}
	got := PlanVerticalBorders(grid)
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestBlankVerticalRuns(t *testing.T) {
	grid := Grid{
		{"A", "x"},
		{"A", "x"},
		{"B", "x"},
	}
	want := Grid{
		{"A", "x"},
		{"", ""},
		{"B", ""},
	}
	got := BlankVerticalRuns(grid.Clone())
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestMergeCoveredCells(t *testing.T) {
	merges := map[int][]HorizontalMerge{
		0: {{Row: 0, ColStart: 1, ColEnd: 3, Text: "a"}},
		2: {{Row: 2, ColStart: 0, ColEnd: 1, Text: "b"}},
	}
	want := map[CellPos]bool{
		{Row: 0, Col: 2}: true,
		{Row: 0, Col: 3}: true,
		{Row: 2, Col: 1}: true,
	}
	got := MergeCoveredCells(merges)
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
}

func TestVerticalThenHorizontal(t *testing.T) {
	// Blanking vertical runs first must not leave the horizontal pass
	// a repeated label it would merge across a blanked cell.
	grid := Grid{
		{"G", "G"},
		{"G", "G"},
	}
	g := BlankVerticalRuns(grid.Clone())
	merges := PlanHorizontalMerges(g)
	want := map[int][]HorizontalMerge{
		0: {{Row: 0, ColStart: 0, ColEnd: 1, Text: "G"}},
	}
	if d := cmp.Diff(want, merges); d != "" {
		t.Error(d)
	}
}

func TestGridValidate(t *testing.T) {
	for i, tc := range []struct {
		grid  Grid
		width int
		want  error
	}{
		{Grid{}, 2, ErrHeaderEmpty},
		{Grid{{"a", "b"}, {"c"}}, 2, ErrHeaderRagged},
		{Grid{{"a", "b"}}, 3, ErrHeaderMismatch},
		{Grid{{"a", "b"}}, 2, nil},
	} {
		if got := tc.grid.validate(tc.width); got != tc.want {
			t.Errorf("%d. got %v, want %v", i, got, tc.want)
		}
	}
}
