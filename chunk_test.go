// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"testing"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

func TestChunkSize(t *testing.T) {
	var p RowChunkPolicy
	for i, tc := range []struct {
		width, want int
	}{
		{1, 10000},
		{1999, 10000},
		{2000, 2000},
		{7999, 2000},
		{8000, 1000},
		{MaxCols, 1000},
	} {
		if got := p.ChunkSize(tc.width); got != tc.want {
			t.Errorf("%d. width %d: got %d, want %d", i, tc.width, got, tc.want)
		}
	}
	if got := (RowChunkPolicy{FixedSize: 37}).ChunkSize(9000); got != 37 {
		t.Errorf("FixedSize: got %d, want 37", got)
	}
}

func testFrame(height int) *frame.Frame {
	cells := make([]any, height)
	for i := range cells {
		cells[i] = int64(i)
	}
	return frame.MustNew(frame.Column{Name: "n", Kind: frame.Int, Cells: cells})
}

func TestRowChunksCoverage(t *testing.T) {
	f := testFrame(25)
	var offs []int
	total := 0
	for off, chunk := range RowChunks(f, 10) {
		offs = append(offs, off)
		total += chunk.Height()
		if chunk.Height() > 10 {
			t.Errorf("chunk at %d has %d rows", off, chunk.Height())
		}
		if got := chunk.Cell(0, 0); got != int64(off) {
			t.Errorf("chunk at %d starts with %v", off, got)
		}
	}
	if total != 25 {
		t.Errorf("chunks cover %d rows, want 25", total)
	}
	if len(offs) != 3 || offs[0] != 0 || offs[1] != 10 || offs[2] != 20 {
		t.Errorf("offsets %v", offs)
	}
}

func TestRowChunksRestartable(t *testing.T) {
	f := testFrame(5)
	seq := RowChunks(f, 2)
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if a, b := count(), count(); a != b || a != 3 {
		t.Errorf("got %d then %d chunks, want 3 both times", a, b)
	}
}

func TestRowChunksEarlyBreak(t *testing.T) {
	f := testFrame(100)
	n := 0
	for range RowChunks(f, 10) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("got %d", n)
	}
}

func TestRowChunksEmpty(t *testing.T) {
	f := testFrame(0)
	for off, chunk := range RowChunks(f, 10) {
		t.Errorf("unexpected chunk at %d with %d rows", off, chunk.Height())
	}
}
