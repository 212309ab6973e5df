// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"iter"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

// RowChunkPolicy sizes the row chunks used to bound peak memory while
// writing a sheet body. Wider tables get smaller chunks. Zero fields
// take the defaults (width >= 8000 -> 1000 rows, width >= 2000 ->
// 2000 rows, else 10000); FixedSize, when positive, wins outright.
type RowChunkPolicy struct {
	WidthLarge  int
	WidthMedium int
	SizeLarge   int
	SizeMedium  int
	SizeDefault int
	FixedSize   int
}

func (p RowChunkPolicy) withDefaults() RowChunkPolicy {
	if p.WidthLarge == 0 {
		p.WidthLarge = 8000
	}
	if p.WidthMedium == 0 {
		p.WidthMedium = 2000
	}
	if p.SizeLarge == 0 {
		p.SizeLarge = 1000
	}
	if p.SizeMedium == 0 {
		p.SizeMedium = 2000
	}
	if p.SizeDefault == 0 {
		p.SizeDefault = 10000
	}
	return p
}

// ChunkSize returns the rows-per-chunk for a table of the given width.
func (p RowChunkPolicy) ChunkSize(width int) int {
	p = p.withDefaults()
	if p.FixedSize > 0 {
		return p.FixedSize
	}
	if width >= p.WidthLarge {
		return p.SizeLarge
	}
	if width >= p.WidthMedium {
		return p.SizeMedium
	}
	return p.SizeDefault
}

// RowChunks iterates (rowOffset, window) pairs covering f exactly
// once, in increasing offset order, each window at most size rows.
// The sequence is lazy and restartable from scratch.
func RowChunks(f *frame.Frame, size int) iter.Seq2[int, *frame.Frame] {
	return func(yield func(int, *frame.Frame) bool) {
		if size <= 0 {
			size = RowChunkPolicy{}.ChunkSize(f.Width())
		}
		for off := 0; off < f.Height(); off += size {
			n := min(size, f.Height()-off)
			if !yield(off, f.Slice(off, n)) {
				return
			}
		}
	}
}
