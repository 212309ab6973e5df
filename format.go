// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"fmt"
	"strings"
)

// CellFormat is a set of optional style attributes. A nil field means
// "not specified"; Merge overlays another format so that the other's
// non-nil fields win. The zero CellFormat specifies nothing.
//
// Align and VAlign use excelize's alignment names ("left", "center",
// "right" / "top", "center", "bottom"); Border and the per-side fields
// use excelize border style numbers (0 none, 1 thin, ...).
type CellFormat struct {
	FontName  *string
	FontSize  *float64
	Bold      *bool
	Italic    *bool
	Align     *string
	VAlign    *string
	Border    *int
	TextWrap  *bool
	Top       *int
	Bottom    *int
	Left      *int
	Right     *int
	NumFmt    *string
	BgColor   *string
	FontColor *string
}

// Merge returns the overlay of other on f: every non-nil field of
// other replaces f's. Later always wins; neither receiver is modified.
func (f CellFormat) Merge(other CellFormat) CellFormat {
	if other.FontName != nil {
		f.FontName = other.FontName
	}
	if other.FontSize != nil {
		f.FontSize = other.FontSize
	}
	if other.Bold != nil {
		f.Bold = other.Bold
	}
	if other.Italic != nil {
		f.Italic = other.Italic
	}
	if other.Align != nil {
		f.Align = other.Align
	}
	if other.VAlign != nil {
		f.VAlign = other.VAlign
	}
	if other.Border != nil {
		f.Border = other.Border
	}
	if other.TextWrap != nil {
		f.TextWrap = other.TextWrap
	}
	if other.Top != nil {
		f.Top = other.Top
	}
	if other.Bottom != nil {
		f.Bottom = other.Bottom
	}
	if other.Left != nil {
		f.Left = other.Left
	}
	if other.Right != nil {
		f.Right = other.Right
	}
	if other.NumFmt != nil {
		f.NumFmt = other.NumFmt
	}
	if other.BgColor != nil {
		f.BgColor = other.BgColor
	}
	if other.FontColor != nil {
		f.FontColor = other.FontColor
	}
	return f
}

// IsZero reports whether no field is specified.
func (f CellFormat) IsZero() bool { return f == CellFormat{} }

// Key returns a canonical string of the specified fields, usable as a
// style cache key (the pointer fields make CellFormat itself unfit as
// a map key).
func (f CellFormat) Key() string {
	var b strings.Builder
	app := func(name string, v any) {
		fmt.Fprintf(&b, "%s=%v;", name, v)
	}
	if f.FontName != nil {
		app("font", *f.FontName)
	}
	if f.FontSize != nil {
		app("size", *f.FontSize)
	}
	if f.Bold != nil {
		app("bold", *f.Bold)
	}
	if f.Italic != nil {
		app("italic", *f.Italic)
	}
	if f.Align != nil {
		app("align", *f.Align)
	}
	if f.VAlign != nil {
		app("valign", *f.VAlign)
	}
	if f.Border != nil {
		app("border", *f.Border)
	}
	if f.TextWrap != nil {
		app("wrap", *f.TextWrap)
	}
	if f.Top != nil {
		app("top", *f.Top)
	}
	if f.Bottom != nil {
		app("bottom", *f.Bottom)
	}
	if f.Left != nil {
		app("left", *f.Left)
	}
	if f.Right != nil {
		app("right", *f.Right)
	}
	if f.NumFmt != nil {
		app("numfmt", *f.NumFmt)
	}
	if f.BgColor != nil {
		app("bg", *f.BgColor)
	}
	if f.FontColor != nil {
		app("color", *f.FontColor)
	}
	return b.String()
}

// WithBorders returns a copy with the four border sides set.
func (f CellFormat) WithBorders(top, bottom, left, right int) CellFormat {
	f.Top, f.Bottom, f.Left, f.Right = &top, &bottom, &left, &right
	return f
}

// WithNumFmt returns a copy with the number format set.
func (f CellFormat) WithNumFmt(numFmt string) CellFormat { f.NumFmt = &numFmt; return f }

// WithBold returns a copy with boldness set.
func (f CellFormat) WithBold(bold bool) CellFormat { f.Bold = &bold; return f }

// WithAlign returns a copy with horizontal alignment set.
func (f CellFormat) WithAlign(align string) CellFormat { f.Align = &align; return f }

// WithBgColor returns a copy with the background color set ("RRGGBB").
func (f CellFormat) WithBgColor(color string) CellFormat { f.BgColor = &color; return f }

// WithFontColor returns a copy with the font color set ("RRGGBB").
func (f CellFormat) WithFontColor(color string) CellFormat { f.FontColor = &color; return f }

// Border says which of a cell's four borders are drawn (0 or border
// style number). Used for visual vertical merges, where interior
// borders are suppressed instead of truly merging rows.
type Border struct {
	Top, Bottom, Left, Right int
}

// Formats is the set of base formats a Writer starts each column plan
// from.
type Formats struct {
	Text, Integer, Decimal, Scientific, Header CellFormat
}

// DefaultFormats returns the stock format set: Times New Roman 11 with
// thin borders, left/center aligned text, bold centered headers,
// "0" integers, "0.0000" decimals and "0.00E+0" scientific.
func DefaultFormats() Formats {
	base := CellFormat{}
	font := "Times New Roman"
	size := 11.0
	border := 1
	left, center := "left", "center"
	base.FontName, base.FontSize, base.Border = &font, &size, &border
	base.Align, base.VAlign = &left, &center
	return Formats{
		Text:       base,
		Header:     base.WithBold(true).WithAlign("center"),
		Integer:    base.WithNumFmt("0"),
		Decimal:    base.WithNumFmt("0.0000"),
		Scientific: base.WithNumFmt("0.00E+0"),
	}
}
