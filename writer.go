// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/renameio/v2"
	"github.com/xuri/excelize/v2"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

// WriteOptions configures a Writer. The zero value is usable.
type WriteOptions struct {
	// Formats overrides the base format set (DefaultFormats).
	Formats *Formats
	// Value controls missing/NaN/Inf rendering.
	Value ValuePolicy
	// Chunks bounds body-write memory.
	Chunks RowChunkPolicy
	// KeepMissing writes the policy's missing string instead of
	// blanks. Per-sheet overridable.
	KeepMissing bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// SheetOptions configures one WriteSheet call.
type SheetOptions struct {
	// Header is the header grid; when nil, the frame's column names
	// form a single header row. Width must equal the frame's.
	Header Grid
	// ColsInteger and ColsDecimal force number formats on columns.
	// A non-empty ColsInteger replaces the kinds-based inference.
	ColsInteger []ColRef
	ColsDecimal []ColRef
	// ColumnFormats are user per-column overrides, absolute indices.
	ColumnFormats map[int]CellFormat
	// FreezeCol freezes that many leading columns. FreezeRow
	// defaults to the header height; point it at 0 to disable.
	FreezeCol int
	FreezeRow *int
	// MergeHeader enables horizontal merges and vertical visual
	// merges of repeated header labels.
	MergeHeader bool
	// KeepMissing overrides the writer-level setting.
	KeepMissing *bool
	// Autofit defaults to DefaultAutofitPolicy; use
	// &AutofitPolicy{Rule: AutofitNone} to disable.
	Autofit *AutofitPolicy
	// Addons supply format overrides; a CellAddon forces the
	// per-cell body path.
	Addons []Addon
}

// Writer writes one XLSX workbook. It is not safe for concurrent use;
// all planning and writing happens on the calling goroutine.
type Writer struct {
	path    string
	f       *excelize.File
	styles  map[string]int
	names   nameRegistry
	reports []*Report
	fmts    Formats
	value   ValuePolicy
	chunks  RowChunkPolicy
	keep    bool
	logger  *slog.Logger
	sheets  int
}

// NewWriter creates a workbook writer for path. The file is only
// written on Close, atomically (write-then-rename).
func NewWriter(path string, opts *WriteOptions) *Writer {
	if opts == nil {
		opts = &WriteOptions{}
	}
	fmts := DefaultFormats()
	if opts.Formats != nil {
		fmts = *opts.Formats
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		path:   path,
		f:      excelize.NewFile(),
		styles: make(map[string]int),
		names:  make(nameRegistry),
		fmts:   fmts,
		value:  opts.Value.withDefaults(),
		chunks: opts.Chunks,
		keep:   opts.KeepMissing,
		logger: logger,
	}
}

// Reports returns the reports of all WriteSheet calls so far.
func (w *Writer) Reports() []*Report { return w.reports }

// Close finalizes and writes the workbook, replacing path atomically.
func (w *Writer) Close() error {
	pf, err := renameio.NewPendingFile(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	defer pf.Cleanup()
	if err = w.f.Write(pf); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err = pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", w.path, err)
	}
	return w.f.Close()
}

// WriteSheet writes fr as one logical sheet, splitting into several
// worksheets when it exceeds Excel's limits, and returns the Report
// of slices and warnings. Configuration errors are returned before
// any worksheet is created.
func (w *Writer) WriteSheet(fr *frame.Frame, sheetName string, o *SheetOptions) (*Report, error) {
	if o == nil {
		o = &SheetOptions{}
	}
	report := &Report{}

	if err := validateUniqueColumns(fr); err != nil {
		return nil, err
	}
	grid := o.Header.Clone()
	if grid == nil {
		grid = Grid{append([]string(nil), fr.Names()...)}
	} else if err := grid.validate(fr.Width()); err != nil {
		return nil, err
	}

	numericIdx := inferNumericCols(fr)
	integerIdx := inferIntegerCols(fr)
	if userInt, err := sortedIndices(fr, o.ColsInteger); err != nil {
		return nil, err
	} else if len(userInt) > 0 {
		integerIdx = userInt
	}
	decimalIdx, err := sortedIndices(fr, o.ColsDecimal)
	if err != nil {
		return nil, err
	}
	// User-marked columns are numeric regardless of the frame kind.
	numericIdx = mergeIndices(numericIdx, integerIdx, decimalIdx)

	plan, err := PlanSheetSlices(fr.Height(), fr.Width(), len(grid), SanitizeSheetName(sheetName), report)
	if err != nil {
		return nil, err
	}

	freezeRow := len(grid)
	if o.FreezeRow != nil {
		freezeRow = *o.FreezeRow
	}
	keepMissing := w.keep
	if o.KeepMissing != nil {
		keepMissing = *o.KeepMissing
	}
	autofit := DefaultAutofitPolicy()
	if o.Autofit != nil {
		autofit = o.Autofit.withDefaults()
	}

	// Addon column overrides are collected once, on absolute column
	// indices, before slicing.
	addonOv := make(map[int]CellFormat)
	for _, ad := range o.Addons {
		for col, f := range ad.ColumnOverrides(fr, w.fmts) {
			if prev, ok := addonOv[col]; ok {
				addonOv[col] = prev.Merge(f)
			} else {
				addonOv[col] = f
			}
		}
	}
	slow := requiresCellWrite(o.Addons)

	for _, sl := range plan {
		unique := w.names.unique(sl.SheetName)
		if err := w.writeSlice(sl, unique, fr, grid, o, report,
			numericIdx, integerIdx, decimalIdx, addonOv,
			freezeRow, keepMissing, autofit, slow); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", unique, err)
		}
		report.Sheets = append(report.Sheets, SheetSlice{
			SheetName: unique,
			RowStart:  sl.RowStart, RowEnd: sl.RowEnd,
			ColStart: sl.ColStart, ColEnd: sl.ColEnd,
		})
	}

	for _, warn := range report.Warnings {
		w.logger.Warn(warn, "sheet", sheetName)
	}
	w.reports = append(w.reports, report)
	return report, nil
}

func inferNumericCols(fr *frame.Frame) []int {
	var idx []int
	for i := 0; i < fr.Width(); i++ {
		if fr.Col(i).Kind.Numeric() {
			idx = append(idx, i)
		}
	}
	return idx
}

func inferIntegerCols(fr *frame.Frame) []int {
	var idx []int
	for i := 0; i < fr.Width(); i++ {
		if fr.Col(i).Kind.Integer() {
			idx = append(idx, i)
		}
	}
	return idx
}

// mergeIndices unions sorted index slices into one sorted slice.
func mergeIndices(lists ...[]int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, list := range lists {
		for _, i := range list {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return out
}

// relativeSet shifts the absolute indices falling into [c0, c1) down
// by c0.
func relativeSet(idx []int, c0, c1 int) map[int]bool {
	m := make(map[int]bool)
	for _, i := range idx {
		if c0 <= i && i < c1 {
			m[i-c0] = true
		}
	}
	return m
}

func relativeFormats(src map[int]CellFormat, c0, c1 int) map[int]CellFormat {
	m := make(map[int]CellFormat)
	for i, f := range src {
		if c0 <= i && i < c1 {
			m[i-c0] = f
		}
	}
	return m
}

func (w *Writer) writeSlice(sl SheetSlice, unique string, fr *frame.Frame, grid Grid,
	o *SheetOptions, report *Report,
	numericIdx, integerIdx, decimalIdx []int, addonOv map[int]CellFormat,
	freezeRow int, keepMissing bool, autofit AutofitPolicy, slow bool) error {

	if w.sheets == 0 {
		if err := w.f.SetSheetName(w.f.GetSheetName(0), unique); err != nil {
			return err
		}
	} else if _, err := w.f.NewSheet(unique); err != nil {
		return err
	}
	w.sheets++

	body := fr.SelectRange(sl.ColStart, sl.ColEnd).Slice(sl.RowStart, sl.RowEnd-sl.RowStart)
	width := body.Width()

	numeric := relativeSet(numericIdx, sl.ColStart, sl.ColEnd)
	integer := relativeSet(integerIdx, sl.ColStart, sl.ColEnd)
	decimal := relativeSet(decimalIdx, sl.ColStart, sl.ColEnd)
	userOv := relativeFormats(o.ColumnFormats, sl.ColStart, sl.ColEnd)
	addonRel := relativeFormats(addonOv, sl.ColStart, sl.ColEnd)

	colPlan := planColumnFormats(width, numeric, integer, decimal, userOv, addonRel, w.fmts, report)
	colStyle := make([]int, width)
	for i, f := range colPlan {
		id, err := w.styleID(f)
		if err != nil {
			return err
		}
		colStyle[i] = id
	}

	gridSlice := grid.slice(sl.ColStart, sl.ColEnd)

	// Header widths are estimated before the vertical blank-out so a
	// long label still sizes its column.
	var widths []int
	if autofit.Rule != AutofitNone {
		widths = w.estimateColumnWidths(gridSlice, body, numeric, integer, keepMissing, autofit)
	}

	borderPlan := map[CellPos]Border{}
	if o.MergeHeader && len(gridSlice) > 1 {
		borderPlan = PlanVerticalBorders(gridSlice)
		gridSlice = BlankVerticalRuns(gridSlice)
	}
	merges := map[int][]HorizontalMerge{}
	if o.MergeHeader {
		merges = PlanHorizontalMerges(gridSlice)
	}
	covered := MergeCoveredCells(merges)

	sw, err := w.f.NewStreamWriter(unique)
	if err != nil {
		return err
	}
	if freezeRow > 0 || o.FreezeCol > 0 {
		if err = sw.SetPanes(panesFor(o.FreezeCol, freezeRow)); err != nil {
			return err
		}
	}
	for col, cw := range widths {
		if err = sw.SetColWidth(col+1, col+1, float64(cw)); err != nil {
			return err
		}
	}

	if err = w.writeHeader(sw, gridSlice, borderPlan, merges, covered); err != nil {
		return err
	}
	if err = w.writeBody(sw, body, len(gridSlice), colPlan, colStyle,
		numeric, integer, keepMissing, o.Addons, slow); err != nil {
		return err
	}
	if err = sw.Flush(); err != nil {
		return err
	}
	w.logger.Debug("wrote sheet slice", "sheet", unique,
		"rows", body.Height(), "cols", width, "merges", len(merges))
	return nil
}

func (w *Writer) writeHeader(sw *excelize.StreamWriter, grid Grid,
	borderPlan map[CellPos]Border, merges map[int][]HorizontalMerge, covered map[CellPos]bool) error {

	fullBorder := Border{Top: 1, Bottom: 1, Left: 1, Right: 1}
	for row, cells := range grid {
		vals := make([]any, len(cells))
		for col, text := range cells {
			pos := CellPos{Row: row, Col: col}
			if covered[pos] {
				// Covered by a horizontal merge; writing here would
				// corrupt the merge range.
				continue
			}
			b, ok := borderPlan[pos]
			if !ok {
				b = fullBorder
			}
			id, err := w.styleID(w.fmts.Header.WithBorders(b.Top, b.Bottom, b.Left, b.Right))
			if err != nil {
				return err
			}
			if text == "" {
				vals[col] = excelize.Cell{StyleID: id}
			} else {
				vals[col] = excelize.Cell{StyleID: id, Value: text}
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, row+1)
		if err := sw.SetRow(cell, vals); err != nil {
			return err
		}
	}
	for _, runs := range merges {
		for _, m := range runs {
			from, _ := excelize.CoordinatesToCellName(m.ColStart+1, m.Row+1)
			to, _ := excelize.CoordinatesToCellName(m.ColEnd+1, m.Row+1)
			if err := sw.MergeCell(from, to); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeBody(sw *excelize.StreamWriter, body *frame.Frame, headerHeight int,
	colPlan []CellFormat, colStyle []int,
	numeric, integer map[int]bool, keepMissing bool, addons []Addon, slow bool) error {

	width := body.Width()
	var cellAddons []CellAddon
	if slow {
		for _, ad := range addons {
			if ca, ok := ad.(CellAddon); ok {
				cellAddons = append(cellAddons, ca)
			}
		}
	}
	for off, chunk := range RowChunks(body, w.chunks.ChunkSize(width)) {
		for r := 0; r < chunk.Height(); r++ {
			vals := make([]any, width)
			for c := 0; c < width; c++ {
				v := convertCell(chunk.Cell(r, c), numeric[c], integer[c], keepMissing, w.value)
				styleID := colStyle[c]
				if slow {
					f := colPlan[c]
					for _, ca := range cellAddons {
						if patch, ok := ca.CellOverride(off+r, c, v); ok {
							f = f.Merge(patch)
						}
					}
					id, err := w.styleID(f)
					if err != nil {
						return err
					}
					styleID = id
				}
				vals[c] = excelize.Cell{StyleID: styleID, Value: v}
			}
			cell, _ := excelize.CoordinatesToCellName(1, headerHeight+off+r+1)
			if err := sw.SetRow(cell, vals); err != nil {
				return err
			}
		}
	}
	return nil
}

// estimateColumnWidths pre-computes final column widths: the stream
// writer needs them before the first row, so the body is sampled here
// (up to the policy cap) instead of during the write.
func (w *Writer) estimateColumnWidths(grid Grid, body *frame.Frame,
	numeric, integer map[int]bool, keepMissing bool, p AutofitPolicy) []int {

	width := body.Width()
	headerW := make([]int, width)
	bodyW := make([]int, width)
	for _, row := range grid {
		for col, text := range row {
			if text == "" {
				continue
			}
			if est := estimateWidth(text, false, false, keepMissing, w.value); est > headerW[col] {
				headerW[col] = est
			}
		}
	}
	if p.Rule == AutofitBody || p.Rule == AutofitAll {
		limit := p.sampleLimit()
		for r := 0; r < body.Height(); r++ {
			if limit >= 0 && r >= limit {
				break
			}
			for c := 0; c < width; c++ {
				v := convertCell(body.Cell(r, c), numeric[c], integer[c], keepMissing, w.value)
				if est := estimateWidth(v, numeric[c], integer[c], keepMissing, w.value); est > bodyW[c] {
					bodyW[c] = est
				}
			}
		}
	}
	widths := make([]int, width)
	for c := 0; c < width; c++ {
		observed := headerW[c]
		switch p.Rule {
		case AutofitBody:
			observed = bodyW[c]
		case AutofitAll:
			observed = max(headerW[c], bodyW[c])
		}
		widths[c] = p.clampWidth(observed)
	}
	return widths
}

// styleID memoizes excelize style registration per CellFormat value.
func (w *Writer) styleID(f CellFormat) (int, error) {
	key := f.Key()
	if id, ok := w.styles[key]; ok {
		return id, nil
	}
	id, err := w.f.NewStyle(styleFromFormat(f))
	if err != nil {
		return 0, fmt.Errorf("style %s: %w", key, err)
	}
	w.styles[key] = id
	return id, nil
}

func styleFromFormat(f CellFormat) *excelize.Style {
	var st excelize.Style
	if f.FontName != nil || f.FontSize != nil || f.Bold != nil || f.Italic != nil || f.FontColor != nil {
		font := excelize.Font{}
		if f.FontName != nil {
			font.Family = *f.FontName
		}
		if f.FontSize != nil {
			font.Size = *f.FontSize
		}
		if f.Bold != nil {
			font.Bold = *f.Bold
		}
		if f.Italic != nil {
			font.Italic = *f.Italic
		}
		if f.FontColor != nil {
			font.Color = *f.FontColor
		}
		st.Font = &font
	}
	if f.Align != nil || f.VAlign != nil || f.TextWrap != nil {
		al := excelize.Alignment{}
		if f.Align != nil {
			al.Horizontal = *f.Align
		}
		if f.VAlign != nil {
			al.Vertical = *f.VAlign
		}
		if f.TextWrap != nil {
			al.WrapText = *f.TextWrap
		}
		st.Alignment = &al
	}
	side := func(s *int) int {
		if s != nil {
			return *s
		}
		if f.Border != nil {
			return *f.Border
		}
		return 0
	}
	for _, b := range []struct {
		typ   string
		style int
	}{
		{"top", side(f.Top)},
		{"bottom", side(f.Bottom)},
		{"left", side(f.Left)},
		{"right", side(f.Right)},
	} {
		if b.style > 0 {
			st.Border = append(st.Border, excelize.Border{Type: b.typ, Style: b.style, Color: "000000"})
		}
	}
	if f.NumFmt != nil {
		st.CustomNumFmt = f.NumFmt
	}
	if f.BgColor != nil {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{*f.BgColor}}
	}
	return &st
}

func panesFor(freezeCol, freezeRow int) *excelize.Panes {
	topLeft, _ := excelize.CoordinatesToCellName(freezeCol+1, freezeRow+1)
	active := "bottomRight"
	if freezeCol == 0 {
		active = "bottomLeft"
	} else if freezeRow == 0 {
		active = "topRight"
	}
	return &excelize.Panes{
		Freeze:      true,
		XSplit:      freezeCol,
		YSplit:      freezeRow,
		TopLeftCell: topLeft,
		ActivePane:  active,
	}
}
