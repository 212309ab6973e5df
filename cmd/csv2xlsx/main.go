// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// csv2xlsx converts CSV files into one XLSX workbook, one sheet per
// input file, splitting sheets that overflow Excel's limits.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/UNO-SOFT/zlog/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/UNO-SOFT/xlsxgrid"
	"github.com/UNO-SOFT/xlsxgrid/frame"
)

var defaultEncoding = encoding.Replacement

func init() {
	encName := os.Getenv("LANG")
	if i := strings.IndexByte(encName, '.'); i >= 0 {
		if enc, err := htmlindex.Get(encName[i+1:]); err == nil {
			defaultEncoding = enc
		}
	}
}

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("csv2xlsx", "error", err)
		os.Exit(1)
	}
}

// fileConfig is the optional TOML configuration. Every field is
// optional; unset fields keep the defaults.
type fileConfig struct {
	FontName   string  `toml:"font_name"`
	FontSize   float64 `toml:"font_size"`
	IntegerFmt string  `toml:"integer_format"`
	DecimalFmt string  `toml:"decimal_format"`
	MissingStr string  `toml:"missing_string"`
	NaNStr     string  `toml:"nan_string"`
	ChunkSize  int     `toml:"chunk_size"`
	MinWidth   int     `toml:"min_width"`
	MaxWidth   int     `toml:"max_width"`
}

func Main() error {
	flagOut := flag.String("o", "out.xlsx", "output workbook path")
	flagEnc := flag.String("enc", "", "input charset (IANA name; default from LANG)")
	flagConfig := flag.String("config", "", "TOML configuration file")
	flagDelim := flag.String("d", ",", "field delimiter")
	flagHeaderRows := flag.Int("header-rows", 1, "header rows at the top of each file")
	flagMergeHeader := flag.Bool("merge-header", false, "merge repeated header labels")
	flagIntCols := flag.String("int-cols", "", "comma separated 1-based integer column numbers")
	flagDecCols := flag.String("dec-cols", "", "comma separated 1-based decimal column numbers")
	flagAutofit := flag.String("autofit", "header", "column width rule (none|header|body|all)")
	flagKeep := flag.Bool("keep-missing", false, "write the missing string instead of blank cells")
	flagScientific := flag.Bool("scientific", false, "scientific notation for extreme decimals")
	flag.Var(&verbose, "v", "verbosity")
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return errors.New("at least one input file is required")
	}

	enc := defaultEncoding
	if *flagEnc != "" {
		var err error
		if enc, err = htmlindex.Get(*flagEnc); err != nil {
			return errors.Wrap(err, *flagEnc)
		}
	}

	var cfg fileConfig
	if *flagConfig != "" {
		if _, err := toml.DecodeFile(*flagConfig, &cfg); err != nil {
			return errors.Wrap(err, *flagConfig)
		}
	}
	opts := writeOptions(cfg)
	opts.KeepMissing = *flagKeep
	opts.Logger = logger

	delim, err := delimRune(*flagDelim)
	if err != nil {
		return errors.Wrap(err, "-d")
	}
	intCols, err := parseColList(*flagIntCols)
	if err != nil {
		return errors.Wrap(err, "-int-cols")
	}
	decCols, err := parseColList(*flagDecCols)
	if err != nil {
		return errors.Wrap(err, "-dec-cols")
	}

	type table struct {
		frame  *frame.Frame
		header xlsxgrid.Grid
		name   string
	}
	tables := make([]table, flag.NArg())
	var grp errgroup.Group
	grp.SetLimit(4)
	for i, fn := range flag.Args() {
		grp.Go(func() error {
			fr, header, err := readCSV(fn, enc, delim, *flagHeaderRows)
			if err != nil {
				return errors.Wrap(err, fn)
			}
			base := filepath.Base(fn)
			tables[i] = table{
				frame: fr, header: header,
				name: strings.TrimSuffix(base, filepath.Ext(base)),
			}
			return nil
		})
	}
	if err = grp.Wait(); err != nil {
		return err
	}

	w := xlsxgrid.NewWriter(*flagOut, opts)
	for _, t := range tables {
		so := xlsxgrid.SheetOptions{
			Header:      t.header,
			MergeHeader: *flagMergeHeader,
			ColsInteger: colRefs(intCols),
			ColsDecimal: colRefs(decCols),
			Autofit:     &xlsxgrid.AutofitPolicy{Rule: xlsxgrid.AutofitRule(*flagAutofit)},
		}
		if cfg.MinWidth > 0 {
			so.Autofit.MinWidth = cfg.MinWidth
		}
		if cfg.MaxWidth > 0 {
			so.Autofit.MaxWidth = cfg.MaxWidth
		}
		if *flagScientific {
			so.Addons = append(so.Addons, xlsxgrid.ScientificAddon{})
		}
		report, err := w.WriteSheet(t.frame, t.name, &so)
		if err != nil {
			return errors.Wrap(err, t.name)
		}
		logger.Info("wrote", "sheet", t.name,
			"rows", t.frame.Height(), "cols", t.frame.Width(),
			"slices", len(report.Sheets), "warnings", len(report.Warnings))
	}
	return w.Close()
}

func writeOptions(cfg fileConfig) *xlsxgrid.WriteOptions {
	fmts := xlsxgrid.DefaultFormats()
	patch := xlsxgrid.CellFormat{}
	if cfg.FontName != "" {
		patch.FontName = &cfg.FontName
	}
	if cfg.FontSize > 0 {
		patch.FontSize = &cfg.FontSize
	}
	if !patch.IsZero() {
		fmts.Text = fmts.Text.Merge(patch)
		fmts.Integer = fmts.Integer.Merge(patch)
		fmts.Decimal = fmts.Decimal.Merge(patch)
		fmts.Scientific = fmts.Scientific.Merge(patch)
		fmts.Header = fmts.Header.Merge(patch)
	}
	if cfg.IntegerFmt != "" {
		fmts.Integer = fmts.Integer.WithNumFmt(cfg.IntegerFmt)
	}
	if cfg.DecimalFmt != "" {
		fmts.Decimal = fmts.Decimal.WithNumFmt(cfg.DecimalFmt)
	}
	return &xlsxgrid.WriteOptions{
		Formats: &fmts,
		Value:   xlsxgrid.ValuePolicy{MissingStr: cfg.MissingStr, NaNStr: cfg.NaNStr},
		Chunks:  xlsxgrid.RowChunkPolicy{FixedSize: cfg.ChunkSize},
	}
}

// readCSV decodes one file into a frame plus its header grid. The
// first headerRows records form the grid; column names come from the
// grid's last row, deduplicated positionally.
func readCSV(fn string, enc encoding.Encoding, delim rune, headerRows int) (*frame.Frame, xlsxgrid.Grid, error) {
	if headerRows < 1 {
		headerRows = 1
	}
	fh, err := os.Open(fn)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()
	cr := csv.NewReader(transform.NewReader(fh, enc.NewDecoder()))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < headerRows {
		return nil, nil, errors.Errorf("%d records, want at least %d header rows", len(records), headerRows)
	}
	width := len(records[0])
	header := make(xlsxgrid.Grid, headerRows)
	for i, rec := range records[:headerRows] {
		if len(rec) != width {
			return nil, nil, errors.Errorf("header row %d has %d fields, want %d", i+1, len(rec), width)
		}
		header[i] = rec
	}
	names := uniqueNames(header[headerRows-1])
	body := records[headerRows:]
	for i, rec := range body {
		if len(rec) != width {
			return nil, nil, errors.Errorf("record %d has %d fields, want %d", headerRows+i+1, len(rec), width)
		}
	}
	fr, err := frame.FromRecords(names, body)
	return fr, header, err
}

// uniqueNames suffixes repeated column names with their 1-based
// position so the frame's unique-name contract holds.
func uniqueNames(names []string) []string {
	out := append([]string(nil), names...)
	seen := make(map[string]bool, len(out))
	for i, name := range out {
		if name == "" {
			name = fmt.Sprintf("col%d", i+1)
		}
		if seen[name] {
			name = fmt.Sprintf("%s_%d", name, i+1)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}

// delimRune validates the -d flag: exactly one rune.
func delimRune(s string) (rune, error) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, errors.Errorf("want exactly one delimiter character, got %q", s)
	}
	return r[0], nil
}

func parseColList(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cols := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrap(err, p)
		}
		if i < 1 {
			return nil, errors.Errorf("column numbers are 1-based, got %d", i)
		}
		cols = append(cols, i-1)
	}
	return cols, nil
}

func colRefs(idx []int) []xlsxgrid.ColRef {
	refs := make([]xlsxgrid.ColRef, len(idx))
	for i, c := range idx {
		refs[i] = xlsxgrid.ColIndex(c)
	}
	return refs
}
