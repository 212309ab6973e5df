// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRagged(t *testing.T) {
	_, err := New(
		Column{Name: "a", Kind: Int, Cells: []any{int64(1), int64(2)}},
		Column{Name: "b", Kind: String, Cells: []any{"x"}},
	)
	if err == nil {
		t.Error("ragged columns accepted")
	}
}

func TestSliceAndSelectRange(t *testing.T) {
	f := MustNew(
		Column{Name: "a", Kind: Int, Cells: []any{int64(1), int64(2), int64(3), int64(4)}},
		Column{Name: "b", Kind: String, Cells: []any{"p", "q", "r", "s"}},
		Column{Name: "c", Kind: Float, Cells: []any{1.0, 2.0, 3.0, 4.0}},
	)
	s := f.Slice(1, 2)
	if s.Height() != 2 || s.Width() != 3 {
		t.Fatalf("got %dx%d", s.Height(), s.Width())
	}
	if got := s.Cell(0, 1); got != "q" {
		t.Errorf("got %v", got)
	}

	v := f.SelectRange(1, 3)
	if v.Width() != 2 || v.Height() != 4 {
		t.Fatalf("got %dx%d", v.Height(), v.Width())
	}
	if d := cmp.Diff([]string{"b", "c"}, v.Names()); d != "" {
		t.Error(d)
	}

	// Out-of-range requests are clamped, not panics.
	if got := f.Slice(3, 10); got.Height() != 1 {
		t.Errorf("got height %d", got.Height())
	}
	if got := f.SelectRange(2, 100); got.Width() != 1 {
		t.Errorf("got width %d", got.Width())
	}
	if got := f.Slice(0, -1); got.Height() != 4 {
		t.Errorf("got height %d", got.Height())
	}
}

func TestIndex(t *testing.T) {
	f := MustNew(
		Column{Name: "a", Kind: Int, Cells: nil},
		Column{Name: "b", Kind: Int, Cells: nil},
	)
	if got := f.Index("b"); got != 1 {
		t.Errorf("got %d", got)
	}
	if got := f.Index("zzz"); got != -1 {
		t.Errorf("got %d", got)
	}
}

func TestFromRecords(t *testing.T) {
	names := []string{"id", "score", "note", "blank"}
	records := [][]string{
		{"1", "2.5", "ok", ""},
		{"2", "", "3", ""},
		{"3", "-1", "x4", ""},
	}
	f, err := FromRecords(names, records)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []Kind{Int, Float, String, String} {
		if got := f.Col(i).Kind; got != want {
			t.Errorf("column %d kind %s, want %s", i, got, want)
		}
	}
	if got := f.Cell(0, 0); got != int64(1) {
		t.Errorf("got %v (%T)", got, got)
	}
	if got := f.Cell(1, 1); got != nil {
		t.Errorf("empty numeric cell: got %v", got)
	}
	if got := f.Cell(2, 1); got != -1.0 {
		t.Errorf("got %v (%T)", got, got)
	}
	if got := f.Cell(1, 2); got != "3" {
		t.Errorf("string column keeps numerals: got %v (%T)", got, got)
	}
	if got := f.Cell(0, 3); got != "" {
		t.Errorf("empty string cell: got %v", got)
	}
}

func TestFromRecordsMismatch(t *testing.T) {
	if _, err := FromRecords([]string{"a", "b"}, [][]string{{"1"}}); err == nil {
		t.Error("short record accepted")
	}
}
