// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package main

import "testing"

func TestDelimRune(t *testing.T) {
	for i, tc := range []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{"\t", '\t', false},
		{"ő", 'ő', false},
		{"", 0, true},
		{",,", 0, true},
	} {
		got, err := delimRune(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("%d. %q: err %v, wantErr %t", i, tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("%d. %q: got %q, want %q", i, tc.in, got, tc.want)
		}
	}
}

func TestParseColList(t *testing.T) {
	for i, tc := range []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{0}, false},
		{"1, 3,5", []int{0, 2, 4}, false},
		{"0", nil, true},
		{"x", nil, true},
	} {
		got, err := parseColList(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("%d. %q: err %v, wantErr %t", i, tc.in, err, tc.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%d. %q: got %v, want %v", i, tc.in, got, tc.want)
			continue
		}
		for j := range got {
			if got[j] != tc.want[j] {
				t.Errorf("%d. %q: got %v, want %v", i, tc.in, got, tc.want)
				break
			}
		}
	}
}

func TestUniqueNames(t *testing.T) {
	got := uniqueNames([]string{"a", "a", "", "b", "a"})
	want := []string{"a", "a_2", "col3", "b", "a_5"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%d. got %q, want %q", i, got[i], want[i])
		}
	}
}
