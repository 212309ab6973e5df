// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/UNO-SOFT/xlsxgrid/frame"
)

// ValuePolicy controls how missing and non-finite values are rendered
// and whether floats in integer columns are coerced. Zero-value string
// fields fall back to "NA", "NaN", "Inf" and "-Inf".
type ValuePolicy struct {
	MissingStr string
	NaNStr     string
	PosInfStr  string
	NegInfStr  string
	// CoerceIntegers truncates floats in integer columns instead of
	// falling back to their string representation.
	CoerceIntegers bool
}

func (p ValuePolicy) withDefaults() ValuePolicy {
	if p.MissingStr == "" {
		p.MissingStr = "NA"
	}
	if p.NaNStr == "" {
		p.NaNStr = "NaN"
	}
	if p.PosInfStr == "" {
		p.PosInfStr = "Inf"
	}
	if p.NegInfStr == "" {
		p.NegInfStr = "-Inf"
	}
	return p
}

// nanInfString renders a non-finite float. Callers must not pass
// finite values.
func (p ValuePolicy) nanInfString(x float64) string {
	if math.IsNaN(x) {
		return p.NaNStr
	}
	if x > 0 {
		return p.PosInfStr
	}
	return p.NegInfStr
}

// stringifyCell renders a cell the way it will appear in a text
// column.
func stringifyCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return frame.FormatTime(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(v)
}

// convertCell maps a frame cell to the value handed to the workbook
// backend: string, int64, float64 or nil (blank). Numeric columns
// keep numbers numeric; non-finite floats become policy strings when
// keepMissing is set and blanks otherwise; anything unparseable in a
// numeric column degrades to its string form.
func convertCell(v any, numericCol, integerCol, keepMissing bool, p ValuePolicy) any {
	if v == nil {
		if keepMissing {
			return p.MissingStr
		}
		return nil
	}
	if !numericCol {
		return stringifyCell(v)
	}
	if integerCol {
		switch x := v.(type) {
		case int64:
			return x
		case int:
			return int64(x)
		case float64:
			if !isFinite(x) {
				if keepMissing {
					return p.nanInfString(x)
				}
				return nil
			}
			if p.CoerceIntegers || x == math.Trunc(x) {
				return int64(x)
			}
			return strconv.FormatFloat(x, 'f', -1, 64)
		case string:
			if n, err := strconv.ParseInt(x, 10, 64); err == nil {
				return n
			}
			return x
		}
		return stringifyCell(v)
	}
	f, ok := toFloat(v)
	if !ok {
		return stringifyCell(v)
	}
	if !isFinite(f) {
		if keepMissing {
			return p.nanInfString(f)
		}
		return nil
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
