// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package xlsxgrid

// planColumnFormats resolves one CellFormat per column of a slice by
// overlaying, in precedence order: text default, decimal (numeric but
// not integer, or explicitly marked decimal), integer, user override,
// addon override. Indices are slice-relative. When a user and an
// addon override collide on a column the addon merges on top and a
// conflict warning is recorded.
func planColumnFormats(width int, numeric, integer, decimal map[int]bool,
	user, addon map[int]CellFormat, fmts Formats, report *Report) []CellFormat {

	plan := make([]CellFormat, width)
	for i := range plan {
		plan[i] = fmts.Text
		if !numeric[i] {
			continue
		}
		if !integer[i] || decimal[i] {
			plan[i] = plan[i].Merge(fmts.Decimal)
		}
		if integer[i] {
			plan[i] = plan[i].Merge(fmts.Integer)
		}
	}
	for i, f := range user {
		if 0 <= i && i < width {
			plan[i] = plan[i].Merge(f)
		}
	}
	for i, f := range addon {
		if i < 0 || i >= width {
			continue
		}
		if _, both := user[i]; both {
			report.Warnf("column %d: both a user and an addon format override; the addon's fields win.", i)
		}
		plan[i] = plan[i].Merge(f)
	}
	return plan
}
