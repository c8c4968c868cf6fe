package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

const maxFilterDisplayRows = 20

// thresholdRe matches the numeric threshold phrases the filter understands.
// under/below mean strictly-less-than, over/above strictly-greater-than.
var thresholdRe = regexp.MustCompile(`under (\d+)|over (\d+)|above (\d+)|below (\d+)`)

// runFilter applies at most one numeric-threshold family (every threshold
// phrase, against the first age-named numeric column) and at most one
// categorical equality (the first column/value pair found verbatim in the
// question). Further textual matches are deliberately ignored; this mirrors
// the long-standing behavior callers depend on.
func runFilter(question string, ds *dataset.Dataset) *Envelope {
	q := strings.ToLower(question)

	keep := make([]bool, ds.Rows())
	for i := range keep {
		keep[i] = true
	}
	applied := false

	if matches := thresholdRe.FindAllStringSubmatch(q, -1); len(matches) > 0 {
		if ageCol := firstAgeColumn(ds); ageCol != nil {
			for _, m := range matches {
				switch {
				case m[1] != "": // under N
					applyThreshold(keep, ageCol, mustAtoi(m[1]), true)
					applied = true
				case m[2] != "" || m[3] != "": // over N / above N
					n := m[2]
					if n == "" {
						n = m[3]
					}
					applyThreshold(keep, ageCol, mustAtoi(n), false)
					applied = true
				case m[4] != "": // below N
					applyThreshold(keep, ageCol, mustAtoi(m[4]), true)
					applied = true
				}
			}
		}
	}

categorical:
	for _, c := range ds.GroupableColumns() {
		for _, v := range c.Distinct() {
			lv := strings.ToLower(v)
			if lv == "" || !strings.Contains(q, lv) {
				continue
			}
			for i, cell := range c.Cells {
				keep[i] = keep[i] && !cell.Missing() && cell.String() == v
			}
			applied = true
			break categorical
		}
	}

	if !applied {
		return errorEnvelope("I couldn't understand the filter conditions; try being more specific about what you want to filter")
	}

	var rows []int
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return textEnvelope("No records found matching your criteria.")
	}

	display := rows
	if len(display) > maxFilterDisplayRows {
		display = display[:maxFilterDisplayRows]
	}
	t := &Table{Columns: displayNames(ds.Columns())}
	for _, r := range display {
		row := make([]string, len(ds.Columns()))
		for i, c := range ds.Columns() {
			row[i] = c.Cells[r].String()
		}
		t.Rows = append(t.Rows, row)
	}
	return composite(fmt.Sprintf("Found %d records matching your criteria.", len(rows)), t, nil)
}

// firstAgeColumn returns the first numeric column whose normalized or
// original name contains "age".
func firstAgeColumn(ds *dataset.Dataset) *dataset.Column {
	for _, c := range ds.NumericColumns() {
		if strings.Contains(c.Name, "age") || strings.Contains(strings.ToLower(c.Original), "age") {
			return c
		}
	}
	return nil
}

func applyThreshold(keep []bool, c *dataset.Column, n int, lessThan bool) {
	for i, cell := range c.Cells {
		if cell.Kind != dataset.CellNumber {
			keep[i] = false
			continue
		}
		if lessThan {
			keep[i] = keep[i] && cell.Num < float64(n)
		} else {
			keep[i] = keep[i] && cell.Num > float64(n)
		}
	}
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("threshold regex matched a non-integer: %q", s))
	}
	return n
}
