package query

import (
	"fmt"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

const maxSummaryColumns = 5

func runSummary(question string, cols []*dataset.Column, ds *dataset.Dataset) *Envelope {
	q := strings.ToLower(question)

	// Revenue is synthesized on read when asked for and not present as a
	// real column: price × quantity per row.
	if strings.Contains(q, "revenue") && !containsColumn(cols, "revenue") {
		if _, exists := ds.Column("revenue"); !exists {
			if rev, ok := ds.DerivedRevenue(); ok {
				cols = append(cols, rev)
			}
		}
	}

	if len(cols) == 0 {
		return overviewEnvelope(ds, "Here's a general summary of your dataset:")
	}
	if len(cols) > maxSummaryColumns {
		cols = cols[:maxSummaryColumns]
	}
	if op := operationIn(q); op != "" {
		return operationSummary(op, cols)
	}
	return fullStatistics(cols)
}

// operationIn detects a single requested aggregate, checked in the source's
// order so "total count" resolves the same way it always has.
func operationIn(q string) string {
	switch {
	case strings.Contains(q, "average") || strings.Contains(q, "mean"):
		return "average"
	case strings.Contains(q, "sum") || strings.Contains(q, "total"):
		return "total"
	case strings.Contains(q, "count"):
		return "count"
	case strings.Contains(q, "min"):
		return "min"
	case strings.Contains(q, "max"):
		return "max"
	default:
		return ""
	}
}

func operationSummary(op string, cols []*dataset.Column) *Envelope {
	t := &Table{Columns: []string{"Statistic", "Value"}}
	var lines []string

	add := func(stat, value string) {
		t.Rows = append(t.Rows, []string{stat, value})
		lines = append(lines, stat+": "+value)
	}

	for _, c := range cols {
		nums := c.Numbers()
		if c.Type == dataset.TypeNumeric {
			switch op {
			case "average":
				if len(nums) >= 2 {
					add("Average "+c.Original, formatNumber(mean(nums)))
				} else {
					add("Average "+c.Original, "n/a (needs at least 2 values)")
				}
			case "total":
				val := formatNumber(sum(nums))
				if c.Name == "revenue" {
					val = fmt.Sprintf("$%.2f", sum(nums))
				}
				add("Total "+c.Original, val)
			case "count":
				add("Count of "+c.Original, formatInt(c.NonNull()))
			case "min":
				lo, _ := minMax(nums)
				add("Minimum "+c.Original, formatNumber(lo))
			case "max":
				_, hi := minMax(nums)
				add("Maximum "+c.Original, formatNumber(hi))
			}
			continue
		}
		// Categorical, binary, datetime.
		if op == "count" {
			add("Unique values in "+c.Original, formatInt(c.Unique()))
		} else {
			most, _ := c.MostCommon()
			add("Most common "+c.Original, most)
		}
	}

	if len(t.Rows) == 0 {
		return errorEnvelope("I couldn't compute that statistic for the columns in your question")
	}
	return composite(strings.Join(lines, "\n"), t, nil)
}

func fullStatistics(cols []*dataset.Column) *Envelope {
	t := &Table{Columns: []string{"Column", "Statistic", "Value"}}
	for _, c := range cols {
		if c.Type == dataset.TypeNumeric {
			nums := c.Numbers()
			t.Rows = append(t.Rows, []string{c.Original, "Count", formatInt(len(nums))})
			if len(nums) >= 2 {
				t.Rows = append(t.Rows, []string{c.Original, "Mean", formatNumber(mean(nums))})
			}
			t.Rows = append(t.Rows, []string{c.Original, "Median", formatNumber(median(nums))})
			lo, hi := minMax(nums)
			t.Rows = append(t.Rows, []string{c.Original, "Min", formatNumber(lo)})
			t.Rows = append(t.Rows, []string{c.Original, "Max", formatNumber(hi)})
			if len(nums) >= 2 {
				t.Rows = append(t.Rows, []string{c.Original, "Std Dev", formatNumber(stddev(nums))})
			}
			continue
		}
		most, mostN := c.MostCommon()
		t.Rows = append(t.Rows, []string{c.Original, "Count", formatInt(c.NonNull())})
		t.Rows = append(t.Rows, []string{c.Original, "Unique Values", formatInt(c.Unique())})
		t.Rows = append(t.Rows, []string{c.Original, "Most Common", fmt.Sprintf("%s (%d)", most, mostN)})
	}
	return composite("Here are the statistics for the columns matched in your question:", t, nil)
}

func overviewEnvelope(ds *dataset.Dataset, text string) *Envelope {
	o := ds.Overview()
	t := &Table{
		Columns: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Rows", formatInt(o.Rows)},
			{"Total Columns", formatInt(o.Columns)},
			{"Numeric Columns", formatInt(o.NumericColumns)},
			{"Categorical Columns", formatInt(o.CategoricalColumns)},
			{"Binary Columns", formatInt(o.BinaryColumns)},
			{"Datetime Columns", formatInt(o.DatetimeColumns)},
			{"Missing Values", formatInt(o.MissingValues)},
		},
	}
	return composite(text, t, nil)
}

func containsColumn(cols []*dataset.Column, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}
