package query

import (
	"fmt"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

// runCorrelation always operates over every numeric column in the dataset,
// regardless of which columns the question resolved to.
func runCorrelation(ds *dataset.Dataset) *Envelope {
	nums := ds.NumericColumns()
	if len(nums) < 2 {
		return errorEnvelope("I need at least two numeric columns to calculate correlations")
	}
	return correlationEnvelope(nums)
}

// correlationEnvelope renders a pairwise Pearson matrix. Shared with the
// comparison degrade path so both produce identical results.
func correlationEnvelope(cols []*dataset.Column) *Envelope {
	t := &Table{Columns: append([]string{""}, displayNames(cols)...)}
	for _, a := range cols {
		row := make([]string, 0, len(cols)+1)
		row = append(row, a.Original)
		for _, b := range cols {
			if a == b {
				row = append(row, "1.00")
				continue
			}
			row = append(row, fmt.Sprintf("%.2f", pearson(a, b)))
		}
		t.Rows = append(t.Rows, row)
	}
	return composite("Here's the correlation matrix showing relationships between numeric variables:", t, nil)
}
