package query

import (
	"fmt"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

// runComparison groups a numeric column by a categorical one. With no
// categorical column among the resolved set it degrades to a correlation
// matrix over the resolved numerics.
func runComparison(cols []*dataset.Column, ds *dataset.Dataset) *Envelope {
	if len(cols) < 2 {
		return errorEnvelope("I need at least two columns to make a comparison; please specify what you want to compare")
	}

	var group, value *dataset.Column
	var numerics []*dataset.Column
	for _, c := range cols {
		switch {
		case c.Type == dataset.TypeNumeric:
			numerics = append(numerics, c)
			if value == nil {
				value = c
			}
		case c.Type == dataset.TypeCategorical || c.Type == dataset.TypeBinary:
			if group == nil {
				group = c
			}
		}
	}

	if group != nil && value != nil {
		return groupComparison(group, value, ds)
	}
	if len(numerics) >= 2 {
		return correlationEnvelope(numerics)
	}
	return errorEnvelope("I couldn't create a comparison with those columns; try one category column and one numeric column")
}

func groupComparison(group, value *dataset.Column, ds *dataset.Dataset) *Envelope {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, g := range group.Cells {
		v := value.Cells[i]
		if g.Missing() || v.Kind != dataset.CellNumber {
			continue
		}
		sums[g.String()] += v.Num
		counts[g.String()]++
	}

	t := &Table{Columns: []string{group.Original, "Mean " + value.Original, "Count"}}
	for _, g := range group.Distinct() {
		if counts[g] == 0 {
			continue
		}
		t.Rows = append(t.Rows, []string{g, formatNumber(sums[g] / float64(counts[g])), formatInt(counts[g])})
	}
	if len(t.Rows) == 0 {
		return errorEnvelope("there are no rows with both %s and %s present", group.Original, value.Original)
	}

	spec, err := chart.Build(ds, []*dataset.Column{group, value}, chart.Bar)
	if err != nil {
		spec = nil // table alone still answers the question
	}
	return composite(fmt.Sprintf("Comparison of %s and %s:", group.Original, value.Original), t, spec)
}
