package query

import (
	"fmt"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

func runGeneral(cols []*dataset.Column, ds *dataset.Dataset) *Envelope {
	if len(cols) > 0 {
		if len(cols) > maxSummaryColumns {
			cols = cols[:maxSummaryColumns]
		}
		t := &Table{Columns: []string{"Column", "Type", "Non-Null Count", "Unique Values"}}
		for _, c := range cols {
			t.Rows = append(t.Rows, []string{
				c.Original, string(c.Type), formatInt(c.NonNull()), formatInt(c.Unique()),
			})
		}
		return composite("Here's information about the columns you mentioned:", t, nil)
	}

	var b strings.Builder
	b.WriteString("I'm not sure exactly what you're looking for. Here's an overview of your dataset.\n\n")
	b.WriteString("Available columns:\n")
	for _, c := range ds.Columns() {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Original, c.Type)
	}
	b.WriteString("\nTry asking questions like:\n")
	b.WriteString("- What is the average [column name]?\n")
	b.WriteString("- Show a bar chart of [column name]\n")
	b.WriteString("- How many records have [condition]?\n")
	b.WriteString("- Compare [column] across [category]\n")

	env := overviewEnvelope(ds, b.String())
	return env
}
