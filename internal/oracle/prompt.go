package oracle

import (
	"fmt"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/utils"
)

// maxPromptTokens bounds the dataset description so a wide dataset with long
// categorical values cannot blow past the model's context window.
const maxPromptTokens = 2000

const promptPreamble = `You classify natural-language questions about a tabular dataset into a structured intent.

Respond with ONLY a JSON object, no prose, of this shape:
{
  "type": one of "summary_statistics", "filtered_query", "visualization", "comparison", "correlation", "general",
  "columns": [column names from the dataset that the question refers to],
  "operations": [any of "average", "sum", "count", "min", "max"],
  "conditions": [{"column": name, "operator": one of "<", ">", "<=", ">=", "==", "value": string}],
  "chart_type": one of "bar", "histogram", "line", "scatter", "pie", "box", or "" when no chart is requested
}

Use only column names that appear in the dataset description below. Leave lists empty rather than guessing.`

// systemPrompt renders the classification instructions plus a per-column
// description of the loaded dataset.
func systemPrompt(ds *dataset.Dataset) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nDataset: ")
	b.WriteString(ds.Name)
	fmt.Fprintf(&b, " (%d rows)\n", ds.Rows())
	b.WriteString("Columns:\n")
	for _, c := range ds.Columns() {
		fmt.Fprintf(&b, "- %s (shown as %q, type %s)\n", c.Name, c.Original, c.Type)
		switch c.Type {
		case dataset.TypeCategorical, dataset.TypeBinary:
			vals := c.Distinct()
			if len(vals) > 5 {
				vals = vals[:5]
			}
			if len(vals) > 0 {
				fmt.Fprintf(&b, "  values: %s\n", strings.Join(vals, ", "))
			}
		case dataset.TypeNumeric:
			if nums := c.Numbers(); len(nums) > 0 {
				lo, hi := nums[0], nums[0]
				for _, n := range nums[1:] {
					if n < lo {
						lo = n
					}
					if n > hi {
						hi = n
					}
				}
				fmt.Fprintf(&b, "  range: %g to %g\n", lo, hi)
			}
		}
	}
	return utils.TruncateToTokenLimit(b.String(), maxPromptTokens)
}
