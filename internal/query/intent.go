package query

import (
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
)

// Category is the classified analytical intent of a question.
type Category string

const (
	CategorySummary       Category = "summary"
	CategoryVisualization Category = "visualization"
	CategoryFilter        Category = "filter"
	CategoryComparison    Category = "comparison"
	CategoryCorrelation   Category = "correlation"
	CategoryGeneral       Category = "general"
)

// Condition is one extracted filter predicate.
type Condition struct {
	Column   string
	Operator string
	Value    string
}

// Intent is the classified category plus whatever parameters were extracted
// from the question, locally or by the oracle. Created once per query and
// consumed by exactly one executor.
type Intent struct {
	Category   Category
	Columns    []string
	Operations []string
	ChartKind  chart.Kind
	Conditions []Condition
}

// decisionList is the ordered keyword classifier. The order is a behavioral
// contract: the first category whose keyword set intersects the question
// wins, so "average ... as a chart" classifies as summary, not visualization.
// Do not reorder or sort.
var decisionList = []struct {
	category Category
	keywords []string
}{
	{CategorySummary, []string{
		"average", "mean", "sum", "total", "count", "minimum", "maximum",
		"min", "max", "median", "std", "standard deviation", "statistics",
		"how many", "what is the",
	}},
	{CategoryVisualization, []string{
		"chart", "graph", "plot", "histogram", "bar chart", "line chart",
		"scatter plot", "pie chart", "box plot", "show", "visualize",
		"display", "create a",
	}},
	{CategoryFilter, []string{
		"where", "filter", "under", "over", "above", "below", "greater than",
		"less than", "equal to", "customers who", "records where",
	}},
	{CategoryComparison, []string{
		"compare", "comparison", "by", "across", "between", "vs", "versus",
	}},
	{CategoryCorrelation, []string{
		"correlation", "relationship", "related", "correlated",
	}},
}

// Classify assigns a question to a category via the ordered keyword lists.
func Classify(question string) Category {
	q := strings.ToLower(strings.TrimSpace(question))
	for _, entry := range decisionList {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				return entry.category
			}
		}
	}
	return CategoryGeneral
}

// chartKindFor picks a chart kind from question keywords, defaulting to bar.
func chartKindFor(question string) chart.Kind {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "histogram") || strings.Contains(q, "distribution"):
		return chart.Histogram
	case strings.Contains(q, "line") || strings.Contains(q, "trend"):
		return chart.Line
	case strings.Contains(q, "scatter"):
		return chart.Scatter
	case strings.Contains(q, "pie"):
		return chart.Pie
	case strings.Contains(q, "box"):
		return chart.Box
	default:
		return chart.Bar
	}
}
