package query

import (
	"fmt"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

func runVisualization(intent *Intent, question string, cols []*dataset.Column, ds *dataset.Dataset) *Envelope {
	if len(cols) == 0 {
		return errorEnvelope("I couldn't identify which columns to visualize; please name the data you want to see")
	}
	kind := intent.ChartKind
	if kind == "" {
		kind = chartKindFor(question)
	}
	spec, err := chart.Build(ds, cols, kind)
	if err != nil {
		return errorEnvelope("I couldn't create that chart: %v", err)
	}
	return chartEnvelope(
		fmt.Sprintf("Here's your %s chart for %s:", kind, strings.Join(displayNames(cols), ", ")),
		spec,
	)
}
