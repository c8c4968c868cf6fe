// Package query turns a free-text question into a typed response envelope:
// classify intent, resolve columns, execute the matching analysis.
package query

import (
	"context"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

// Classifier is an optional external intent oracle. When it answers, its
// structured intent preempts the local keyword classifier; any failure falls
// back silently.
type Classifier interface {
	ClassifyIntent(ctx context.Context, question string, ds *dataset.Dataset) (*Intent, error)
}

// Engine executes questions against a dataset. It holds no dataset state of
// its own; the caller passes the dataset into every call.
type Engine struct {
	oracle         Classifier
	degradedWarned bool
}

// NewEngine returns an engine. oracle may be nil to run purely rule-based.
func NewEngine(oracle Classifier) *Engine {
	return &Engine{oracle: oracle}
}

// Answer runs one question to completion. It never propagates a fault:
// internal panics and executor failures become error envelopes.
func (e *Engine) Answer(ctx context.Context, question string, ds *dataset.Dataset) (env *Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = errorEnvelope("an error occurred while processing your query: %v", r)
		}
	}()

	if ds == nil {
		return errorEnvelope("no dataset is loaded; load a file first")
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return errorEnvelope("please ask a question about your data")
	}

	var intent *Intent
	degraded := false
	if e.oracle != nil {
		oi, err := e.oracle.ClassifyIntent(ctx, question, ds)
		if err == nil && oi != nil {
			intent = oi
		} else {
			degraded = true
		}
	}
	if intent == nil {
		intent = &Intent{Category: Classify(question)}
	}

	cols := e.columnsFor(intent, question, ds)
	env = dispatch(intent, question, cols, ds)

	if degraded && !e.degradedWarned {
		e.degradedWarned = true
		notice := "Note: the AI classifier is unavailable; using built-in analysis."
		if env.Text != "" {
			env.Text = notice + "\n\n" + env.Text
		} else {
			env.Text = notice
		}
	}
	return env
}

// columnsFor prefers columns the oracle extracted (validated against the
// dataset), falling back to local resolution. The result is in dataset
// column order.
func (e *Engine) columnsFor(intent *Intent, question string, ds *dataset.Dataset) []*dataset.Column {
	wanted := make(map[string]struct{}, len(intent.Columns))
	for _, name := range intent.Columns {
		norm := dataset.NormalizeName(name)
		if _, ok := ds.Column(norm); ok {
			wanted[norm] = struct{}{}
		}
	}
	if len(wanted) > 0 {
		var cols []*dataset.Column
		for _, c := range ds.Columns() {
			if _, ok := wanted[c.Name]; ok {
				cols = append(cols, c)
			}
		}
		return cols
	}
	return inDatasetOrder(Resolve(question, ds), ds)
}

func inDatasetOrder(cols []*dataset.Column, ds *dataset.Dataset) []*dataset.Column {
	set := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		set[c.Name] = struct{}{}
	}
	var out []*dataset.Column
	for _, c := range ds.Columns() {
		if _, ok := set[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out
}

func dispatch(intent *Intent, question string, cols []*dataset.Column, ds *dataset.Dataset) *Envelope {
	switch intent.Category {
	case CategorySummary:
		return runSummary(question, cols, ds)
	case CategoryVisualization:
		return runVisualization(intent, question, cols, ds)
	case CategoryFilter:
		return runFilter(question, ds)
	case CategoryComparison:
		return runComparison(cols, ds)
	case CategoryCorrelation:
		return runCorrelation(ds)
	default:
		return runGeneral(cols, ds)
	}
}

func displayNames(cols []*dataset.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Original
	}
	return out
}
