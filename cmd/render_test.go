package cmd

import (
	"strings"
	"testing"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	var b strings.Builder
	renderTable(&b, &query.Table{
		Columns: []string{"Name", "Count"},
		Rows: [][]string{
			{"Engineering", "42"},
			{"HR", "3"},
		},
	})
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("rendered %d lines, want 4 (header, separator, 2 rows):\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator = %q", lines[1])
	}
	// Count column should start at the same offset on every line.
	idx := strings.Index(lines[0], "Count")
	if idx < 0 {
		t.Fatalf("header missing Count: %q", lines[0])
	}
	if got := strings.Index(lines[2], "42"); got != idx {
		t.Errorf("value column offset = %d, want %d", got, idx)
	}
}

func TestRenderEnvelopeError(t *testing.T) {
	var b strings.Builder
	renderEnvelope(&b, &query.Envelope{Kind: query.KindError, Err: "no dataset is loaded"})
	if !strings.Contains(b.String(), "no dataset is loaded") {
		t.Errorf("output = %q", b.String())
	}
}

func TestRenderEnvelopeComposite(t *testing.T) {
	var b strings.Builder
	renderEnvelope(&b, &query.Envelope{
		Kind: query.KindComposite,
		Text: "Found 2 records matching your criteria.",
		Table: &query.Table{
			Columns: []string{"Age"},
			Rows:    [][]string{{"25"}, {"28"}},
		},
	})
	out := b.String()
	if !strings.Contains(out, "Found 2 records") || !strings.Contains(out, "28") {
		t.Errorf("composite output missing parts:\n%s", out)
	}
}

func TestRenderChartBars(t *testing.T) {
	var b strings.Builder
	renderChart(&b, &chart.Spec{
		Kind:   chart.Bar,
		Title:  "Count of Region",
		Labels: []string{"North", "South"},
		Values: []float64{10, 5},
	})
	out := b.String()
	if !strings.Contains(out, "North") || !strings.Contains(out, "█") {
		t.Errorf("bar chart output missing bars:\n%s", out)
	}
}
