package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

// renderEnvelope prints one response to the terminal. Every envelope kind is
// handled; composite may carry any subset of text/table/chart.
func renderEnvelope(w io.Writer, env *query.Envelope) {
	if env == nil {
		return
	}
	switch env.Kind {
	case query.KindError:
		fmt.Fprintf(w, "✗ %s\n", env.Err)
	case query.KindText:
		fmt.Fprintln(w, env.Text)
	case query.KindTable:
		renderTable(w, env.Table)
	case query.KindChart:
		if env.Text != "" {
			fmt.Fprintln(w, env.Text)
		}
		renderChart(w, env.Chart)
	case query.KindComposite:
		if env.Text != "" {
			fmt.Fprintln(w, env.Text)
		}
		if env.Table != nil {
			fmt.Fprintln(w)
			renderTable(w, env.Table)
		}
		if env.Chart != nil {
			fmt.Fprintln(w)
			renderChart(w, env.Chart)
		}
	}
}

// renderTable prints a table with columns padded to their widest cell.
func renderTable(w io.Writer, t *query.Table) {
	if t == nil || len(t.Columns) == 0 {
		return
	}
	widths := make([]int, len(t.Columns))
	for i, h := range t.Columns {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(t.Columns)
	sep := make([]string, len(widths))
	for i, n := range widths {
		sep[i] = strings.Repeat("-", n)
	}
	fmt.Fprintln(w, strings.Join(sep, "  "))
	for _, row := range t.Rows {
		writeRow(row)
	}
}

const maxBarWidth = 40

// renderChart draws a terminal rendition of the spec. Bar-family charts get
// proportional unicode bars; point-based charts get a compact listing.
func renderChart(w io.Writer, s *chart.Spec) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", s.Kind, s.Title)

	switch s.Kind {
	case chart.Bar, chart.Histogram, chart.Pie:
		if len(s.Series) > 0 {
			renderSeries(w, s)
			return
		}
		renderBars(w, s.Labels, s.Values)
	case chart.Line, chart.Scatter:
		fmt.Fprintf(w, "%d points", len(s.Points))
		if s.XLabel != "" || s.YLabel != "" {
			fmt.Fprintf(w, " (%s vs %s)", s.XLabel, s.YLabel)
		}
		fmt.Fprintln(w)
		n := len(s.Points)
		if n > 10 {
			n = 10
		}
		for _, p := range s.Points[:n] {
			if p.Label != "" {
				fmt.Fprintf(w, "  (%g, %g) %s\n", p.X, p.Y, p.Label)
			} else {
				fmt.Fprintf(w, "  (%g, %g)\n", p.X, p.Y)
			}
		}
		if len(s.Points) > n {
			fmt.Fprintf(w, "  ... and %d more\n", len(s.Points)-n)
		}
	case chart.Box:
		for _, b := range s.Boxes {
			fmt.Fprintf(w, "  %s: min=%g q1=%g median=%g q3=%g max=%g\n",
				b.Label, b.Min, b.Q1, b.Median, b.Q3, b.Max)
		}
	}
}

func renderBars(w io.Writer, labels []string, values []float64) {
	if len(labels) == 0 {
		return
	}
	maxVal := 0.0
	width := 0
	for i, l := range labels {
		if len([]rune(l)) > width {
			width = len([]rune(l))
		}
		if i < len(values) && values[i] > maxVal {
			maxVal = values[i]
		}
	}
	for i, l := range labels {
		v := 0.0
		if i < len(values) {
			v = values[i]
		}
		n := 0
		if maxVal > 0 && v > 0 {
			n = int(v / maxVal * maxBarWidth)
			if n == 0 {
				n = 1
			}
		}
		fmt.Fprintf(w, "  %s  %s %g\n", pad(l, width), strings.Repeat("█", n), v)
	}
}

func renderSeries(w io.Writer, s *chart.Spec) {
	for _, ser := range s.Series {
		fmt.Fprintf(w, "  %s:\n", ser.Name)
		renderBars(w, s.Labels, ser.Values)
	}
}

func pad(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
