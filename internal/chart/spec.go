// Package chart translates resolved columns plus a requested chart kind into
// a renderable spec. Rendering itself is a host concern; this package owns
// the structural validation of kind vs. column types.
package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

// Kind identifies a chart family.
type Kind string

const (
	Bar       Kind = "bar"
	Histogram Kind = "histogram"
	Line      Kind = "line"
	Scatter   Kind = "scatter"
	Pie       Kind = "pie"
	Box       Kind = "box"
)

// UnsupportedChartError indicates the requested kind is structurally invalid
// for the given columns.
type UnsupportedChartError struct {
	Kind   Kind
	Reason string
}

func (e *UnsupportedChartError) Error() string {
	return fmt.Sprintf("cannot build %s chart: %s", e.Kind, e.Reason)
}

// Point is one marker on a scatter or line chart.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"` // optional color/series label from a third column
}

// Series is one named run of values over the shared category labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BoxStat is the five-number summary for one box.
type BoxStat struct {
	Label  string  `json:"label"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Spec is a renderable chart description. Only the fields meaningful for the
// Kind are populated.
type Spec struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`

	Labels []string  `json:"labels,omitempty"` // category axis (bar, pie, histogram bins, cross-tab)
	Values []float64 `json:"values,omitempty"` // single-series values aligned with Labels
	Series []Series  `json:"series,omitempty"` // cross-tab / grouped series
	Points []Point   `json:"points,omitempty"` // scatter, line
	Boxes  []BoxStat `json:"boxes,omitempty"`  // box
}

const (
	histogramBins = 10
	topBarValues  = 20
	topPieSlices  = 10
)

// Build shapes a chart spec for the given columns, or fails with
// *UnsupportedChartError when the kind's column-count or type prerequisites
// are not met.
func Build(ds *dataset.Dataset, cols []*dataset.Column, kind Kind) (*Spec, error) {
	if len(cols) == 0 {
		return nil, &UnsupportedChartError{Kind: kind, Reason: "no columns to plot"}
	}
	switch kind {
	case Bar:
		return buildBar(cols)
	case Histogram:
		return buildHistogram(cols[0])
	case Line:
		return buildLine(cols)
	case Scatter:
		return buildScatter(cols)
	case Pie:
		return buildPie(cols[0])
	case Box:
		return buildBox(cols)
	default:
		return nil, &UnsupportedChartError{Kind: kind, Reason: "unknown chart kind"}
	}
}

func buildBar(cols []*dataset.Column) (*Spec, error) {
	if len(cols) >= 2 {
		return buildGroupedBar(cols[0], cols[1])
	}
	c := cols[0]
	if c.Type == dataset.TypeNumeric {
		labels, values := binNumbers(c.Numbers(), histogramBins)
		return &Spec{
			Kind: Bar, Title: fmt.Sprintf("Distribution of %s", c.Original),
			XLabel: c.Original, YLabel: "Count", Labels: labels, Values: values,
		}, nil
	}
	labels, counts := c.ValueCounts()
	if len(labels) > topBarValues {
		labels, counts = labels[:topBarValues], counts[:topBarValues]
	}
	return &Spec{
		Kind: Bar, Title: fmt.Sprintf("Count by %s", c.Original),
		XLabel: c.Original, YLabel: "Count",
		Labels: labels, Values: intsToFloats(counts),
	}, nil
}

// buildGroupedBar groups by the first column and aggregates the second:
// mean for numeric values, a cross-tab of counts otherwise.
func buildGroupedBar(by, val *dataset.Column) (*Spec, error) {
	groups := by.Distinct()
	if len(groups) == 0 {
		return nil, &UnsupportedChartError{Kind: Bar, Reason: fmt.Sprintf("column %q has no values to group by", by.Original)}
	}
	if val.Type == dataset.TypeNumeric {
		sums := make(map[string]float64, len(groups))
		counts := make(map[string]int, len(groups))
		for i, g := range by.Cells {
			v := val.Cells[i]
			if g.Missing() || v.Kind != dataset.CellNumber {
				continue
			}
			sums[g.String()] += v.Num
			counts[g.String()]++
		}
		values := make([]float64, len(groups))
		for i, g := range groups {
			if counts[g] > 0 {
				values[i] = sums[g] / float64(counts[g])
			}
		}
		return &Spec{
			Kind: Bar, Title: fmt.Sprintf("Mean %s by %s", val.Original, by.Original),
			XLabel: by.Original, YLabel: fmt.Sprintf("Mean %s", val.Original),
			Labels: groups, Values: values,
		}, nil
	}
	// Cross-tab: one series per distinct value of the second column.
	valDomain := val.Distinct()
	tab := make(map[string]map[string]int, len(groups))
	for i, g := range by.Cells {
		v := val.Cells[i]
		if g.Missing() || v.Missing() {
			continue
		}
		gk := g.String()
		if tab[gk] == nil {
			tab[gk] = make(map[string]int)
		}
		tab[gk][v.String()]++
	}
	series := make([]Series, 0, len(valDomain))
	for _, vd := range valDomain {
		s := Series{Name: vd, Values: make([]float64, len(groups))}
		for i, g := range groups {
			s.Values[i] = float64(tab[g][vd])
		}
		series = append(series, s)
	}
	return &Spec{
		Kind: Bar, Title: fmt.Sprintf("%s by %s", val.Original, by.Original),
		XLabel: by.Original, YLabel: "Count",
		Labels: groups, Series: series,
	}, nil
}

func buildHistogram(c *dataset.Column) (*Spec, error) {
	if c.Type != dataset.TypeNumeric {
		return nil, &UnsupportedChartError{Kind: Histogram, Reason: fmt.Sprintf("column %q is not numeric", c.Original)}
	}
	labels, values := binNumbers(c.Numbers(), histogramBins)
	return &Spec{
		Kind: Histogram, Title: fmt.Sprintf("Distribution of %s", c.Original),
		XLabel: c.Original, YLabel: "Count", Labels: labels, Values: values,
	}, nil
}

func buildLine(cols []*dataset.Column) (*Spec, error) {
	if len(cols) < 2 {
		return nil, &UnsupportedChartError{Kind: Line, Reason: "a line chart needs an x column and a value column"}
	}
	x, y := cols[0], cols[1]
	if y.Type != dataset.TypeNumeric {
		return nil, &UnsupportedChartError{Kind: Line, Reason: fmt.Sprintf("value column %q is not numeric", y.Original)}
	}
	pts := pairPoints(x, y, nil)
	if len(pts) == 0 {
		return nil, &UnsupportedChartError{Kind: Line, Reason: "no plottable rows"}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return &Spec{
		Kind: Line, Title: fmt.Sprintf("%s over %s", y.Original, x.Original),
		XLabel: x.Original, YLabel: y.Original, Points: pts,
	}, nil
}

func buildScatter(cols []*dataset.Column) (*Spec, error) {
	if len(cols) < 2 {
		return nil, &UnsupportedChartError{Kind: Scatter, Reason: "a scatter plot needs two columns"}
	}
	var color *dataset.Column
	if len(cols) >= 3 {
		color = cols[2]
	}
	pts := pairPoints(cols[0], cols[1], color)
	if len(pts) == 0 {
		return nil, &UnsupportedChartError{Kind: Scatter, Reason: "no plottable rows"}
	}
	sp := &Spec{
		Kind: Scatter, Title: fmt.Sprintf("%s vs %s", cols[1].Original, cols[0].Original),
		XLabel: cols[0].Original, YLabel: cols[1].Original, Points: pts,
	}
	return sp, nil
}

func buildPie(c *dataset.Column) (*Spec, error) {
	if c.Type == dataset.TypeNumeric {
		return nil, &UnsupportedChartError{Kind: Pie, Reason: fmt.Sprintf("column %q is numeric; pie charts need categories", c.Original)}
	}
	labels, counts := c.ValueCounts()
	if len(labels) == 0 {
		return nil, &UnsupportedChartError{Kind: Pie, Reason: "no values to plot"}
	}
	if len(labels) > topPieSlices {
		labels, counts = labels[:topPieSlices], counts[:topPieSlices]
	}
	return &Spec{
		Kind: Pie, Title: fmt.Sprintf("Distribution of %s", c.Original),
		Labels: labels, Values: intsToFloats(counts),
	}, nil
}

func buildBox(cols []*dataset.Column) (*Spec, error) {
	var group, val *dataset.Column
	for _, c := range cols[:min(len(cols), 2)] {
		if c.Type == dataset.TypeNumeric && val == nil {
			val = c
		} else if group == nil {
			group = c
		}
	}
	if val == nil {
		return nil, &UnsupportedChartError{Kind: Box, Reason: "the value axis column must be numeric"}
	}
	if group == nil {
		nums := val.Numbers()
		if len(nums) == 0 {
			return nil, &UnsupportedChartError{Kind: Box, Reason: "no values to plot"}
		}
		return &Spec{
			Kind: Box, Title: fmt.Sprintf("Distribution of %s", val.Original),
			YLabel: val.Original, Boxes: []BoxStat{fiveNumber(val.Original, nums)},
		}, nil
	}
	byGroup := make(map[string][]float64)
	for i, g := range group.Cells {
		v := val.Cells[i]
		if g.Missing() || v.Kind != dataset.CellNumber {
			continue
		}
		byGroup[g.String()] = append(byGroup[g.String()], v.Num)
	}
	var boxes []BoxStat
	for _, g := range group.Distinct() {
		if nums := byGroup[g]; len(nums) > 0 {
			boxes = append(boxes, fiveNumber(g, nums))
		}
	}
	if len(boxes) == 0 {
		return nil, &UnsupportedChartError{Kind: Box, Reason: "no values to plot"}
	}
	return &Spec{
		Kind: Box, Title: fmt.Sprintf("%s by %s", val.Original, group.Original),
		XLabel: group.Original, YLabel: val.Original, Boxes: boxes,
	}, nil
}

func pairPoints(x, y *dataset.Column, color *dataset.Column) []Point {
	var pts []Point
	for i := range x.Cells {
		xc, yc := x.Cells[i], y.Cells[i]
		xv, ok := cellAsFloat(xc)
		if !ok {
			continue
		}
		yv, ok := cellAsFloat(yc)
		if !ok {
			continue
		}
		p := Point{X: xv, Y: yv}
		if color != nil && !color.Cells[i].Missing() {
			p.Label = color.Cells[i].String()
		}
		pts = append(pts, p)
	}
	return pts
}

// cellAsFloat coerces a cell onto a plottable axis: numbers as-is, times as
// unix seconds.
func cellAsFloat(c dataset.Cell) (float64, bool) {
	switch c.Kind {
	case dataset.CellNumber:
		return c.Num, true
	case dataset.CellTime:
		return float64(c.Time.Unix()), true
	default:
		return 0, false
	}
}

func binNumbers(nums []float64, bins int) ([]string, []float64) {
	if len(nums) == 0 {
		return nil, nil
	}
	lo, hi := nums[0], nums[0]
	for _, v := range nums {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return []string{formatFloat(lo)}, []float64{float64(len(nums))}
	}
	width := (hi - lo) / float64(bins)
	labels := make([]string, bins)
	values := make([]float64, bins)
	for i := 0; i < bins; i++ {
		labels[i] = formatFloat(lo+float64(i)*width) + "–" + formatFloat(lo+float64(i+1)*width)
	}
	for _, v := range nums {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		values[i]++
	}
	return labels, values
}

func fiveNumber(label string, nums []float64) BoxStat {
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)
	return BoxStat{
		Label:  label,
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func intsToFloats(ns []int) []float64 {
	out := make([]float64, len(ns))
	for i, n := range ns {
		out[i] = float64(n)
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
