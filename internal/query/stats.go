package query

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
)

func mean(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum float64
	for _, v := range nums {
		sum += v
	}
	return sum / float64(len(nums))
}

func sum(nums []float64) float64 {
	var s float64
	for _, v := range nums {
		s += v
	}
	return s
}

func median(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	cp := make([]float64, len(nums))
	copy(cp, nums)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// stddev is the sample standard deviation; defined only for n >= 2.
func stddev(nums []float64) float64 {
	n := len(nums)
	if n < 2 {
		return 0
	}
	m := mean(nums)
	var m2 float64
	for _, v := range nums {
		d := v - m
		m2 += d * d
	}
	return math.Sqrt(m2 / float64(n-1))
}

func minMax(nums []float64) (float64, float64) {
	if len(nums) == 0 {
		return 0, 0
	}
	lo, hi := nums[0], nums[0]
	for _, v := range nums {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// pearson computes the correlation of two columns using pairwise deletion:
// only rows where both cells are numeric contribute. Degenerate inputs
// (fewer than two pairs, zero variance) yield 0.
func pearson(a, b *dataset.Column) float64 {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range a.Cells {
		x, y := a.Cells[i], b.Cells[i]
		if x.Kind != dataset.CellNumber || y.Kind != dataset.CellNumber {
			continue
		}
		n++
		sumX += x.Num
		sumY += y.Num
		sumXX += x.Num * x.Num
		sumYY += y.Num * y.Num
		sumXY += x.Num * y.Num
	}
	if n < 2 {
		return 0
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// formatNumber renders a rounded numeric aggregate without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(round2(f), 'f', -1, 64)
}

func formatInt(n int) string { return strconv.Itoa(n) }
