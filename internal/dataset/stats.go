package dataset

import (
	"math"
	"sort"
)

// Finite returns the non-NaN values of a column, preserving order.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the arithmetic mean, ignoring NaN cells.
// NaN if no finite values are present.
func Mean(values []float64) float64 {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Median returns the median, ignoring NaN cells. NaN if no finite values
// are present. Even-length inputs use the midpoint of the two central
// values.
func Median(values []float64) float64 {
	v := Finite(values)
	if len(v) == 0 {
		return math.NaN()
	}
	sort.Float64s(v)
	mid := len(v) / 2
	if len(v)%2 == 1 {
		return v[mid]
	}
	return (v[mid-1] + v[mid]) / 2
}

// StdDev returns the sample standard deviation (n-1 denominator),
// ignoring NaN cells. Zero when fewer than two finite values exist, so
// summary rows stay finite for single-record groups.
func StdDev(values []float64) float64 {
	v := Finite(values)
	if len(v) < 2 {
		return 0
	}
	mean := Mean(v)
	sum := 0.0
	for _, x := range v {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(v)-1))
}
