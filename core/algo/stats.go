// Package algo holds the pure statistical helpers shared by the analyzers.
package algo

import (
	"math"
	"sort"
)

// Clamp bounds a score to the [0,100] range.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round2 rounds a value to two decimal places, the reporting convention
// for every score and derived ratio.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SafeRatio divides num by den, evaluating to 0 when the denominator is
// empty. This is an explicit policy for every division-prone ratio in the
// engine (merge rate, close rate, deletion ratio, churn per commit).
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Median returns the median of values, or 0 for an empty slice.
// The input slice is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Gini calculates the Gini coefficient for a set of values.
// The Gini coefficient measures inequality in a distribution, ranging from
// 0 (perfect equality) to 1 (perfect inequality). It's used here to measure
// how evenly contributions are distributed among contributors.
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)
	if mean == 0 {
		return 0
	}

	var diffSum float64
	for i := range n {
		for j := range n {
			diffSum += math.Abs(values[i] - values[j])
		}
	}

	g := diffSum / (2 * float64(n*n) * mean)
	return math.Min(math.Max(g, 0), 1) // clamp to [0,1]
}

// BusFactor returns the minimum number of top contributors whose combined
// share of total contributions reaches half of the grand total. It is 0
// only when there are no contributions at all.
func BusFactor(contributions []int) int {
	var total int
	for _, c := range contributions {
		total += c
	}
	if total == 0 {
		return 0
	}

	sorted := make([]int, len(contributions))
	copy(sorted, contributions)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	target := float64(total) * 0.5
	var cumulative float64
	var count int
	for _, c := range sorted {
		cumulative += float64(c)
		count++
		if cumulative >= target {
			break
		}
	}
	return count
}
