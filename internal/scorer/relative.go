package scorer

import (
	"math"
	"sort"
)

// batchPercentiles holds the percentile cut points of a batch's
// composite scores.
type batchPercentiles struct {
	P10, P25, P50, P75, P90 float64
}

// computePercentiles calculates the batch cut points using linear
// interpolation between order statistics.
func computePercentiles(scores []float64) batchPercentiles {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	return batchPercentiles{
		P10: percentile(sorted, 10),
		P25: percentile(sorted, 25),
		P50: percentile(sorted, 50),
		P75: percentile(sorted, 75),
		P90: percentile(sorted, 90),
	}
}

// percentile returns the p-th percentile of sorted values, linearly
// interpolated. sorted must be ascending and non-empty.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// adjustRelative nudges a score based on where it sits in the batch:
// top decile +5, upper quartile +2, bottom decile -5, lower quartile
// -2, middle band unchanged. Results stay in [0, 100].
func adjustRelative(score float64, pct batchPercentiles) float64 {
	switch {
	case score >= pct.P90:
		return math.Min(score+5, 100)
	case score >= pct.P75:
		return math.Min(score+2, 100)
	case score <= pct.P10:
		return math.Max(score-5, 0)
	case score <= pct.P25:
		return math.Max(score-2, 0)
	default:
		return score
	}
}

// percentileRanks returns each score's rank within the batch as a
// percentage, with ties receiving the averaged rank.
func percentileRanks(scores []float64) []float64 {
	n := len(scores)
	ranks := make([]float64, n)
	if n == 0 {
		return ranks
	}

	for i, s := range scores {
		less, equal := 0, 0
		for _, other := range scores {
			switch {
			case other < s:
				less++
			case other == s:
				equal++
			}
		}
		avgRank := float64(less) + (float64(equal)+1)/2
		ranks[i] = avgRank / float64(n) * 100
	}
	return ranks
}
