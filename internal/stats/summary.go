// Package stats computes per-generation summary statistics over a bin-count
// vector: population-weighted mean and population variance of the bin indices
// and of the per-bin fitness values.
package stats

import "gonum.org/v1/gonum/stat"

// Summary is the weighted first and second moment of one quantity for a
// single generation.
type Summary struct {
	Mean     float64
	Variance float64
}

// GenerationSummary pairs the bin-index and fitness summaries for one
// generation.
type GenerationSummary struct {
	Counts  Summary
	Fitness Summary
}

// Summarize computes population-weighted statistics over a bin-count vector
// and its matching fitness vector. start offsets the bin indices so a slice
// of a larger landscape can be summarized in place. An empty population
// yields zero summaries rather than NaN.
func Summarize(counts []int, fitness []float64, start int) GenerationSummary {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return GenerationSummary{}
	}

	idx := make([]float64, len(counts))
	weights := make([]float64, len(counts))
	for i, c := range counts {
		idx[i] = float64(start + i)
		weights[i] = float64(c)
	}

	countMean, countVar := stat.PopMeanVariance(idx, weights)
	fitMean, fitVar := stat.PopMeanVariance(fitness, weights)
	return GenerationSummary{
		Counts:  Summary{Mean: countMean, Variance: countVar},
		Fitness: Summary{Mean: fitMean, Variance: fitVar},
	}
}
