package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeDegenerateBin(t *testing.T) {
	// All individuals in the last bin: both variances collapse to zero.
	got := Summarize([]int{0, 0, 3}, []float64{1, 2, 3}, 0)
	assert.Equal(t, 2.0, got.Counts.Mean)
	assert.Equal(t, 0.0, got.Counts.Variance)
	assert.Equal(t, 3.0, got.Fitness.Mean)
	assert.Equal(t, 0.0, got.Fitness.Variance)
}

func TestSummarizeEmptyPopulation(t *testing.T) {
	got := Summarize([]int{0, 0, 0}, []float64{1, 2, 3}, 0)
	assert.Equal(t, GenerationSummary{}, got)
}

func TestSummarizeWeightedMoments(t *testing.T) {
	// Two individuals at bin 0, two at bin 2: mean 1, population variance 1.
	got := Summarize([]int{2, 0, 2}, []float64{1.0, 0.5, 0.25}, 0)
	assert.InDelta(t, 1.0, got.Counts.Mean, 1e-12)
	assert.InDelta(t, 1.0, got.Counts.Variance, 1e-12)
	assert.InDelta(t, 0.625, got.Fitness.Mean, 1e-12)
	assert.InDelta(t, 0.140625, got.Fitness.Variance, 1e-12)
}

func TestSummarizeStartOffset(t *testing.T) {
	// Summarizing the right half of a landscape keeps absolute bin indices.
	got := Summarize([]int{0, 4}, []float64{0.5, 0.9}, 3)
	assert.Equal(t, 4.0, got.Counts.Mean)
	assert.Equal(t, 0.0, got.Counts.Variance)
	assert.Equal(t, 0.9, got.Fitness.Mean)
}
