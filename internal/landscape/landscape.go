// Package landscape defines the discrete fitness landscapes a population
// evolves on: a single monotone slope, two slopes joined tail-to-tail around
// a shared valley, and two slopes joined head-to-head around a shared peak.
// A landscape maps each mutation-count bin to a scalar fitness
// exp(-s * d^(1-eps)), where d is the bin's distance from the landscape
// anchor and eps is the epistasis coefficient.
package landscape

import (
	"fmt"
	"math"
)

// Shape names recognized by drivers, storage, and the CLI.
const (
	ShapeSimple   = "simple"
	ShapeAdjacent = "adjacent"
	ShapeHybrid   = "hybrid"
)

// Region tags which side of a two-part landscape a bin falls on. The boundary
// tag is only produced by the hybrid topology, whose halves share the peak
// bin itself.
type Region int

const (
	RegionLeft Region = iota
	RegionRight
	RegionBoundary
)

// Simple is a monotone landscape over 0..L accumulated deleterious mutations.
// Bin k has fitness exp(-s * k^(1-eps)), so fitness is non-increasing in k
// whenever s > 0 and eps < 1.
type Simple struct {
	S   float64 // fitness effect per mutation
	Eps float64 // epistasis
	L   int     // maximum number of mutations
}

func (l Simple) Validate() error {
	if l.L < 0 {
		return fmt.Errorf("landscape size must be >= 0, got %d", l.L)
	}
	return nil
}

// Bins returns the number of mutation-count bins, L+1.
func (l Simple) Bins() int { return l.L + 1 }

// Fitness returns the per-bin fitness vector. Callers treat the result as
// immutable for the duration of a run.
func (l Simple) Fitness() []float64 {
	fit := make([]float64, l.Bins())
	for k := range fit {
		fit[k] = decay(l.S, l.Eps, k)
	}
	return fit
}

// Adjacent joins two landscapes tail-to-tail: bins 0..LLeft descend away from
// the left anchor and bins LLeft+1..LLeft+LRight+1 descend away from the
// right anchor, so the two halves meet at a shared fitness valley between
// bins LLeft and LLeft+1.
type Adjacent struct {
	SLeft, SRight     float64
	EpsLeft, EpsRight float64
	LLeft, LRight     int
}

func (l Adjacent) Validate() error {
	if l.LLeft < 0 || l.LRight < 0 {
		return fmt.Errorf("landscape sizes must be >= 0, got %d and %d", l.LLeft, l.LRight)
	}
	return nil
}

// Bins returns the number of mutation-count bins, LLeft+LRight+2.
func (l Adjacent) Bins() int { return l.LLeft + l.LRight + 2 }

func (l Adjacent) Fitness() []float64 {
	fit := make([]float64, l.Bins())
	for k := range fit {
		if k <= l.LLeft {
			fit[k] = decay(l.SLeft, l.EpsLeft, k)
		} else {
			fit[k] = decay(l.SRight, l.EpsRight, l.LLeft+l.LRight+1-k)
		}
	}
	return fit
}

// RegionOf classifies a bin for the valley topology. The valley sits between
// bins LLeft and LLeft+1, so every bin belongs to exactly one half.
func (l Adjacent) RegionOf(bin int) Region {
	if bin <= l.LLeft {
		return RegionLeft
	}
	return RegionRight
}

// Hybrid joins two landscapes head-to-head: both halves climb toward bin
// LLeft, which is the shared peak with fitness exp(0) = 1 on either
// parameterization.
type Hybrid struct {
	SLeft, SRight     float64
	EpsLeft, EpsRight float64
	LLeft, LRight     int
}

func (l Hybrid) Validate() error {
	if l.LLeft < 0 || l.LRight < 0 {
		return fmt.Errorf("landscape sizes must be >= 0, got %d and %d", l.LLeft, l.LRight)
	}
	return nil
}

// Bins returns the number of mutation-count bins, LLeft+LRight+1.
func (l Hybrid) Bins() int { return l.LLeft + l.LRight + 1 }

func (l Hybrid) Fitness() []float64 {
	fit := make([]float64, l.Bins())
	for k := range fit {
		if k <= l.LLeft {
			fit[k] = decay(l.SLeft, l.EpsLeft, l.LLeft-k)
		} else {
			fit[k] = decay(l.SRight, l.EpsRight, k-l.LLeft)
		}
	}
	return fit
}

// RegionOf classifies a bin for the peak topology. Bin LLeft is the shared
// peak and belongs to neither half.
func (l Hybrid) RegionOf(bin int) Region {
	switch {
	case bin < l.LLeft:
		return RegionLeft
	case bin > l.LLeft:
		return RegionRight
	default:
		return RegionBoundary
	}
}

// decay computes exp(-s * d^(1-eps)) for an integer distance d. With eps > 1
// the exponent is negative and d == 0 yields 0^negative = +Inf, collapsing
// the anchor bin's fitness to zero for s > 0; that is the defined behavior
// for super-exponential epistasis, not an error.
func decay(s, eps float64, d int) float64 {
	return math.Exp(-s * math.Pow(float64(d), 1-eps))
}
