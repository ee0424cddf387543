package wright

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"ratchet/internal/landscape"
)

// Stepper advances a bin-count vector by one generation. Implementations
// return a brand-new vector that sums to n; the input is never mutated.
type Stepper interface {
	Bins() int
	Step(rng *rand.Rand, n int, counts []int, fitness []float64) ([]int, error)
}

// Simple advances a population on a single monotone landscape. Deleterious
// mutations push a newborn toward higher bins, beneficial toward lower, and
// both ends absorb.
type Simple struct {
	L    int
	UBen float64
	UDel float64
}

func (s Simple) Bins() int { return s.L + 1 }

func (s Simple) Step(rng *rand.Rand, n int, counts []int, fitness []float64) ([]int, error) {
	draws, err := sampleGeneration(rng, n, s.UBen, s.UDel, counts, fitness)
	if err != nil {
		return nil, err
	}
	next := make([]int, s.Bins())
	for i, parent := range draws.newborn {
		next[s.place(parent, draws.mutBen[i], draws.mutDel[i])]++
	}
	return next, nil
}

func (s Simple) place(parent, ben, del int) int {
	return clamp(parent-ben+del, 0, s.L)
}

// Adjacent advances a population across the valley topology.
type Adjacent struct {
	Landscape landscape.Adjacent
	UBen      float64
	UDel      float64
}

func (a Adjacent) Bins() int { return a.Landscape.Bins() }

func (a Adjacent) Step(rng *rand.Rand, n int, counts []int, fitness []float64) ([]int, error) {
	draws, err := sampleGeneration(rng, n, a.UBen, a.UDel, counts, fitness)
	if err != nil {
		return nil, err
	}
	next := make([]int, a.Bins())
	for i, parent := range draws.newborn {
		next[a.place(parent, draws.mutBen[i], draws.mutDel[i])]++
	}
	return next, nil
}

// place maps a newborn across the valley. A left-half newborn pushed past
// LLeft lands exactly on the first right-half bin however far the draw
// overshoots, and symmetrically from the right; only the outer edges absorb.
// On the right half the mutation roles mirror, since fitness there rises
// toward the outer edge.
func (a Adjacent) place(parent, ben, del int) int {
	ll := a.Landscape.LLeft
	switch a.Landscape.RegionOf(parent) {
	case landscape.RegionLeft:
		m := parent - ben + del
		if m > ll {
			return ll + 1 // crossed the valley
		}
		return max(0, m)
	default:
		m := parent + ben - del
		if m <= ll {
			return ll // crossed the valley
		}
		return min(ll+a.Landscape.LRight+1, m)
	}
}

// Hybrid advances a population across the peak topology. PRight is the
// probability that a newborn sitting exactly on the peak descends into the
// right half.
type Hybrid struct {
	Landscape landscape.Hybrid
	UBen      float64
	UDel      float64
	PRight    float64
}

func (h Hybrid) Bins() int { return h.Landscape.Bins() }

func (h Hybrid) Step(rng *rand.Rand, n int, counts []int, fitness []float64) ([]int, error) {
	draws, err := sampleGeneration(rng, n, h.UBen, h.UDel, counts, fitness)
	if err != nil {
		return nil, err
	}
	coin := distuv.Bernoulli{P: h.PRight, Src: rng}
	next := make([]int, h.Bins())
	for i, parent := range draws.newborn {
		bin := h.place(parent, draws.mutBen[i], draws.mutDel[i], func() bool { return coin.Rand() == 1 })
		next[bin]++
	}
	return next, nil
}

// place maps a newborn across the peak. Off-peak newborns climb with
// beneficial mutations and descend with deleterious ones, clamped between
// their outer edge and the peak. A newborn on the peak keeps only its net
// deleterious excess, since it cannot improve, and descends into whichever
// half goRight selects; the coin is only flipped for peak newborns. The peak
// displacement is clamped to the landscape edges so oversized draws cannot
// index past them.
func (h Hybrid) place(parent, ben, del int, goRight func() bool) int {
	ll := h.Landscape.LLeft
	top := ll + h.Landscape.LRight
	switch h.Landscape.RegionOf(parent) {
	case landscape.RegionLeft:
		return clamp(parent+ben-del, 0, ll)
	case landscape.RegionRight:
		return clamp(parent-ben+del, ll, top)
	default:
		m := max(0, del-ben)
		if goRight() {
			return min(ll+m, top)
		}
		return max(ll-m, 0)
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
