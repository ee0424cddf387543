// Package wright implements the discrete-generation Wright-Fisher transition:
// newborns are drawn with replacement proportional to bin fitness mass,
// mutation counts are drawn per newborn from independent Poisson processes,
// and each newborn is remapped onto the landscape by shape-specific boundary
// rules.
package wright

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrZeroFitnessMass reports a parent distribution with no mass: every bin
// holds either a zero count or zero fitness, so no newborn can be drawn.
var ErrZeroFitnessMass = errors.New("fitness-weighted population mass is zero")

// generationDraws holds one generation's independent random draws: a parent
// bin per newborn plus that newborn's beneficial and deleterious mutation
// counts.
type generationDraws struct {
	newborn []int
	mutBen  []int
	mutDel  []int
}

// sampleGeneration draws n parent bins proportional to count*fitness and,
// independently of the parent draw and of each other, n beneficial and n
// deleterious Poisson mutation counts at rates uBen and uDel.
func sampleGeneration(rng *rand.Rand, n int, uBen, uDel float64, counts []int, fitness []float64) (generationDraws, error) {
	if len(counts) != len(fitness) {
		return generationDraws{}, fmt.Errorf("count and fitness vectors differ in length: %d vs %d", len(counts), len(fitness))
	}

	mass := make([]float64, len(counts))
	total := 0.0
	for i, c := range counts {
		mass[i] = float64(c) * fitness[i]
		total += mass[i]
	}
	if math.IsInf(total, 1) {
		return generationDraws{}, errors.New("fitness-weighted population mass is not finite")
	}
	if !(total > 0) {
		return generationDraws{}, ErrZeroFitnessMass
	}

	parents := distuv.NewCategorical(mass, rng)
	draws := generationDraws{
		newborn: make([]int, n),
		mutBen:  make([]int, n),
		mutDel:  make([]int, n),
	}
	for i := range draws.newborn {
		draws.newborn[i] = int(parents.Rand())
	}
	poissonInto(rng, uBen, draws.mutBen)
	poissonInto(rng, uDel, draws.mutDel)
	return draws, nil
}

// poissonInto fills dst with Poisson(rate) draws. A zero rate is a point mass
// at zero and is short-circuited, since distuv requires a positive lambda.
func poissonInto(rng *rand.Rand, rate float64, dst []int) {
	if rate == 0 {
		clear(dst)
		return
	}
	dist := distuv.Poisson{Lambda: rate, Src: rng}
	for i := range dst {
		dst[i] = int(dist.Rand())
	}
}
