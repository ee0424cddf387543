package wright

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratchet/internal/landscape"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func sum(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

func TestSimplePlaceClampsBothEnds(t *testing.T) {
	s := Simple{L: 5}
	assert.Equal(t, 3, s.place(2, 0, 1))
	assert.Equal(t, 1, s.place(2, 1, 0))
	assert.Equal(t, 0, s.place(1, 4, 0))
	assert.Equal(t, 5, s.place(4, 0, 9))
}

func TestAdjacentPlaceValleyCrossing(t *testing.T) {
	a := Adjacent{Landscape: landscape.Adjacent{LLeft: 2, LRight: 2}}

	// Left half pushed past the valley lands exactly on bin LLeft+1, however
	// far the draw overshoots.
	assert.Equal(t, 3, a.place(2, 0, 1))
	assert.Equal(t, 3, a.place(2, 0, 2))
	assert.Equal(t, 3, a.place(1, 0, 4))

	// Right half pushed past the valley lands exactly on bin LLeft.
	assert.Equal(t, 2, a.place(3, 0, 1))
	assert.Equal(t, 2, a.place(4, 0, 7))

	// Outer edges absorb, and no mutations means no movement.
	assert.Equal(t, 0, a.place(1, 3, 0))
	assert.Equal(t, 4, a.place(4, 0, 0))
}

func TestAdjacentPlaceRightHalfMirrorsRoles(t *testing.T) {
	a := Adjacent{Landscape: landscape.Adjacent{LLeft: 2, LRight: 2}}

	// On the right half beneficial mutations move outward (toward higher
	// bins) and deleterious inward.
	assert.Equal(t, 5, a.place(4, 1, 0))
	assert.Equal(t, 5, a.place(3, 5, 0))
	assert.Equal(t, 4, a.place(4, 1, 1))
}

func TestHybridPlaceOffPeak(t *testing.T) {
	noCoin := func() bool { t.Fatal("off-peak newborns must not flip the coin"); return false }
	h := Hybrid{Landscape: landscape.Hybrid{LLeft: 3, LRight: 3}}

	// Left of the peak: beneficial climbs toward the peak, clamped there.
	assert.Equal(t, 2, h.place(1, 1, 0, noCoin))
	assert.Equal(t, 3, h.place(2, 5, 0, noCoin))
	assert.Equal(t, 0, h.place(1, 0, 4, noCoin))

	// Right of the peak: mirrored.
	assert.Equal(t, 4, h.place(5, 1, 0, noCoin))
	assert.Equal(t, 3, h.place(4, 6, 0, noCoin))
	assert.Equal(t, 6, h.place(5, 0, 9, noCoin))
}

func TestHybridPlaceAtPeak(t *testing.T) {
	right := func() bool { return true }
	left := func() bool { return false }
	h := Hybrid{Landscape: landscape.Hybrid{LLeft: 3, LRight: 3}}

	assert.Equal(t, 5, h.place(3, 0, 2, right))
	assert.Equal(t, 1, h.place(3, 0, 2, left))

	// Beneficial mutations at the peak have no effect.
	assert.Equal(t, 3, h.place(3, 4, 0, right))
	assert.Equal(t, 3, h.place(3, 2, 2, left))
	assert.Equal(t, 4, h.place(3, 1, 2, right))

	// Oversized displacement stops at the landscape edge.
	assert.Equal(t, 6, h.place(3, 0, 11, right))
	assert.Equal(t, 0, h.place(3, 0, 11, left))
}

func TestStepConservesPopulation(t *testing.T) {
	const n = 250
	rng := testRand(7)

	simple := landscape.Simple{S: 0.1, Eps: 0, L: 5}
	counts := make([]int, simple.Bins())
	counts[0] = n
	fit := simple.Fitness()
	step := Simple{L: simple.L, UBen: 0.05, UDel: 0.4}
	for g := 0; g < 30; g++ {
		next, err := step.Step(rng, n, counts, fit)
		require.NoError(t, err)
		require.Equalf(t, n, sum(next), "generation %d must conserve the population", g)
		counts = next
	}

	adj := landscape.Adjacent{SLeft: 0.1, SRight: 0.1, EpsLeft: 0.1, EpsRight: -0.1, LLeft: 4, LRight: 4}
	counts = make([]int, adj.Bins())
	counts[2] = n
	fit = adj.Fitness()
	adjStep := Adjacent{Landscape: adj, UBen: 0.1, UDel: 0.3}
	for g := 0; g < 30; g++ {
		next, err := adjStep.Step(rng, n, counts, fit)
		require.NoError(t, err)
		require.Equal(t, n, sum(next))
		counts = next
	}

	hyb := landscape.Hybrid{SLeft: 0.1, SRight: 0.1, EpsLeft: 0.1, EpsRight: -0.1, LLeft: 4, LRight: 4}
	counts = make([]int, hyb.Bins())
	counts[4] = n
	fit = hyb.Fitness()
	hybStep := Hybrid{Landscape: hyb, UBen: 0.1, UDel: 0.3, PRight: 0.5}
	for g := 0; g < 30; g++ {
		next, err := hybStep.Step(rng, n, counts, fit)
		require.NoError(t, err)
		require.Equal(t, n, sum(next))
		counts = next
	}
}

func TestStepZeroRatesFixpoint(t *testing.T) {
	// With all mass in one bin and both rates zero, every newborn resamples
	// the same bin and nothing moves.
	const n = 100

	simple := landscape.Simple{S: 0.1, Eps: 0, L: 5}
	counts := make([]int, simple.Bins())
	counts[2] = n
	next, err := Simple{L: simple.L}.Step(testRand(1), n, counts, simple.Fitness())
	require.NoError(t, err)
	assert.Equal(t, counts, next)

	adj := landscape.Adjacent{SLeft: 0.1, SRight: 0.2, LLeft: 2, LRight: 2}
	counts = make([]int, adj.Bins())
	counts[4] = n
	next, err = Adjacent{Landscape: adj}.Step(testRand(2), n, counts, adj.Fitness())
	require.NoError(t, err)
	assert.Equal(t, counts, next)

	hyb := landscape.Hybrid{SLeft: 0.1, SRight: 0.2, LLeft: 3, LRight: 3}
	counts = make([]int, hyb.Bins())
	counts[3] = n
	next, err = Hybrid{Landscape: hyb, PRight: 0.5}.Step(testRand(3), n, counts, hyb.Fitness())
	require.NoError(t, err)
	assert.Equal(t, counts, next)
}

func TestStepZeroFitnessMass(t *testing.T) {
	simple := landscape.Simple{S: 0.1, Eps: 0, L: 3}
	counts := make([]int, simple.Bins())
	_, err := Simple{L: simple.L}.Step(testRand(4), 10, counts, simple.Fitness())
	require.ErrorIs(t, err, ErrZeroFitnessMass)

	// Mass concentrated in a zero-fitness bin counts as extinct too.
	counts[0] = 10
	_, err = Simple{L: simple.L}.Step(testRand(5), 10, counts, []float64{0, 1, 1, 1})
	require.ErrorIs(t, err, ErrZeroFitnessMass)
}
