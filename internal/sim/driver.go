// Package sim owns the generation loop: it validates run configuration,
// seeds the initial population, advances the Wright-Fisher step for a fixed
// number of generations, and accumulates the summary statistics a run
// reports.
package sim

import (
	"fmt"
	"math/rand/v2"

	"ratchet/internal/landscape"
	"ratchet/internal/stats"
	"ratchet/internal/wright"
)

// Config carries the run parameters shared by every landscape shape.
type Config struct {
	Population      int
	Generations     int
	BeneficialRate  float64
	DeleteriousRate float64
	Seed            uint64
}

func (c Config) validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", c.Population)
	}
	if c.Generations < 0 {
		return fmt.Errorf("generation count must be >= 0, got %d", c.Generations)
	}
	if c.BeneficialRate < 0 {
		return fmt.Errorf("beneficial mutation rate must be >= 0, got %g", c.BeneficialRate)
	}
	if c.DeleteriousRate < 0 {
		return fmt.Errorf("deleterious mutation rate must be >= 0, got %g", c.DeleteriousRate)
	}
	return nil
}

// SeriesPair is a time series of bin-index and fitness summaries, one entry
// per generation.
type SeriesPair struct {
	Counts  []stats.Summary
	Fitness []stats.Summary
}

func (p *SeriesPair) record(s stats.GenerationSummary) {
	p.Counts = append(p.Counts, s.Counts)
	p.Fitness = append(p.Fitness, s.Fitness)
}

// Result is one run's recorded output. Left, Right, and Raw are only
// populated for the two-part landscape shapes; Raw starts with the initial
// count vector, so it holds Generations+1 rows.
type Result struct {
	Pooled SeriesPair
	Left   SeriesPair
	Right  SeriesPair
	Raw    [][]int
	Final  []int
}

// RunSimple simulates the simple landscape. The population starts
// mutation-free in bin 0.
func RunSimple(cfg Config, l landscape.Simple) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := l.Validate(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	fitness := l.Fitness()
	counts := make([]int, l.Bins())
	counts[0] = cfg.Population

	step := wright.Simple{L: l.L, UBen: cfg.BeneficialRate, UDel: cfg.DeleteriousRate}
	var res Result
	for g := 0; g < cfg.Generations; g++ {
		next, err := step.Step(rng, cfg.Population, counts, fitness)
		if err != nil {
			return Result{}, fmt.Errorf("generation %d: %w", g, err)
		}
		counts = next
		res.Pooled.record(stats.Summarize(counts, fitness, 0))
	}
	res.Final = counts
	return res, nil
}

// RunAdjacent simulates the valley topology. The population starts with all
// individuals in a uniformly random bin.
func RunAdjacent(cfg Config, l landscape.Adjacent) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := l.Validate(); err != nil {
		return Result{}, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	fitness := l.Fitness()
	counts := make([]int, l.Bins())
	counts[rng.IntN(l.Bins())] = cfg.Population

	step := wright.Adjacent{Landscape: l, UBen: cfg.BeneficialRate, UDel: cfg.DeleteriousRate}
	res := Result{Raw: [][]int{cloneCounts(counts)}}
	split := l.LLeft + 1
	for g := 0; g < cfg.Generations; g++ {
		next, err := step.Step(rng, cfg.Population, counts, fitness)
		if err != nil {
			return Result{}, fmt.Errorf("generation %d: %w", g, err)
		}
		counts = next
		res.Pooled.record(stats.Summarize(counts, fitness, 0))
		res.Left.record(stats.Summarize(counts[:split], fitness[:split], 0))
		res.Right.record(stats.Summarize(counts[split:], fitness[split:], split))
		res.Raw = append(res.Raw, cloneCounts(counts))
	}
	res.Final = counts
	return res, nil
}

// RunHybrid simulates the peak topology. The population starts on the peak;
// pRight is the probability a peak newborn descends into the right half. The
// peak bin itself is shared, so the left-half series excludes it while the
// right-half series starts one past it.
func RunHybrid(cfg Config, l landscape.Hybrid, pRight float64) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := l.Validate(); err != nil {
		return Result{}, err
	}
	if pRight < 0 || pRight > 1 {
		return Result{}, fmt.Errorf("right-path probability must be in [0, 1], got %g", pRight)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	fitness := l.Fitness()
	counts := make([]int, l.Bins())
	counts[l.LLeft] = cfg.Population

	step := wright.Hybrid{Landscape: l, UBen: cfg.BeneficialRate, UDel: cfg.DeleteriousRate, PRight: pRight}
	res := Result{Raw: [][]int{cloneCounts(counts)}}
	for g := 0; g < cfg.Generations; g++ {
		next, err := step.Step(rng, cfg.Population, counts, fitness)
		if err != nil {
			return Result{}, fmt.Errorf("generation %d: %w", g, err)
		}
		counts = next
		res.Pooled.record(stats.Summarize(counts, fitness, 0))
		res.Left.record(stats.Summarize(counts[:l.LLeft], fitness[:l.LLeft], 0))
		res.Right.record(stats.Summarize(counts[l.LLeft+1:], fitness[l.LLeft+1:], l.LLeft+1))
		res.Raw = append(res.Raw, cloneCounts(counts))
	}
	res.Final = counts
	return res, nil
}

func cloneCounts(counts []int) []int {
	return append([]int(nil), counts...)
}
