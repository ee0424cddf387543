package storage

import (
	"context"
	"sort"
	"sync"

	"ratchet/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	runOrder    []string
	series      map[string]map[string][]model.SeriesPoint
	rawCounts   map[string][][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.runOrder = nil
	s.series = make(map[string]map[string][]model.SeriesPoint)
	s.rawCounts = make(map[string][][]int)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; !ok {
		s.runOrder = append(s.runOrder, run.ID)
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Most recent first.
	runs := make([]model.RunRecord, 0, len(s.runOrder))
	for i := len(s.runOrder) - 1; i >= 0; i-- {
		runs = append(runs, s.runs[s.runOrder[i]])
		if limit > 0 && len(runs) == limit {
			break
		}
	}
	return runs, nil
}

func (s *MemoryStore) SaveSeries(_ context.Context, runID, name string, points []model.SeriesPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName, ok := s.series[runID]
	if !ok {
		byName = make(map[string][]model.SeriesPoint)
		s.series[runID] = byName
	}
	byName[name] = append([]model.SeriesPoint(nil), points...)
	return nil
}

func (s *MemoryStore) GetSeries(_ context.Context, runID, name string) ([]model.SeriesPoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.series[runID][name]
	if !ok {
		return nil, false, nil
	}
	return append([]model.SeriesPoint(nil), points...), true, nil
}

func (s *MemoryStore) ListSeriesNames(_ context.Context, runID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.series[runID]))
	for name := range s.series[runID] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) SaveRawCounts(_ context.Context, runID string, generations [][]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([][]int, len(generations))
	for i, row := range generations {
		copied[i] = append([]int(nil), row...)
	}
	s.rawCounts[runID] = copied
	return nil
}

func (s *MemoryStore) GetRawCounts(_ context.Context, runID string) ([][]int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	generations, ok := s.rawCounts[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([][]int, len(generations))
	for i, row := range generations {
		copied[i] = append([]int(nil), row...)
	}
	return copied, true, nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}
