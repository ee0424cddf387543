package storage

import (
	"context"

	"ratchet/internal/model"
)

// Store defines persistence operations for completed simulation runs: the run
// record itself, its named statistics series, and (for two-part landscapes)
// the raw per-generation bin counts.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveSeries(ctx context.Context, runID, name string, points []model.SeriesPoint) error
	GetSeries(ctx context.Context, runID, name string) ([]model.SeriesPoint, bool, error)
	ListSeriesNames(ctx context.Context, runID string) ([]string, error)
	SaveRawCounts(ctx context.Context, runID string, generations [][]int) error
	GetRawCounts(ctx context.Context, runID string) ([][]int, bool, error)
	Reset(ctx context.Context) error
}
