// Package ratchet is the public facade over the Wright-Fisher simulation
// drivers and the run store: it validates and defaults run requests, executes
// runs, persists their statistics, and answers queries about past runs.
package ratchet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ratchet/internal/landscape"
	"ratchet/internal/model"
	"ratchet/internal/sim"
	"ratchet/internal/stats"
	"ratchet/internal/storage"
)

const defaultDBPath = "ratchet.db"

// Series names under which run statistics are persisted.
const (
	SeriesCounts       = "counts"
	SeriesFitness      = "fitness"
	SeriesCountsLeft   = "counts_left"
	SeriesFitnessLeft  = "fitness_left"
	SeriesCountsRight  = "counts_right"
	SeriesFitnessRight = "fitness_right"
)

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

// RunRequest describes one simulation run. Shape selects the landscape
// topology; the right-hand coefficients and SizeRight only apply to the
// two-part shapes, and PRight only to the hybrid shape.
type RunRequest struct {
	RunID           string
	Shape           string
	SLeft           float64
	SRight          float64
	EpsLeft         float64
	EpsRight        float64
	SizeLeft        int
	SizeRight       int
	Population      int
	Generations     int
	BeneficialRate  float64
	DeleteriousRate float64
	PRight          float64
	Seed            uint64
}

type RunSummary struct {
	RunID            string
	Shape            string
	Generations      int
	FinalCountMean   float64
	FinalCountVar    float64
	FinalFitnessMean float64
	FinalFitnessVar  float64
}

type RunItem struct {
	RunID           string
	CreatedAtUTC    string
	Shape           string
	Seed            uint64
	Population      int
	Generations     int
	BeneficialRate  float64
	DeleteriousRate float64
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Reset(ctx context.Context) error {
	return c.store.Reset(ctx)
}

// Run executes one simulation and persists its record, statistics series,
// and (two-part shapes) raw per-generation counts.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Shape == "" {
		req.Shape = landscape.ShapeSimple
	}
	if req.Population == 0 {
		req.Population = 100
	}
	if req.Generations == 0 {
		req.Generations = 100
	}
	if req.SizeLeft == 0 {
		req.SizeLeft = 5
	}
	if req.SizeRight == 0 {
		req.SizeRight = 5
	}
	if req.PRight == 0 {
		req.PRight = 0.5
	}

	cfg := sim.Config{
		Population:      req.Population,
		Generations:     req.Generations,
		BeneficialRate:  req.BeneficialRate,
		DeleteriousRate: req.DeleteriousRate,
		Seed:            req.Seed,
	}

	var (
		res sim.Result
		err error
	)
	switch req.Shape {
	case landscape.ShapeSimple:
		res, err = sim.RunSimple(cfg, landscape.Simple{S: req.SLeft, Eps: req.EpsLeft, L: req.SizeLeft})
	case landscape.ShapeAdjacent:
		res, err = sim.RunAdjacent(cfg, landscape.Adjacent{
			SLeft: req.SLeft, SRight: req.SRight,
			EpsLeft: req.EpsLeft, EpsRight: req.EpsRight,
			LLeft: req.SizeLeft, LRight: req.SizeRight,
		})
	case landscape.ShapeHybrid:
		res, err = sim.RunHybrid(cfg, landscape.Hybrid{
			SLeft: req.SLeft, SRight: req.SRight,
			EpsLeft: req.EpsLeft, EpsRight: req.EpsRight,
			LLeft: req.SizeLeft, LRight: req.SizeRight,
		}, req.PRight)
	default:
		return RunSummary{}, fmt.Errorf("unknown landscape shape: %s", req.Shape)
	}
	if err != nil {
		return RunSummary{}, err
	}

	now := time.Now().UTC()
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("%s-%d-%d", req.Shape, req.Seed, now.Unix())
	}

	record := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:              runID,
		CreatedAtUTC:    now.Format(time.RFC3339),
		Shape:           req.Shape,
		Seed:            req.Seed,
		Population:      req.Population,
		Generations:     req.Generations,
		BeneficialRate:  req.BeneficialRate,
		DeleteriousRate: req.DeleteriousRate,
		Landscape: model.LandscapeParams{
			SLeft: req.SLeft, SRight: req.SRight,
			EpsLeft: req.EpsLeft, EpsRight: req.EpsRight,
			SizeLeft: req.SizeLeft, SizeRight: req.SizeRight,
			PRight: req.PRight,
		},
	}
	if err := c.store.SaveRun(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.saveSeries(ctx, runID, SeriesCounts, SeriesFitness, res.Pooled); err != nil {
		return RunSummary{}, err
	}
	if len(res.Left.Counts) > 0 {
		if err := c.saveSeries(ctx, runID, SeriesCountsLeft, SeriesFitnessLeft, res.Left); err != nil {
			return RunSummary{}, err
		}
		if err := c.saveSeries(ctx, runID, SeriesCountsRight, SeriesFitnessRight, res.Right); err != nil {
			return RunSummary{}, err
		}
	}
	if len(res.Raw) > 0 {
		if err := c.store.SaveRawCounts(ctx, runID, res.Raw); err != nil {
			return RunSummary{}, err
		}
	}

	summary := RunSummary{RunID: runID, Shape: req.Shape, Generations: req.Generations}
	if n := len(res.Pooled.Counts); n > 0 {
		summary.FinalCountMean = res.Pooled.Counts[n-1].Mean
		summary.FinalCountVar = res.Pooled.Counts[n-1].Variance
		summary.FinalFitnessMean = res.Pooled.Fitness[n-1].Mean
		summary.FinalFitnessVar = res.Pooled.Fitness[n-1].Variance
	}
	return summary, nil
}

func (c *Client) saveSeries(ctx context.Context, runID, countsName, fitnessName string, pair sim.SeriesPair) error {
	if err := c.store.SaveSeries(ctx, runID, countsName, toPoints(pair.Counts)); err != nil {
		return err
	}
	return c.store.SaveSeries(ctx, runID, fitnessName, toPoints(pair.Fitness))
}

func toPoints(summaries []stats.Summary) []model.SeriesPoint {
	points := make([]model.SeriesPoint, len(summaries))
	for i, s := range summaries {
		points[i] = model.SeriesPoint{Mean: s.Mean, Variance: s.Variance}
	}
	return points
}

// Runs lists persisted runs, most recent first.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	records, err := c.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]RunItem, 0, len(records))
	for _, r := range records {
		items = append(items, RunItem{
			RunID:           r.ID,
			CreatedAtUTC:    r.CreatedAtUTC,
			Shape:           r.Shape,
			Seed:            r.Seed,
			Population:      r.Population,
			Generations:     r.Generations,
			BeneficialRate:  r.BeneficialRate,
			DeleteriousRate: r.DeleteriousRate,
		})
	}
	return items, nil
}

// Series returns one named statistics series for a run. An empty runID with
// latest set resolves to the most recent run.
func (c *Client) Series(ctx context.Context, runID, name string, latest bool) ([]model.SeriesPoint, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return nil, err
	}
	points, ok, err := c.store.GetSeries(ctx, runID, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("series %q not found for run %s", name, runID)
	}
	return points, nil
}

// SeriesNames lists the series persisted for a run.
func (c *Client) SeriesNames(ctx context.Context, runID string, latest bool) ([]string, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return nil, err
	}
	return c.store.ListSeriesNames(ctx, runID)
}

// RawCounts returns a run's per-generation bin-count rows, starting with the
// initial state.
func (c *Client) RawCounts(ctx context.Context, runID string, latest bool) ([][]int, error) {
	runID, err := c.resolveRunID(ctx, runID, latest)
	if err != nil {
		return nil, err
	}
	generations, ok, err := c.store.GetRawCounts(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("raw counts not found for run %s", runID)
	}
	return generations, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" {
		return runID, nil
	}
	if !latest {
		return "", errors.New("run id is required")
	}
	runs, err := c.store.ListRuns(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", errors.New("no runs found")
	}
	return runs[0].ID, nil
}
