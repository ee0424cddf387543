package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"ratchet/internal/storage"
	ratchetapi "ratchet/pkg/ratchet"
)

const defaultDBPath = "ratchet.db"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "series":
		return runSeries(ctx, args[1:])
	case "counts":
		return runCounts(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func newClient(storeKind, dbPath string) (*ratchetapi.Client, error) {
	return ratchetapi.New(ratchetapi.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	shape := fs.String("shape", "simple", "landscape shape: simple|adjacent|hybrid")
	sLeft := fs.Float64("s", 0.1, "mutational effect (left landscape for two-part shapes)")
	sRight := fs.Float64("s-right", 0.1, "mutational effect on the right landscape")
	epsLeft := fs.Float64("eps", 0.0, "epistasis (left landscape for two-part shapes)")
	epsRight := fs.Float64("eps-right", 0.0, "epistasis on the right landscape")
	sizeLeft := fs.Int("size", 5, "landscape size (left size for two-part shapes)")
	sizeRight := fs.Int("size-right", 5, "right landscape size")
	population := fs.Int("pop", 100, "population size")
	generations := fs.Int("gens", 100, "generation count")
	uBen := fs.Float64("u-ben", 0.0, "beneficial mutation rate")
	uDel := fs.Float64("u-del", 0.1, "deleterious mutation rate")
	pRight := fs.Float64("p-right", 0.5, "probability a peak newborn descends right (hybrid)")
	seed := fs.Uint64("seed", 1, "rng seed")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	var req ratchetapi.RunRequest
	if *configPath != "" {
		loaded, err := loadRunRequestFromConfig(*configPath)
		if err != nil {
			return err
		}
		req = loaded
	} else {
		req = ratchetapi.RunRequest{
			RunID:           *runID,
			Shape:           *shape,
			SLeft:           *sLeft,
			SRight:          *sRight,
			EpsLeft:         *epsLeft,
			EpsRight:        *epsRight,
			SizeLeft:        *sizeLeft,
			SizeRight:       *sizeRight,
			Population:      *population,
			Generations:     *generations,
			BeneficialRate:  *uBen,
			DeleteriousRate: *uDel,
			PRight:          *pRight,
			Seed:            *seed,
		}
	}
	if *configPath != "" {
		// Explicit flags override the config file.
		overrideFromFlags(&req, setFlags, map[string]any{
			"run-id": *runID, "shape": *shape,
			"s": *sLeft, "s-right": *sRight,
			"eps": *epsLeft, "eps-right": *epsRight,
			"size": *sizeLeft, "size-right": *sizeRight,
			"pop": *population, "gens": *generations,
			"u-ben": *uBen, "u-del": *uDel,
			"p-right": *pRight, "seed": *seed,
		})
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run_id=%s shape=%s generations=%d\n", summary.RunID, summary.Shape, summary.Generations)
	fmt.Printf("final count mean=%.4f var=%.4f\n", summary.FinalCountMean, summary.FinalCountVar)
	fmt.Printf("final fitness mean=%.6f var=%.6f\n", summary.FinalFitnessMean, summary.FinalFitnessVar)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	items, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, item := range items {
		fmt.Printf("run_id=%s created=%s shape=%s seed=%d pop=%d gens=%d u_ben=%g u_del=%g\n",
			item.RunID, item.CreatedAtUTC, item.Shape, item.Seed,
			item.Population, item.Generations, item.BeneficialRate, item.DeleteriousRate)
	}
	return nil
}

func runSeries(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("series", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	name := fs.String("name", ratchetapi.SeriesCounts, "series name: counts|fitness|counts_left|fitness_left|counts_right|fitness_right")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit series as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("series requires --run-id or --latest")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	points, err := client.Series(ctx, *runID, *name, *latest)
	if err != nil {
		return err
	}
	if *limit > 0 && len(points) > *limit {
		points = points[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(points)
	}
	for i, p := range points {
		fmt.Printf("generation=%d mean=%.6f variance=%.6f\n", i+1, p.Mean, p.Variance)
	}
	return nil
}

func runCounts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("counts", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	limit := fs.Int("limit", 20, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit raw counts as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", defaultDBPath, "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("counts requires --run-id or --latest")
	}

	client, err := newClient(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	generations, err := client.RawCounts(ctx, *runID, *latest)
	if err != nil {
		return err
	}
	if *limit > 0 && len(generations) > *limit {
		generations = generations[:*limit]
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(generations)
	}
	for g, row := range generations {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strconv.Itoa(c)
		}
		fmt.Printf("generation=%d counts=[%s]\n", g, strings.Join(cells, " "))
	}
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: ratchetctl <init|reset|run|runs|series|counts> [flags]", msg)
}
