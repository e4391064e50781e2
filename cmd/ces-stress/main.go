package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/ces/ecs"
	"github.com/plus3/ces/internal/config"
	"github.com/plus3/ces/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaults := config.Default().Stress

	configPath := flag.String("config", "", "Optional .toml or .yaml config file. Flags given explicitly override it.")
	duration := flag.Duration("duration", defaults.Duration, "The total duration the test should run for.")
	entityCount := flag.Int("entities", defaults.Entities, "The initial number of entities to create per world.")
	worldCount := flag.Int("worlds", defaults.Worlds, "The number of independent worlds updated concurrently.")
	componentCount := flag.Int("components", defaults.Components, "The size of the generated component name pool.")
	churn := flag.Int("churn", defaults.ChurnPerUpdate, "The component mutations queued per update.")
	seed := flag.Int64("seed", defaults.Seed, "Random seed. 0 picks a time based seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", defaults.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			cfg.Stress.Duration = *duration
		case "entities":
			cfg.Stress.Entities = *entityCount
		case "worlds":
			cfg.Stress.Worlds = *worldCount
		case "components":
			cfg.Stress.Components = *componentCount
		case "churn":
			cfg.Stress.ChurnPerUpdate = *churn
		case "seed":
			cfg.Stress.Seed = *seed
		case "gc-pause-metrics":
			cfg.Stress.GCPauseMetrics = *gcPauseMetrics
		}
	})
	if cfg.Stress.Seed == 0 {
		cfg.Stress.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	runID := uuid.New()
	logger = logger.With(zap.String("run", runID.String()))
	logger.Info("starting CES stress test",
		zap.Duration("duration", cfg.Stress.Duration),
		zap.Int("worlds", cfg.Stress.Worlds),
		zap.Int("entities", cfg.Stress.Entities),
		zap.Int64("seed", cfg.Stress.Seed),
	)

	report := &Report{
		RunID:  runID.String(),
		Config: cfg.Stress,
		Worlds: make([]WorldResult, cfg.Stress.Worlds),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Stress.Duration)
	defer cancel()

	startTime := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg.Stress.Worlds {
		g.Go(func() error {
			result, err := runWorld(ctx, i, cfg.Stress, logger.With(zap.Int("world", i)))
			if err != nil {
				return fmt.Errorf("world %d: %w", i, err)
			}
			report.Worlds[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report.TotalTime = time.Since(startTime)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

// runWorld populates one world and updates it until ctx is done. Worlds
// share nothing, so each runs on its own goroutine.
func runWorld(ctx context.Context, index int, cfg config.StressConfig, logger *zap.Logger) (result WorldResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	rng := rand.New(rand.NewSource(cfg.Seed + int64(index)))
	pool := componentPool(cfg.Components)

	opts := []ecs.Option{ecs.WithLogger(logger)}
	if cfg.Canonical {
		opts = append(opts, ecs.WithCanonicalSignatures())
	}
	world := ecs.NewWorld(opts...)

	queries := make([]*querySystem, cfg.QuerySystems)
	for i := range queries {
		queries[i] = newQuerySystem(randomNames(rng, pool, rng.Intn(cfg.MaxQueryNames)+1))
		world.AddSystem(queries[i])
	}

	logger.Debug("populating world", zap.Int("entities", cfg.Entities))
	churn := &churnSystem{
		rng:       rng,
		pool:      pool,
		entities:  make([]*ecs.Entity, 0, cfg.Entities),
		perUpdate: cfg.ChurnPerUpdate,
	}
	for range cfg.Entities {
		e := newRandomEntity(rng, pool)
		world.AddEntity(e)
		churn.entities = append(churn.entities, e)
	}
	world.AddSystem(churn)

	result.Index = index
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			world.Update(deltaTime.Seconds())
			result.UpdateTime.Samples = append(result.UpdateTime.Samples, time.Since(updateStart))
			result.Updates++
		}
	}

	result.UpdateTime.Finalize()
	stats := world.CollectStats()
	result.Entities = stats.EntityCount
	result.Families = stats.FamilyCount
	for _, family := range stats.FamilyBreakdown {
		if family.EntityCount > 0 {
			result.NonEmptyFamilies++
		}
	}
	for _, q := range queries {
		result.FamilyAdded += q.added
		result.FamilyRemoved += q.removed
		result.Visited += q.visited
	}
	result.Mutations = churn.mutations
	result.Replacements = churn.replacements
	result.Systems = world.SystemStats().Systems

	logger.Debug("world finished",
		zap.Int64("updates", result.Updates),
		zap.Int("families", result.Families),
		zap.Int64("family_added", result.FamilyAdded),
		zap.Int64("family_removed", result.FamilyRemoved),
	)
	return result, nil
}
