package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/leaguebalance/config"
	"github.com/alejandrodnm/leaguebalance/internal/adapters/csvsource"
	"github.com/alejandrodnm/leaguebalance/internal/adapters/notify"
	"github.com/alejandrodnm/leaguebalance/internal/adapters/storage"
	"github.com/alejandrodnm/leaguebalance/internal/analysis"
	"github.com/alejandrodnm/leaguebalance/internal/batch"
	"github.com/alejandrodnm/leaguebalance/internal/domain"
	"github.com/alejandrodnm/leaguebalance/internal/ports"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	matchesPath := flag.String("matches", "", "path to matches CSV (required)")
	rankingsPath := flag.String("rankings", "", "path to rankings CSV (optional)")
	mode := flag.String("mode", "", "batch mode: seq|parallel|resume (overrides config)")
	table := flag.Bool("table", false, "print full summary table (default: compact 1-line)")
	dryRun := flag.Bool("dry-run", false, "skip sqlite persistence")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *mode != "" {
		cfg.Batch.Mode = *mode
	}
	setupLogger(cfg.Log)

	if *matchesPath == "" {
		slog.Error("missing required flag -matches")
		os.Exit(1)
	}

	slog.Info("leaguebalance starting",
		"config", *configPath,
		"matches", *matchesPath,
		"rankings", *rankingsPath,
		"mode", cfg.Batch.Mode,
		"simulations", cfg.Analysis.Simulations,
		"dry_run", *dryRun,
	)

	matches, rankings, err := loadInputs(*matchesPath, *rankingsPath)
	if err != nil {
		slog.Error("failed to load inputs", "err", err)
		os.Exit(1)
	}

	var store ports.ResultStore
	if !*dryRun {
		s, err := storage.NewSQLiteStore(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	notifier := notify.NewConsole(*table)
	analyzer := analysis.NewAnalyzer(engineConfig(cfg.Analysis), buildEstimator(cfg.Analysis, rankings))

	run := func(ctx context.Context, id string) (*domain.AnalysisResult, error) {
		return analyzer.AnalyzeSeason(ctx, id, matches)
	}
	runner := batch.NewRunner(run, store, notifier, cfg.Batch.Workers)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ids := seasonIDs(matches)
	slog.Info("analyzing seasons", "count", len(ids))

	var summary *batch.Summary
	switch cfg.Batch.Mode {
	case "parallel":
		summary, err = runner.Parallel(ctx, ids)
	case "resume":
		summary, err = runner.Resumable(ctx, ids, cfg.Batch.Checkpoint, cfg.CheckpointInterval())
	default:
		summary, err = runner.Sequential(ctx, ids)
	}
	if err != nil {
		slog.Error("batch aborted", "err", err)
		os.Exit(1)
	}

	if nerr := notifier.Summary(ctx, summary.Results, summary.Skipped); nerr != nil {
		slog.Warn("summary output failed", "err", nerr)
	}
	slog.Info("batch complete",
		"analyzed", len(summary.Results),
		"skipped", len(summary.Skipped),
	)
}

// loadInputs lee y valida las tablas de entrada. La de rankings es opcional:
// su ausencia o invalidez degrada a análisis sin fuerzas estáticas.
func loadInputs(matchesPath, rankingsPath string) ([]domain.Match, []domain.RankingRow, error) {
	matchTable, err := csvsource.ReadTable(matchesPath)
	if err != nil {
		return nil, nil, err
	}
	matches, _, err := analysis.CleanMatches(matchTable)
	if err != nil {
		return nil, nil, err
	}

	var rankings []domain.RankingRow
	if rankingsPath != "" {
		rankingTable, err := csvsource.ReadTable(rankingsPath)
		if err != nil {
			slog.Warn("rankings unavailable, continuing without them", "err", err)
			return matches, nil, nil
		}
		rankings, _, err = analysis.CleanRankings(rankingTable)
		if err != nil {
			slog.Warn("rankings invalid, continuing without them", "err", err)
			return matches, nil, nil
		}
	}
	return matches, rankings, nil
}

// buildEstimator selecciona la estrategia de fuerzas por configuración.
func buildEstimator(cfg config.AnalysisConfig, rankings []domain.RankingRow) ports.StrengthEstimator {
	switch cfg.StrengthMethod {
	case "static":
		return analysis.NewStaticEstimator(rankings, engineConfig(cfg))
	case "dynamic":
		return analysis.NewDynamicEstimator(engineConfig(cfg))
	default:
		return nil
	}
}

// engineConfig traduce la configuración YAML a la del motor.
func engineConfig(cfg config.AnalysisConfig) analysis.Config {
	out := analysis.DefaultConfig()
	out.Alpha = cfg.Alpha
	out.Simulations = cfg.Simulations
	out.HomeAdvantage = cfg.HomeAdvantage
	out.DominantFraction = cfg.DominantFraction
	out.DominantShare = cfg.DominantShare
	out.PersistenceMin = cfg.PersistenceMin
	out.PersistenceMinRanked = cfg.PersistenceMinRanked
	out.RankingBlend = cfg.RankingBlend
	return out
}

// seasonIDs devuelve los ids únicos en orden de primera aparición.
func seasonIDs(matches []domain.Match) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range matches {
		if !seen[m.SeasonID] {
			seen[m.SeasonID] = true
			ids = append(ids, m.SeasonID)
		}
	}
	return ids
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
