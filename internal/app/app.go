package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/config"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/domain"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/geo"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/dedup"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/feed"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/llm"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/metrics"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/scheduler"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/storage"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/infrastructure/telegram"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/logging"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/ports"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/relevance"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/usecase"
	"github.com/Ejyke90/naija-conflict-tracker-sub000/internal/verify"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	sched    *usecase.Scheduler
	store    ports.DedupStore
	logger   *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := feed.NewRegistry()
	registry.Register(feed.NewRSSFetcher(nil))
	registry.Register(feed.NewHTMLFetcher(nil))

	source := feed.NewReader(
		registry,
		cfg.Feeds,
		time.Duration(cfg.Pipeline.FeedDelaySeconds)*time.Second,
		logging.Component(baseLogger, "feed"),
	)

	store := buildDedupStore(cfg.Dedup, baseLogger)

	gazetteer := loadGazetteer(cfg.Gazetteer, baseLogger)
	resolver := geo.NewResolver(gazetteer)
	filter := relevance.NewFilter(resolver.PlaceNames())

	extractor := llm.NewExtractionClient(cfg.Extractor, logging.Component(baseLogger, "extractor"))
	verifier := verify.NewStateMachine(verify.NewScorer(nil))

	var repository ports.EventRepository
	if cfg.Database.DSN != "" {
		if db, err := sql.Open("postgres", cfg.Database.DSN); err != nil {
			baseLogger.Warn("postgres unavailable, export disabled", "error", err)
		} else {
			repository = storage.NewPostgresRepository(db)
		}
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewRecorder(reg)
		go serveMetrics(cfg.Metrics.Addr, reg, baseLogger)
	}

	scoped := make(map[string]bool, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		scoped[f.Name] = f.Scoped()
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:              source,
		Store:               store,
		Filter:              filter,
		Extractor:           extractor,
		Geo:                 resolver,
		Verifier:            verifier,
		Repository:          repository,
		Notifier:            notifier,
		Metrics:             recorder,
		Artifacts:           usecase.NewArtifactWriter(cfg.Pipeline.OutputDir),
		Logger:              logging.Component(baseLogger, "pipeline"),
		LookBack:            time.Duration(cfg.Pipeline.LookBackHours) * time.Hour,
		ExportMinConfidence: cfg.Pipeline.ExportMinConfidence,
		ScopedSources:       scoped,
	})

	driver := scheduler.NewIntervalScheduler(time.Duration(cfg.Scheduler.IntervalHours) * time.Hour)

	return &Application{
		cfg:      cfg,
		pipeline: pipeline,
		sched:    usecase.NewScheduler(driver, pipeline),
		store:    store,
		logger:   baseLogger,
	}
}

// RunOnce performs a single pipeline execution and returns its report.
func (a *Application) RunOnce(ctx context.Context) domain.RunReport {
	return a.pipeline.Run(ctx)
}

// Start launches recurring runs on the configured interval.
func (a *Application) Start(ctx context.Context) error {
	return a.sched.Start(ctx)
}

// Stop tears down the scheduler and releases the dedup store.
func (a *Application) Stop(ctx context.Context) error {
	if err := a.sched.Stop(ctx); err != nil {
		return err
	}
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// buildDedupStore selects the configured backend. Backend failures degrade to
// the in-memory store: reprocessing is acceptable, crashing is not.
func buildDedupStore(cfg config.DedupConfig, logger *slog.Logger) ports.DedupStore {
	switch cfg.Backend {
	case "sqlite":
		store, err := dedup.OpenSQLiteStore(cfg.Path)
		if err != nil {
			logger.Warn("sqlite dedup store unavailable, using in-memory", "error", err)
			return dedup.NewMemoryStore()
		}
		return store
	case "redis":
		return dedup.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	default:
		return dedup.NewMemoryStore()
	}
}

func loadGazetteer(cfg config.GazetteerConfig, logger *slog.Logger) *geo.Gazetteer {
	if cfg.Path == "" {
		return geo.BuiltinGazetteer()
	}
	gazetteer, err := geo.LoadGazetteerFile(cfg.Path)
	if err != nil {
		logger.Warn("gazetteer extension unavailable, using built-in tables", "error", err)
		return geo.BuiltinGazetteer()
	}
	return gazetteer
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics endpoint stopped", "error", err)
	}
}
