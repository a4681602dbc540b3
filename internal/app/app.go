package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"

	"LeadersScraper/internal/config"
	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/infrastructure/api"
	"LeadersScraper/internal/infrastructure/export"
	"LeadersScraper/internal/infrastructure/storage"
	"LeadersScraper/internal/infrastructure/wiki"
	"LeadersScraper/internal/logging"
	"LeadersScraper/internal/usecase"
)

// Application wires config to adapters and the scraping pipeline.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	cache    *storage.SQLiteCache
}

// New builds a runnable application instance. The sqlite biography cache is
// opened here when enabled; Run closes it.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	// Cookie handling goes through CredentialStore only; the default jar
	// would keep attaching stale cookies after an invalidation.
	apiClient := resty.New().
		SetBaseURL(cfg.API.BaseURL).
		SetTimeout(cfg.API.Timeout()).
		SetHeader("User-Agent", cfg.API.UserAgent).
		SetCookieJar(nil)

	creds := api.NewCredentialStore(apiClient, cfg.API.CookiePath,
		baseLogger.With("component", "credentials"))
	source := api.NewClient(apiClient, creds, api.ClientOptions{
		CountriesPath: cfg.API.CountriesPath,
		LeadersPath:   cfg.API.LeadersPath,
	}, baseLogger.With("component", "api"))

	wikiClient := resty.New().
		SetTimeout(cfg.Scraper.Timeout()).
		SetHeader("User-Agent", cfg.API.UserAgent)
	extractor := wiki.NewExtractor(wikiClient, baseLogger.With("component", "wiki"))

	deps := usecase.PipelineDeps{
		Source:          source,
		Extractor:       extractor,
		Logger:          baseLogger.With("component", "pipeline"),
		Workers:         cfg.Scraper.Workers,
		LimitPerCountry: cfg.Scraper.LimitPerCountry,
	}

	var cache *storage.SQLiteCache
	if cfg.Cache.Enabled {
		opened, err := storage.Open(ctx, cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("open biography cache: %w", err)
		}
		cache = opened
		deps.Cache = opened
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: usecase.NewPipeline(deps),
		cache:    cache,
	}, nil
}

// Run executes the pipeline once and writes the configured outputs.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	dataset, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	switch a.cfg.Output.Format {
	case config.FormatJSON:
		return a.writeJSON(dataset)
	case config.FormatCSV:
		return a.writeCSV(dataset)
	case config.FormatBoth:
		if err := a.writeJSON(dataset); err != nil {
			return err
		}
		return a.writeCSV(dataset)
	default:
		return fmt.Errorf("unsupported output format %q", a.cfg.Output.Format)
	}
}

func (a *Application) writeJSON(dataset *domain.Dataset) error {
	path := a.cfg.Output.JSONPath()
	if err := (export.JSONWriter{}).Write(dataset, path); err != nil {
		return err
	}
	a.logger.Info("JSON export completed", "path", path, "leaders", dataset.Len())
	return nil
}

func (a *Application) writeCSV(dataset *domain.Dataset) error {
	path := a.cfg.Output.CSVPath()
	if err := (export.CSVWriter{}).Write(dataset, path); err != nil {
		return err
	}
	a.logger.Info("CSV export completed", "path", path, "leaders", dataset.Len())
	return nil
}

func (a *Application) close() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("closing biography cache", "error", err)
	}
}
