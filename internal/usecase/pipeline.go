package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source    ports.LeaderSource
	Extractor ports.BiographyExtractor
	Cache     ports.BiographyCache
	Logger    *slog.Logger

	// Workers bounds parallel biography extraction; values <= 1 run
	// sequentially.
	Workers int
	// LimitPerCountry caps leaders taken per country; 0 means no limit.
	LimitPerCountry int
}

// Pipeline implements the fetch-enrich-aggregate workflow: countries, then
// leaders per country, then one biography per leader, accumulated into a
// Dataset.
type Pipeline struct {
	source    ports.LeaderSource
	extractor ports.BiographyExtractor
	cache     ports.BiographyCache
	logger    *slog.Logger
	workers   int
	limit     int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:    deps.Source,
		extractor: deps.Extractor,
		cache:     deps.Cache,
		logger:    deps.Logger,
		workers:   deps.Workers,
		limit:     deps.LimitPerCountry,
	}
}

// Run executes the full scrape. A countries-listing failure or a mid-run
// credential failure is fatal; a single country's leaders failure is logged
// and the country skipped. The run fails if every country failed.
func (p *Pipeline) Run(ctx context.Context) (*domain.Dataset, error) {
	countries, err := p.source.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	p.debug("countries listed", "count", len(countries))

	dataset := domain.NewDataset()
	var degraded atomic.Int64
	failed := 0

	for _, country := range countries {
		leaders, err := p.source.Leaders(ctx, country)
		if err != nil {
			var credErr *domain.CredentialError
			if errors.As(err, &credErr) {
				return nil, err
			}
			p.error("skipping country", "country", country, "error", err)
			failed++
			continue
		}

		if p.limit > 0 && len(leaders) > p.limit {
			leaders = leaders[:p.limit]
		}

		p.enrich(ctx, country, leaders, dataset, &degraded)
		p.info("country enriched", "country", country, "leaders", len(leaders))
	}

	if len(countries) > 0 && failed == len(countries) {
		return nil, fmt.Errorf("all %d countries failed", failed)
	}
	if n := degraded.Load(); n > 0 {
		p.warn("biographies degraded to empty", "count", n)
	}

	p.logSample(ctx, dataset)
	return dataset, nil
}

func (p *Pipeline) enrich(ctx context.Context, country string, leaders []*domain.Record, dataset *domain.Dataset, degraded *atomic.Int64) {
	if p.workers <= 1 {
		for _, leader := range leaders {
			p.enrichOne(ctx, country, leader, dataset, degraded)
		}
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, leader := range leaders {
		g.Go(func() error {
			p.enrichOne(gctx, country, leader, dataset, degraded)
			return nil
		})
	}
	_ = g.Wait() // extraction failures degrade to empty summaries
}

// enrichOne pairs each record with its own biography; results join the
// dataset through the synchronized append, never positionally.
func (p *Pipeline) enrichOne(ctx context.Context, country string, leader *domain.Record, dataset *domain.Dataset, degraded *atomic.Int64) {
	summary := p.biography(ctx, leader, degraded)
	leader.Set(domain.SummaryField, summary)
	dataset.Append(country, leader)
}

func (p *Pipeline) biography(ctx context.Context, leader *domain.Record, degraded *atomic.Int64) string {
	raw := leader.GetString(domain.WikipediaURLField)
	if raw == "" {
		return ""
	}

	pageURL := decodeURL(raw)
	leader.Set(domain.WikipediaURLField, pageURL)

	if p.cache != nil {
		summary, ok, err := p.cache.Lookup(ctx, pageURL)
		if err != nil {
			p.warn("cache lookup failed", "url", pageURL, "error", err)
		} else if ok {
			p.debug("cache hit", "url", pageURL)
			return summary
		}
	}

	summary, err := p.extractor.FirstParagraph(ctx, pageURL)
	if err != nil {
		degraded.Add(1)
		p.warn("biography extraction failed", "url", pageURL, "error", err)
		return ""
	}

	if p.cache != nil {
		if err := p.cache.Store(ctx, pageURL, summary); err != nil {
			p.warn("cache store failed", "url", pageURL, "error", err)
		}
	}
	return summary
}

// decodeURL percent-decodes an article URL so non-Latin titles stay readable
// in exports. Undecodable input is passed through unchanged.
func decodeURL(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func (p *Pipeline) logSample(ctx context.Context, dataset *domain.Dataset) {
	if p.logger == nil || !p.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, country := range dataset.Countries() {
		for _, leader := range dataset.Leaders(country) {
			name := strings.TrimSpace(leader.GetString("first_name") + " " + leader.GetString("last_name"))
			if name == "" {
				name = "unknown"
			}
			p.logger.Debug("enriched leader",
				"country", country,
				"name", name,
				"summary", truncate(leader.GetString(domain.SummaryField), 150))
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
