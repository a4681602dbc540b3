package ports

import (
	"context"
	"net/http"

	"LeadersScraper/internal/domain"
)

// CredentialSource hands out the current API cookie, refreshing it lazily.
// Invalidate drops the held value so the next Get fetches a fresh one.
type CredentialSource interface {
	Get(ctx context.Context) ([]*http.Cookie, error)
	Invalidate()
}

// LeaderSource pulls country codes and raw leader records from the API.
type LeaderSource interface {
	Countries(ctx context.Context) ([]string, error)
	Leaders(ctx context.Context, country string) ([]*domain.Record, error)
}

// BiographyExtractor fetches a Wikipedia article and returns the cleaned
// first introductory paragraph, or "" when no qualifying paragraph exists.
type BiographyExtractor interface {
	FirstParagraph(ctx context.Context, pageURL string) (string, error)
}

// BiographyCache short-circuits repeated article fetches across runs.
type BiographyCache interface {
	Lookup(ctx context.Context, pageURL string) (string, bool, error)
	Store(ctx context.Context, pageURL, summary string) error
}

// DatasetWriter persists the aggregate dataset to one output file.
type DatasetWriter interface {
	Write(dataset *domain.Dataset, path string) error
}
