package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"

	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/ports"
)

// CredentialStore caches the API session cookie and refreshes it on demand.
// The API exposes no expiry timestamp, so expiry is detected reactively: a
// caller that sees an authorization failure calls Invalidate and the next Get
// fetches a fresh cookie. Refresh is serialized so concurrent callers cannot
// race to overwrite each other with different tokens.
type CredentialStore struct {
	http   *resty.Client
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	cookies []*http.Cookie
}

var _ ports.CredentialSource = (*CredentialStore)(nil)

// NewCredentialStore wires a resty client (base URL already set) with the
// cookie endpoint path.
func NewCredentialStore(client *resty.Client, cookiePath string, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{http: client, path: cookiePath, logger: logger}
}

// Get returns the held cookie, refreshing it from the endpoint when absent.
func (s *CredentialStore) Get(ctx context.Context) ([]*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cookies) > 0 {
		return s.cookies, nil
	}

	res, err := s.http.R().SetContext(ctx).Get(s.path)
	if err != nil {
		return nil, &domain.CredentialError{Endpoint: s.path, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &domain.CredentialError{
			Endpoint: s.path,
			Err:      errStatus(res.StatusCode()),
		}
	}

	cookies := res.Cookies()
	if len(cookies) == 0 {
		return nil, &domain.CredentialError{Endpoint: s.path, Err: errNoCookie}
	}

	s.cookies = cookies
	s.debug("credential refreshed", "cookies", len(cookies))
	return s.cookies, nil
}

// Invalidate drops the held cookie so the next Get performs a refresh.
func (s *CredentialStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cookies = nil
}

func (s *CredentialStore) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
