package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/ports"
)

var errNoCookie = errors.New("no cookie in response")

func errStatus(code int) error {
	return fmt.Errorf("unexpected status %d", code)
}

// ClientOptions carries the listing endpoint paths relative to the base URL.
type ClientOptions struct {
	CountriesPath string
	LeadersPath   string
}

// Client reads country and leader listings from the API using the current
// cookie credential. An authorization failure invalidates the credential and
// the call is retried exactly once with a fresh one.
type Client struct {
	http   *resty.Client
	creds  ports.CredentialSource
	opts   ClientOptions
	logger *slog.Logger
}

var _ ports.LeaderSource = (*Client)(nil)

// NewClient wires a resty client (base URL, timeout and user agent already
// configured) with the credential store.
func NewClient(client *resty.Client, creds ports.CredentialSource, opts ClientOptions, logger *slog.Logger) *Client {
	return &Client{http: client, creds: creds, opts: opts, logger: logger}
}

// Countries returns the ordered list of supported country identifiers.
func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var countries []string
	if err := c.getJSON(ctx, c.opts.CountriesPath, nil, "", &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

// Leaders returns the raw leader records for country, unmodified. The country
// value is passed through as-is; an unknown one surfaces as the upstream
// API's own error.
func (c *Client) Leaders(ctx context.Context, country string) ([]*domain.Record, error) {
	query := map[string]string{"country": country}
	var leaders []*domain.Record
	if err := c.getJSON(ctx, c.opts.LeadersPath, query, country, &leaders); err != nil {
		return nil, err
	}
	return leaders, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, country string, out any) error {
	res, err := c.do(ctx, path, query)
	if err != nil {
		return c.wrapErr(path, country, err)
	}

	if authFailure(res.StatusCode()) {
		c.debug("credential rejected, refreshing once", "path", path, "status", res.StatusCode())
		c.creds.Invalidate()
		res, err = c.do(ctx, path, query)
		if err != nil {
			return c.wrapErr(path, country, err)
		}
	}

	if res.StatusCode() != http.StatusOK {
		return &domain.FetchError{Endpoint: path, Country: country, Status: res.StatusCode()}
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return &domain.FetchError{
			Endpoint: path,
			Country:  country,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, query map[string]string) (*resty.Response, error) {
	cookies, err := c.creds.Get(ctx)
	if err != nil {
		return nil, err
	}

	req := c.http.R().SetContext(ctx).SetCookies(cookies)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	return req.Get(path)
}

// wrapErr keeps credential failures distinguishable: a refresh that fails
// after a retry is fatal for the whole run, not just one listing call.
func (c *Client) wrapErr(path, country string, err error) error {
	var credErr *domain.CredentialError
	if errors.As(err, &credErr) {
		return err
	}
	return &domain.FetchError{Endpoint: path, Country: country, Err: err}
}

func authFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
