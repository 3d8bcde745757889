package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tsundoku-app/tsundoku-server/internal/config"
)

const defaultEndpoint = "https://app.rakuten.co.jp/services/api/BooksBook/Search/20170404"

// Searcher is the catalog lookup contract the services depend on.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Book, error)
}

// Client is a rate-limited Rakuten Books API client.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	appID       string
	endpoint    string
}

// NewClient creates a Rakuten Books client from catalog configuration.
func NewClient(cfg config.CatalogConfig, logger *slog.Logger) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 2),
		logger:      logger,
		appID:       cfg.ApplicationID,
		endpoint:    endpoint,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
