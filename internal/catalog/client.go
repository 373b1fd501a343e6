package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is a read-only client for the university course catalog. It
// supplements review-derived professor names with the catalog's roster.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient creates a catalog client. A zero timeout inherits the parent
// context deadline.
func NewClient(httpClient HTTPDoer, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		logger:     logger,
	}
}

// ListKnownProfessors fetches the catalog's professor roster for a subject.
func (c *Client) ListKnownProfessors(ctx context.Context, subject domain.Subject) ([]domain.Professor, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	type rosterResponse struct {
		Professors []struct {
			Name string `json:"name"`
		} `json:"professors"`
	}

	endpoint := c.baseURL + "/api/catalog/subjects/" + url.PathEscape(string(subject)) + "/professors"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create roster request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var roster rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, fmt.Errorf("decode roster response: %w", err)
	}

	names := make([]string, len(roster.Professors))
	for i, p := range roster.Professors {
		names[i] = p.Name
	}

	c.logger.DebugContext(ctx, "catalog roster fetched",
		slog.String("subject", string(subject)),
		slog.Int("professors_count", len(names)),
	)

	return domain.DedupeProfessors(names), nil
}
