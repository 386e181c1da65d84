// Package omdb implements the catalog client port against the OMDb HTTP API.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/upstream"
	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
	"github.com/ewilliams-labs/reelvibe/internal/metrics"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 1 << 20
	opName       = "omdb"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each call, including any wait for the rate limiter.
	Timeout time.Duration
	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            zerolog.Logger
}

// Client is an HTTP client for the OMDb API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// compile-time interface assertion
var _ ports.CatalogClient = (*Client)(nil)

// NewClient constructs a new OMDb client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		timeout:    timeout,
		limiter:    limiter,
		logger:     opts.Logger.With().Str("adapter", opName).Logger(),
	}
}

// get performs one GET with the API key and params, decodes the body into
// out and applies the Response=="False" not-found rule.
func (c *Client) get(ctx context.Context, params url.Values, out envelope) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	err := c.doGet(ctx, params, out)
	metrics.ObserveUpstream(metrics.UpstreamCatalog, domain.OutcomeOf(err), started)
	return err
}

func (c *Client) doGet(ctx context.Context, params url.Values, out envelope) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return domain.UpstreamError(opName, err)
			}
			return domain.UpstreamTimeout(opName, err)
		}
	}

	reqURL, err := c.buildURL(params)
	if err != nil {
		return domain.UpstreamError(opName, fmt.Errorf("invalid base url: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.UpstreamError(opName, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	log := logging.Ctx(ctx, c.logger)
	log.Debug().Str("query", redact(params).Encode()).Msg("catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return upstream.Classify(ctx, opName, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return upstream.Classify(ctx, opName, fmt.Errorf("read body: %w", err))
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	decodeErr := json.Unmarshal(body, out)
	if decodeErr == nil && out.failed() {
		msg := out.message()
		if success || resp.StatusCode == http.StatusNotFound {
			log.Warn().Str("error", msg).Msg("catalog reported no match")
			return domain.NotFound(opName, msg)
		}
		return domain.UpstreamError(opName, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg))
	}
	if !success {
		return domain.UpstreamError(opName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return domain.UpstreamError(opName, fmt.Errorf("decode response: %w", decodeErr))
	}
	return nil
}

func (c *Client) buildURL(params url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	query := u.Query()
	query.Set("apikey", c.apiKey)
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func redact(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		if k == "apikey" {
			continue
		}
		out[k] = v
	}
	return out
}
