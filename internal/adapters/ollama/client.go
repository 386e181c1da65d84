// Package ollama provides a completion gateway backed by a local Ollama
// instance. Prompts are sent as a single user message to /api/chat and the
// assistant reply is returned verbatim.
package ollama

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/reelvibe/internal/adapters/upstream"
	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
	"github.com/ewilliams-labs/reelvibe/internal/core/ports"
	"github.com/ewilliams-labs/reelvibe/internal/logging"
	"github.com/ewilliams-labs/reelvibe/internal/metrics"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1"
	DefaultTimeout = 5 * time.Second

	opName = "ollama"
)

// Options configures a Client.
type Options struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      zerolog.Logger
}

type Client struct {
	baseURL     string
	model       string
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
	logger      zerolog.Logger
}

var _ ports.CompletionGateway = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:     baseURL,
		model:       model,
		temperature: opts.Temperature,
		timeout:     timeout,
		httpClient:  httpClient,
		logger:      opts.Logger.With().Str("adapter", opName).Str("model", model).Logger(),
	}
}

// Complete sends prompt as a user message and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := logging.Ctx(ctx, c.logger)
	started := time.Now()
	text, err := c.complete(ctx, prompt)
	metrics.ObserveUpstream(metrics.UpstreamCompletion, domain.OutcomeOf(err), started)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(started)).Msg("completion failed")
		return "", err
	}
	log.Debug().Int("chars", len(text)).Dur("elapsed", time.Since(started)).Msg("completion received")
	return text, nil
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:  c.model,
		Stream: false,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}
	if c.temperature > 0 {
		payload.Options = &chatOptions{Temperature: c.temperature}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", domain.UpstreamError(opName, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", domain.UpstreamError(opName, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", upstream.Classify(ctx, opName, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", upstream.StatusError(opName, resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", upstream.Classify(ctx, opName, fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != "" {
		return "", domain.UpstreamError(opName, fmt.Errorf("%s", parsed.Error))
	}
	if strings.TrimSpace(parsed.Message.Content) == "" {
		return "", domain.UpstreamError(opName, fmt.Errorf("empty response"))
	}

	return parsed.Message.Content, nil
}
