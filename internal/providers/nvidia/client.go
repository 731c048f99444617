package nvidia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"renderapi/internal/domain"
	"renderapi/internal/infra"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 120 * time.Second

// Options configures the NVIDIA GenAI client.
type Options struct {
	APIKey         string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client posts generation requests to NVIDIA-hosted image models.
type Client struct {
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     infra.Logger
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		timeout:    timeout,
		httpClient: httpClient,
		logger:     infra.LoggerOrNop(opts.Logger),
	}
}

// HasCredentials reports whether an API key was configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Generate sends prompt to ep and returns the raw body of a 200 response.
// Any other status yields a *domain.ProviderHTTPError carrying the body text.
func (c *Client) Generate(ctx context.Context, ep Endpoint, prompt string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("nvidia: client not configured")
	}
	payload, err := BuildPayload(ep.Kind, prompt)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("nvidia: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("nvidia: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("provider", ep.String()).Str("url", ep.URL).Msg("sending render request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nvidia: %s request: %w", ep, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nvidia: %s read response: %w", ep, err)
	}

	c.logger.Info().Str("provider", ep.String()).Int("status", resp.StatusCode).Msg("provider responded")

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.ProviderHTTPError{
			Provider:   ep.String(),
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
	}
	return raw, nil
}
