// Package client is a typed HTTP client for the prompt collection served at
// {BaseURL}/prompts. Every call is a fresh round trip: nothing is cached,
// retried or validated locally, and server failures are returned unchanged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dimitrije/prompthub/internal/models"
	"github.com/dimitrije/prompthub/pkg/dto"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 30 * time.Second

	promptsPath = "/prompts"
)

// Config is resolved once at startup and never re-read per call.
type Config struct {
	BaseURL string
	// HealthURL defaults to the base URL's origin plus /health.
	HealthURL string
	Timeout   time.Duration
}

type Client struct {
	baseURL    string
	healthURL  string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client. The client is
// shared by all calls and must be safe for concurrent use.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLogger installs a LoggingTransport around the underlying transport.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg Config, opts ...Option) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	healthURL := cfg.HealthURL
	if healthURL == "" {
		healthURL = deriveHealthURL(baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		healthURL:  healthURL,
		userAgent:  "prompthub-client",
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger != nil {
		wrapped := *c.httpClient
		wrapped.Transport = &LoggingTransport{
			Transport: c.httpClient.Transport,
			Logger:    c.logger,
		}
		c.httpClient = &wrapped
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) List(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &prompts); err != nil {
		return nil, err
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, nil
}

func (c *Client) GetByID(ctx context.Context, id int64) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (c *Client) Create(ctx context.Context, req dto.CreatePromptRequest) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), req, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (c *Client) Update(ctx context.Context, id int64, req dto.UpdatePromptRequest) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), req, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (c *Client) Remove(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	var resp dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var resp dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, c.healthURL, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + promptsPath
}

func (c *Client) itemURL(id int64) string {
	return c.baseURL + promptsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(req, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func deriveHealthURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return baseURL + "/health"
	}
	return u.Scheme + "://" + u.Host + "/health"
}
