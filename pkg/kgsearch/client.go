package kgsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Defaults matching the original tool's behavior.
const (
	DefaultBaseURL = "https://kgsearch.googleapis.com/v1/entities:search"
	DefaultTimeout = 10 * time.Second
	DefaultLimit   = 5
)

var (
	ErrMissingAPIKey = errors.New("kgsearch: API key is required")
	ErrEmptyQuery    = errors.New("kgsearch: query cannot be empty")
)

// APIError is a non-2xx response from the Knowledge Graph Search API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("kgsearch: API returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("kgsearch: API returned %d", e.StatusCode)
}

// Entity is one search result. Raw keeps the unparsed result object so
// callers can render the full JSON the way the API returned it.
type Entity struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Types       []string        `json:"types,omitempty"`
	Score       float64         `json:"score"`
	Raw         json.RawMessage `json:"-"`
}

// Response holds the parsed entities for one query.
type Response struct {
	Entities []Entity
}

// Searcher is the query surface of the client, extracted so callers can
// wrap it (circuit breaking) or stub it in tests.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (*Response, error)
}

// Config configures a Client. Zero values fall back to defaults; APIKey is
// the only required field.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// RatePerSecond caps outgoing requests; zero disables the limiter.
	RatePerSecond float64
	RateBurst     int

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client queries the Knowledge Graph Search API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    httpClient,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// wire types for the API response shape.
type searchResponse struct {
	ItemListElement []searchItem `json:"itemListElement"`
}

type searchItem struct {
	Result      json.RawMessage `json:"result"`
	ResultScore float64         `json:"resultScore"`
}

type searchResult struct {
	// @id stays raw so a missing or non-string identifier degrades to
	// an empty ID instead of failing the whole response.
	ID          json.RawMessage `json:"@id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Types       []string        `json:"@type"`
}

// Search runs one entity query. limit values below 1 fall back to
// DefaultLimit.
func (c *Client) Search(ctx context.Context, query string, limit int) (*Response, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("kgsearch: rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("indent", "true")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("kgsearch: create request: %w", err)
	}

	c.logger.Debug("querying knowledge graph", "query", query, "limit", limit)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kgsearch: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kgsearch: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var wire searchResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("kgsearch: decode response: %w", err)
	}

	entities := make([]Entity, 0, len(wire.ItemListElement))
	for _, item := range wire.ItemListElement {
		var result searchResult
		if err := json.Unmarshal(item.Result, &result); err != nil {
			c.logger.Warn("skipping unparseable search result", "error", err)
			continue
		}

		entities = append(entities, Entity{
			ID:          stringID(result.ID),
			Name:        result.Name,
			Description: result.Description,
			URL:         result.URL,
			Types:       result.Types,
			Score:       item.ResultScore,
			Raw:         item.Result,
		})
	}

	c.logger.Debug("knowledge graph query done", "query", query, "results", len(entities))

	return &Response{Entities: entities}, nil
}

// stringID unwraps a JSON @id value, yielding "" for anything that is not
// a string.
func stringID(raw json.RawMessage) string {
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}

// googleError is the error envelope Google APIs return on failure.
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var ge googleError
	if err := json.Unmarshal(body, &ge); err == nil {
		apiErr.Message = ge.Error.Message
		apiErr.Status = ge.Error.Status
	}
	return apiErr
}
