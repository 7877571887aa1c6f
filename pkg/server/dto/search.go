// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"errors"
	"strings"
)

// Limits mirroring the original tool's result slider.
const (
	DefaultLimit = 5
	MaxLimit     = 10
)

var (
	ErrEmptyQuery      = errors.New("query cannot be empty")
	ErrLimitOutOfRange = errors.New("limit must be between 1 and 10")
)

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

// Validate checks the request and applies the default limit.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrEmptyQuery
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit < 1 || r.Limit > MaxLimit {
		return ErrLimitOutOfRange
	}
	return nil
}

// ProfileOutcome reports what happened when deriving a profile URL for one
// identifier: status is "encoded", "format_mismatch", or "range_error".
type ProfileOutcome struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SearchResult is one entity in a SearchResponse.
type SearchResult struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	MID         string         `json:"mid,omitempty"`
	Website     string         `json:"website,omitempty"`
	Score       float64        `json:"score"`
	Profile     ProfileOutcome `json:"profile"`
}

// SearchResponse is the body returned by POST /api/v1/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// EncodeResponse is the body returned by GET /api/v1/encode.
type EncodeResponse struct {
	MID     string         `json:"mid"`
	Profile ProfileOutcome `json:"profile"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
