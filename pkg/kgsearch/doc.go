// Package kgsearch is a client for the Google Knowledge Graph Search API.
//
// The API is a single GET endpoint returning schema.org EntitySearchResult
// items for a free-text query. The client parses each item into an Entity
// while keeping the raw JSON for display, applies an optional client-side
// rate limit, and maps non-2xx responses to a typed *APIError.
//
// A BreakerClient wrapper adds circuit breaking for callers that hit the
// API in a serving path.
package kgsearch
