package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/serplens/kgprofile"
	"github.com/serplens/kgprofile/pkg/kgsearch"
	"github.com/serplens/kgprofile/pkg/mid"
	"github.com/serplens/kgprofile/pkg/server/dto"
	"github.com/serplens/kgprofile/pkg/server/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFinder implements kgprofile.Finder for handler tests.
type stubFinder struct {
	candidates []kgprofile.Candidate
	err        error
}

func (s *stubFinder) Find(ctx context.Context, query string, limit int) ([]kgprofile.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

func newRouter(finder kgprofile.Finder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := handlers.NewSearchHandler(finder)
	router.POST("/api/v1/search", h.Search)
	router.GET("/api/v1/encode", h.Encode)
	return router
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("returns per-result profile outcomes", func(t *testing.T) {
		finder := &stubFinder{candidates: []kgprofile.Candidate{
			{
				Entity:  kgsearch.Entity{ID: "kg:/m/0k8z", Name: "Topic", Score: 12.5},
				Profile: mid.Resolve("kg:/m/0k8z"),
			},
			{
				Entity:  kgsearch.Entity{ID: "kg:/x/unknown", Name: "Odd"},
				Profile: mid.Resolve("kg:/x/unknown"),
			},
		}}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
			strings.NewReader(`{"query": "topic", "limit": 2}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(finder).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.SearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.Equal(t, "topic", resp.Query)
		assert.Equal(t, 2, resp.Count)
		require.Len(t, resp.Results, 2)

		assert.Equal(t, "encoded", resp.Results[0].Profile.Status)
		assert.Equal(t, "https://profile.google.com/cp/CgcvbS8wazh6", resp.Results[0].Profile.URL)

		assert.Equal(t, "format_mismatch", resp.Results[1].Profile.Status)
		assert.Empty(t, resp.Results[1].Profile.URL)
	})

	t.Run("missing query rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&stubFinder{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limit above maximum rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
			strings.NewReader(`{"query": "topic", "limit": 50}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&stubFinder{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Code)
	})

	t.Run("rejected api key maps to 403", func(t *testing.T) {
		finder := &stubFinder{err: &kgsearch.APIError{
			StatusCode: http.StatusForbidden,
			Message:    "API key not valid",
		}}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
			strings.NewReader(`{"query": "topic"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(finder).ServeHTTP(w, req)

		require.Equal(t, http.StatusForbidden, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "api_key_rejected", resp.Code)
	})

	t.Run("transport error maps to 502", func(t *testing.T) {
		finder := &stubFinder{err: errors.New("connection refused")}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/search",
			strings.NewReader(`{"query": "topic"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(finder).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestEncodeEndpoint(t *testing.T) {
	t.Run("encodes a supported identifier", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/encode?mid=kg:/m/0k8z", nil)
		newRouter(&stubFinder{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.EncodeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "kg:/m/0k8z", resp.MID)
		assert.Equal(t, "encoded", resp.Profile.Status)
		assert.Equal(t, "https://profile.google.com/cp/CgcvbS8wazh6", resp.Profile.URL)
	})

	t.Run("oversized identifier reports range error", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/encode?mid=kg:/g/"+strings.Repeat("a", 300), nil)
		newRouter(&stubFinder{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.EncodeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "range_error", resp.Profile.Status)
		assert.Contains(t, resp.Profile.Error, "exceeds single-byte length prefix")
	})

	t.Run("missing mid parameter rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/encode", nil)
		newRouter(&stubFinder{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
