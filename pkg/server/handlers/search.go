package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/serplens/kgprofile"
	"github.com/serplens/kgprofile/pkg/kgsearch"
	"github.com/serplens/kgprofile/pkg/mid"
	"github.com/serplens/kgprofile/pkg/server/dto"
)

// SearchHandler handles entity search and profile derivation requests.
type SearchHandler struct {
	finder kgprofile.Finder
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(finder kgprofile.Finder) *SearchHandler {
	return &SearchHandler{finder: finder}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	candidates, err := h.finder.Find(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		status := http.StatusBadGateway
		code := "search_failed"

		var apiErr *kgsearch.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
			status = http.StatusForbidden
			code = "api_key_rejected"
		}
		writeError(c, status, code, err.Error())
		return
	}

	results := make([]dto.SearchResult, 0, len(candidates))
	for _, cand := range candidates {
		results = append(results, dto.SearchResult{
			Name:        cand.Entity.Name,
			Description: cand.Entity.Description,
			MID:         cand.Entity.ID,
			Website:     cand.Entity.URL,
			Score:       cand.Entity.Score,
			Profile:     profileOutcome(cand.Profile),
		})
	}

	c.JSON(http.StatusOK, dto.SearchResponse{
		Query:   req.Query,
		Count:   len(results),
		Results: results,
	})
}

// Encode handles GET /api/v1/encode?mid=kg:/m/0k8z
func (h *SearchHandler) Encode(c *gin.Context) {
	rawMID := c.Query("mid")
	if rawMID == "" {
		writeError(c, http.StatusBadRequest, "invalid_request", "mid query parameter is required")
		return
	}

	c.JSON(http.StatusOK, dto.EncodeResponse{
		MID:     rawMID,
		Profile: profileOutcome(mid.Resolve(rawMID)),
	})
}

// profileOutcome converts a mid.Result into its wire representation.
func profileOutcome(res mid.Result) dto.ProfileOutcome {
	out := dto.ProfileOutcome{Status: res.Status.String()}
	switch res.Status {
	case mid.StatusEncoded:
		out.URL = res.URL
	case mid.StatusRangeError:
		out.Error = res.Err.Error()
	}
	return out
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Code: code, Message: message})
}
