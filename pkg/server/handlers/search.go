package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/server/dto"
)

// SearchHandler handles atom search requests
type SearchHandler struct {
	graph stakegraph.StakeGraph
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(g stakegraph.StakeGraph) *SearchHandler {
	return &SearchHandler{
		graph: g,
	}
}

// Search handles GET /api/v1/search?q=<query>&limit=<n>
func (h *SearchHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: "q parameter is required and cannot be empty",
			Code:    http.StatusBadRequest,
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "invalid_request",
				Message: "limit must be a positive integer",
				Code:    http.StatusBadRequest,
			})
			return
		}
		limit = parsed
	}

	result, err := h.graph.SearchAtoms(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, result)
}
