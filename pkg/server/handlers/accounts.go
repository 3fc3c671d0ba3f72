package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/stakegraph/stakegraph"
)

// AccountHandler handles account lookup and social enumeration requests
type AccountHandler struct {
	graph stakegraph.StakeGraph
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(g stakegraph.StakeGraph) *AccountHandler {
	return &AccountHandler{
		graph: g,
	}
}

// GetAccount handles GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	result, err := h.graph.GetAccountInfo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, result)
}

// GetFollowing handles GET /api/v1/accounts/:id/following
func (h *AccountHandler) GetFollowing(c *gin.Context) {
	result, err := h.graph.GetFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, result)
}

// GetFollowers handles GET /api/v1/accounts/:id/followers
func (h *AccountHandler) GetFollowers(c *gin.Context) {
	result, err := h.graph.GetFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondResult(c, result)
}
