package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/driver"
	"github.com/stakegraph/stakegraph/pkg/server/dto"
	"github.com/stakegraph/stakegraph/pkg/types"
)

func respondResult(c *gin.Context, result *stakegraph.ToolResult) {
	c.JSON(http.StatusOK, dto.ToolResponse{
		Digest:  result.Digest,
		Payload: result.Payload,
	})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's fault, rate limiting relays the backend's
// retry hints, and any other upstream failure is a bad gateway.
func respondError(c *gin.Context, err error) {
	var rateLimit *driver.RateLimitError
	if errors.As(err, &rateLimit) {
		if rateLimit.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(rateLimit.RetryAfter.Seconds())))
		}
		c.JSON(http.StatusTooManyRequests, dto.RateLimitedResponse{
			Error:      "rate_limited",
			Message:    rateLimit.Error(),
			RetryAfter: rateLimit.RetryAfter.String(),
			Remaining:  rateLimit.Remaining,
		})
		return
	}

	if isValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	c.JSON(http.StatusBadGateway, dto.ErrorResponse{
		Error:   "upstream_failure",
		Message: err.Error(),
		Code:    http.StatusBadGateway,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, types.ErrEmptyID) ||
		errors.Is(err, types.ErrEmptyAccountID) ||
		errors.Is(err, types.ErrEmptyQuery) ||
		errors.Is(err, types.ErrInvalidLimit)
}
