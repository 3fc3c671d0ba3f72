package dto

// ToolResponse is the transport envelope for one graph operation: the
// natural-language digest plus the full structured payload. Both views
// derive from the same ranked data.
type ToolResponse struct {
	Digest  string         `json:"digest"`
	Payload map[string]any `json:"payload"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// RateLimitedResponse carries the backend's retry guidance alongside
// the error so callers know when to try again.
type RateLimitedResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	RetryAfter string `json:"retry_after,omitempty"`
	Remaining  int    `json:"remaining_quota"`
}
