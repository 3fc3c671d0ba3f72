package types

// contextKey is a private type for context values set at the request
// boundary and consumed by telemetry.
type contextKey string

// Context keys for request-scoped telemetry fields.
const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyOperation contextKey = "operation"
	ContextKeyAccountID contextKey = "account_id"
)
