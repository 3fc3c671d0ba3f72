// Package driver provides the data-fetch client for the stakegraph
// backend.
//
// The backend exposes the knowledge graph over a hosted GraphQL API.
// This package defines the Client interface consumed by the rest of the
// repository and a GraphQL implementation of it, plus a circuit-breaker
// wrapper for deployments that want to shed load when the backend
// misbehaves.
//
// # Error Taxonomy
//
// Every failed fetch surfaces as an *UpstreamError naming the operation,
// its input arguments, and the phase that failed (request, decode,
// envelope). Rate limiting is a specialization: the wrapped cause is a
// *RateLimitError carrying the backend's retry-after and remaining-quota
// hints. Nothing in this package retries; transient failures are the
// caller's to relay.
//
// # Envelope Recovery
//
// A syntactically invalid JSON envelope gets one repair attempt before
// the request is failed. Semantically missing fields are not an error
// here at all; the processing pipeline degrades them to fallback
// strings.
package driver
