package driver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakegraph/stakegraph/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GraphQLClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGraphQLClient(Config{
		Endpoint:          srv.URL,
		Timeout:           5 * time.Second,
		FollowPredicateID: "pred-follow",
	}, nil)
}

func TestAccountPositionsDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"positions": [
			{"id": "pos-1", "shares": "18446744073709551616",
			 "account": {"id": "0xabc", "label": "alice.eth"},
			 "term": {"id": "t-1", "atom": {"id": "a-1", "label": "Ethereum"},
			          "vaults": [{"term_id": "t-1", "position_count": 4, "total_shares": "900"}]}}
		]}}`))
	})

	got, err := c.AccountPositions(context.Background(), "0xabc", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pos-1", got[0].ID)
	assert.Equal(t, "18446744073709551616", got[0].Shares)
	assert.Equal(t, "alice.eth", got[0].Account.Label)
	assert.Equal(t, "Ethereum", got[0].Term.Atom.Label)
	assert.Equal(t, 4, got[0].Term.PrimaryVault().PositionCount)
}

func TestAccountPositionsRepairsMalformedEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Trailing comma: invalid JSON, but repairable.
		_, _ = w.Write([]byte(`{"data": {"positions": [{"id": "pos-1", "shares": "5",}]}}`))
	})

	got, err := c.AccountPositions(context.Background(), "0xabc", nil)
	require.NoError(t, err, "repairable envelope must not fail the operation")
	require.Len(t, got, 1)
	assert.Equal(t, "5", got[0].Shares)
}

func TestRateLimitSurfacesHints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.SearchPositions(context.Background(), "ethereum", 10)
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "search_positions", upstream.Op)
	assert.Equal(t, PhaseRequest, upstream.Phase)
	assert.Equal(t, "ethereum", upstream.Args["query"])

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 17*time.Second, rl.RetryAfter)
	assert.Equal(t, 0, rl.Remaining)
	assert.True(t, errors.Is(err, &RateLimitError{}))
}

func TestBackendRejectionTagsOperation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors": [{"message": "permission denied"}]}`))
	})

	_, err := c.AccountMetadata(context.Background(), "0xabc")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "account_metadata", upstream.Op)
	assert.Equal(t, "0xabc", upstream.Args["account_id"])
	assert.Contains(t, err.Error(), "account_metadata")
}

func TestAccountMetadataEmptyEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"account": null}}`))
	})

	_, err := c.AccountMetadata(context.Background(), "0xmissing")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, PhaseEnvelope, upstream.Phase)
	assert.True(t, errors.Is(err, ErrEmptyEnvelope))
}

func TestBreakerClientFailsFastWhenOpen(t *testing.T) {
	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	breaker := NewBreakerClient(failing, config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         60,
		Timeout:          60,
		ReadyToTripRatio: 0.5,
	}, &countingAlerter{}, "graph-backend", nil)

	for i := 0; i < 3; i++ {
		_, err := breaker.AccountPositions(context.Background(), "0xabc", nil)
		require.Error(t, err)
	}

	start := time.Now()
	_, err := breaker.AccountPositions(context.Background(), "0xabc", nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "open breaker must fail fast")
}

type countingAlerter struct{ calls int }

func (a *countingAlerter) Alert(subject, message string) error {
	a.calls++
	return nil
}
