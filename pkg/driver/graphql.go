package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/machinebox/graphql"

	"github.com/stakegraph/stakegraph/pkg/types"
)

// Default client settings
const (
	DefaultTimeout     = 30 * time.Second
	DefaultSearchLimit = 50
)

// Config holds settings for the GraphQL client.
type Config struct {
	// Endpoint is the backend's GraphQL URL.
	Endpoint string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// Timeout bounds one request. Zero means DefaultTimeout.
	Timeout time.Duration
	// FollowPredicateID is the term id of the follow predicate used to
	// enumerate follower/following triples.
	FollowPredicateID string
}

// GraphQLClient implements Client against the backend's GraphQL API.
type GraphQLClient struct {
	cfg    Config
	gql    *graphql.Client
	logger *slog.Logger
}

var _ Client = (*GraphQLClient)(nil)

// NewGraphQLClient creates a fetch client for the given backend.
func NewGraphQLClient(cfg Config, logger *slog.Logger) *GraphQLClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	hc := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &envelopeTransport{next: http.DefaultTransport},
	}

	return &GraphQLClient{
		cfg:    cfg,
		gql:    graphql.NewClient(cfg.Endpoint, graphql.WithHTTPClient(hc)),
		logger: logger,
	}
}

// AccountMetadata implements Client.
func (c *GraphQLClient) AccountMetadata(ctx context.Context, accountID string) (*types.Account, error) {
	req := graphql.NewRequest(accountMetadataQuery)
	req.Var("accountId", accountID)

	var resp struct {
		Account *types.Account `json:"account"`
	}
	args := map[string]any{"account_id": accountID}
	if err := c.run(ctx, "account_metadata", req, &resp, args); err != nil {
		return nil, err
	}
	if resp.Account == nil {
		return nil, &UpstreamError{Op: "account_metadata", Phase: PhaseEnvelope, Args: args, Err: ErrEmptyEnvelope}
	}
	return resp.Account, nil
}

// AccountPositions implements Client.
func (c *GraphQLClient) AccountPositions(ctx context.Context, accountID string, filter *PositionFilter) ([]types.Position, error) {
	var req *graphql.Request
	args := map[string]any{"account_id": accountID}

	if filter != nil && filter.PredicateID != "" {
		req = graphql.NewRequest(accountPositionsByPredicateQuery)
		req.Var("predicateId", filter.PredicateID)
		args["predicate_id"] = filter.PredicateID
	} else {
		req = graphql.NewRequest(accountPositionsQuery)
	}
	req.Var("accountId", accountID)

	var resp struct {
		Positions []types.Position `json:"positions"`
	}
	if err := c.run(ctx, "account_positions", req, &resp, args); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// SearchPositions implements Client.
func (c *GraphQLClient) SearchPositions(ctx context.Context, query string, limit int) ([]types.Position, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	req := graphql.NewRequest(searchPositionsQuery)
	req.Var("query", "%"+query+"%")
	req.Var("limit", limit)

	var resp struct {
		Positions []types.Position `json:"positions"`
	}
	args := map[string]any{"query": query, "limit": limit}
	if err := c.run(ctx, "search_positions", req, &resp, args); err != nil {
		return nil, err
	}
	return resp.Positions, nil
}

// FollowTriples implements Client.
func (c *GraphQLClient) FollowTriples(ctx context.Context, accountID string, direction FollowDirection) ([]types.Triple, error) {
	doc := followTriplesQuery
	if direction == FollowDirectionFollowers {
		doc = followerTriplesQuery
	}

	req := graphql.NewRequest(doc)
	req.Var("accountId", accountID)
	req.Var("predicateId", c.cfg.FollowPredicateID)

	var resp struct {
		Triples []types.Triple `json:"triples"`
	}
	args := map[string]any{"account_id": accountID, "direction": string(direction)}
	if err := c.run(ctx, "follow_triples", req, &resp, args); err != nil {
		return nil, err
	}
	return resp.Triples, nil
}

// Close implements Client.
func (c *GraphQLClient) Close() error {
	return nil
}

func (c *GraphQLClient) run(ctx context.Context, op string, req *graphql.Request, out any, args map[string]any) error {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	err := c.gql.Run(ctx, req, out)
	if err == nil {
		return nil
	}

	phase := PhaseRequest
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		phase = PhaseDecode
	}

	c.logger.Error("upstream fetch failed", "operation", op, "phase", string(phase), "error", err)
	return &UpstreamError{Op: op, Phase: phase, Args: args, Err: err}
}

// envelopeTransport intercepts backend responses: a 429 becomes a
// RateLimitError carrying the backend's hints, and a syntactically
// broken JSON envelope gets one repair attempt before decoding.
type envelopeTransport struct {
	next http.RoundTripper
}

func (t *envelopeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, rateLimitFromResponse(resp)
	}

	if resp.StatusCode == http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		if !json.Valid(body) {
			if repaired, repErr := jsonrepair.JSONRepair(string(body)); repErr == nil {
				body = []byte(repaired)
			}
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		resp.ContentLength = int64(len(body))
	}

	return resp, nil
}

func rateLimitFromResponse(resp *http.Response) *RateLimitError {
	rl := NewRateLimitError()

	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			rl.RetryAfter = time.Duration(secs) * time.Second
		}
	}
	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Remaining = n
		}
	}
	return rl
}
