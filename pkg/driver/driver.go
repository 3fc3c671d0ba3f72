package driver

import (
	"context"

	"github.com/stakegraph/stakegraph/pkg/types"
)

// FollowDirection selects which side of follow triples to enumerate.
type FollowDirection string

const (
	// FollowDirectionFollowing lists accounts the subject follows.
	FollowDirectionFollowing FollowDirection = "following"
	// FollowDirectionFollowers lists accounts following the subject.
	FollowDirectionFollowers FollowDirection = "followers"
)

// PositionFilter narrows a position fetch to one secondary predicate.
// A nil filter fetches all of an account's positions.
type PositionFilter struct {
	PredicateID string
}

// Client fetches raw graph records. Implementations are stateless from
// the pipeline's point of view: every call returns a fresh,
// request-scoped snapshot that the caller owns exclusively.
type Client interface {
	// AccountMetadata resolves an account's id, label, and image.
	AccountMetadata(ctx context.Context, accountID string) (*types.Account, error)

	// AccountPositions returns the account's raw position records,
	// optionally narrowed by a predicate filter.
	AccountPositions(ctx context.Context, accountID string, filter *PositionFilter) ([]types.Position, error)

	// SearchPositions returns raw position records staked on terms
	// whose atoms match the query.
	SearchPositions(ctx context.Context, query string, limit int) ([]types.Position, error)

	// FollowTriples enumerates the account's follow relationships in
	// the given direction.
	FollowTriples(ctx context.Context, accountID string, direction FollowDirection) ([]types.Triple, error)

	// Close releases any transport resources.
	Close() error
}
