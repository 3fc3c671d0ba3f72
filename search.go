package stakegraph

import (
	"context"
	"fmt"

	"github.com/stakegraph/stakegraph/pkg/driver"
	"github.com/stakegraph/stakegraph/pkg/positions"
	"github.com/stakegraph/stakegraph/pkg/types"
)

// SearchAtoms finds positions staked on terms whose atoms match the
// query and ranks them. The limit caps how many raw records are
// fetched; zero or negative means the driver default.
func (c *Client) SearchAtoms(ctx context.Context, query string, limit int) (*ToolResult, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = driver.DefaultSearchLimit
	}
	ctx = context.WithValue(ctx, types.ContextKeyOperation, "search_atoms")

	raw, err := c.fetcher.SearchPositions(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	result := positions.Process(raw, "", c.shapeOptions(c.config.SearchTopK))

	c.logger.Debug("processed search positions",
		"query", query,
		"raw", len(raw),
		"ranked", result.Summary.Total)

	payload := result.Payload()
	payload["query"] = query

	digest := fmt.Sprintf("Search results for %q\n%s", query, result.Digest)
	return &ToolResult{Digest: digest, Payload: payload}, nil
}
