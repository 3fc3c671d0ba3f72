package stakegraph

import (
	"context"
	"fmt"

	"github.com/stakegraph/stakegraph/pkg/positions"
	"github.com/stakegraph/stakegraph/pkg/types"
)

// GetAccountInfo resolves an account's metadata and ranks its staked
// positions. A metadata lookup failure degrades to a bare account (id
// only); only a failure to fetch the position set itself fails the
// operation.
func (c *Client) GetAccountInfo(ctx context.Context, accountID string) (*ToolResult, error) {
	if accountID == "" {
		return nil, types.ErrEmptyAccountID
	}
	ctx = context.WithValue(ctx, types.ContextKeyOperation, "get_account_info")

	account, err := c.fetcher.AccountMetadata(ctx, accountID)
	if err != nil {
		c.logger.Warn("account metadata lookup failed, continuing with bare account",
			"account_id", accountID, "error", err)
		account = &types.Account{ID: accountID}
	}

	raw, err := c.fetcher.AccountPositions(ctx, accountID, nil)
	if err != nil {
		return nil, err
	}

	result := positions.Process(raw, accountID, c.shapeOptions(c.config.AccountTopK))

	c.logger.Debug("processed account positions",
		"account_id", accountID,
		"raw", len(raw),
		"ranked", result.Summary.Total,
		"opposing", result.Summary.OppositionCount)

	payload := result.Payload()
	payload["account"] = account

	digest := fmt.Sprintf("Account %s\n%s", accountLabel(account), result.Digest)
	return &ToolResult{Digest: digest, Payload: payload}, nil
}

// accountLabel renders an account for digest headers, preferring the
// label over the raw identifier.
func accountLabel(a *types.Account) string {
	if a == nil {
		return types.UnknownLabel
	}
	if a.Label != "" {
		return fmt.Sprintf("%s (%s)", a.Label, a.ID)
	}
	if a.ID != "" {
		return a.ID
	}
	return types.UnknownLabel
}
