package stakegraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/stakegraph/stakegraph/pkg/driver"
	"github.com/stakegraph/stakegraph/pkg/positions"
	"github.com/stakegraph/stakegraph/pkg/types"
	"github.com/stakegraph/stakegraph/pkg/utils"
)

// FollowProfile is one related account enriched with its top staked
// interests. A failed enrichment fetch leaves Interests empty rather
// than failing the batch.
type FollowProfile struct {
	Account   *types.Account             `json:"account"`
	Interests []*types.ProcessedPosition `json:"interests"`
	Summary   positions.Summary          `json:"summary"`
}

// GetFollowing enumerates the accounts the given account follows and
// enriches each with its staked interests.
func (c *Client) GetFollowing(ctx context.Context, accountID string) (*ToolResult, error) {
	return c.social(ctx, accountID, driver.FollowDirectionFollowing)
}

// GetFollowers enumerates the accounts following the given account and
// enriches each with its staked interests.
func (c *Client) GetFollowers(ctx context.Context, accountID string) (*ToolResult, error) {
	return c.social(ctx, accountID, driver.FollowDirectionFollowers)
}

func (c *Client) social(ctx context.Context, accountID string, direction driver.FollowDirection) (*ToolResult, error) {
	if accountID == "" {
		return nil, types.ErrEmptyAccountID
	}
	ctx = context.WithValue(ctx, types.ContextKeyOperation, "get_"+string(direction))

	triples, err := c.fetcher.FollowTriples(ctx, accountID, direction)
	if err != nil {
		return nil, err
	}

	related := relatedAccounts(triples, direction)
	if len(related) > c.config.FanOutLimit {
		related = related[:c.config.FanOutLimit]
	}

	opts := c.shapeOptions(c.config.SocialTopK)

	// One enrichment fetch per related account, bounded by the fan-out
	// limit. A failed branch degrades to zero interests; the batch
	// always completes.
	fetches := make([]func() (positions.Result, error), len(related))
	for i, acct := range related {
		id := acct.ID
		fetches[i] = func() (positions.Result, error) {
			raw, err := c.fetcher.AccountPositions(ctx, id, nil)
			if err != nil {
				return positions.Result{}, err
			}
			return positions.Process(raw, id, opts), nil
		}
	}
	results, errs := utils.ExecuteWithResults(ctx, c.config.FanOutLimit, fetches...)

	profiles := make([]*FollowProfile, len(related))
	for i, acct := range related {
		if errs != nil && errs[i] != nil {
			c.logger.Warn("interest enrichment failed for related account",
				"account_id", acct.ID, "error", errs[i])
			results[i] = positions.Shape(nil, opts)
		}
		profiles[i] = &FollowProfile{
			Account:   acct,
			Interests: results[i].Positions,
			Summary:   results[i].Summary,
		}
	}

	c.logger.Debug("enriched follow relationships",
		"account_id", accountID,
		"direction", string(direction),
		"triples", len(triples),
		"accounts", len(related))

	payload := map[string]any{
		"accounts":  profiles,
		"count":     len(profiles),
		"direction": string(direction),
	}
	return &ToolResult{
		Digest:  socialDigest(accountID, direction, related, results),
		Payload: payload,
	}, nil
}

// relatedAccounts extracts the far side of each follow triple, keeping
// triple order and dropping duplicates and malformed edges.
func relatedAccounts(triples []types.Triple, direction driver.FollowDirection) []*types.Account {
	seen := make(map[string]bool, len(triples))
	out := make([]*types.Account, 0, len(triples))
	for i := range triples {
		atom := triples[i].Object
		if direction == driver.FollowDirectionFollowers {
			atom = triples[i].Subject
		}
		acct := accountFromAtom(atom)
		if acct == nil || seen[acct.ID] {
			continue
		}
		seen[acct.ID] = true
		out = append(out, acct)
	}
	return out
}

// accountFromAtom converts an account atom to an Account, preferring
// the typed account variant over the atom's generic fields.
func accountFromAtom(atom *types.Atom) *types.Account {
	if atom == nil {
		return nil
	}
	if v := atom.Value; v != nil && v.Account != nil && v.Account.ID != "" {
		return &types.Account{
			ID:    v.Account.ID,
			Label: v.Account.Label,
			Image: v.Account.Image,
		}
	}
	if atom.ID == "" {
		return nil
	}
	return &types.Account{ID: atom.ID, Label: atom.LabelOr("")}
}

func socialDigest(accountID string, direction driver.FollowDirection, related []*types.Account, results []positions.Result) string {
	verb := "follows"
	if direction == driver.FollowDirectionFollowers {
		verb = "is followed by"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Account %s %s %d accounts.", accountID, verb, len(related))
	for i, acct := range related {
		fmt.Fprintf(&b, "\n\n== %s ==\n%s", accountLabel(acct), results[i].Digest)
	}
	return b.String()
}
