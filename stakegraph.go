package stakegraph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/stakegraph/stakegraph/pkg/driver"
	"github.com/stakegraph/stakegraph/pkg/positions"
)

// ErrNilFetcher is returned by NewClient when no fetch client is supplied.
var ErrNilFetcher = errors.New("stakegraph: fetch client must not be nil")

// StakeGraph is the main interface for querying the staked knowledge
// graph. Every operation runs the full position pipeline and returns
// both a structured payload and a digest derived from the same ranked
// data.
type StakeGraph interface {
	// GetAccountInfo resolves an account and its ranked positions.
	GetAccountInfo(ctx context.Context, accountID string) (*ToolResult, error)

	// SearchAtoms finds staked terms whose atoms match the query and
	// ranks the positions held on them.
	SearchAtoms(ctx context.Context, query string, limit int) (*ToolResult, error)

	// GetFollowing enumerates accounts the given account follows and
	// enriches each with its top staked interests.
	GetFollowing(ctx context.Context, accountID string) (*ToolResult, error)

	// GetFollowers enumerates accounts following the given account and
	// enriches each with its top staked interests.
	GetFollowers(ctx context.Context, accountID string) (*ToolResult, error)

	// Close releases the underlying fetch client.
	Close() error
}

// ToolResult wraps the pipeline's two output views for delivery by a
// transport boundary. Digest is the human-readable rendering; Payload
// is the complete structured view, including entries the digest
// truncated away.
type ToolResult struct {
	Digest  string         `json:"digest"`
	Payload map[string]any `json:"payload"`
}

// Config holds pipeline policy for the client. Top-K values control
// how many entries each operation's digest renders; the structured
// payload always carries the full ranked list.
type Config struct {
	// AccountTopK caps the account-lookup digest.
	AccountTopK int
	// SearchTopK caps the search digest.
	SearchTopK int
	// SocialTopK caps each related account's interest digest.
	SocialTopK int
	// OppositionThreshold is the minimum opposition ratio that earns a
	// percentage suffix in digests.
	OppositionThreshold float64
	// MaxEntryLength caps a single digest line.
	MaxEntryLength int
	// FanOutLimit bounds both how many related accounts are enriched
	// and how many enrichment fetches run concurrently.
	FanOutLimit int
}

// NewDefaultConfig returns the observed per-operation policy: ten
// entries for account lookups, twenty for searches, five per related
// account, with fan-out capped at twenty.
func NewDefaultConfig() *Config {
	return &Config{
		AccountTopK:         10,
		SearchTopK:          20,
		SocialTopK:          5,
		OppositionThreshold: positions.DefaultOppositionThreshold,
		MaxEntryLength:      positions.DefaultMaxEntryLength,
		FanOutLimit:         20,
	}
}

func (c *Config) withDefaults() *Config {
	d := NewDefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.AccountTopK <= 0 {
		out.AccountTopK = d.AccountTopK
	}
	if out.SearchTopK <= 0 {
		out.SearchTopK = d.SearchTopK
	}
	if out.SocialTopK <= 0 {
		out.SocialTopK = d.SocialTopK
	}
	if out.OppositionThreshold == 0 {
		out.OppositionThreshold = d.OppositionThreshold
	}
	if out.MaxEntryLength <= 0 {
		out.MaxEntryLength = d.MaxEntryLength
	}
	if out.FanOutLimit <= 0 {
		out.FanOutLimit = d.FanOutLimit
	}
	return &out
}

// Client is the main implementation of the StakeGraph interface.
type Client struct {
	fetcher driver.Client
	config  *Config
	logger  *slog.Logger
}

// NewClient creates a StakeGraph client over the given fetch client.
// The fetch client is the only shared resource; the pipeline itself is
// request-scoped and holds no cross-request state.
func NewClient(fetcher driver.Client, config *Config, logger *slog.Logger) (*Client, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		fetcher: fetcher,
		config:  config.withDefaults(),
		logger:  logger,
	}, nil
}

// Close closes the underlying fetch client.
func (c *Client) Close() error {
	return c.fetcher.Close()
}

func (c *Client) shapeOptions(topK int) positions.Options {
	return positions.Options{
		TopK:                topK,
		OppositionThreshold: c.config.OppositionThreshold,
		MaxEntryLength:      c.config.MaxEntryLength,
	}
}
