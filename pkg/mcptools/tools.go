// Package mcptools registers the graph operations as Model Context
// Protocol tools. Each tool returns the operation's digest followed by
// the structured payload so both text-oriented and machine callers can
// consume the result.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/driver"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer creates an MCP server with all graph tools registered.
func NewServer(graph stakegraph.StakeGraph) *server.MCPServer {
	s := server.NewMCPServer(
		"stakegraph",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	Register(s, graph)
	return s
}

const instructions = `StakeGraph exposes a decentralized knowledge graph whose claims carry
staked economic weight. Use get_account_info to see what an account has
staked on, search_atoms to find staked entities, and get_following or
get_followers to explore an account's social graph with each related
account's top interests. Entries marked [OPPOSING] stake against the
relationship they name; the opposed percentage shows how contested a
claim is.`

// Register adds the graph tools to an existing MCP server.
func Register(s *server.MCPServer, graph stakegraph.StakeGraph) {
	s.AddTool(mcp.NewTool("get_account_info",
		mcp.WithDescription("Look up an account and its positions ranked by staked shares, including support/oppose classification on contested relationships."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The account identifier to look up."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := req.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := graph.GetAccountInfo(ctx, accountID)
		if err != nil {
			return toolError(err), nil
		}
		return toolResult(result), nil
	})

	s.AddTool(mcp.NewTool("search_atoms",
		mcp.WithDescription("Search staked atoms by label and rank the positions held on matching terms."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search text to match against atom labels."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum raw records to fetch. Defaults to the driver limit."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := req.GetInt("limit", 0)
		result, err := graph.SearchAtoms(ctx, query, limit)
		if err != nil {
			return toolError(err), nil
		}
		return toolResult(result), nil
	})

	s.AddTool(mcp.NewTool("get_following",
		mcp.WithDescription("List the accounts an account follows, each enriched with its top staked interests."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The account whose following list to enumerate."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := req.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := graph.GetFollowing(ctx, accountID)
		if err != nil {
			return toolError(err), nil
		}
		return toolResult(result), nil
	})

	s.AddTool(mcp.NewTool("get_followers",
		mcp.WithDescription("List the accounts following an account, each enriched with its top staked interests."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("The account whose followers to enumerate."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := req.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result, err := graph.GetFollowers(ctx, accountID)
		if err != nil {
			return toolError(err), nil
		}
		return toolResult(result), nil
	})
}

// toolResult renders the digest first so text-oriented clients read the
// summary before the structured payload.
func toolResult(result *stakegraph.ToolResult) *mcp.CallToolResult {
	payload, err := json.MarshalIndent(result.Payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(result.Digest)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.Digest, payload))
}

// toolError relays rate-limit retry guidance; other upstream failures
// surface as plain tool errors.
func toolError(err error) *mcp.CallToolResult {
	var rateLimit *driver.RateLimitError
	if errors.As(err, &rateLimit) {
		msg := rateLimit.Error()
		if rateLimit.RetryAfter > 0 {
			msg = fmt.Sprintf("%s (retry after %s, %d requests remaining)",
				msg, rateLimit.RetryAfter, rateLimit.Remaining)
		}
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(err.Error())
}
