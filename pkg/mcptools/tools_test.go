package mcptools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/driver"
)

type stubGraph struct {
	result *stakegraph.ToolResult
	err    error
}

func (s *stubGraph) GetAccountInfo(ctx context.Context, accountID string) (*stakegraph.ToolResult, error) {
	return s.result, s.err
}

func (s *stubGraph) SearchAtoms(ctx context.Context, query string, limit int) (*stakegraph.ToolResult, error) {
	return s.result, s.err
}

func (s *stubGraph) GetFollowing(ctx context.Context, accountID string) (*stakegraph.ToolResult, error) {
	return s.result, s.err
}

func (s *stubGraph) GetFollowers(ctx context.Context, accountID string) (*stakegraph.ToolResult, error) {
	return s.result, s.err
}

func (s *stubGraph) Close() error { return nil }

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %#v", result.Content[0])
	}
	return text.Text
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(&stubGraph{})
	if s == nil {
		t.Fatal("expected non-nil MCP server")
	}
}

func TestToolResultRendersDigestThenPayload(t *testing.T) {
	result := toolResult(&stakegraph.ToolResult{
		Digest:  "1. Alice knows Bob\nShowing 1 positions (0 opposing).",
		Payload: map[string]any{"summary": map[string]any{"total": 1}},
	})

	text := textOf(t, result)
	if !strings.HasPrefix(text, "1. Alice knows Bob") {
		t.Errorf("digest not first: %q", text)
	}
	if !strings.Contains(text, `"total": 1`) {
		t.Errorf("payload not rendered: %q", text)
	}
	if strings.Index(text, "Alice") > strings.Index(text, `"total"`) {
		t.Error("payload rendered before digest")
	}
}

func TestToolErrorRelaysRateLimitGuidance(t *testing.T) {
	err := &driver.RateLimitError{RetryAfter: 30 * time.Second, Remaining: 2}
	result := toolError(err)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	text := textOf(t, result)
	if !strings.Contains(text, "retry after 30s") || !strings.Contains(text, "2 requests remaining") {
		t.Errorf("retry guidance missing: %q", text)
	}
}

func TestToolErrorPlainUpstreamFailure(t *testing.T) {
	err := &driver.UpstreamError{
		Op:    "SearchPositions",
		Phase: driver.PhaseRequest,
		Err:   errors.New("connection refused"),
	}
	result := toolError(err)

	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(textOf(t, result), "SearchPositions") {
		t.Errorf("error does not name the operation: %q", textOf(t, result))
	}
}
