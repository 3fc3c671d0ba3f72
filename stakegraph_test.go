package stakegraph_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stakegraph/stakegraph"
	"github.com/stakegraph/stakegraph/pkg/driver"
	"github.com/stakegraph/stakegraph/pkg/types"
)

// mockFetcher is a scriptable driver.Client for facade tests. The
// mutex guards positionCalls, which the fan-out appends concurrently.
type mockFetcher struct {
	mu sync.Mutex

	metadata    map[string]*types.Account
	metadataErr error

	positions     map[string][]types.Position
	positionsErr  map[string]error
	positionCalls []string

	searchPositions []types.Position
	searchErr       error
	searchLimit     int

	triples    []types.Triple
	triplesErr error

	closed bool
}

func (m *mockFetcher) AccountMetadata(ctx context.Context, accountID string) (*types.Account, error) {
	if m.metadataErr != nil {
		return nil, m.metadataErr
	}
	if a, ok := m.metadata[accountID]; ok {
		return a, nil
	}
	return &types.Account{ID: accountID}, nil
}

func (m *mockFetcher) AccountPositions(ctx context.Context, accountID string, filter *driver.PositionFilter) ([]types.Position, error) {
	m.mu.Lock()
	m.positionCalls = append(m.positionCalls, accountID)
	m.mu.Unlock()
	if err, ok := m.positionsErr[accountID]; ok {
		return nil, err
	}
	return m.positions[accountID], nil
}

func (m *mockFetcher) SearchPositions(ctx context.Context, query string, limit int) ([]types.Position, error) {
	m.searchLimit = limit
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchPositions, nil
}

func (m *mockFetcher) FollowTriples(ctx context.Context, accountID string, direction driver.FollowDirection) ([]types.Triple, error) {
	if m.triplesErr != nil {
		return nil, m.triplesErr
	}
	return m.triples, nil
}

func (m *mockFetcher) Close() error {
	m.closed = true
	return nil
}

func atomPosition(id, label, shares string) types.Position {
	return types.Position{
		ID:     id,
		Shares: shares,
		Term: &types.Term{
			ID:     "term-" + id,
			Atom:   &types.Atom{ID: "atom-" + id, Label: label},
			Vaults: []types.Vault{{TermID: "term-" + id, PositionCount: 1, TotalShares: shares}},
		},
	}
}

func accountAtom(id, label string) *types.Atom {
	return &types.Atom{
		ID:    id,
		Label: label,
		Type:  types.AtomTypeAccount,
		Value: &types.AtomValue{Account: &types.AccountValue{ID: id, Label: label}},
	}
}

func followTriple(fromID, fromLabel, toID, toLabel string) types.Triple {
	return types.Triple{
		TermID:        "ft-" + fromID + "-" + toID,
		CounterTermID: "cft-" + fromID + "-" + toID,
		Subject:       accountAtom(fromID, fromLabel),
		Predicate:     &types.Atom{ID: "pred-follow", Label: "follows"},
		Object:        accountAtom(toID, toLabel),
	}
}

func newTestClient(t *testing.T, fetcher driver.Client, cfg *stakegraph.Config) *stakegraph.Client {
	t.Helper()
	client, err := stakegraph.NewClient(fetcher, cfg, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresFetcher(t *testing.T) {
	if _, err := stakegraph.NewClient(nil, nil, nil); !errors.Is(err, stakegraph.ErrNilFetcher) {
		t.Fatalf("expected ErrNilFetcher, got %v", err)
	}
}

func TestGetAccountInfo(t *testing.T) {
	fetcher := &mockFetcher{
		metadata: map[string]*types.Account{
			"acct-1": {ID: "acct-1", Label: "Alice"},
		},
		positions: map[string][]types.Position{
			"acct-1": {
				atomPosition("p1", "Ethereum", "100"),
				atomPosition("p2", "Bitcoin", "250"),
				atomPosition("p3", "Dust", "0"),
			},
		},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetAccountInfo(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetAccountInfo: %v", err)
	}

	if !strings.HasPrefix(result.Digest, "Account Alice (acct-1)") {
		t.Errorf("digest header = %q", result.Digest)
	}
	if !strings.Contains(result.Digest, "1. Bitcoin") || !strings.Contains(result.Digest, "2. Ethereum") {
		t.Errorf("digest not ranked by shares: %q", result.Digest)
	}
	if strings.Contains(result.Digest, "Dust") {
		t.Errorf("zero-share position survived normalization: %q", result.Digest)
	}

	account, ok := result.Payload["account"].(*types.Account)
	if !ok || account.Label != "Alice" {
		t.Errorf("payload account = %#v", result.Payload["account"])
	}
	if _, ok := result.Payload["positions"]; !ok {
		t.Error("payload missing positions")
	}
}

func TestGetAccountInfoDegradesOnMetadataFailure(t *testing.T) {
	fetcher := &mockFetcher{
		metadataErr: errors.New("metadata backend down"),
		positions: map[string][]types.Position{
			"acct-1": {atomPosition("p1", "Ethereum", "100")},
		},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetAccountInfo(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("metadata failure should not fail the operation: %v", err)
	}
	account := result.Payload["account"].(*types.Account)
	if account.ID != "acct-1" || account.Label != "" {
		t.Errorf("expected bare account, got %#v", account)
	}
}

func TestGetAccountInfoPropagatesPositionFetchFailure(t *testing.T) {
	want := &driver.UpstreamError{Op: "AccountPositions", Phase: driver.PhaseRequest, Err: errors.New("boom")}
	fetcher := &mockFetcher{
		positionsErr: map[string]error{"acct-1": want},
	}
	client := newTestClient(t, fetcher, nil)

	_, err := client.GetAccountInfo(context.Background(), "acct-1")
	var upstream *driver.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGetAccountInfoValidatesAccountID(t *testing.T) {
	client := newTestClient(t, &mockFetcher{}, nil)
	if _, err := client.GetAccountInfo(context.Background(), ""); !errors.Is(err, types.ErrEmptyAccountID) {
		t.Fatalf("expected ErrEmptyAccountID, got %v", err)
	}
}

func TestSearchAtoms(t *testing.T) {
	fetcher := &mockFetcher{
		searchPositions: []types.Position{
			atomPosition("p1", "Ethereum Foundation", "42"),
		},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.SearchAtoms(context.Background(), "ethereum", 0)
	if err != nil {
		t.Fatalf("SearchAtoms: %v", err)
	}
	if fetcher.searchLimit != driver.DefaultSearchLimit {
		t.Errorf("default limit = %d, want %d", fetcher.searchLimit, driver.DefaultSearchLimit)
	}
	if !strings.HasPrefix(result.Digest, `Search results for "ethereum"`) {
		t.Errorf("digest header = %q", result.Digest)
	}
	if result.Payload["query"] != "ethereum" {
		t.Errorf("payload query = %v", result.Payload["query"])
	}
}

func TestSearchAtomsValidatesQuery(t *testing.T) {
	client := newTestClient(t, &mockFetcher{}, nil)
	if _, err := client.SearchAtoms(context.Background(), "", 10); !errors.Is(err, types.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestGetFollowingEnrichesRelatedAccounts(t *testing.T) {
	fetcher := &mockFetcher{
		triples: []types.Triple{
			followTriple("acct-1", "Alice", "acct-2", "Bob"),
			followTriple("acct-1", "Alice", "acct-3", "Carol"),
		},
		positions: map[string][]types.Position{
			"acct-2": {atomPosition("p1", "Chess", "10")},
			"acct-3": {atomPosition("p2", "Go", "20")},
		},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetFollowing(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}

	if !strings.HasPrefix(result.Digest, "Account acct-1 follows 2 accounts.") {
		t.Errorf("digest header = %q", result.Digest)
	}
	if !strings.Contains(result.Digest, "== Bob (acct-2) ==") || !strings.Contains(result.Digest, "1. Chess") {
		t.Errorf("digest missing Bob's interests: %q", result.Digest)
	}
	if !strings.Contains(result.Digest, "== Carol (acct-3) ==") || !strings.Contains(result.Digest, "1. Go") {
		t.Errorf("digest missing Carol's interests: %q", result.Digest)
	}
	if result.Payload["count"] != 2 {
		t.Errorf("payload count = %v", result.Payload["count"])
	}
}

func TestGetFollowersUsesSubjectSide(t *testing.T) {
	fetcher := &mockFetcher{
		triples: []types.Triple{
			followTriple("acct-2", "Bob", "acct-1", "Alice"),
		},
		positions: map[string][]types.Position{},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetFollowers(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetFollowers: %v", err)
	}
	if !strings.HasPrefix(result.Digest, "Account acct-1 is followed by 1 accounts.") {
		t.Errorf("digest header = %q", result.Digest)
	}
	if !strings.Contains(result.Digest, "== Bob (acct-2) ==") {
		t.Errorf("follower side not extracted from subject: %q", result.Digest)
	}
}

// A failed enrichment branch degrades to zero interests while the
// remaining branches still return their positions.
func TestGetFollowingPartialBranchFailure(t *testing.T) {
	fetcher := &mockFetcher{
		triples: []types.Triple{
			followTriple("acct-1", "Alice", "acct-2", "Bob"),
			followTriple("acct-1", "Alice", "acct-3", "Carol"),
			followTriple("acct-1", "Alice", "acct-4", "Dave"),
		},
		positions: map[string][]types.Position{
			"acct-2": {atomPosition("p1", "Chess", "10")},
			"acct-4": {atomPosition("p2", "Sailing", "30")},
		},
		positionsErr: map[string]error{
			"acct-3": errors.New("backend timeout"),
		},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetFollowing(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("single branch failure must not fail the batch: %v", err)
	}

	profiles := result.Payload["accounts"].([]*stakegraph.FollowProfile)
	if len(profiles) != 3 {
		t.Fatalf("profiles = %d, want 3", len(profiles))
	}
	if len(profiles[0].Interests) != 1 || len(profiles[2].Interests) != 1 {
		t.Errorf("healthy branches lost interests: %d, %d", len(profiles[0].Interests), len(profiles[2].Interests))
	}
	if len(profiles[1].Interests) != 0 || profiles[1].Summary.Total != 0 {
		t.Errorf("failed branch should degrade to zero interests, got %#v", profiles[1])
	}
	if !strings.Contains(result.Digest, "== Carol (acct-3) ==\nShowing 0 positions (0 opposing).") {
		t.Errorf("failed branch digest = %q", result.Digest)
	}
}

func TestGetFollowingCapsFanOut(t *testing.T) {
	fetcher := &mockFetcher{positions: map[string][]types.Position{}}
	for i := 0; i < 30; i++ {
		id := "acct-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
		fetcher.triples = append(fetcher.triples, followTriple("acct-1", "Alice", id, ""))
	}
	client := newTestClient(t, fetcher, &stakegraph.Config{FanOutLimit: 20})

	result, err := client.GetFollowing(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if result.Payload["count"] != 20 {
		t.Errorf("fan-out not capped: count = %v", result.Payload["count"])
	}
	if len(fetcher.positionCalls) != 20 {
		t.Errorf("enrichment fetches = %d, want 20", len(fetcher.positionCalls))
	}
}

func TestGetFollowingDeduplicatesAccounts(t *testing.T) {
	fetcher := &mockFetcher{
		triples: []types.Triple{
			followTriple("acct-1", "Alice", "acct-2", "Bob"),
			followTriple("acct-1", "Alice", "acct-2", "Bob"),
		},
		positions: map[string][]types.Position{},
	}
	client := newTestClient(t, fetcher, nil)

	result, err := client.GetFollowing(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if result.Payload["count"] != 1 {
		t.Errorf("duplicate account not collapsed: count = %v", result.Payload["count"])
	}
}

func TestGetFollowingPropagatesTripleFetchFailure(t *testing.T) {
	fetcher := &mockFetcher{triplesErr: errors.New("unreachable")}
	client := newTestClient(t, fetcher, nil)
	if _, err := client.GetFollowing(context.Background(), "acct-1"); err == nil {
		t.Fatal("expected error when follow triples cannot be fetched")
	}
}

func TestCloseClosesFetcher(t *testing.T) {
	fetcher := &mockFetcher{}
	client := newTestClient(t, fetcher, nil)
	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !fetcher.closed {
		t.Error("fetcher not closed")
	}
}
