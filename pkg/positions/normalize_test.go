package positions

import (
	"testing"

	"github.com/stakegraph/stakegraph/pkg/types"
)

func TestNormalizeDropsZeroStake(t *testing.T) {
	raw := []types.Position{
		{ID: "a", Shares: "100"},
		{ID: "b", Shares: "0"},
		{ID: "c", Shares: "50"},
		{ID: "d", Shares: ""},
		{ID: "e", Shares: "not-a-number"},
		{ID: "f", Shares: "1"},
	}

	kept := Normalize(raw)

	want := []string{"a", "c", "f"}
	if len(kept) != len(want) {
		t.Fatalf("Normalize() kept %d positions, want %d", len(kept), len(want))
	}
	for i, id := range want {
		if kept[i].ID != id {
			t.Errorf("kept[%d].ID = %s, want %s (order must be preserved)", i, kept[i].ID, id)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
	if got := Normalize([]types.Position{}); len(got) != 0 {
		t.Errorf("Normalize(empty) = %v, want empty", got)
	}
}

func TestNormalizeKeepsValuesBeyondUint64(t *testing.T) {
	raw := []types.Position{{ID: "big", Shares: "18446744073709551616"}}
	if kept := Normalize(raw); len(kept) != 1 {
		t.Fatalf("Normalize() dropped a position with shares beyond 64 bits")
	}
}
