package positions

import (
	"math/big"
	"sort"

	"github.com/stakegraph/stakegraph/pkg/types"
)

// Rank stable-sorts entries in place by share count, descending, using
// exact integer comparison. Ties keep their prior relative order. No
// entry is dropped or duplicated, and re-ranking a ranked list is a
// no-op.
func Rank(entries []*types.ProcessedPosition) {
	type keyed struct {
		entry  *types.ProcessedPosition
		shares *big.Int
	}

	ks := make([]keyed, len(entries))
	for i, e := range entries {
		ks[i] = keyed{entry: e, shares: e.SharesInt()}
	}

	sort.SliceStable(ks, func(i, j int) bool {
		return ks[i].shares.Cmp(ks[j].shares) > 0
	})

	for i := range ks {
		entries[i] = ks[i].entry
	}
}
