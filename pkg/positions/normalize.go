package positions

import (
	"github.com/stakegraph/stakegraph/pkg/types"
)

// Normalize returns the subsequence of positions whose share count,
// parsed as an exact integer, is strictly greater than zero. Absent or
// malformed shares count as zero and are excluded rather than rejected.
// Relative order of surviving positions is preserved.
func Normalize(raw []types.Position) []types.Position {
	kept := make([]types.Position, 0, len(raw))
	for _, p := range raw {
		if p.SharesInt().Sign() > 0 {
			kept = append(kept, p)
		}
	}
	return kept
}
