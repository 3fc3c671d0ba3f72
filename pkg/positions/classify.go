package positions

import (
	"fmt"
	"math/big"

	"github.com/stakegraph/stakegraph/pkg/types"
)

// Classify turns one normalized position into a processed entry. The
// viewerID names the account whose perspective frames the digest
// wording downstream; it does not influence stance, which is decided
// purely by term-id equality. A nil result means the position's term is
// neither an atom-term nor a triple-term and the record is skipped.
func Classify(pos types.Position, viewerID string) *types.ProcessedPosition {
	if pos.Term == nil {
		return nil
	}
	switch {
	case pos.Term.Triple != nil:
		return classifyRelationship(pos)
	case pos.Term.Atom != nil:
		return classifyAtom(pos)
	default:
		return nil
	}
}

func classifyAtom(pos types.Position) *types.ProcessedPosition {
	atom := pos.Term.Atom
	return &types.ProcessedPosition{
		Type:          types.AtomPositionKind,
		ID:            pos.ID,
		AtomID:        atom.ID,
		Shares:        pos.SharesInt().String(),
		VaultInfo:     vaultInfo(pos.Term),
		HumanReadable: atom.LabelOr(types.UnknownLabel),
		Account:       pos.Account,
	}
}

func classifyRelationship(pos types.Position) *types.ProcessedPosition {
	triple := pos.Term.Triple

	// The triple's own term denotes the affirmative stance. A position
	// held on any other term id still counts as support: well-formed
	// upstream data only ever references the pair.
	stance := types.StanceSupport
	if pos.Term.ID == triple.CounterTermID && pos.Term.ID != triple.TermID {
		stance = types.StanceOppose
	}

	rel := &types.Relationship{
		Subject:   triple.Subject.LabelOr(types.UnknownLabel),
		Predicate: triple.Predicate.LabelOr(types.DefaultPredicateLabel),
		Object:    triple.Object.LabelOr(types.UnknownLabel),
	}

	// The ratio describes the relationship pair, not the holder's side:
	// counter-term stake over combined stake. For an oppose position the
	// staked term is the counter term, so the totals swap.
	own := pos.Term.TotalShares()
	counter := pos.CounterTerm.TotalShares()
	if stance == types.StanceOppose {
		own, counter = counter, own
	}

	return &types.ProcessedPosition{
		Type:              types.RelationshipPositionKind,
		ID:                pos.ID,
		TripleID:          triple.TermID,
		Shares:            pos.SharesInt().String(),
		PositionType:      stance,
		PredicateLabel:    rel.Predicate,
		Relationship:      rel,
		OppositionMetrics: &types.OppositionMetrics{OppositionRatio: oppositionRatio(own, counter)},
		VaultInfo:         vaultInfo(pos.Term),
		HumanReadable:     fmt.Sprintf("%s %s %s", rel.Subject, rel.Predicate, rel.Object),
		Account:           pos.Account,
	}
}

// oppositionRatio computes counter / (own + counter) exactly and
// converts once at the edge. Both totals zero yields 0, guarding the
// division.
func oppositionRatio(own, counter *big.Int) float64 {
	denom := new(big.Int).Add(own, counter)
	if denom.Sign() == 0 {
		return 0
	}
	ratio, _ := new(big.Rat).SetFrac(counter, denom).Float64()
	return ratio
}

func vaultInfo(term *types.Term) *types.VaultInfo {
	v := term.PrimaryVault()
	if v == nil {
		return &types.VaultInfo{TotalShares: "0"}
	}
	return &types.VaultInfo{
		PositionCount:     v.PositionCount,
		TotalShares:       v.TotalShares,
		CurrentSharePrice: v.CurrentSharePrice,
	}
}
