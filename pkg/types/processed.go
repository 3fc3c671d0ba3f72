package types

import "math/big"

// PositionKind classifies a processed position as a plain entity stake
// or a relationship stake.
type PositionKind string

const (
	// AtomPositionKind marks a stake on an atom-term.
	AtomPositionKind PositionKind = "atom_position"
	// RelationshipPositionKind marks a stake on a triple-term.
	RelationshipPositionKind PositionKind = "relationship_position"
)

// Stance is the side of a relationship a position stakes on. A position
// whose term id equals the triple's own term id supports the
// relationship; one on the counter term opposes it.
type Stance string

const (
	// StanceSupport marks a stake on the triple's own term.
	StanceSupport Stance = "support"
	// StanceOppose marks a stake on the triple's counter term.
	StanceOppose Stance = "oppose"
)

// Relationship carries the resolved labels of a triple's three atoms.
type Relationship struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// OppositionMetrics reports how contested a relationship is.
// OppositionRatio is counter-vault shares over combined vault shares and
// always lies in [0, 1]; it is exactly 0 when both totals are zero.
type OppositionMetrics struct {
	OppositionRatio float64 `json:"oppositionRatio"`
}

// VaultInfo is the vault snapshot carried on a processed position.
type VaultInfo struct {
	PositionCount     int    `json:"position_count"`
	TotalShares       string `json:"total_shares"`
	CurrentSharePrice string `json:"current_share_price,omitempty"`
}

// ProcessedPosition is one classified, rankable pipeline output entry.
// Field names match the wire format consumed by downstream callers.
type ProcessedPosition struct {
	Type              PositionKind       `json:"type"`
	ID                string             `json:"id"`
	AtomID            string             `json:"atom_id,omitempty"`
	TripleID          string             `json:"triple_id,omitempty"`
	Shares            string             `json:"shares"`
	PositionType      Stance             `json:"positionType,omitempty"`
	PredicateLabel    string             `json:"predicate_label,omitempty"`
	Relationship      *Relationship      `json:"relationship,omitempty"`
	OppositionMetrics *OppositionMetrics `json:"oppositionMetrics,omitempty"`
	VaultInfo         *VaultInfo         `json:"vault_info,omitempty"`
	HumanReadable     string             `json:"human_readable"`
	Account           *Account           `json:"account,omitempty"`
}

// SharesInt returns the entry's share count as an exact integer.
func (p *ProcessedPosition) SharesInt() *big.Int {
	if p == nil {
		return new(big.Int)
	}
	return ParseShares(p.Shares)
}

// IsOpposing reports whether the entry stakes against its relationship.
func (p *ProcessedPosition) IsOpposing() bool {
	return p != nil && p.PositionType == StanceOppose
}
