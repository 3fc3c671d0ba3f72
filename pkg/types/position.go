package types

import (
	"errors"
	"math/big"
)

// Validation errors
var (
	ErrEmptyID        = errors.New("id cannot be empty")
	ErrEmptyAccountID = errors.New("account id cannot be empty")
	ErrEmptyQuery     = errors.New("query cannot be empty")
	ErrInvalidLimit   = errors.New("limit must be positive")
)

// Account identifies the owner of a position.
type Account struct {
	ID    string `json:"id" mapstructure:"id"`
	Label string `json:"label,omitempty" mapstructure:"label"`
	Image string `json:"image,omitempty" mapstructure:"image"`
}

// Vault is the aggregate stake on a term under one bonding-curve
// variant. TotalShares and CurrentSharePrice are decimal strings and can
// exceed 64 bits.
type Vault struct {
	TermID            string `json:"term_id" mapstructure:"term_id"`
	PositionCount     int    `json:"position_count" mapstructure:"position_count"`
	TotalShares       string `json:"total_shares" mapstructure:"total_shares"`
	CurrentSharePrice string `json:"current_share_price,omitempty" mapstructure:"current_share_price"`
}

// Term is the staking unit: either an atom-term or a triple-term. Each
// term owns one vault per bonding-curve variant; the first vault is
// always the primary curve.
type Term struct {
	ID     string  `json:"id" mapstructure:"id"`
	Atom   *Atom   `json:"atom,omitempty" mapstructure:"atom"`
	Triple *Triple `json:"triple,omitempty" mapstructure:"triple"`
	Vaults []Vault `json:"vaults,omitempty" mapstructure:"vaults"`
}

// PrimaryVault returns the vault on the primary bonding curve, or nil
// when the term carries no vaults.
func (t *Term) PrimaryVault() *Vault {
	if t == nil || len(t.Vaults) == 0 {
		return nil
	}
	return &t.Vaults[0]
}

// TotalShares returns the primary vault's total shares as an exact
// integer. A missing term, vault, or malformed total counts as zero.
func (t *Term) TotalShares() *big.Int {
	v := t.PrimaryVault()
	if v == nil {
		return new(big.Int)
	}
	return ParseShares(v.TotalShares)
}

// Position is one account's stake in a vault, as returned by the graph
// backend. All fields are read-only snapshots scoped to one request.
type Position struct {
	ID          string   `json:"id" mapstructure:"id"`
	Shares      string   `json:"shares" mapstructure:"shares"`
	Account     *Account `json:"account,omitempty" mapstructure:"account"`
	Term        *Term    `json:"term,omitempty" mapstructure:"term"`
	CounterTerm *Term    `json:"counter_term,omitempty" mapstructure:"counter_term"`
}

// SharesInt returns the position's share count as an exact integer.
// Absent or malformed shares count as zero.
func (p *Position) SharesInt() *big.Int {
	if p == nil {
		return new(big.Int)
	}
	return ParseShares(p.Shares)
}

// ParseShares parses a decimal-string share value into an exact integer.
// Empty, malformed, or negative input yields zero; share values are
// never parsed as fixed-width or floating-point numbers.
func ParseShares(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return new(big.Int)
	}
	return n
}
