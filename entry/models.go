// Package entry defines the append-only ledger entry model.
package entry

import (
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/types"
)

// Kind distinguishes deductions from additions to a golfer's token balance.
type Kind string

const (
	KindDebit  Kind = "debit"
	KindCredit Kind = "credit"
)

// Valid reports whether the kind is one of the closed set of values.
func (k Kind) Valid() bool {
	switch k {
	case KindDebit, KindCredit:
		return true
	}
	return false
}

// LedgerEntry is one immutable record in a golfer's token ledger.
//
// Entries are never mutated or deleted. The golfer's current balance is the
// AvailableTokens of their entry with the latest CreatedAt; every write must
// therefore set AvailableTokens to the post-transaction balance.
//
// ID doubles as the idempotency key: a round that has already been charged
// carries this value as its TransactionID, and the duplicate detector resolves
// it with a point lookup.
type LedgerEntry struct {
	types.Entity

	ID       string `json:"id"`
	EntityID string `json:"entity_id"`

	GolferID        string `json:"golfer_id"`
	GolferEmail     string `json:"golfer_email"`
	GolferFirstName string `json:"golfer_first_name"`
	GolferLastName  string `json:"golfer_last_name"`

	// AvailableTokens is the golfer's balance after this entry took effect.
	AvailableTokens types.Tokens `json:"available_tokens"`

	// Value is the unsigned magnitude of the transaction; Kind carries the
	// direction.
	Value types.Tokens `json:"transaction_value"`
	Kind  Kind         `json:"transaction_kind"`

	// TypeName and Note describe the transaction for humans and reporting.
	TypeName string `json:"type_name"`
	Note     string `json:"note"`

	// ThirdPartyRoundID links the entry back to the scoring provider's round.
	ThirdPartyRoundID string `json:"third_party_round_id"`

	Source event.Source `json:"original_source"`
}

// IsDebit reports whether the entry deducts tokens.
func (e *LedgerEntry) IsDebit() bool {
	return e.Kind == KindDebit
}
