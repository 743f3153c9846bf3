package roundledger

import (
	"errors"

	"github.com/fairwaylabs/roundledger/fee"
)

// Sentinel errors for the charge decision protocol.
var (
	// ErrMalformedTransactionID marks a round whose transaction id is not a
	// well-formed UUID. Non-fatal: the round is treated as already referenced
	// and no charge is attempted, which can never double-charge a golfer.
	ErrMalformedTransactionID = errors.New("roundledger: round transaction id is not a valid UUID")

	// ErrInconsistentLedger marks a round that claims a transaction id for
	// which no ledger entry exists. The claim and the ledger disagree; the
	// engine refuses to charge blindly so the gap can be reconciled by hand.
	ErrInconsistentLedger = errors.New("roundledger: round transaction id has no backing ledger entry")

	// ErrUnexpectedEntryKind marks a round whose linked ledger entry is not a
	// debit. A credit linked to a round transaction id should not happen via
	// the player app; surfaced for inspection, never written over.
	ErrUnexpectedEntryKind = errors.New("roundledger: linked ledger entry is not a debit")

	// ErrBalanceUnavailable is returned when a golfer has no ledger history
	// at all. A missing balance is not zero: the engine fails closed rather
	// than inventing a starting balance.
	ErrBalanceUnavailable = errors.New("roundledger: golfer has no resolvable token balance")

	// ErrFeeNotFound is returned when the fee schedule has no cost for the
	// round's (entity, tier) pair.
	ErrFeeNotFound = fee.ErrNotFound

	// ErrEntryNotFound is returned by stores when a point lookup matches
	// no ledger entry.
	ErrEntryNotFound = errors.New("roundledger: ledger entry not found")

	// ErrNoLedgerHistory is returned by stores when a golfer has no ledger
	// entries.
	ErrNoLedgerHistory = errors.New("roundledger: no ledger entries for golfer")
)

// IsAnomaly returns true for inconsistencies between an event's claims and
// the observed ledger state. Anomalies complete the invocation without a
// write; they are surfaced for investigation, not retried.
func IsAnomaly(err error) bool {
	return errors.Is(err, ErrMalformedTransactionID) ||
		errors.Is(err, ErrInconsistentLedger) ||
		errors.Is(err, ErrUnexpectedEntryKind)
}

// IsFatal returns true for errors that abort the invocation entirely so the
// transport's redelivery policy can re-drive it. Store read/write failures,
// missing fees, and unresolvable balances are all fatal; anomalies are not.
func IsFatal(err error) bool {
	return err != nil && !IsAnomaly(err)
}
