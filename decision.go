package roundledger

import (
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/id"
	"github.com/fairwaylabs/roundledger/types"
)

// Action is the outcome of the charge decision protocol for one round event.
type Action string

const (
	// ActionSkip means the event is out of scope: wrong task type, missing
	// round, non-billable entity, or admin-originated.
	ActionSkip Action = "skip"

	// ActionAlreadyCharged means a debit entry already exists for the round's
	// transaction id. The idempotent no-op, and the primary defense against
	// duplicate delivery.
	ActionAlreadyCharged Action = "already_charged"

	// ActionCharge means a new debit was (or is to be) appended.
	ActionCharge Action = "charge"

	// ActionAnomaly means the event's claims and the ledger disagree. Nothing
	// is written; the anomaly is surfaced for manual reconciliation.
	ActionAnomaly Action = "anomaly"
)

// Decision is the result of deciding — and optionally executing — a charge
// for one round event.
type Decision struct {
	Action Action

	// Reason is a short human-readable explanation for Skip and Anomaly
	// outcomes.
	Reason string

	// Cost is the schedule-resolved fee. Set for Charge decisions.
	Cost types.Tokens

	// Entry is the debit appended by Process. Set only after a successful
	// charge; Decide never populates it.
	Entry *entry.LedgerEntry

	// AnomalyID identifies the anomaly report for log and audit correlation.
	// Set for Anomaly outcomes.
	AnomalyID id.ID

	// Err carries the anomaly sentinel for Anomaly outcomes
	// (ErrMalformedTransactionID, ErrInconsistentLedger,
	// ErrUnexpectedEntryKind). Anomalies complete the invocation, so this is
	// surfaced here rather than as a returned error.
	Err error
}

// Charged reports whether the decision appended a new debit entry.
func (d Decision) Charged() bool {
	return d.Action == ActionCharge && d.Entry != nil
}
