package roundledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/types"
)

// Human-readable descriptors written on every round fee debit.
const (
	debitTypeName = "token_purchase"
	debitNote     = "new round"
)

// appendDebit is the ledger writer: it constructs exactly one new debit entry
// and appends it with a single upsert keyed by the entry's own freshly
// generated id. The id cannot collide with an existing record, so the write
// is effectively insert-if-absent; uniqueness of effect is guaranteed by the
// duplicate check upstream, not by a store constraint.
//
// Store failures surface unmodified so the transport's retry policy governs
// redelivery; no partial write is possible.
func (e *Engine) appendDebit(ctx context.Context, ev *event.RoundEvent, cost, balanceBefore types.Tokens) (*entry.LedgerEntry, error) {
	le := &entry.LedgerEntry{
		Entity: types.NewEntityAt(e.now()),

		ID:       uuid.NewString(),
		EntityID: ev.EntityID,

		GolferID:        ev.GolferID,
		GolferEmail:     ev.GolferEmail,
		GolferFirstName: ev.GolferFirstName,
		GolferLastName:  ev.GolferLastName,

		AvailableTokens: balanceBefore.Sub(cost),
		Value:           cost,
		Kind:            entry.KindDebit,

		TypeName:          debitTypeName,
		Note:              debitNote,
		ThirdPartyRoundID: ev.Round.ThirdPartyScorecardID,
		Source:            ev.Round.OriginalSource,
	}

	if err := e.store.PutEntry(ctx, le); err != nil {
		return nil, fmt.Errorf("roundledger: append debit entry: %w", err)
	}

	return le, nil
}
