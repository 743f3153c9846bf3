package roundledger

import (
	"context"

	"github.com/fairwaylabs/roundledger/entry"
)

// lookupLinkedEntry is the duplicate detector: a point lookup of the ledger
// entry a round's transaction id claims to reference. Entry ids are globally
// unique, so at most one entry can match.
//
// The lookup never retries; store read errors surface to the caller and the
// transport's redelivery policy governs what happens next.
func (e *Engine) lookupLinkedEntry(ctx context.Context, transactionID string) (*entry.LedgerEntry, error) {
	return e.store.GetEntry(ctx, transactionID)
}
