package roundledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylabs/roundledger/types"
)

// currentBalance is the balance resolver: the golfer's balance is defined as
// the available-tokens value of their most recent ledger entry.
//
// A golfer with no ledger history has no determinable balance — not zero —
// and charging fails closed with ErrBalanceUnavailable. Under concurrent
// invocations the read may be stale (the store is eventually consistent);
// that window is an accepted trade-off of the charge protocol.
func (e *Engine) currentBalance(ctx context.Context, golferID string) (types.Tokens, error) {
	latest, err := e.store.LatestEntry(ctx, golferID)
	if errors.Is(err, ErrNoLedgerHistory) {
		return 0, fmt.Errorf("%w: golfer %s", ErrBalanceUnavailable, golferID)
	}
	if err != nil {
		return 0, err
	}

	return latest.AvailableTokens, nil
}
