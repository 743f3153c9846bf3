// Package store defines the storage interface for the round fee ledger.
package store

import (
	"context"

	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/fee"
)

// Store is the ledger storage interface consumed by the charge engine.
//
// Implementations are not required to provide read-after-write consistency:
// an entry accepted by PutEntry may not be visible to GetEntry or LatestEntry
// from another process immediately. The engine's charge protocol is designed
// around that. No multi-record transactional guarantee is assumed either —
// PutEntry is the only write and it touches exactly one record.
type Store interface {
	// GetEntry resolves a ledger entry by its id.
	// Returns roundledger.ErrEntryNotFound when no entry matches.
	GetEntry(ctx context.Context, entryID string) (*entry.LedgerEntry, error)

	// LatestEntry returns the golfer's most recent ledger entry by created
	// timestamp. Returns roundledger.ErrNoLedgerHistory when the golfer has
	// no entries at all.
	LatestEntry(ctx context.Context, golferID string) (*entry.LedgerEntry, error)

	// PutEntry writes an entry keyed by its own id (upsert-by-id). Entry ids
	// are freshly generated by the writer, so an upsert can never clobber a
	// different record; the semantics are insert-if-absent.
	PutEntry(ctx context.Context, e *entry.LedgerEntry) error

	// ListFees returns all fee schedule records.
	ListFees(ctx context.Context) ([]fee.Record, error)

	// Migrate prepares schema/indexes. Safe to call repeatedly.
	Migrate(ctx context.Context) error

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}
