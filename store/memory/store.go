// Package memory provides an in-memory Store for tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/fee"
	"github.com/fairwaylabs/roundledger/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store keeps the ledger in process memory. Unlike the real drivers it is
// strongly consistent, which makes it a convenient engine test double but not
// a faithful model of the production consistency window.
type Store struct {
	mu sync.RWMutex

	entries map[string]*storedEntry
	fees    []fee.Record

	seq uint64 // insertion order, breaks created-at ties in LatestEntry
}

type storedEntry struct {
	entry *entry.LedgerEntry
	seq   uint64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[string]*storedEntry),
	}
}

// SeedFees replaces the fee schedule records. Test helper.
func (s *Store) SeedFees(records ...fee.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fees = append([]fee.Record(nil), records...)
}

// Entries returns a snapshot of all ledger entries. Test helper.
func (s *Store) Entries() []*entry.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*entry.LedgerEntry, 0, len(s.entries))
	for _, se := range s.entries {
		result = append(result, se.entry)
	}
	return result
}

func (s *Store) GetEntry(_ context.Context, entryID string) (*entry.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if se, ok := s.entries[entryID]; ok {
		copied := *se.entry
		return &copied, nil
	}
	return nil, roundledger.ErrEntryNotFound
}

func (s *Store) LatestEntry(_ context.Context, golferID string) (*entry.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *storedEntry
	for _, se := range s.entries {
		if se.entry.GolferID != golferID {
			continue
		}
		if latest == nil ||
			se.entry.CreatedAt.After(latest.entry.CreatedAt) ||
			(se.entry.CreatedAt.Equal(latest.entry.CreatedAt) && se.seq > latest.seq) {
			latest = se
		}
	}

	if latest == nil {
		return nil, roundledger.ErrNoLedgerHistory
	}

	copied := *latest.entry
	return &copied, nil
}

func (s *Store) PutEntry(_ context.Context, e *entry.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *e
	s.seq++
	s.entries[e.ID] = &storedEntry{entry: &copied, seq: s.seq}
	return nil
}

func (s *Store) ListFees(_ context.Context) ([]fee.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]fee.Record(nil), s.fees...), nil
}

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }
