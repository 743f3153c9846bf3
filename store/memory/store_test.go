package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/fee"
	"github.com/fairwaylabs/roundledger/types"
)

func newEntry(id, golferID string, createdAt time.Time, balance types.Tokens) *entry.LedgerEntry {
	return &entry.LedgerEntry{
		Entity:          types.NewEntityAt(createdAt),
		ID:              id,
		GolferID:        golferID,
		AvailableTokens: balance,
		Kind:            entry.KindDebit,
	}
}

func TestGetEntry(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetEntry(ctx, "missing"); !errors.Is(err, roundledger.ErrEntryNotFound) {
		t.Errorf("missing entry: got %v, want ErrEntryNotFound", err)
	}

	now := time.Now().UTC()
	if err := s.PutEntry(ctx, newEntry("e1", "g1", now, 100)); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}

	got, err := s.GetEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.GolferID != "g1" || got.AvailableTokens != 100 {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestLatestEntryOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Now().UTC()

	entries := []*entry.LedgerEntry{
		newEntry("e1", "g1", base, 100),
		newEntry("e2", "g1", base.Add(time.Minute), 90),
		newEntry("e3", "g1", base.Add(-time.Minute), 110),
		newEntry("other", "g2", base.Add(time.Hour), 5),
	}
	for _, e := range entries {
		if err := s.PutEntry(ctx, e); err != nil {
			t.Fatalf("PutEntry: %v", err)
		}
	}

	latest, err := s.LatestEntry(ctx, "g1")
	if err != nil {
		t.Fatalf("LatestEntry: %v", err)
	}
	if latest.ID != "e2" {
		t.Errorf("latest: got %s, want e2", latest.ID)
	}
	if latest.AvailableTokens != 90 {
		t.Errorf("balance: got %v, want 90", latest.AvailableTokens)
	}
}

func TestLatestEntryTieBreaksByInsertion(t *testing.T) {
	ctx := context.Background()
	s := New()
	at := time.Now().UTC()

	if err := s.PutEntry(ctx, newEntry("first", "g1", at, 100)); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}
	if err := s.PutEntry(ctx, newEntry("second", "g1", at, 90)); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}

	latest, err := s.LatestEntry(ctx, "g1")
	if err != nil {
		t.Fatalf("LatestEntry: %v", err)
	}
	if latest.ID != "second" {
		t.Errorf("latest: got %s, want second", latest.ID)
	}
}

func TestLatestEntryNoHistory(t *testing.T) {
	s := New()
	if _, err := s.LatestEntry(context.Background(), "nobody"); !errors.Is(err, roundledger.ErrNoLedgerHistory) {
		t.Errorf("got %v, want ErrNoLedgerHistory", err)
	}
}

func TestPutEntryUpsertsByID(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	if err := s.PutEntry(ctx, newEntry("e1", "g1", now, 100)); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}
	if err := s.PutEntry(ctx, newEntry("e1", "g1", now, 42)); err != nil {
		t.Fatalf("PutEntry: %v", err)
	}

	if got := len(s.Entries()); got != 1 {
		t.Fatalf("entries: got %d, want 1", got)
	}
	e, err := s.GetEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e.AvailableTokens != 42 {
		t.Errorf("balance: got %v, want 42", e.AvailableTokens)
	}
}

func TestListFees(t *testing.T) {
	ctx := context.Background()
	s := New()

	fees, err := s.ListFees(ctx)
	if err != nil {
		t.Fatalf("ListFees: %v", err)
	}
	if len(fees) != 0 {
		t.Errorf("expected empty schedule, got %d records", len(fees))
	}

	s.SeedFees(
		fee.Record{EntityID: "ent", Item: fee.Kind18Holes, Cost: 10},
		fee.Record{EntityID: "ent", Item: fee.Kind9Holes, Cost: 5},
	)

	fees, err = s.ListFees(ctx)
	if err != nil {
		t.Fatalf("ListFees: %v", err)
	}
	if len(fees) != 2 {
		t.Errorf("got %d records, want 2", len(fees))
	}
}
