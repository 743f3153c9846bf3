// Package sqlite implements store.Store on SQLite. It suits single-node
// deployments and local development where running PostgreSQL or MongoDB is
// overkill.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/fee"
	ledgerstore "github.com/fairwaylabs/roundledger/store"
	"github.com/fairwaylabs/roundledger/types"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New wraps an open SQLite database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if necessary) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("roundledger/sqlite: open: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return New(db), nil
}

// DB returns the underlying database handle for direct access.
func (s *Store) DB() *sql.DB { return s.db }

// Migrate creates the required tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("roundledger/sqlite: migrate: %w", err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const entryColumns = `id, entity_id, golfer_id, golfer_email, golfer_first_name, golfer_last_name,
	available_tokens, value, kind, type_name, note, third_party_round_id, source,
	created_at, updated_at`

func (s *Store) GetEntry(ctx context.Context, entryID string) (*entry.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries WHERE id = ?`, entryID)

	e, err := scanEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, roundledger.ErrEntryNotFound
		}
		return nil, fmt.Errorf("roundledger/sqlite: get entry: %w", err)
	}
	return e, nil
}

func (s *Store) LatestEntry(ctx context.Context, golferID string) (*entry.LedgerEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM ledger_entries
		 WHERE golfer_id = ?
		 ORDER BY created_at DESC
		 LIMIT 1`, golferID)

	e, err := scanEntry(row)
	if err != nil {
		if isNoRows(err) {
			return nil, roundledger.ErrNoLedgerHistory
		}
		return nil, fmt.Errorf("roundledger/sqlite: latest entry: %w", err)
	}
	return e, nil
}

func (s *Store) PutEntry(ctx context.Context, e *entry.LedgerEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (`+entryColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			entity_id = excluded.entity_id,
			golfer_id = excluded.golfer_id,
			golfer_email = excluded.golfer_email,
			golfer_first_name = excluded.golfer_first_name,
			golfer_last_name = excluded.golfer_last_name,
			available_tokens = excluded.available_tokens,
			value = excluded.value,
			kind = excluded.kind,
			type_name = excluded.type_name,
			note = excluded.note,
			third_party_round_id = excluded.third_party_round_id,
			source = excluded.source,
			updated_at = excluded.updated_at`,
		e.ID, e.EntityID, e.GolferID, e.GolferEmail, e.GolferFirstName, e.GolferLastName,
		e.AvailableTokens.Int64(), e.Value.Int64(), string(e.Kind),
		e.TypeName, e.Note, e.ThirdPartyRoundID, string(e.Source),
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("roundledger/sqlite: put entry: %w", err)
	}
	return nil
}

func (s *Store) ListFees(ctx context.Context) ([]fee.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, item, cost, created_at, updated_at FROM fee_schedule`)
	if err != nil {
		return nil, fmt.Errorf("roundledger/sqlite: list fees: %w", err)
	}
	defer rows.Close()

	var result []fee.Record
	for rows.Next() {
		var (
			r    fee.Record
			item string
			cost int64
		)
		if err := rows.Scan(&r.EntityID, &item, &cost, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("roundledger/sqlite: scan fee: %w", err)
		}
		r.Item = fee.Kind(item)
		r.Cost = types.Tokens(cost)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roundledger/sqlite: list fees: %w", err)
	}
	return result, nil
}

// scanEntry reads one ledger entry row in entryColumns order.
func scanEntry(row *sql.Row) (*entry.LedgerEntry, error) {
	var (
		e               entry.LedgerEntry
		availableTokens int64
		value           int64
		kind            string
		source          string
	)
	err := row.Scan(
		&e.ID, &e.EntityID, &e.GolferID, &e.GolferEmail, &e.GolferFirstName, &e.GolferLastName,
		&availableTokens, &value, &kind, &e.TypeName, &e.Note, &e.ThirdPartyRoundID, &source,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.AvailableTokens = types.Tokens(availableTokens)
	e.Value = types.Tokens(value)
	e.Kind = entry.Kind(kind)
	e.Source = event.Source(source)
	return &e, nil
}

// isNoRows checks if an error wraps sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
