// Package mongo implements store.Store on MongoDB.
//
// Ledger entries and fee records share one collection, discriminated by a
// "type" field. This mirrors the document layout the upstream booking
// platform writes, so the processor can run against the live database.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/fee"
	ledgerstore "github.com/fairwaylabs/roundledger/store"
)

// Document type discriminators within the shared collection.
const (
	docTypeTransaction = "transaction"
	docTypeFee         = "fee"
)

const defaultCollection = "transactions"

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using the official MongoDB driver.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// Option configures a Store.
type Option func(*config)

type config struct {
	collection string
}

// WithCollection overrides the collection name shared by ledger entries and
// fee records.
func WithCollection(name string) Option {
	return func(c *config) { c.collection = name }
}

// New creates a MongoDB store on the given database.
func New(client *mongo.Client, database string, opts ...Option) *Store {
	cfg := config{collection: defaultCollection}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Store{
		client: client,
		col:    client.Database(database).Collection(cfg.collection),
	}
}

// Connect dials MongoDB and returns a store on the given database.
func Connect(ctx context.Context, uri, database string, opts ...Option) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("roundledger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("roundledger/mongo: ping: %w", err)
	}
	return New(client, database, opts...), nil
}

// Migrate creates the indexes the processor's queries rely on.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, migrationIndexes())
	if err != nil {
		return fmt.Errorf("roundledger/mongo: migrate indexes: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the database.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Store) GetEntry(ctx context.Context, entryID string) (*entry.LedgerEntry, error) {
	var m entryModel
	err := s.col.FindOne(ctx, bson.M{"_id": entryID, "type": docTypeTransaction}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, roundledger.ErrEntryNotFound
		}
		return nil, fmt.Errorf("roundledger/mongo: get entry: %w", err)
	}
	return fromEntryModel(&m), nil
}

func (s *Store) LatestEntry(ctx context.Context, golferID string) (*entry.LedgerEntry, error) {
	var m entryModel
	err := s.col.FindOne(ctx,
		bson.M{"type": docTypeTransaction, "golfer_id": golferID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, roundledger.ErrNoLedgerHistory
		}
		return nil, fmt.Errorf("roundledger/mongo: latest entry: %w", err)
	}
	return fromEntryModel(&m), nil
}

func (s *Store) PutEntry(ctx context.Context, e *entry.LedgerEntry) error {
	m := toEntryModel(e)
	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": m.ID},
		m,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("roundledger/mongo: put entry: %w", err)
	}
	return nil
}

func (s *Store) ListFees(ctx context.Context) ([]fee.Record, error) {
	cursor, err := s.col.Find(ctx, bson.M{"type": docTypeFee})
	if err != nil {
		return nil, fmt.Errorf("roundledger/mongo: list fees: %w", err)
	}
	defer cursor.Close(ctx)

	var models []feeModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("roundledger/mongo: list fees decode: %w", err)
	}

	result := make([]fee.Record, len(models))
	for i := range models {
		result[i] = fromFeeModel(&models[i])
	}
	return result, nil
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for the shared collection.
func migrationIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "golfer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "entity_id", Value: 1}}},
	}
}
