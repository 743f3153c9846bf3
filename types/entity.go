package types

import "time"

// Entity is the base type for persisted RoundLedger records with timestamps.
// Embed this in domain types to get consistent timestamp handling.
//
// Ledger entries are append-only: UpdatedAt equals CreatedAt for their whole
// lifetime and exists only because the store schema reserves the column.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEntity creates a new Entity with current timestamps.
func NewEntity() Entity {
	return NewEntityAt(time.Now().UTC())
}

// NewEntityAt creates an Entity stamped with the given time.
func NewEntityAt(now time.Time) Entity {
	return Entity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Age returns how long ago the entity was created.
func (e Entity) Age() time.Duration {
	return time.Since(e.CreatedAt)
}
