package fee

import (
	"fmt"

	"github.com/fairwaylabs/roundledger/types"
)

// Schedule is an immutable snapshot of the fee reference data.
//
// A Schedule is built once from the store's fee records and then shared
// freely: it has no mutable state, so concurrent lookups need no locking.
// Administrative fee changes only take effect in new snapshots, which in
// practice means new processes.
type Schedule struct {
	costs map[scheduleKey]types.Tokens
}

type scheduleKey struct {
	entityID string
	item     Kind
}

// NewSchedule builds a snapshot from fee records. Later records win when the
// same (entity, kind) pair appears twice, matching last-write-wins reads of
// the underlying reference data.
func NewSchedule(records []Record) *Schedule {
	costs := make(map[scheduleKey]types.Tokens, len(records))
	for _, r := range records {
		costs[scheduleKey{entityID: r.EntityID, item: r.Item}] = r.Cost
	}
	return &Schedule{costs: costs}
}

// Len returns the number of configured (entity, kind) pairs.
func (s *Schedule) Len() int {
	return len(s.costs)
}

// CostForKind returns the configured cost for an entity and fee tier.
func (s *Schedule) CostForKind(entityID string, kind Kind) (types.Tokens, error) {
	cost, ok := s.costs[scheduleKey{entityID: entityID, item: kind}]
	if !ok {
		return 0, fmt.Errorf("%w: entity %s, item %s", ErrNotFound, entityID, kind)
	}
	return cost, nil
}

// CostFor returns the configured cost for an entity and hole count, using the
// default tier mapping (18 holes, else the 9-hole tier).
func (s *Schedule) CostFor(entityID string, holes int) (types.Tokens, error) {
	return s.CostForKind(entityID, KindForHoles(holes))
}
