// Package fee defines the fee schedule reference data and its in-memory snapshot.
package fee

import (
	"errors"
	"fmt"

	"github.com/fairwaylabs/roundledger/types"
)

// ErrNotFound is returned when no fee is configured for an (entity, kind)
// pair. A missing fee fails the invocation; no amount is ever defaulted.
var ErrNotFound = errors.New("roundledger/fee: no fee configured")

// Kind is the fee tier key derived from a round's size.
type Kind string

const (
	Kind18Holes Kind = "cost_18Holes"
	Kind9Holes  Kind = "cost_9Holes"
)

// Record is one fee schedule row: what a round of a given size costs for a
// given entity. Records are reference data, loaded once per process and
// treated as read-only for the lifetime of a processing session.
type Record struct {
	types.Entity

	EntityID string       `json:"entity_id"`
	Item     Kind         `json:"item"`
	Cost     types.Tokens `json:"cost"`
}

// KindForHoles maps a hole count to its fee tier: 18 holes bills the 18-hole
// tier, everything else bills the 9-hole tier. This mirrors the upstream fee
// configuration, which only defines those two tiers.
func KindForHoles(holes int) Kind {
	if holes == 18 {
		return Kind18Holes
	}
	return Kind9Holes
}

// StrictKindForHoles is the strict variant of KindForHoles: hole counts other
// than 9 and 18 are rejected instead of defaulted to the 9-hole tier.
func StrictKindForHoles(holes int) (Kind, error) {
	switch holes {
	case 18:
		return Kind18Holes, nil
	case 9:
		return Kind9Holes, nil
	}
	return "", fmt.Errorf("%w: no tier for %d holes", ErrNotFound, holes)
}
