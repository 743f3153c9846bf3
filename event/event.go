// Package event defines the inbound round event consumed from the billing queue.
package event

import (
	"encoding/json"
	"fmt"

	"github.com/fairwaylabs/roundledger/types"
)

// TaskType classifies what the queue message asks the processor to do.
// Only TaskCalcRoundFee is handled; every other value is an explicit no-op.
type TaskType string

const (
	// TaskCalcRoundFee asks for a round fee to be charged.
	TaskCalcRoundFee TaskType = "calc_round_fee"
)

// Source identifies where a round originated.
type Source string

const (
	// SourceAdminPanel marks rounds entered by back-office staff. Admin
	// originated charges go through a separate flow and are never charged here.
	SourceAdminPanel Source = "admin_panel"

	// SourceMobileApp marks rounds submitted from the player app.
	SourceMobileApp Source = "mobile_app"
)

// HoleScore is a single hole result inside a round. Only the count of
// hole scores matters for fee resolution; the strokes are carried opaquely.
type HoleScore struct {
	Hole    int `json:"hole"`
	Strokes int `json:"strokes"`
}

// Round is the completed unit of billable activity nested in a RoundEvent.
type Round struct {
	ID string `json:"id"`

	// TransactionID links the round to an existing ledger entry. A non-empty
	// value is the sender's claim that the round has already been charged;
	// it is the idempotency key of the charge protocol.
	TransactionID string `json:"transactionId"`

	EntityID              string      `json:"entityId"`
	HoleScores            []HoleScore `json:"holeScores"`
	OriginalSource        Source      `json:"originalSource"`
	ThirdPartyScorecardID string      `json:"thirdPartyScorecardId"`
}

// Holes returns the number of scored holes in the round.
func (r *Round) Holes() int {
	return len(r.HoleScores)
}

// RoundEvent is one queue message. Events are ephemeral: decoded, processed
// to an outcome, and discarded.
type RoundEvent struct {
	TaskType        TaskType     `json:"taskType"`
	TokenCost       types.Tokens `json:"tokenCost"` // cost proposed by the sender; the fee schedule wins
	EntityID        string       `json:"entityId"`
	GolferID        string       `json:"golferId"`
	GolferEmail     string       `json:"golferEmail"`
	GolferFirstName string       `json:"golferFirstName"`
	GolferLastName  string       `json:"golferLastName"`
	Round           *Round       `json:"round"`
}

// Decode parses a raw queue payload into a RoundEvent.
// Malformed payloads are a transport-level failure: the caller surfaces the
// error and lets the transport's redelivery or dead-letter policy handle it.
func Decode(data []byte) (*RoundEvent, error) {
	var ev RoundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("event: decode: %w", err)
	}
	return &ev, nil
}
