package audithook

import (
	"context"
	"errors"
	"testing"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/types"
)

type captureRecorder struct {
	events []*AuditEvent
	err    error
}

func (r *captureRecorder) Record(_ context.Context, evt *AuditEvent) error {
	r.events = append(r.events, evt)
	return r.err
}

func chargeEvent() *event.RoundEvent {
	return &event.RoundEvent{
		TaskType: event.TaskCalcRoundFee,
		EntityID: "entity-1",
		GolferID: "golfer-1",
		Round: &event.Round{
			ID:       "round-1",
			EntityID: "entity-1",
		},
	}
}

func TestOnDecisionActions(t *testing.T) {
	tests := []struct {
		name       string
		decision   roundledger.Decision
		wantAction string
		wantOut    string
	}{
		{
			name:       "charge",
			decision:   roundledger.Decision{Action: roundledger.ActionCharge, Cost: 10},
			wantAction: ActionRoundCharged,
			wantOut:    OutcomeSuccess,
		},
		{
			name:       "already charged",
			decision:   roundledger.Decision{Action: roundledger.ActionAlreadyCharged},
			wantAction: ActionRoundAlreadyCharged,
			wantOut:    OutcomeSuccess,
		},
		{
			name:       "skip",
			decision:   roundledger.Decision{Action: roundledger.ActionSkip, Reason: "entity not billable"},
			wantAction: ActionRoundSkipped,
			wantOut:    OutcomeSuccess,
		},
		{
			name:       "anomaly",
			decision:   roundledger.Decision{Action: roundledger.ActionAnomaly, Err: roundledger.ErrInconsistentLedger},
			wantAction: ActionAnomalyDetected,
			wantOut:    OutcomeFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &captureRecorder{}
			ext := New(rec)

			if err := ext.OnDecision(context.Background(), chargeEvent(), tt.decision); err != nil {
				t.Fatalf("OnDecision: %v", err)
			}

			if len(rec.events) != 1 {
				t.Fatalf("recorded %d events, want 1", len(rec.events))
			}
			got := rec.events[0]
			if got.Action != tt.wantAction {
				t.Errorf("action: got %s, want %s", got.Action, tt.wantAction)
			}
			if got.Outcome != tt.wantOut {
				t.Errorf("outcome: got %s, want %s", got.Outcome, tt.wantOut)
			}
			if got.ResourceID != "round-1" {
				t.Errorf("resource id: got %s, want round-1", got.ResourceID)
			}
		})
	}
}

func TestOnEntryWritten(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec)

	le := &entry.LedgerEntry{
		ID:              "entry-1",
		GolferID:        "golfer-1",
		Value:           types.Tokens(10),
		AvailableTokens: types.Tokens(90),
	}

	if err := ext.OnEntryWritten(context.Background(), le); err != nil {
		t.Fatalf("OnEntryWritten: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}
	got := rec.events[0]
	if got.Action != ActionEntryWritten {
		t.Errorf("action: got %s, want %s", got.Action, ActionEntryWritten)
	}
	if got.ResourceID != "entry-1" {
		t.Errorf("resource id: got %s, want entry-1", got.ResourceID)
	}
	if got.Metadata["value"] != int64(10) {
		t.Errorf("value metadata: got %v, want 10", got.Metadata["value"])
	}
}

func TestRecorderFailureNotPropagated(t *testing.T) {
	rec := &captureRecorder{err: errors.New("backend down")}
	ext := New(rec)

	d := roundledger.Decision{Action: roundledger.ActionCharge, Cost: 5}
	if err := ext.OnDecision(context.Background(), chargeEvent(), d); err != nil {
		t.Errorf("OnDecision should swallow recorder errors, got %v", err)
	}
}

func TestDisabledActions(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec, WithDisabledActions(ActionRoundSkipped))

	skip := roundledger.Decision{Action: roundledger.ActionSkip, Reason: "admin-originated round"}
	if err := ext.OnDecision(context.Background(), chargeEvent(), skip); err != nil {
		t.Fatalf("OnDecision: %v", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("disabled action recorded %d events, want 0", len(rec.events))
	}

	charge := roundledger.Decision{Action: roundledger.ActionCharge, Cost: 5}
	if err := ext.OnDecision(context.Background(), chargeEvent(), charge); err != nil {
		t.Fatalf("OnDecision: %v", err)
	}
	if len(rec.events) != 1 {
		t.Errorf("enabled action recorded %d events, want 1", len(rec.events))
	}
}

func TestNonDecisionPayloadIgnored(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec)

	if err := ext.OnDecision(context.Background(), nil, "not a decision"); err != nil {
		t.Fatalf("OnDecision: %v", err)
	}
	if err := ext.OnEntryWritten(context.Background(), 42); err != nil {
		t.Fatalf("OnEntryWritten: %v", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("recorded %d events for foreign payloads, want 0", len(rec.events))
	}
}
