package event

import (
	"testing"

	"github.com/fairwaylabs/roundledger/types"
)

func TestDecode(t *testing.T) {
	payload := []byte(`{
		"taskType": "calc_round_fee",
		"tokenCost": 10,
		"entityId": "entity-1",
		"golferId": "golfer-1",
		"golferEmail": "sam@example.com",
		"golferFirstName": "Sam",
		"golferLastName": "Putter",
		"round": {
			"id": "round-1",
			"transactionId": "",
			"entityId": "entity-1",
			"originalSource": "mobile_app",
			"thirdPartyScorecardId": "scorecard-9",
			"holeScores": [
				{"hole": 1, "strokes": 4},
				{"hole": 2, "strokes": 5}
			]
		}
	}`)

	ev, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if ev.TaskType != TaskCalcRoundFee {
		t.Errorf("TaskType: got %q", ev.TaskType)
	}
	if ev.TokenCost != types.Tokens(10) {
		t.Errorf("TokenCost: got %v", ev.TokenCost)
	}
	if ev.Round == nil {
		t.Fatal("Round is nil")
	}
	if ev.Round.OriginalSource != SourceMobileApp {
		t.Errorf("OriginalSource: got %q", ev.Round.OriginalSource)
	}
	if got := ev.Round.Holes(); got != 2 {
		t.Errorf("Holes: got %d, want 2", got)
	}
	if ev.Round.ThirdPartyScorecardID != "scorecard-9" {
		t.Errorf("ThirdPartyScorecardID: got %q", ev.Round.ThirdPartyScorecardID)
	}
}

func TestDecodeMissingRound(t *testing.T) {
	ev, err := Decode([]byte(`{"taskType": "calc_round_fee"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.Round != nil {
		t.Error("Round should be nil when absent from the payload")
	}
}

func TestDecodeUnknownTaskType(t *testing.T) {
	// Unknown task types decode fine; the engine skips them.
	ev, err := Decode([]byte(`{"taskType": "recalc_handicap", "round": {"id": "r"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.TaskType == TaskCalcRoundFee {
		t.Error("unexpected task type match")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"truncated", `{"taskType": "calc`},
		{"wrong type", `{"tokenCost": "ten"}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.payload)); err == nil {
				t.Error("expected decode error")
			}
		})
	}
}
