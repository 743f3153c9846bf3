package mongo

import (
	"time"

	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/fee"
	"github.com/fairwaylabs/roundledger/types"
)

// ==================== Ledger entry models ====================

type entryModel struct {
	ID   string `bson:"_id"`
	Type string `bson:"type"`

	EntityID string `bson:"entity_id"`

	GolferID        string `bson:"golfer_id"`
	GolferEmail     string `bson:"golfer_email,omitempty"`
	GolferFirstName string `bson:"golfer_first_name,omitempty"`
	GolferLastName  string `bson:"golfer_last_name,omitempty"`

	AvailableTokens int64  `bson:"available_tokens"`
	Value           int64  `bson:"value"`
	Kind            string `bson:"kind"`

	TypeName          string `bson:"type_name,omitempty"`
	Note              string `bson:"note,omitempty"`
	ThirdPartyRoundID string `bson:"third_party_round_id,omitempty"`
	Source            string `bson:"source,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toEntryModel(e *entry.LedgerEntry) *entryModel {
	return &entryModel{
		ID:                e.ID,
		Type:              docTypeTransaction,
		EntityID:          e.EntityID,
		GolferID:          e.GolferID,
		GolferEmail:       e.GolferEmail,
		GolferFirstName:   e.GolferFirstName,
		GolferLastName:    e.GolferLastName,
		AvailableTokens:   e.AvailableTokens.Int64(),
		Value:             e.Value.Int64(),
		Kind:              string(e.Kind),
		TypeName:          e.TypeName,
		Note:              e.Note,
		ThirdPartyRoundID: e.ThirdPartyRoundID,
		Source:            string(e.Source),
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func fromEntryModel(m *entryModel) *entry.LedgerEntry {
	return &entry.LedgerEntry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:                m.ID,
		EntityID:          m.EntityID,
		GolferID:          m.GolferID,
		GolferEmail:       m.GolferEmail,
		GolferFirstName:   m.GolferFirstName,
		GolferLastName:    m.GolferLastName,
		AvailableTokens:   types.Tokens(m.AvailableTokens),
		Value:             types.Tokens(m.Value),
		Kind:              entry.Kind(m.Kind),
		TypeName:          m.TypeName,
		Note:              m.Note,
		ThirdPartyRoundID: m.ThirdPartyRoundID,
		Source:            event.Source(m.Source),
	}
}

// ==================== Fee models ====================

type feeModel struct {
	ID   string `bson:"_id"`
	Type string `bson:"type"`

	EntityID string `bson:"entity_id"`
	Item     string `bson:"item"`
	Cost     int64  `bson:"cost"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func fromFeeModel(m *feeModel) fee.Record {
	return fee.Record{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		EntityID: m.EntityID,
		Item:     fee.Kind(m.Item),
		Cost:     types.Tokens(m.Cost),
	}
}
