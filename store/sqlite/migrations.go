package sqlite

// migrations run in order; every statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ledger_entries (
    id                   TEXT PRIMARY KEY,
    entity_id            TEXT NOT NULL DEFAULT '',
    golfer_id            TEXT NOT NULL DEFAULT '',
    golfer_email         TEXT NOT NULL DEFAULT '',
    golfer_first_name    TEXT NOT NULL DEFAULT '',
    golfer_last_name     TEXT NOT NULL DEFAULT '',
    available_tokens     INTEGER NOT NULL DEFAULT 0,
    value                INTEGER NOT NULL DEFAULT 0,
    kind                 TEXT NOT NULL DEFAULT '',
    type_name            TEXT NOT NULL DEFAULT '',
    note                 TEXT NOT NULL DEFAULT '',
    third_party_round_id TEXT NOT NULL DEFAULT '',
    source               TEXT NOT NULL DEFAULT '',
    created_at           TIMESTAMP NOT NULL,
    updated_at           TIMESTAMP NOT NULL
)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_golfer ON ledger_entries (golfer_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_entity ON ledger_entries (entity_id)`,

	`CREATE TABLE IF NOT EXISTS fee_schedule (
    entity_id  TEXT NOT NULL,
    item       TEXT NOT NULL,
    cost       INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (entity_id, item)
)`,
}
