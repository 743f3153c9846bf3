package audithook

// Action constants for audit events.
const (
	ActionRoundCharged        = "round.charged"
	ActionRoundAlreadyCharged = "round.already_charged"
	ActionRoundSkipped        = "round.skipped"
	ActionAnomalyDetected     = "anomaly.detected"
	ActionEntryWritten        = "ledger.entry_written"
)

// Resource constants for audit events.
const (
	ResourceRound       = "round"
	ResourceLedgerEntry = "ledger_entry"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
