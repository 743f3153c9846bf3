// Package audithook bridges charge engine decisions to an audit trail
// backend.
//
// It defines a local Recorder interface so the package does not depend on any
// particular backend. Callers inject a RecorderFunc adapter at wiring time —
// typically one that publishes to a Kafka audit topic.
package audithook

import (
	"context"
	"log/slog"

	"github.com/fairwaylabs/roundledger"
	"github.com/fairwaylabs/roundledger/entry"
	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/hook"
)

// Compile-time interface checks.
var (
	_ hook.Hook           = (*Extension)(nil)
	_ hook.OnDecision     = (*Extension)(nil)
	_ hook.OnAnomaly      = (*Extension)(nil)
	_ hook.OnEntryWritten = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// AuditEvent is a backend-neutral audit record.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Extension records every charge decision, anomaly, and ledger write.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements hook.Hook.
func (e *Extension) Name() string { return "audit-hook" }

// OnDecision implements hook.OnDecision.
func (e *Extension) OnDecision(ctx context.Context, ev, decision any) error {
	re, _ := ev.(*event.RoundEvent)
	d, ok := decision.(roundledger.Decision)
	if !ok {
		return nil
	}

	action, severity := actionForDecision(d)
	meta := map[string]any{"reason": d.Reason}
	var resourceID string
	if re != nil {
		meta["entity_id"] = re.EntityID
		meta["golfer_id"] = re.GolferID
		if re.Round != nil {
			resourceID = re.Round.ID
			meta["transaction_id"] = re.Round.TransactionID
		}
	}
	if d.Action == roundledger.ActionCharge {
		meta["cost"] = d.Cost.Int64()
	}

	outcome := OutcomeSuccess
	if d.Action == roundledger.ActionAnomaly {
		outcome = OutcomeFailure
	}

	return e.record(ctx, action, severity, outcome, ResourceRound, resourceID, meta, d.Err)
}

// OnAnomaly implements hook.OnAnomaly.
func (e *Extension) OnAnomaly(ctx context.Context, ev, decision any) error {
	re, _ := ev.(*event.RoundEvent)
	d, ok := decision.(roundledger.Decision)
	if !ok {
		return nil
	}

	meta := map[string]any{
		"reason":     d.Reason,
		"anomaly_id": d.AnomalyID.String(),
	}
	var resourceID string
	if re != nil && re.Round != nil {
		resourceID = re.Round.ID
		meta["transaction_id"] = re.Round.TransactionID
	}

	return e.record(ctx, ActionAnomalyDetected, SeverityCritical, OutcomeFailure,
		ResourceRound, resourceID, meta, d.Err)
}

// OnEntryWritten implements hook.OnEntryWritten.
func (e *Extension) OnEntryWritten(ctx context.Context, written any) error {
	le, ok := written.(*entry.LedgerEntry)
	if !ok {
		return nil
	}

	meta := map[string]any{
		"golfer_id":        le.GolferID,
		"entity_id":        le.EntityID,
		"value":            le.Value.Int64(),
		"available_tokens": le.AvailableTokens.Int64(),
	}

	return e.record(ctx, ActionEntryWritten, SeverityInfo, OutcomeSuccess,
		ResourceLedgerEntry, le.ID, meta, nil)
}

// actionForDecision maps a decision outcome to an audit action and severity.
func actionForDecision(d roundledger.Decision) (action, severity string) {
	switch d.Action {
	case roundledger.ActionCharge:
		return ActionRoundCharged, SeverityInfo
	case roundledger.ActionAlreadyCharged:
		return ActionRoundAlreadyCharged, SeverityInfo
	case roundledger.ActionAnomaly:
		return ActionAnomalyDetected, SeverityCritical
	default:
		return ActionRoundSkipped, SeverityInfo
	}
}

// record builds and sends an audit event if the action is enabled. Recorder
// failures are logged, never propagated: the audit trail must not disturb the
// charge protocol.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID string,
	meta map[string]any,
	err error,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
		Metadata:   meta,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
