// Package hook provides an extensible hook system for the charge engine.
// Hooks observe decision outcomes and ledger writes to extend functionality
// (audit trails, metrics, alerting) without touching the charge protocol.
package hook

import (
	"context"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Hook
	OnInit(ctx context.Context, engine any) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Hook
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Charge protocol hooks
// ──────────────────────────────────────────────────
//
// Payloads are passed as `any` to keep this package free of a dependency on
// the root package: event is a *event.RoundEvent and decision a
// roundledger.Decision.

// OnDecision is called after every decided invocation, whatever the outcome.
type OnDecision interface {
	Hook
	OnDecision(ctx context.Context, event, decision any) error
}

// OnAnomaly is called when a decision surfaces a ledger inconsistency.
type OnAnomaly interface {
	Hook
	OnAnomaly(ctx context.Context, event, decision any) error
}

// OnEntryWritten is called after a debit entry is successfully appended.
type OnEntryWritten interface {
	Hook
	OnEntryWritten(ctx context.Context, entry any) error
}
