package roundledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylabs/roundledger/event"
	"github.com/fairwaylabs/roundledger/fee"
	"github.com/fairwaylabs/roundledger/hook"
	"github.com/fairwaylabs/roundledger/id"
	"github.com/fairwaylabs/roundledger/store"
	"github.com/fairwaylabs/roundledger/types"
)

// Engine is the charge decision engine.
type Engine struct {
	store  store.Store
	hooks  *hook.Registry
	logger *slog.Logger

	billable    map[string]struct{}
	strictHoles bool
	now         func() time.Time

	// Fee schedule snapshot: loaded at most once per Engine, immutable
	// afterward. Concurrent reads are lock-free; only the load serializes.
	scheduleMu sync.Mutex
	schedule   *fee.Schedule
}

// New creates a new Engine backed by the given store.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    s,
		hooks:    hook.NewRegistry(),
		logger:   slog.Default(),
		billable: make(map[string]struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(e)
	}

	e.hooks.WithLogger(e.logger)

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBillableEntities sets the entities whose rounds are eligible for
// automatic charging. Rounds for any other entity are skipped, so an engine
// with no billable entities charges nothing.
func WithBillableEntities(entityIDs ...string) Option {
	return func(e *Engine) {
		for _, entityID := range entityIDs {
			e.billable[entityID] = struct{}{}
		}
	}
}

// WithHook registers a hook.
func WithHook(h hook.Hook) Option {
	return func(e *Engine) {
		_ = e.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// WithStrictHoleCounts rejects rounds whose hole count is neither 9 nor 18
// instead of billing them at the 9-hole tier.
func WithStrictHoleCounts() Option {
	return func(e *Engine) {
		e.strictHoles = true
	}
}

// WithSchedule injects a pre-built fee schedule snapshot, skipping the lazy
// load from the store.
func WithSchedule(s *fee.Schedule) Option {
	return func(e *Engine) {
		e.schedule = s
	}
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Start checks connectivity, prepares the store schema, and initializes hooks.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.hooks.EmitInit(ctx, e)

	e.logger.Info("roundledger engine started",
		"billable_entities", len(e.billable),
		"strict_hole_counts", e.strictHoles,
	)

	return nil
}

// Stop shuts down the engine.
func (e *Engine) Stop() error {
	e.hooks.EmitShutdown(context.Background())
	return e.store.Close()
}

// Decide runs the charge decision protocol for one round event without
// writing anything. It reads the ledger (duplicate lookup) and the fee
// schedule, and returns what should happen: Skip, AlreadyCharged,
// Charge(cost), or Anomaly.
//
// The returned error is fatal (store failure, missing fee); anomalies are not
// errors here — they complete the invocation and ride inside the Decision.
func (e *Engine) Decide(ctx context.Context, ev *event.RoundEvent) (Decision, error) {
	if ev == nil || ev.TaskType != event.TaskCalcRoundFee {
		return Decision{Action: ActionSkip, Reason: "task type not handled"}, nil
	}

	round := ev.Round
	if round == nil {
		return Decision{Action: ActionSkip, Reason: "event carries no round"}, nil
	}

	// The transaction id, when present, must be a well-formed UUID. A garbled
	// id is treated as "already referenced": charging against it could double
	// charge the golfer, so nothing is written.
	txnID := strings.TrimSpace(round.TransactionID)
	if txnID != "" {
		if err := uuid.Validate(txnID); err != nil {
			return e.anomaly(ErrMalformedTransactionID,
				fmt.Sprintf("round %s: transaction id %q is not a UUID", round.ID, txnID)), nil
		}
	}

	switch {
	case !e.billableEntity(round.EntityID):
		return Decision{Action: ActionSkip, Reason: "entity not billable"}, nil
	case round.OriginalSource == event.SourceAdminPanel:
		return Decision{Action: ActionSkip, Reason: "admin-originated round"}, nil
	}

	if txnID != "" {
		linked, err := e.lookupLinkedEntry(ctx, txnID)
		switch {
		case errors.Is(err, ErrEntryNotFound):
			return e.anomaly(ErrInconsistentLedger,
				fmt.Sprintf("round %s claims transaction %s but no entry exists", round.ID, txnID)), nil
		case err != nil:
			return Decision{}, err
		case linked.IsDebit():
			return Decision{Action: ActionAlreadyCharged}, nil
		default:
			return e.anomaly(ErrUnexpectedEntryKind,
				fmt.Sprintf("round %s links entry %s of kind %q", round.ID, linked.ID, linked.Kind)), nil
		}
	}

	cost, err := e.resolveCost(ctx, round)
	if err != nil {
		return Decision{}, err
	}

	return Decision{Action: ActionCharge, Cost: cost}, nil
}

// Process decides and, for Charge decisions, appends the debit entry. It
// emits hooks and logs at every branch. Safe to invoke repeatedly with the
// same input: redeliveries of an already-charged round resolve to
// AlreadyCharged once the first write is visible.
func (e *Engine) Process(ctx context.Context, ev *event.RoundEvent) (Decision, error) {
	run := id.NewInvocationID()
	logger := e.logger.With("invocation", run.String())

	d, err := e.Decide(ctx, ev)
	if err != nil {
		logger.Error("charge decision failed", "error", err)
		return d, err
	}

	switch d.Action {
	case ActionSkip:
		logger.Debug("round event skipped", "reason", d.Reason)

	case ActionAlreadyCharged:
		logger.Info("debit entry already exists for round",
			"round_id", ev.Round.ID,
			"transaction_id", ev.Round.TransactionID,
			"golfer_id", ev.GolferID,
		)

	case ActionAnomaly:
		logger.Error("ledger anomaly detected",
			"anomaly_id", d.AnomalyID.String(),
			"reason", d.Reason,
			"error", d.Err,
		)
		e.hooks.EmitAnomaly(ctx, ev, d)

	case ActionCharge:
		if err := e.charge(ctx, logger, ev, &d); err != nil {
			return d, err
		}
	}

	e.hooks.EmitDecision(ctx, ev, d)

	return d, nil
}

// charge executes a Charge decision: resolve the balance, append the debit,
// record the written entry on the decision.
func (e *Engine) charge(ctx context.Context, logger *slog.Logger, ev *event.RoundEvent, d *Decision) error {
	balance, err := e.currentBalance(ctx, ev.GolferID)
	if err != nil {
		logger.Error("cannot resolve golfer balance, failing closed",
			"golfer_id", ev.GolferID,
			"error", err,
		)
		return err
	}

	if proposed := ev.TokenCost; !proposed.IsZero() && proposed != d.Cost {
		logger.Warn("event proposed cost disagrees with fee schedule",
			"round_id", ev.Round.ID,
			"proposed", proposed,
			"scheduled", d.Cost,
		)
	}

	written, err := e.appendDebit(ctx, ev, d.Cost, balance)
	if err != nil {
		logger.Error("ledger append failed",
			"round_id", ev.Round.ID,
			"golfer_id", ev.GolferID,
			"error", err,
		)
		return err
	}
	d.Entry = written

	logger.Info("round fee charged",
		"round_id", ev.Round.ID,
		"golfer_id", ev.GolferID,
		"entry_id", written.ID,
		"cost", d.Cost,
		"balance_after", written.AvailableTokens,
	)
	e.hooks.EmitEntryWritten(ctx, written)

	return nil
}

// resolveCost looks up the round's fee in the schedule snapshot, loading the
// snapshot from the store on first use.
func (e *Engine) resolveCost(ctx context.Context, round *event.Round) (types.Tokens, error) {
	schedule, err := e.feeSchedule(ctx)
	if err != nil {
		return 0, err
	}

	if e.strictHoles {
		kind, err := fee.StrictKindForHoles(round.Holes())
		if err != nil {
			return 0, err
		}
		return schedule.CostForKind(round.EntityID, kind)
	}

	return schedule.CostFor(round.EntityID, round.Holes())
}

// feeSchedule returns the schedule snapshot, fetching the fee records once
// per Engine. Two invocations racing on a cold engine serialize here; the
// data is idempotent to reload, so nothing fancier is needed.
func (e *Engine) feeSchedule(ctx context.Context) (*fee.Schedule, error) {
	e.scheduleMu.Lock()
	defer e.scheduleMu.Unlock()

	if e.schedule != nil {
		return e.schedule, nil
	}

	records, err := e.store.ListFees(ctx)
	if err != nil {
		return nil, fmt.Errorf("roundledger: load fee schedule: %w", err)
	}

	e.schedule = fee.NewSchedule(records)
	e.logger.Info("fee schedule loaded", "records", len(records))

	return e.schedule, nil
}

func (e *Engine) billableEntity(entityID string) bool {
	_, ok := e.billable[entityID]
	return ok
}

func (e *Engine) anomaly(sentinel error, reason string) Decision {
	return Decision{
		Action:    ActionAnomaly,
		Reason:    reason,
		AnomalyID: id.NewAnomalyID(),
		Err:       sentinel,
	}
}
