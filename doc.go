// Package roundledger charges round fees against an append-only token ledger,
// exactly once per round, from an at-least-once delivery queue.
//
// The hard part is not the arithmetic but the duplicates: the queue may
// deliver the same round event any number of times, and the ledger store only
// promises eventual consistency for reads after writes. The engine therefore
// implements a single linear decision per event — skip, already charged,
// charge, or anomaly — whose safety does not depend on transport behavior:
//
//   - A round carrying a transaction id is the sender's claim that it was
//     already charged. The engine verifies the claim with a point lookup
//     against the ledger: a linked debit short-circuits to AlreadyCharged, a
//     linked non-debit or a missing entry is surfaced as an anomaly and never
//     written over.
//   - A round without a transaction id, for a billable entity and a
//     non-admin source, is charged: the fee comes from an immutable fee
//     schedule snapshot, the balance from the golfer's latest ledger entry,
//     and exactly one new debit entry is appended under a freshly generated
//     id that cannot collide with existing records.
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/fairwaylabs/roundledger"
//	    "github.com/fairwaylabs/roundledger/store/mongo"
//	)
//
//	st := mongo.New(client, "ledgerdb", "ledger")
//
//	engine := roundledger.New(st,
//	    roundledger.WithBillableEntities("adceb3ea-52b8-4fa9-8279-633beca45417"),
//	)
//
//	if err := engine.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Stop()
//
//	decision, err := engine.Process(ctx, ev)
//
// Process is safe to invoke repeatedly with the same input: once the first
// debit for a round is visible, every redelivery resolves to AlreadyCharged.
//
// # Consistency model
//
// Two racing deliveries of the same round can both pass the duplicate check
// before the first write becomes visible; that window is accepted and bounded
// by the store's consistency model. There is no in-process lock across
// invocations and no internal retry: fatal errors abort the invocation so the
// transport's redelivery policy re-drives it.
//
// All token amounts use integer arithmetic (types.Tokens); fractional tokens
// do not exist in the ledger schema.
package roundledger
