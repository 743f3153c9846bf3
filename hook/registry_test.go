package hook

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type recordingHook struct {
	name      string
	decisions atomic.Int64
	anomalies atomic.Int64
	writes    atomic.Int64
	fail      bool
	panic     bool
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) OnDecision(_ context.Context, _, _ any) error {
	h.decisions.Add(1)
	if h.panic {
		panic("hook exploded")
	}
	if h.fail {
		return errors.New("boom")
	}
	return nil
}

func (h *recordingHook) OnAnomaly(_ context.Context, _, _ any) error {
	h.anomalies.Add(1)
	return nil
}

func (h *recordingHook) OnEntryWritten(_ context.Context, _ any) error {
	h.writes.Add(1)
	return nil
}

type namedOnly struct{ name string }

func (h namedOnly) Name() string { return h.name }

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(namedOnly{name: "audit"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(namedOnly{name: "audit"}); err == nil {
		t.Error("duplicate registration should fail")
	}
	if got := r.Hooks(); len(got) != 1 {
		t.Errorf("Hooks: got %v", got)
	}
}

func TestEmitDispatch(t *testing.T) {
	r := NewRegistry()
	h := &recordingHook{name: "recorder"}
	if err := r.Register(h); err != nil {
		t.Fatalf("Register: %v", err)
	}

	ctx := context.Background()
	r.EmitDecision(ctx, nil, nil)
	r.EmitDecision(ctx, nil, nil)
	r.EmitAnomaly(ctx, nil, nil)
	r.EmitEntryWritten(ctx, nil)

	if got := h.decisions.Load(); got != 2 {
		t.Errorf("decisions: got %d, want 2", got)
	}
	if got := h.anomalies.Load(); got != 1 {
		t.Errorf("anomalies: got %d, want 1", got)
	}
	if got := h.writes.Load(); got != 1 {
		t.Errorf("writes: got %d, want 1", got)
	}
}

func TestEmitIsolation(t *testing.T) {
	// A failing or panicking hook must not stop dispatch to the others.
	r := NewRegistry()
	bad := &recordingHook{name: "bad", panic: true}
	failing := &recordingHook{name: "failing", fail: true}
	good := &recordingHook{name: "good"}

	for _, h := range []Hook{bad, failing, good} {
		if err := r.Register(h); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	r.EmitDecision(context.Background(), nil, nil)

	if got := good.decisions.Load(); got != 1 {
		t.Errorf("good hook decisions: got %d, want 1", got)
	}
}

func TestHookWithoutInterfacesIsNeverCalled(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(namedOnly{name: "inert"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Must not panic or dispatch anywhere.
	ctx := context.Background()
	r.EmitDecision(ctx, nil, nil)
	r.EmitAnomaly(ctx, nil, nil)
	r.EmitEntryWritten(ctx, nil)
	r.EmitInit(ctx, nil)
	r.EmitShutdown(ctx)
}
