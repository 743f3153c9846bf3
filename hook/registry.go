package hook

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry manages registered hooks and dispatches engine events to them.
// Interface lists are cached at registration time so dispatch is a slice walk.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	// Type-cached hook lists for dispatch
	onInit         []OnInit
	onShutdown     []OnShutdown
	onDecision     []OnDecision
	onAnomaly      []OnAnomaly
	onEntryWritten []OnEntryWritten
}

// NewRegistry creates a new hook registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := h.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := h.(OnDecision); ok {
		r.onDecision = append(r.onDecision, v)
	}
	if v, ok := h.(OnAnomaly); ok {
		r.onAnomaly = append(r.onAnomaly, v)
	}
	if v, ok := h.(OnEntryWritten); ok {
		r.onEntryWritten = append(r.onEntryWritten, v)
	}

	return nil
}

// Hooks returns the names of all registered hooks.
func (r *Registry) Hooks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		names[i] = h.Name()
	}
	return names
}

// EmitInit calls OnInit for all hooks that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine any) {
	r.mu.RLock()
	hooks := r.onInit
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.call(ctx, h.Name(), func() error {
			return h.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("hook OnInit failed",
				"hook", h.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all hooks that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	hooks := r.onShutdown
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.call(ctx, h.Name(), func() error {
			return h.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("hook OnShutdown failed",
				"hook", h.Name(),
				"error", err,
			)
		}
	}
}

// EmitDecision emits a decided invocation to all OnDecision hooks.
func (r *Registry) EmitDecision(ctx context.Context, event, decision any) {
	r.mu.RLock()
	hooks := r.onDecision
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.call(ctx, h.Name(), func() error {
			return h.OnDecision(ctx, event, decision)
		}); err != nil {
			r.logger.Warn("hook OnDecision failed",
				"hook", h.Name(),
				"error", err,
			)
		}
	}
}

// EmitAnomaly emits a surfaced anomaly to all OnAnomaly hooks.
func (r *Registry) EmitAnomaly(ctx context.Context, event, decision any) {
	r.mu.RLock()
	hooks := r.onAnomaly
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.call(ctx, h.Name(), func() error {
			return h.OnAnomaly(ctx, event, decision)
		}); err != nil {
			r.logger.Warn("hook OnAnomaly failed",
				"hook", h.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryWritten emits a successful ledger append to all OnEntryWritten hooks.
func (r *Registry) EmitEntryWritten(ctx context.Context, entry any) {
	r.mu.RLock()
	hooks := r.onEntryWritten
	r.mu.RUnlock()

	for _, h := range hooks {
		if err := r.call(ctx, h.Name(), func() error {
			return h.OnEntryWritten(ctx, entry)
		}); err != nil {
			r.logger.Warn("hook OnEntryWritten failed",
				"hook", h.Name(),
				"error", err,
			)
		}
	}
}

// call runs a hook function with a timeout and panic isolation.
// Hooks must never block or crash the charge pipeline.
func (r *Registry) call(ctx context.Context, hookName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("hook panic: %s: %v", hookName, rec)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("hook timeout: %s", hookName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
