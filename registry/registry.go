// Package registry provides the process-local job-type to Handler table a
// Worker dispatches into.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mujahedk/duraq/clock"
)

// Context carries per-invocation data into a Handler: how many prior
// executions of this job have failed — 0 before the first attempt — and a
// Clock so handlers can be tested deterministically instead of calling
// time.Now directly.
type Context struct {
	Attempts int
	Clock    clock.Clock
}

// Handler processes a single job's payload and returns a result to persist
// on success. Handlers must be idempotent: duraq provides at-least-once
// delivery, and a handler may be invoked more than once for the same job
// if a worker crashes or a lease expires before completion.
type Handler func(ctx context.Context, payload json.RawMessage, hctx Context) (json.RawMessage, error)

// Registry is a concurrency-safe job-type to Handler table.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register associates jobType with h, replacing any handler previously
// registered for that type.
func (r *Registry) Register(jobType string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[jobType] = h
}

// Lookup returns the handler registered for jobType, if any.
func (r *Registry) Lookup(jobType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[jobType]
	return h, ok
}

// MustRegister is a convenience wrapper for static registration at startup;
// it panics if jobType is empty or h is nil.
func (r *Registry) MustRegister(jobType string, h Handler) {
	if jobType == "" {
		panic("registry: empty job type")
	}
	if h == nil {
		panic(fmt.Sprintf("registry: nil handler for type %q", jobType))
	}
	r.Register(jobType, h)
}
