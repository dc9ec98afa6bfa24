package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mujahedk/duraq/clock"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	if _, ok := r.Lookup("sleep"); ok {
		t.Fatal("expected no handler registered")
	}
	r.Register("sleep", func(ctx context.Context, payload json.RawMessage, hctx Context) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	})
	h, ok := r.Lookup("sleep")
	if !ok {
		t.Fatal("expected handler to be registered")
	}
	out, err := h(context.Background(), nil, Context{Attempts: 1, Clock: clock.System()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestRegisterOverwrites(t *testing.T) {
	r := New()
	r.Register("t", func(ctx context.Context, payload json.RawMessage, hctx Context) (json.RawMessage, error) {
		return json.RawMessage(`"first"`), nil
	})
	r.Register("t", func(ctx context.Context, payload json.RawMessage, hctx Context) (json.RawMessage, error) {
		return json.RawMessage(`"second"`), nil
	})
	h, _ := r.Lookup("t")
	out, _ := h(context.Background(), nil, Context{})
	if string(out) != `"second"` {
		t.Fatalf("expected overwritten handler, got %s", out)
	}
}

func TestMustRegisterPanicsOnEmptyType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty job type")
		}
	}()
	New().MustRegister("", func(ctx context.Context, payload json.RawMessage, hctx Context) (json.RawMessage, error) {
		return nil, nil
	})
}
