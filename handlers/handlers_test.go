package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mujahedk/duraq/clock"
	"github.com/mujahedk/duraq/registry"
)

func TestSleepDefaultDuration(t *testing.T) {
	start := time.Now()
	out, err := Sleep(context.Background(), nil, registry.Context{Clock: clock.System()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 900*time.Millisecond {
		t.Fatalf("expected to sleep ~1s, elapsed %v", elapsed)
	}
	var res sleepResult
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("bad output: %v", err)
	}
	if res.SleptMs != 1000 {
		t.Fatalf("expected slept_ms=1000, got %d", res.SleptMs)
	}
}

func TestSleepCustomDuration(t *testing.T) {
	payload, _ := json.Marshal(map[string]int{"duration_ms": 10})
	out, err := Sleep(context.Background(), payload, registry.Context{Clock: clock.System()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res sleepResult
	json.Unmarshal(out, &res)
	if res.SleptMs != 10 {
		t.Fatalf("expected slept_ms=10, got %d", res.SleptMs)
	}
}

func TestSleepRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	payload, _ := json.Marshal(map[string]int{"duration_ms": 5000})
	_, err := Sleep(ctx, payload, registry.Context{Clock: clock.System()})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestFailNTimesSucceedsByDefault(t *testing.T) {
	out, err := FailNTimes(context.Background(), nil, registry.Context{Attempts: 0, Clock: clock.System()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var res failNTimesResult
	json.Unmarshal(out, &res)
	if !res.Ok {
		t.Fatal("expected ok=true")
	}
}

func TestFailNTimesFailsUntilThreshold(t *testing.T) {
	payload, _ := json.Marshal(map[string]int{"failures_before_success": 3})
	for attempt := 0; attempt < 3; attempt++ {
		_, err := FailNTimes(context.Background(), payload, registry.Context{Attempts: attempt, Clock: clock.System()})
		if err == nil {
			t.Fatalf("expected failure on attempt %d", attempt)
		}
	}
	out, err := FailNTimes(context.Background(), payload, registry.Context{Attempts: 3, Clock: clock.System()})
	if err != nil {
		t.Fatalf("expected success on attempt 3, got %v", err)
	}
	var res failNTimesResult
	json.Unmarshal(out, &res)
	if res.Attempts != 3 {
		t.Fatalf("expected attempts=3 in result, got %d", res.Attempts)
	}
}
