package clock

import (
	"testing"
	"time"
)

func TestSystemClockAdvances(t *testing.T) {
	c := System()
	a := c.Now()
	time.Sleep(time.Millisecond)
	b := c.Now()
	if !b.After(a) {
		t.Fatalf("expected System clock to advance, got %v then %v", a, b)
	}
}

func TestFixedClockIsStable(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := Fixed(want)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("expected fixed time %v, got %v", want, got)
	}
	time.Sleep(time.Millisecond)
	if got := c.Now(); !got.Equal(want) {
		t.Fatalf("expected Fixed clock to remain stable, got %v", got)
	}
}
