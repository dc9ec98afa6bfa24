package sqlstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/job"
	"github.com/mujahedk/duraq/sqlstore"
)

func TestEnqueueAndObserverGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	enqueuer := sqlstore.NewEnqueuer(db, nil)
	observer := sqlstore.NewObserver(db)

	created, err := enqueuer.Enqueue(ctx, "sleep", json.RawMessage(`{"duration_ms":1}`), 5)
	if err != nil {
		t.Fatal(err)
	}

	jb, err := observer.Get(ctx, created.Id)
	if err != nil {
		t.Fatal(err)
	}
	if jb == nil {
		t.Fatal("job not found")
	}
	if jb.Status != job.Queued {
		t.Fatalf("expected Queued, got %v", jb.Status)
	}
}

func TestObserverGetMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	observer := sqlstore.NewObserver(db)

	jb, err := observer.Get(ctx, uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestObserverListFiltersByStatusAndType(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	enqueuer := sqlstore.NewEnqueuer(db, nil)
	observer := sqlstore.NewObserver(db)

	if _, err := enqueuer.Enqueue(ctx, "sleep", nil, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := enqueuer.Enqueue(ctx, "fail_n_times", nil, 5); err != nil {
		t.Fatal(err)
	}

	all, err := observer.List(ctx, duraq.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(all))
	}

	byType, err := observer.List(ctx, duraq.ListOptions{Type: "sleep"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byType) != 1 || byType[0].Type != "sleep" {
		t.Fatalf("expected 1 sleep job, got %+v", byType)
	}

	byStatus, err := observer.List(ctx, duraq.ListOptions{Status: job.Queued})
	if err != nil {
		t.Fatal(err)
	}
	if len(byStatus) != 2 {
		t.Fatalf("expected 2 queued jobs, got %d", len(byStatus))
	}
}
