package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mujahedk/duraq/sqlstore"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "duraq.db"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
