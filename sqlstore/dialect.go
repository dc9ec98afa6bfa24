package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens a *bun.DB backed by an embedded SQLite file at path.
// WAL mode and a busy timeout are enabled so concurrent readers don't
// immediately collide with the single writer InitDB and Claim require;
// the connection pool is capped at one connection, matching SQLite's
// single-writer model.
func OpenSQLite(path string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}

// OpenPostgres opens a *bun.DB backed by Postgres over pgx's database/sql
// shim, via dsn (a standard Postgres connection string).
func OpenPostgres(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqlDB, pgdialect.New()), nil
}

// supportsSkipLocked reports whether db's dialect understands
// "FOR UPDATE SKIP LOCKED". SQLite's single-writer model makes the clause
// both unsupported syntax and unnecessary.
func supportsSkipLocked(db bun.IDB) bool {
	return db.Dialect().Name() == dialect.PG
}
