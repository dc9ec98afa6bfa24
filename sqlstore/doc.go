// Package sqlstore provides a bun-based SQL storage implementation of
// duraq's core interfaces (Enqueuer, Claimer, Observer) and its
// administrative Cleaner.
//
// # Overview
//
// The SQL backend provides:
//
//   - durable persistence of jobs
//   - atomic claim transitions (Queued/expired-Running -> Running)
//   - lease semantics via locked_by/locked_until
//   - row-locked claim using SELECT ... FOR UPDATE SKIP LOCKED feeding an
//     UPDATE ... RETURNING, on dialects that support it
//
// It ships two dialect constructors: OpenSQLite (modernc.org/sqlite) and
// OpenPostgres (jackc/pgx/v5, via its database/sql driver shim).
//
// # Concurrency Model
//
// Claim runs inside a single transaction: select-with-lock, then update.
// On Postgres, "FOR UPDATE SKIP LOCKED" lets concurrent claimers skip
// rows another transaction already holds instead of blocking on them. On
// SQLite there is no such clause — OpenSQLite caps the connection pool at
// one connection, so the transaction itself serializes claimers.
//
// # Schema
//
// The backend expects a "jobs" table corresponding to jobModel. InitDB
// (or MustInitDB) creates the table and indexes on (status, run_at, created_at),
// (status, locked_until), (status, updated_at) and (type), required for
// efficient Claim, List and Clean. InitDB is idempotent and runs inside a
// transaction; it performs no destructive migrations.
//
// # Database Lifecycle
//
// This package does not manage connection pooling beyond what its own
// dialect constructors configure, nor does it run migrations beyond
// InitDB. The caller is responsible for running InitDB before use.
//
// # Limitations
//
// The SQL backend uses status + timestamp fields to implement lease
// semantics; it does not use lease tokens or optimistic locking versions.
// Exactly-once processing is not guaranteed — delivery remains
// at-least-once.
package sqlstore
