// Package duraq provides a storage-agnostic durable job queue with
// at-least-once delivery semantics and lease-based visibility timeouts.
//
// # Overview
//
// duraq models a durable job queue with explicit state transitions. A
// Job carries its own payload, result and delivery bookkeeping — there
// is no separate transport/message abstraction to straddle. duraq
// defines interfaces for enqueuing, claiming, observing and cleaning
// jobs, and a Worker that drives claim/dispatch/finalize cycles against
// a process-local handler Registry.
//
// The package does not mandate a storage backend. sqlstore ships a
// bun-based implementation (SQLite and PostgreSQL); any other durable
// store can implement the Enqueuer, Claimer, Observer and Cleaner
// interfaces instead.
//
// # Delivery Semantics
//
// duraq provides at-least-once processing guarantees. A job may be
// delivered more than once if:
//
//   - a worker crashes before finishing it
//   - a job's lease expires before the handler returns
//
// Handlers must therefore be idempotent.
//
// # Lease Model
//
// When a job is claimed, it transitions from Queued to Running and
// receives a lease (LockedUntil). While the lease is valid the job is
// not eligible for claiming by other workers. If the lease expires
// before the job finishes, it becomes claimable again — Worker never
// renews a lease while a handler runs, so handlers are expected to
// finish within the configured lease duration.
//
// # State Machine
//
//	Queued  -> Running              (Claim)
//	Running -> Succeeded            (MarkSucceeded)
//	Running -> Queued               (MarkFailed, attempts < max_attempts)
//	Running -> Dead                 (MarkFailed, attempts >= max_attempts)
//
// Succeeded and Dead are terminal and are not retried.
//
// # Retry Policy
//
// Retry behavior is a fixed, bounded backoff table (see Backoff) applied
// by MarkFailed when a handler returns an error. Attempts increments only
// in MarkFailed, on an actual failed execution — Claim never touches it,
// so a handler always sees the count of prior failures (0 on the first
// try), whether this is a fresh claim or a reclaim of an expired lease.
//
// # Interfaces
//
// duraq defines the following primary interfaces:
//
//	Enqueuer — add new jobs to the queue
//	Claimer  — claim jobs and finalize their outcome
//	Observer — inspect job state, singly or by list
//	Cleaner  — permanently remove terminal jobs (administrative, out-of-band)
//
// These interfaces let storage implementations be plugged in without
// coupling queue semantics to a specific database.
//
// # Concurrency Model
//
// Worker runs a single sequential claim-dispatch-finalize loop: within
// one Worker, handler execution is synchronous, one job at a time.
// There is no internal fan-out or worker pool. Operators scale
// throughput by running more Worker instances, not by raising
// concurrency inside one.
//
// Shutdown is graceful: Stop cancels the loop and waits for the
// in-flight claim/handle cycle to finish, subject to a timeout.
//
// # Storage Expectations
//
// Implementations of Claimer must ensure atomic Queued/expired-Running
// to Running transitions, durable persistence and correct lease
// handling. duraq assumes the storage backend provides reliable write
// semantics; behavior under concurrent claimers depends on the backend
// (see sqlstore for the SKIP LOCKED / single-connection strategies).
//
// # Summary
//
// duraq provides a minimal, structured foundation for durable
// background job processing with explicit lifecycle control, bounded
// retry semantics and pluggable storage backends.
package duraq
