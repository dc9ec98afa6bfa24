// Package job defines the stateful representation of a unit of work within
// the duraq queue lifecycle.
//
// A Job carries both the caller-supplied payload and the delivery state
// (Status, Attempts, lease information, scheduling timestamps) maintained
// by the queue storage and worker logic.
//
// Job values are typically returned by Claim and passed back to the
// storage layer for state transitions (MarkSucceeded, MarkFailed).
//
// Job is not intended to be constructed manually by user code. Its fields
// reflect the authoritative state stored by the queue backend.
package job
