package duraq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mujahedk/duraq/clock"
	"github.com/mujahedk/duraq/internal"
	"github.com/mujahedk/duraq/job"
	"github.com/mujahedk/duraq/registry"
)

// WorkerConfig defines runtime behavior of a Worker.
//
// WorkerID identifies this worker instance in LockedBy; if empty, a
// timestamp-derived id is generated.
//
// PollInterval defines how long the worker sleeps after an idle Claim
// before trying again.
//
// LeaseSeconds defines the lease duration granted to each claimed job.
//
// Claimer and Registry must be non-nil. Clock defaults to clock.System()
// if nil. Logger defaults to slog.Default() if nil.
type WorkerConfig struct {
	WorkerID     string
	PollInterval time.Duration
	LeaseSeconds time.Duration
	Claimer      Claimer
	Registry     *registry.Registry
	Clock        clock.Clock
	Logger       *slog.Logger
}

// Worker runs a single sequential claim-dispatch-finalize loop:
//
//  1. Claim a job, or sleep PollInterval and retry if none is runnable.
//  2. Look up a Handler for the job's type in Registry.
//  3. If none is registered, mark the job succeeded with a warning result.
//  4. Otherwise invoke the handler with the job's payload and attempt count.
//  5. On success, MarkSucceeded with the handler's result.
//  6. On failure, MarkFailed with the error text; the Claimer decides
//     whether that requeues with backoff or dead-letters the job.
//
// Unlike a worker pool, Worker never dispatches more than one job
// concurrently: within one Worker, handler execution is synchronous and
// sequential. Operators scale throughput by running more Worker instances
// (more processes, or more goroutines each owning their own Worker), not
// by raising concurrency inside one.
//
// Worker also never extends a job's lease while a handler runs: handlers
// are expected to finish within LeaseSeconds. If they don't, the lease
// expires and another worker may claim and re-execute the job — this is
// the at-least-once guarantee, not a bug.
//
// Worker has a strict lifecycle: Start may only be called once, and Stop
// waits for the in-flight claim/handle cycle to finish or the timeout
// expires.
type Worker struct {
	lcBase
	claimer  Claimer
	registry *registry.Registry
	clock    clock.Clock
	log      *slog.Logger
	workerID string
	interval time.Duration
	lease    time.Duration

	cancel context.CancelFunc
	done   internal.DoneChan
}

// NewWorker creates a new Worker. The worker is not started automatically;
// call Start to begin processing.
func NewWorker(config WorkerConfig) *Worker {
	c := config.Clock
	if c == nil {
		c = clock.System()
	}
	log := config.Logger
	if log == nil {
		log = slog.Default()
	}
	workerID := config.WorkerID
	if workerID == "" {
		workerID = fmt.Sprintf("worker-%d", time.Now().UnixNano())
	}
	return &Worker{
		claimer:  config.Claimer,
		registry: config.Registry,
		clock:    c,
		log:      log,
		workerID: workerID,
		interval: config.PollInterval,
		lease:    config.LeaseSeconds,
	}
}

// Start begins the claim/dispatch loop in a background goroutine. Start
// returns ErrDoubleStarted if the worker has already been started.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	done := make(internal.DoneChan)
	w.done = done
	go func() {
		defer close(done)
		w.loop(runCtx)
	}()
	return nil
}

func (w *Worker) doStop() internal.DoneChan {
	w.cancel()
	return w.done
}

// Stop initiates graceful shutdown: it cancels the loop and waits for the
// current claim/handle cycle to finish or the timeout to elapse. Stop
// returns ErrDoubleStopped if the worker is not running, ErrStopTimeout if
// the loop does not exit within timeout.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}

func (w *Worker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		jb, err := w.claimer.Claim(ctx, w.workerID, w.lease)
		if err != nil {
			w.log.Error("claim failed", "worker_id", w.workerID, "err", err)
			if !w.sleep(ctx) {
				return
			}
			continue
		}
		if jb == nil {
			if !w.sleep(ctx) {
				return
			}
			continue
		}
		w.handle(ctx, jb)
	}
}

func (w *Worker) sleep(ctx context.Context) bool {
	timer := time.NewTimer(w.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (w *Worker) handle(ctx context.Context, jb *job.Job) {
	handler, ok := w.registry.Lookup(jb.Type)
	if !ok {
		warning, _ := json.Marshal(map[string]string{
			"warning": fmt.Sprintf("no handler for type=%s", jb.Type),
		})
		if err := w.claimer.MarkSucceeded(ctx, jb.Id, warning); err != nil {
			w.log.Error("cannot mark unhandled job succeeded", "id", jb.Id, "err", err)
		}
		w.log.Warn("no handler registered", "id", jb.Id, "type", jb.Type)
		return
	}
	hctx := registry.Context{Attempts: jb.Attempts, Clock: w.clock}
	result, err := handler(ctx, jb.Payload, hctx)
	if err != nil {
		w.log.Warn("handler failed", "id", jb.Id, "type", jb.Type, "attempts", jb.Attempts, "err", err)
		if err := w.claimer.MarkFailed(ctx, jb.Id, err.Error()); err != nil {
			w.log.Error("cannot mark job failed", "id", jb.Id, "err", err)
		}
		return
	}
	if err := w.claimer.MarkSucceeded(ctx, jb.Id, result); err != nil {
		w.log.Error("cannot mark job succeeded", "id", jb.Id, "err", err)
	}
}
