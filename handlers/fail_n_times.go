package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mujahedk/duraq/registry"
)

// FailNTimesType is the job type dispatched to FailNTimes.
const FailNTimesType = "fail_n_times"

type failNTimesPayload struct {
	FailuresBeforeSuccess int `json:"failures_before_success"`
}

type failNTimesResult struct {
	Ok         bool      `json:"ok"`
	Attempts   int       `json:"attempts"`
	FinishedAt time.Time `json:"finished_at"`
}

var errSimulatedFailure = errors.New("simulated failure")

// FailNTimes fails every attempt until hctx.Attempts reaches
// payload.failures_before_success (default 0, i.e. always succeeds). It is
// used to exercise the retry/backoff path deterministically.
func FailNTimes(ctx context.Context, payload json.RawMessage, hctx registry.Context) (json.RawMessage, error) {
	p := failNTimesPayload{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
	}
	if hctx.Attempts < p.FailuresBeforeSuccess {
		return nil, errSimulatedFailure
	}
	return json.Marshal(failNTimesResult{
		Ok:         true,
		Attempts:   hctx.Attempts,
		FinishedAt: hctx.Clock.Now(),
	})
}
