package duraq

import "time"

// Backoff returns the delay before a failed job becomes claimable again,
// given the number of attempts it has accumulated so far (the attempt that
// just failed, i.e. Job.Attempts after MarkFailed incremented it).
//
// The table is a fixed step function, not a geometric series:
//
//	attempts <= 1: 2s
//	attempts == 2: 5s
//	attempts == 3: 15s
//	attempts >= 4: 30s
func Backoff(attempts int) time.Duration {
	switch {
	case attempts <= 1:
		return 2 * time.Second
	case attempts == 2:
		return 5 * time.Second
	case attempts == 3:
		return 15 * time.Second
	default:
		return 30 * time.Second
	}
}
