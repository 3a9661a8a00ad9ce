package sandbank

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	// DefaultWaitInterval is the fixed delay between polling attempts.
	DefaultWaitInterval = 1 * time.Second

	// DefaultWaitAttempts is the default attempt budget: the maximum number
	// of re-fetches performed before a wait is abandoned.
	DefaultWaitAttempts = 30
)

// FetchFunc re-fetches a resource by its stable identifier. Every Get
// method on [Client] has this shape, so they can be passed to
// [WaitForState] directly.
type FetchFunc[T Resource] func(ctx context.Context, guid string) (T, error)

// StateTimeoutError reports that a resource did not reach any acceptable
// state within the attempt budget. It carries the resource kind,
// identifier, and the final observed state so callers can log a precise
// diagnostic.
type StateTimeoutError struct {
	// Resource is the resource kind, e.g. "customer" or "trade".
	Resource string

	// GUID is the resource's stable identifier.
	GUID string

	// LastState is the state observed on the final fetch.
	LastState string

	// Attempts is the number of fetches performed.
	Attempts int
}

func (e *StateTimeoutError) Error() string {
	return fmt.Sprintf("%s %s did not reach an acceptable state after %d attempts (last state %q)",
		e.Resource, e.GUID, e.Attempts, e.LastState)
}

// waitConfig holds mutable state while wait options are applied.
type waitConfig struct {
	interval time.Duration
	attempts int
}

// WaitOption configures a single [WaitForState] call.
//
// Built-in options: [WaitInterval], [WaitAttempts].
type WaitOption func(*waitConfig) error

// WaitInterval sets the fixed delay between polling attempts.
// Defaults to [DefaultWaitInterval].
//
// Returns an error if the duration is zero or negative.
func WaitInterval(d time.Duration) WaitOption {
	return func(cfg *waitConfig) error {
		if d <= 0 {
			return errors.New("wait interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WaitAttempts sets the attempt budget: the maximum number of re-fetches
// performed before the wait fails with a [StateTimeoutError].
// Defaults to [DefaultWaitAttempts].
//
// Returns an error if the count is zero or negative.
func WaitAttempts(n int) WaitOption {
	return func(cfg *waitConfig) error {
		if n <= 0 {
			return errors.New("wait attempts must be positive")
		}
		cfg.attempts = n
		return nil
	}
}

// WaitForState blocks until a resource's state is in the accept set, then
// returns the latest snapshot of the resource.
//
// The wait begins from the caller's initial snapshot. If its state is
// already acceptable, WaitForState returns it immediately with zero fetches
// and zero sleeps. Otherwise it sleeps one interval, re-fetches the
// resource by its identifier, and repeats until the state is acceptable or
// the attempt budget is exhausted:
//
//	trade, err := client.CreateTrade(ctx, sandbank.PostTrade{QuoteGUID: quote.GUID})
//	if err != nil {
//	    // handle error
//	}
//	trade, err = sandbank.WaitForState(ctx, client.GetTrade, trade,
//	    []string{sandbank.StateSettling}, client.WaitOptions()...)
//
// Guarantees:
//
//   - At most the configured attempt budget of fetches occur beyond the
//     initial snapshot; no fetch occurs before one interval has elapsed.
//   - The supplied fetch function is the only collaborator invoked; the
//     remote resource is never mutated.
//   - An error from the fetch function aborts the wait immediately and is
//     returned unchanged, never wrapped or retried.
//
// On budget exhaustion the last snapshot is returned together with a
// [*StateTimeoutError] naming the resource kind, identifier, and final
// observed state. Cancelling the context aborts the wait during the
// interval sleep and returns ctx.Err().
func WaitForState[T Resource](ctx context.Context, fetch FetchFunc[T], initial T, accept []string, opts ...WaitOption) (T, error) {
	cfg := waitConfig{
		interval: DefaultWaitInterval,
		attempts: DefaultWaitAttempts,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			var zero T
			return zero, err
		}
	}
	if len(accept) == 0 {
		var zero T
		return zero, errors.New("at least one acceptable state is required")
	}

	current := initial
	if slices.Contains(accept, current.CurrentState()) {
		return current, nil
	}

	timer := time.NewTimer(cfg.interval)
	defer timer.Stop()

	for attempt := 1; attempt <= cfg.attempts; attempt++ {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-timer.C:
		}

		next, err := fetch(ctx, current.Identifier())
		if err != nil {
			var zero T
			return zero, err
		}
		current = next

		if slices.Contains(accept, current.CurrentState()) {
			return current, nil
		}
		timer.Reset(cfg.interval)
	}

	return current, &StateTimeoutError{
		Resource:  current.ResourceKind(),
		GUID:      current.Identifier(),
		LastState: current.CurrentState(),
		Attempts:  cfg.attempts,
	}
}
