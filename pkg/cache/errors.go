package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBackendUnavailable means a remote backend never answered its ping.
	ErrBackendUnavailable = errors.New("cache backend unavailable")

	// ErrUnsupportedScheme is returned by Open for an unknown URL scheme.
	ErrUnsupportedScheme = errors.New("unsupported cache scheme")
)

// pingSchedule bounds how long a freshly connected backend has to answer.
type pingSchedule struct {
	attempts int
	wait     time.Duration // before the second attempt, doubled after each miss
}

var connectSchedule = pingSchedule{attempts: 3, wait: 500 * time.Millisecond}

// awaitBackend pings a backend until it answers, the schedule runs out or
// ctx ends. An exhausted schedule yields ErrBackendUnavailable naming the
// backend and the last ping error.
func awaitBackend(ctx context.Context, name string, ping func(context.Context) error) error {
	wait := connectSchedule.wait
	var last error
	for attempt := 1; attempt <= connectSchedule.attempts; attempt++ {
		if last = ping(ctx); last == nil {
			return nil
		}
		if attempt == connectSchedule.attempts {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, name, last)
}
