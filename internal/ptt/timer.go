package ptt

import (
	"context"
	"time"
)

// Timer engages immediately and releases after a fixed window. Used for the
// externally triggered (hotkey) mode where nothing is held.
type Timer struct {
	Window time.Duration
}

func NewTimer(window time.Duration) *Timer {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Timer{Window: window}
}

func (t *Timer) Engage(ctx context.Context) (<-chan struct{}, error) {
	released := make(chan struct{})

	go func() {
		timer := time.NewTimer(t.Window)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		close(released)
	}()

	return released, nil
}

func (t *Timer) Close() error { return nil }
