// Package ptt implements push-to-talk capture: a single trigger contract with
// keyboard, Xbox-controller and fixed-duration timer bindings.
package ptt

import (
	"context"
	"errors"
	"time"

	"gamesight/internal/audio"
)

// Trigger is the hold contract shared by all hardware bindings. Engage blocks
// until the control is pressed and returns a channel that is closed when the
// control is released.
type Trigger interface {
	Engage(ctx context.Context) (released <-chan struct{}, err error)
	Close() error
}

// ErrSilence means the capture finished but the amplitude gate rejected it.
var ErrSilence = errors.New("captured audio below silence threshold")

// Capture runs the idle -> recording -> (silence-rejected | transcribing)
// cycle once: wait for the trigger, accumulate audio while it is held, then
// gate the result.
type Capture struct {
	Recorder *audio.Recorder
	Trigger  Trigger
	Gate     audio.Gate
	MaxDur   time.Duration
}

func (c *Capture) Run(ctx context.Context) (audio.Clip, error) {
	released, err := c.Trigger.Engage(ctx)
	if err != nil {
		return audio.Clip{}, err
	}

	clip, err := c.Recorder.Record(ctx, released, c.MaxDur)
	if err != nil {
		return audio.Clip{}, err
	}

	gate := c.Gate
	if gate == nil {
		gate = audio.DefaultGate()
	}
	if !gate.Accept(clip) {
		return audio.Clip{}, ErrSilence
	}

	return clip, nil
}
