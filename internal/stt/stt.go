// Package stt turns captured audio clips into text.
package stt

import (
	"context"
	"errors"

	"gamesight/internal/audio"
)

// ErrUnrecognized means the service returned no transcript; the caller should
// prompt the user to try again rather than treat it as a failure.
var ErrUnrecognized = errors.New("could not understand audio")

// Engine is implemented by the remote Google backend and the local whisper
// backend.
type Engine interface {
	Transcribe(ctx context.Context, clip audio.Clip) (string, error)
	Close() error
}
