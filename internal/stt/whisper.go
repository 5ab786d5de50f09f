package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"gamesight/internal/audio"
)

// Whisper runs transcription locally through whisper.cpp. Selected by setting
// WHISPER_MODEL; useful when the network is down or the Google endpoint is
// rate-limited mid-session.
type Whisper struct {
	model    whisper.Model
	language string
}

func NewWhisper(modelPath, language string) (*Whisper, error) {
	if modelPath == "" {
		return nil, errors.New("empty model path")
	}
	if language == "" {
		language = "auto"
	} else {
		// whisper wants the bare ISO 639-1 code, not BCP-47
		if i := strings.IndexByte(language, '-'); i > 0 {
			language = language[:i]
		}
	}

	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	return &Whisper{model: m, language: language}, nil
}

func (w *Whisper) Transcribe(ctx context.Context, clip audio.Clip) (string, error) {
	if len(clip.Samples) == 0 {
		return "", errors.New("no audio samples provided")
	}

	wctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("new context: %w", err)
	}

	if err := wctx.SetLanguage(w.language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(clip.Float32(), nil, nil, nil); err != nil {
		return "", fmt.Errorf("process: %w", err)
	}

	var text string
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		s, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("next segment: %w", err)
		}

		if text == "" {
			text = s.Text
		} else {
			text += " " + s.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUnrecognized
	}

	return text, nil
}

func (w *Whisper) Close() error {
	if w.model == nil {
		return nil
	}
	return w.model.Close()
}
