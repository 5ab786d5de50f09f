package audio

import (
	"context"
	"errors"
	"time"

	"github.com/gordonklaus/portaudio"
)

// ErrNoAudio is returned when a capture window closes without any frames read.
var ErrNoAudio = errors.New("no audio recorded")

type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record accumulates fixed-size frames from the default input device until
// released is closed, ctx is cancelled, or maxDur elapses.
func (r *Recorder) Record(ctx context.Context, released <-chan struct{}, maxDur time.Duration) (Clip, error) {
	if maxDur <= 0 {
		maxDur = 15 * time.Second
	}

	const frameSize = 1024

	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(
		1, // in
		0, // no out
		float64(SampleRate),
		len(buf),
		buf,
	)
	if err != nil {
		return Clip{}, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return Clip{}, err
	}
	defer stream.Stop()

	deadline := time.Now().Add(maxDur)
	out := make([]float32, 0, int(float64(SampleRate)*maxDur.Seconds()))

	for {
		if time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
			return Clip{}, ctx.Err()
		case <-released:
			if len(out) == 0 {
				return Clip{}, ErrNoAudio
			}
			return fromFloat32(out), nil
		default:
		}

		if err := stream.Read(); err != nil {
			return Clip{}, err
		}

		out = append(out, buf...)
	}

	if len(out) == 0 {
		return Clip{}, ErrNoAudio
	}

	return fromFloat32(out), nil
}
