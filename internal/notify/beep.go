// Package notify plays the short cue tone heard right before recording starts.
package notify

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	cueRate = beep.SampleRate(44100)
	cueFreq = 880.0
	cueLen  = 120 * time.Millisecond
)

type tone struct {
	pos       int
	remaining int
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.remaining <= 0 {
		return 0, false
	}

	n := len(samples)
	if n > t.remaining {
		n = t.remaining
	}

	for i := 0; i < n; i++ {
		v := 0.25 * math.Sin(2*math.Pi*cueFreq*float64(t.pos)/float64(cueRate))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	t.remaining -= n

	return n, true
}

func (t *tone) Err() error { return nil }

// Beep is best-effort; a machine without a usable output device just gets no
// cue, never an error.
func Beep() {
	if err := speaker.Init(cueRate, cueRate.N(time.Second/10)); err != nil {
		return
	}

	done := make(chan bool)
	speaker.Play(beep.Seq(&tone{remaining: cueRate.N(cueLen)}, beep.Callback(func() {
		done <- true
	})))
	<-done
}
