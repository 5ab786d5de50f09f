package audio

import (
	"encoding/binary"
	"time"
)

const SampleRate = 16000

// Clip is a mono recording at SampleRate, 16-bit samples.
type Clip struct {
	Samples []int16
}

func (c Clip) Duration() time.Duration {
	return time.Duration(len(c.Samples)) * time.Second / SampleRate
}

// Peak returns the largest absolute sample value in the clip.
func (c Clip) Peak() int16 {
	var peak int16
	for _, s := range c.Samples {
		if s == -32768 {
			return 32767
		}
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Bytes returns the raw little-endian PCM payload (audio/l16).
func (c Clip) Bytes() []byte {
	out := make([]byte, 2*len(c.Samples))
	for i, s := range c.Samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// Float32 converts the clip to [-1, 1] samples for the whisper backend.
func (c Clip) Float32() []float32 {
	out := make([]float32, len(c.Samples))
	const scale = 1.0 / 32768.0
	for i, s := range c.Samples {
		out[i] = float32(s) * scale
	}
	return out
}

func fromFloat32(pcm []float32) Clip {
	samples := make([]int16, len(pcm))
	for i, x := range pcm {
		v := x * 32767
		if v > 32767 {
			v = 32767
		}
		if v < -32768 {
			v = -32768
		}
		samples[i] = int16(v)
	}
	return Clip{Samples: samples}
}
