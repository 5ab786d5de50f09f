package audio

// Gate decides whether a captured clip carries speech or is likely silence.
type Gate interface {
	Accept(c Clip) bool
}

// PeakGate rejects clips whose peak absolute sample is below Threshold.
type PeakGate struct {
	Threshold int16
}

// DefaultGate rejects clips quieter than an open microphone's noise floor.
func DefaultGate() PeakGate { return PeakGate{Threshold: 100} }

func (g PeakGate) Accept(c Clip) bool {
	if len(c.Samples) == 0 {
		return false
	}
	return c.Peak() >= g.Threshold
}
