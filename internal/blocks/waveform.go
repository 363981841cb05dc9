// Package blocks provides time-dependent source waveforms. Sources in the
// component library take a Waveform and evaluate it at each accepted time
// point, so any signal shape can drive a voltage, force, torque, heat flow
// or valve opening.
package blocks

import "math"

// Waveform yields a source value as a function of simulation time.
type Waveform interface {
	Value(t float64) float64
}

// Constant holds a fixed value for all time.
type Constant struct {
	K float64
}

func (c Constant) Value(float64) float64 { return c.K }

// Step jumps from Offset to Offset+Height at Start.
type Step struct {
	Height float64
	Offset float64
	Start  float64
}

func (s Step) Value(t float64) float64 {
	if t < s.Start {
		return s.Offset
	}
	return s.Offset + s.Height
}

// Ramp rises linearly by Height over Duration, beginning at Start, then
// holds. A zero Duration degenerates to a step.
type Ramp struct {
	Height   float64
	Duration float64
	Offset   float64
	Start    float64
}

func (r Ramp) Value(t float64) float64 {
	if t < r.Start {
		return r.Offset
	}
	if r.Duration <= 0 || t >= r.Start+r.Duration {
		return r.Offset + r.Height
	}
	return r.Offset + r.Height*(t-r.Start)/r.Duration
}

// Sine is Offset + Amplitude*sin(2*pi*Frequency*(t-Start) + Phase) after
// Start, and Offset before it.
type Sine struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Offset    float64
	Start     float64
}

func (s Sine) Value(t float64) float64 {
	if t < s.Start {
		return s.Offset
	}
	return s.Offset + s.Amplitude*math.Sin(2*math.Pi*s.Frequency*(t-s.Start)+s.Phase)
}

// Cosine mirrors Sine with a cosine carrier.
type Cosine struct {
	Amplitude float64
	Frequency float64
	Phase     float64
	Offset    float64
	Start     float64
}

func (c Cosine) Value(t float64) float64 {
	if t < c.Start {
		return c.Offset
	}
	return c.Offset + c.Amplitude*math.Cos(2*math.Pi*c.Frequency*(t-c.Start)+c.Phase)
}

// Square alternates between Offset+Amplitude and Offset-Amplitude at
// Frequency. Duty is the high fraction of each period; zero means 0.5.
type Square struct {
	Amplitude float64
	Frequency float64
	Duty      float64
	Offset    float64
	Start     float64
}

func (s Square) Value(t float64) float64 {
	if t < s.Start {
		return s.Offset
	}
	duty := s.Duty
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}
	phase := math.Mod((t-s.Start)*s.Frequency, 1)
	if phase < duty {
		return s.Offset + s.Amplitude
	}
	return s.Offset - s.Amplitude
}

// Triangular sweeps linearly between -Amplitude and +Amplitude around
// Offset at Frequency, starting upward from zero.
type Triangular struct {
	Amplitude float64
	Frequency float64
	Offset    float64
	Start     float64
}

func (tr Triangular) Value(t float64) float64 {
	if t < tr.Start {
		return tr.Offset
	}
	phase := math.Mod((t-tr.Start)*tr.Frequency, 1)
	var u float64
	switch {
	case phase < 0.25:
		u = 4 * phase
	case phase < 0.75:
		u = 2 - 4*phase
	default:
		u = 4*phase - 4
	}
	return tr.Offset + tr.Amplitude*u
}

// Pulse emits Offset+Amplitude for Width seconds out of every Period,
// starting at Start.
type Pulse struct {
	Amplitude float64
	Width     float64
	Period    float64
	Offset    float64
	Start     float64
}

func (p Pulse) Value(t float64) float64 {
	if t < p.Start || p.Period <= 0 {
		return p.Offset
	}
	phase := math.Mod(t-p.Start, p.Period)
	if phase < p.Width {
		return p.Offset + p.Amplitude
	}
	return p.Offset
}

// ExpSine is an exponentially damped sinusoid: the amplitude decays with
// rate Damping after Start.
type ExpSine struct {
	Amplitude float64
	Frequency float64
	Damping   float64
	Phase     float64
	Offset    float64
	Start     float64
}

func (e ExpSine) Value(t float64) float64 {
	if t < e.Start {
		return e.Offset
	}
	dt := t - e.Start
	return e.Offset + e.Amplitude*math.Exp(-e.Damping*dt)*math.Sin(2*math.Pi*e.Frequency*dt+e.Phase)
}
