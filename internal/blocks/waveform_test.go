package blocks

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestConstant(t *testing.T) {
	w := Constant{K: 3.5}
	if got := w.Value(0); !almost(got, 3.5) {
		t.Errorf("expected 3.5, got %f", got)
	}
	if got := w.Value(100); !almost(got, 3.5) {
		t.Errorf("expected 3.5, got %f", got)
	}
}

func TestStep(t *testing.T) {
	w := Step{Height: 2, Offset: 1, Start: 0.5}
	if got := w.Value(0.4); !almost(got, 1) {
		t.Errorf("expected offset before start, got %f", got)
	}
	if got := w.Value(0.5); !almost(got, 3) {
		t.Errorf("expected step at start, got %f", got)
	}
}

func TestRamp(t *testing.T) {
	w := Ramp{Height: 10, Duration: 2, Start: 1}
	if got := w.Value(0.5); !almost(got, 0) {
		t.Errorf("expected 0 before start, got %f", got)
	}
	if got := w.Value(2); !almost(got, 5) {
		t.Errorf("expected 5 at midpoint, got %f", got)
	}
	if got := w.Value(10); !almost(got, 10) {
		t.Errorf("expected full height after duration, got %f", got)
	}
}

func TestRampZeroDuration(t *testing.T) {
	w := Ramp{Height: 4, Duration: 0, Start: 1}
	if got := w.Value(1); !almost(got, 4) {
		t.Errorf("expected immediate full height, got %f", got)
	}
}

func TestSine(t *testing.T) {
	w := Sine{Amplitude: 2, Frequency: 1}
	if got := w.Value(0.25); !almost(got, 2) {
		t.Errorf("expected peak at quarter period, got %f", got)
	}
	if got := w.Value(0.5); math.Abs(got) > 1e-9 {
		t.Errorf("expected zero at half period, got %f", got)
	}
}

func TestCosine(t *testing.T) {
	w := Cosine{Amplitude: 2, Frequency: 1}
	if got := w.Value(0); !almost(got, 2) {
		t.Errorf("expected peak at t=0, got %f", got)
	}
}

func TestSquare(t *testing.T) {
	w := Square{Amplitude: 1, Frequency: 1}
	if got := w.Value(0.1); !almost(got, 1) {
		t.Errorf("expected high in first half, got %f", got)
	}
	if got := w.Value(0.6); !almost(got, -1) {
		t.Errorf("expected low in second half, got %f", got)
	}
}

func TestSquareDuty(t *testing.T) {
	w := Square{Amplitude: 1, Frequency: 1, Duty: 0.25}
	if got := w.Value(0.3); !almost(got, -1) {
		t.Errorf("expected low past duty fraction, got %f", got)
	}
}

func TestTriangular(t *testing.T) {
	w := Triangular{Amplitude: 4, Frequency: 1}
	if got := w.Value(0.25); !almost(got, 4) {
		t.Errorf("expected peak at quarter period, got %f", got)
	}
	if got := w.Value(0.75); !almost(got, -4) {
		t.Errorf("expected trough at three quarters, got %f", got)
	}
	if got := w.Value(0.5); math.Abs(got) > 1e-9 {
		t.Errorf("expected zero at half period, got %f", got)
	}
}

func TestPulse(t *testing.T) {
	w := Pulse{Amplitude: 5, Width: 0.2, Period: 1}
	if got := w.Value(0.1); !almost(got, 5) {
		t.Errorf("expected high inside pulse, got %f", got)
	}
	if got := w.Value(0.5); !almost(got, 0) {
		t.Errorf("expected low outside pulse, got %f", got)
	}
	if got := w.Value(1.1); !almost(got, 5) {
		t.Errorf("expected high in second period, got %f", got)
	}
}

func TestExpSine(t *testing.T) {
	w := ExpSine{Amplitude: 1, Frequency: 1, Damping: 1}
	peak1 := w.Value(0.25)
	peak2 := w.Value(1.25)
	want := peak1 * math.Exp(-1)
	if math.Abs(peak2-want) > 1e-9 {
		t.Errorf("expected damped peak %f, got %f", want, peak2)
	}
}
