package solver

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"phynet/internal/network"
)

// Stats counts solver work.
type Stats struct {
	Steps       int
	NewtonIters int
}

// Result holds every accepted time point of a solve. Values[i] is the full
// unknown vector at Times[i], ordered as Labels.
type Result struct {
	Labels []string
	Times  []float64
	Values [][]float64
	Stats  Stats
}

func newResult(sys *network.System) *Result {
	return &Result{Labels: sys.Labels()}
}

func (r *Result) append(t float64, x *mat.VecDense) {
	row := make([]float64, x.Len())
	for i := range row {
		row[i] = x.AtVec(i)
	}
	r.Times = append(r.Times, t)
	r.Values = append(r.Values, row)
}

// Index returns the unknown index carrying a label.
func (r *Result) Index(label string) (int, error) {
	for i, l := range r.Labels {
		if l == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (have %s)", ErrUnknownSignal, label, strings.Join(r.Labels, ", "))
}

// Signal extracts one labeled trace across all time points.
func (r *Result) Signal(label string) ([]float64, error) {
	idx, err := r.Index(label)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(r.Times))
	for i, row := range r.Values {
		out[i] = row[idx]
	}
	return out, nil
}

// Final returns the last value of a labeled trace.
func (r *Result) Final(label string) (float64, error) {
	sig, err := r.Signal(label)
	if err != nil {
		return 0, err
	}
	if len(sig) == 0 {
		return 0, fmt.Errorf("solver: result holds no samples")
	}
	return sig[len(sig)-1], nil
}

// At interpolates a labeled trace at time t using the nearest sample.
func (r *Result) At(label string, t float64) (float64, error) {
	sig, err := r.Signal(label)
	if err != nil {
		return 0, err
	}
	if len(sig) == 0 {
		return 0, fmt.Errorf("solver: result holds no samples")
	}
	best, dist := 0, float64(1e308)
	for i, st := range r.Times {
		d := st - t
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = i, d
		}
	}
	return sig[best], nil
}
