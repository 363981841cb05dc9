package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phynet/internal/solver"
)

func decayResult() *solver.Result {
	res := &solver.Result{Labels: []string{"out"}}
	v := 1.0
	for i := 0; i < 50; i++ {
		res.Times = append(res.Times, float64(i)*0.01)
		res.Values = append(res.Values, []float64{v})
		v *= 0.9
	}
	return res
}

func TestPlotTraces(t *testing.T) {
	out, err := PlotTraces(decayResult(), DefaultPlotOptions(), "out")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "out") {
		t.Error("plot should carry the signal label")
	}
	if !strings.Contains(out, "50 samples") {
		t.Error("plot should carry the sample caption")
	}
}

func TestPlotTracesUnknownLabel(t *testing.T) {
	_, err := PlotTraces(decayResult(), DefaultPlotOptions(), "bogus")
	if err == nil {
		t.Error("expected an error for an unknown label")
	}
}

func TestSparkline(t *testing.T) {
	sig := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	line := Sparkline(sig, 8)
	if got := len([]rune(line)); got != 8 {
		t.Fatalf("width = %d, want 8", got)
	}
	runes := []rune(line)
	if runes[0] >= runes[7] {
		t.Errorf("rising signal should render rising blocks, got %q", line)
	}
}

func TestSparklineFlat(t *testing.T) {
	line := Sparkline([]float64{2, 2, 2}, 5)
	if len([]rune(line)) != 5 {
		t.Fatalf("width = %d, want 5", len([]rune(line)))
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, "decay", decayResult()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("png file is empty")
	}
}
