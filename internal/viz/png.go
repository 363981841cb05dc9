package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"phynet/internal/solver"
)

// SavePNG writes the labeled traces of a result to a PNG file. With no
// labels given every unknown is plotted.
func SavePNG(path, title string, res *solver.Result, labels ...string) error {
	if len(labels) == 0 {
		labels = res.Labels
	}
	if len(res.Times) == 0 {
		return fmt.Errorf("viz: result holds no samples")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Legend.Top = true

	for i, label := range labels {
		sig, err := res.Signal(label)
		if err != nil {
			return err
		}
		pts := make(plotter.XYs, len(sig))
		for j, v := range sig {
			pts[j].X = res.Times[j]
			pts[j].Y = v
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("viz: trace %q: %w", label, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(label, line)
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
