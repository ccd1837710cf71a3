package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Figure file names written by the figures command.
const (
	AgeDistanceFigure  = "age_vs_distance.png"
	FitFigure          = "least_squares_fit.png"
	ResidualsFigure    = "residuals_vs_age.png"
	ResidualHistFigure = "residual_hist.png"
)

const (
	ageLabel      = "Age (Myr)"
	distLabel     = "Distance (km)"
	residualLabel = "Residual (km)"
	countLabel    = "Count"

	figureWidth  = 6 * vg.Inch
	figureHeight = 4 * vg.Inch
)

// EnsureDir creates path and its parents if needed.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(figureWidth, figureHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// PlotAgeDistance saves a scatter plot of distance against age.
func PlotAgeDistance(age, distance []float64, path, title string) error {
	if len(age) != len(distance) {
		return fmt.Errorf("plot %s: %d ages for %d distances", path, len(age), len(distance))
	}
	p := newPlot(title, ageLabel, distLabel)
	s, err := plotter.NewScatter(xys(age, distance))
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}
	p.Add(s)
	return save(p, path)
}

// PlotFit saves the samples with the fitted line drawn through the predictions.
func PlotFit(age, distance, predicted []float64, path, title string) error {
	if len(age) != len(distance) || len(age) != len(predicted) {
		return fmt.Errorf("plot %s: mismatched lengths %d, %d, %d", path, len(age), len(distance), len(predicted))
	}
	p := newPlot(title, ageLabel, distLabel)
	s, err := plotter.NewScatter(xys(age, distance))
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}

	fitted := xys(age, predicted)
	sort.Slice(fitted, func(i, j int) bool { return fitted[i].X < fitted[j].X })
	l, err := plotter.NewLine(fitted)
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}
	l.Width = vg.Points(1.5)

	p.Add(s, l)
	p.Legend.Add("samples", s)
	p.Legend.Add("least squares", l)
	p.Legend.Top = true
	p.Legend.Left = true
	return save(p, path)
}

// PlotResidualsVsAge saves the residuals against age with a zero reference line.
func PlotResidualsVsAge(age, residuals []float64, path, title string) error {
	if len(age) != len(residuals) {
		return fmt.Errorf("plot %s: %d ages for %d residuals", path, len(age), len(residuals))
	}
	p := newPlot(title, ageLabel, residualLabel)
	s, err := plotter.NewScatter(xys(age, residuals))
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}
	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(s, zero)
	return save(p, path)
}

// PlotResidualHist saves a histogram of the residuals with the given number of bins.
func PlotResidualHist(residuals []float64, bins int, path, title string) error {
	if bins <= 0 {
		return fmt.Errorf("plot %s: bins must be positive, got %d", path, bins)
	}
	if len(residuals) == 0 {
		return fmt.Errorf("plot %s: no residuals", path)
	}
	p := newPlot(title, residualLabel, countLabel)
	h, err := plotter.NewHist(plotter.Values(residuals), bins)
	if err != nil {
		return fmt.Errorf("plot %s: %w", path, err)
	}
	p.Add(h)
	return save(p, path)
}

// WriteFigures saves the four diagnostic figures into dir and returns their paths.
func WriteFigures(dir string, age, distance, predicted, residuals []float64, bins int) ([]string, error) {
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}
	paths := []string{
		filepath.Join(dir, AgeDistanceFigure),
		filepath.Join(dir, FitFigure),
		filepath.Join(dir, ResidualsFigure),
		filepath.Join(dir, ResidualHistFigure),
	}
	if err := PlotAgeDistance(age, distance, paths[0], "Age vs Distance - Pacific Plate Drift Data"); err != nil {
		return nil, err
	}
	if err := PlotFit(age, distance, predicted, paths[1], "Least Squares Fit"); err != nil {
		return nil, err
	}
	if err := PlotResidualsVsAge(age, residuals, paths[2], "Residuals vs Age"); err != nil {
		return nil, err
	}
	if err := PlotResidualHist(residuals, bins, paths[3], "Residual Histogram"); err != nil {
		return nil, err
	}
	return paths, nil
}
