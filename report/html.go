package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ldsec/platedrift/drift"
)

// RenderHTML writes a page with the fit, the residuals against age and the residual
// histogram as interactive charts.
func RenderHTML(w io.Writer, res *drift.Result, bins int) error {
	if bins <= 0 {
		return fmt.Errorf("render html: bins must be positive, got %d", bins)
	}
	if len(res.Residuals) == 0 {
		return fmt.Errorf("render html: no samples")
	}

	page := components.NewPage()
	page.PageTitle = "Plate drift least squares"
	page.AddCharts(
		fitChart(res),
		residualChart(res),
		histogramChart(res.Residuals, bins),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func points(x, y []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, len(x))
	for i := range x {
		data[i] = opts.ScatterData{Value: []interface{}{x[i], y[i]}}
	}
	return data
}

func fitChart(res *drift.Result) *charts.Scatter {
	s := res.Summary
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Least Squares Fit",
			Subtitle: fmt.Sprintf("v = %.4g km/Myr (%.4g cm/yr), R² = %.4f",
				s.VHatKmPerMyr, s.VHatCmPerYear, s.R2),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Age (Myr)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance (km)", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
	)
	scatter.AddSeries("samples", points(res.Age, res.Distance))

	order := make([]int, len(res.Age))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return res.Age[order[i]] < res.Age[order[j]] })
	fitted := make([]opts.LineData, len(order))
	for k, i := range order {
		fitted[k] = opts.LineData{Value: []interface{}{res.Age[i], res.Predicted[i]}}
	}
	line := charts.NewLine()
	line.AddSeries("least squares", fitted,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	scatter.Overlap(line)
	return scatter
}

func residualChart(res *drift.Result) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Residuals vs Age"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Age (Myr)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Residual (km)", Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter.AddSeries("residuals", points(res.Age, res.Residuals))
	return scatter
}

func histogramChart(residuals []float64, bins int) *charts.Bar {
	labels, counts := histogram(residuals, bins)
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Residual Histogram"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Residual (km)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(labels).AddSeries("count", data)
	return bar
}

// histogram counts x into bins equal-width bins spanning [min(x), max(x)] and labels
// each bin with its centre. A constant x is spread over a unit-wide range.
func histogram(x []float64, bins int) ([]string, []float64) {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.3g", (dividers[i]+dividers[i+1])/2)
	}
	return labels, counts
}
