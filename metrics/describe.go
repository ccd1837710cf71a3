package metrics

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Description summarizes the distribution of a residual vector.
type Description struct {
	N      int     `json:"n" toml:"n" yaml:"n"`
	Mean   float64 `json:"mean" toml:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" toml:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" toml:"min" yaml:"min"`
	Q1     float64 `json:"q1" toml:"q1" yaml:"q1"`
	Median float64 `json:"median" toml:"median" yaml:"median"`
	Q3     float64 `json:"q3" toml:"q3" yaml:"q3"`
	Max    float64 `json:"max" toml:"max" yaml:"max"`
}

// Describe returns location and spread statistics of r. The standard deviation is
// the sample one, and is 0 for a single value.
func Describe(r []float64) (Description, error) {
	data := stats.Float64Data(r)
	if data.Len() == 0 {
		return Description{}, fmt.Errorf("describe: %w", stats.EmptyInputErr)
	}

	var d Description
	var err error
	d.N = data.Len()
	if d.Mean, err = data.Mean(); err != nil {
		return Description{}, fmt.Errorf("describe mean: %w", err)
	}
	if d.N > 1 {
		if d.StdDev, err = data.StandardDeviationSample(); err != nil {
			return Description{}, fmt.Errorf("describe std dev: %w", err)
		}
	}
	if d.Min, err = data.Min(); err != nil {
		return Description{}, fmt.Errorf("describe min: %w", err)
	}
	if d.Max, err = data.Max(); err != nil {
		return Description{}, fmt.Errorf("describe max: %w", err)
	}
	if d.Median, err = data.Median(); err != nil {
		return Description{}, fmt.Errorf("describe median: %w", err)
	}
	q, err := stats.Quartile(data)
	if err != nil {
		// fewer than three values: quartiles collapse onto the median
		q = stats.Quartiles{Q1: d.Median, Q2: d.Median, Q3: d.Median}
	}
	d.Q1, d.Q3 = q.Q1, q.Q3
	return d, nil
}
