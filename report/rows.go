// Package report presents a drift analysis: terminal summary, HTML charts, an xlsx
// workbook and an HTTP server for all of them.
package report

import (
	"fmt"

	"github.com/ldsec/platedrift/drift"
)

// Sample is one observation with its fitted value.
type Sample struct {
	Age       float64 `json:"age_myr"`
	Distance  float64 `json:"distance_km"`
	Predicted float64 `json:"predicted_km"`
	Residual  float64 `json:"residual_km"`
}

// Samples lists the observations of res in input order.
func Samples(res *drift.Result) []Sample {
	out := make([]Sample, len(res.Age))
	for i := range out {
		out[i] = Sample{
			Age:       res.Age[i],
			Distance:  res.Distance[i],
			Predicted: res.Predicted[i],
			Residual:  res.Residuals[i],
		}
	}
	return out
}

type row struct {
	key   string
	value interface{}
}

// summaryRows flattens a summary in display order, keyed like its JSON encoding.
func summaryRows(s *drift.Summary) []row {
	pct := fmt.Sprintf("%.4g%%", 100*s.CILevel)
	return []row{
		{"n_samples", s.NSamples},
		{"b_hat_km", s.BHatKm},
		{"se_b_km", s.SEBKm},
		{"v_hat_km_per_myr", s.VHatKmPerMyr},
		{"se_v_km_per_myr", s.SEVKmPerMyr},
		{"v_hat_cm_per_year", s.VHatCmPerYear},
		{"v_95ci_km_per_myr", fmt.Sprintf("[%.6g, %.6g]", s.VCIKmPerMyr[0], s.VCIKmPerMyr[1])},
		{"v_95ci_cm_per_year", fmt.Sprintf("[%.6g, %.6g]", s.VCICmPerYear[0], s.VCICmPerYear[1])},
		{"ci_level", pct},
		{"ci_z", s.CIZ},
		{"rmse_km", s.RMSEKm},
		{"r2", s.R2},
		{"sigma2_hat", s.Sigma2Hat},
		{"lstsq_matches", s.LstsqMatches},
		{"dataset_xxhash", s.DatasetXXHash},
	}
}
