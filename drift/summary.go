package drift

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/ldsec/platedrift/metrics"
)

// Summary is the record handed to reporting and plotting. Velocities are given in
// km/Myr and cm/yr; the "95ci" intervals use the configured level, recorded in CILevel.
type Summary struct {
	BHatKm        float64   `json:"b_hat_km" toml:"b_hat_km" yaml:"b_hat_km"`
	VHatKmPerMyr  float64   `json:"v_hat_km_per_myr" toml:"v_hat_km_per_myr" yaml:"v_hat_km_per_myr"`
	VHatCmPerYear float64   `json:"v_hat_cm_per_year" toml:"v_hat_cm_per_year" yaml:"v_hat_cm_per_year"`
	VCIKmPerMyr   []float64 `json:"v_95ci_km_per_myr" toml:"v_95ci_km_per_myr" yaml:"v_95ci_km_per_myr"`
	VCICmPerYear  []float64 `json:"v_95ci_cm_per_year" toml:"v_95ci_cm_per_year" yaml:"v_95ci_cm_per_year"`
	RMSEKm        float64   `json:"rmse_km" toml:"rmse_km" yaml:"rmse_km"`
	R2            float64   `json:"r2" toml:"r2" yaml:"r2"`
	Sigma2Hat     float64   `json:"sigma2_hat" toml:"sigma2_hat" yaml:"sigma2_hat"`
	SEBKm         float64   `json:"se_b_km" toml:"se_b_km" yaml:"se_b_km"`
	SEVKmPerMyr   float64   `json:"se_v_km_per_myr" toml:"se_v_km_per_myr" yaml:"se_v_km_per_myr"`
	LstsqMatches  bool      `json:"lstsq_matches" toml:"lstsq_matches" yaml:"lstsq_matches"`
	CILevel       float64   `json:"ci_level" toml:"ci_level" yaml:"ci_level"`
	CIZ           float64   `json:"ci_z" toml:"ci_z" yaml:"ci_z"`
	NSamples      int       `json:"n_samples" toml:"n_samples" yaml:"n_samples"`
	DatasetXXHash string    `json:"dataset_xxhash" toml:"dataset_xxhash" yaml:"dataset_xxhash"`

	Residuals metrics.Description `json:"residuals" toml:"residuals" yaml:"residuals"`
}

// Encode writes the summary to w in the given format (json, toml or yaml).
func (s *Summary) Encode(w io.Writer, format string) error {
	switch format {
	case "json":
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		b = append(b, '\n')
		_, err = w.Write(b)
		return err
	case "toml":
		if err := toml.NewEncoder(w).Order(toml.OrderPreserve).Encode(*s); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("encode summary: unknown format %q", format)
	}
}
