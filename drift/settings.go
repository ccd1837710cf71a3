package drift

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ldsec/platedrift/uncertainty"
)

// Default settings of an analysis run.
const (
	DefaultCSV             = "data/volcanoes_data.csv"
	DefaultAgeColumn       = "0.4"
	DefaultDistanceColumn  = "0"
	DefaultResultsDir      = "results"
	DefaultBins            = 10
	DefaultConfidenceLevel = 0.95
	DefaultAgreementTol    = 1e-8
	DefaultFormat          = "json"
	DefaultAddr            = ":8080"
)

// Formats lists the supported summary encodings.
var Formats = []string{"json", "toml", "yaml"}

// Settings configures an analysis run. Zero Z means the z-score is derived from
// ConfidenceLevel.
type Settings struct {
	CSV             string  `toml:"csv"`
	AgeColumn       string  `toml:"age_col"`
	DistanceColumn  string  `toml:"dist_col"`
	ResultsDir      string  `toml:"results_dir"`
	FiguresDir      string  `toml:"figures_dir"`
	Bins            int     `toml:"bins"`
	ConfidenceLevel float64 `toml:"confidence_level"`
	Z               float64 `toml:"z"`
	AgreementTol    float64 `toml:"agreement_tol"`
	Format          string  `toml:"format"`
	Addr            string  `toml:"addr"`
}

// NewSettings returns the default settings.
func NewSettings() *Settings {
	return &Settings{
		CSV:             DefaultCSV,
		AgeColumn:       DefaultAgeColumn,
		DistanceColumn:  DefaultDistanceColumn,
		ResultsDir:      DefaultResultsDir,
		FiguresDir:      filepath.Join(DefaultResultsDir, "figures"),
		Bins:            DefaultBins,
		ConfidenceLevel: DefaultConfidenceLevel,
		AgreementTol:    DefaultAgreementTol,
		Format:          DefaultFormat,
		Addr:            DefaultAddr,
	}
}

// LoadSettings decodes the TOML file at path over the default settings.
// Unknown keys are rejected.
func LoadSettings(path string) (*Settings, error) {
	sts := NewSettings()
	md, err := toml.DecodeFile(path, sts)
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load settings %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := sts.Validate(); err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}
	return sts, nil
}

// Validate checks the settings for values the pipeline cannot use.
func (sts *Settings) Validate() error {
	if sts.AgeColumn == "" || sts.DistanceColumn == "" {
		return errors.New("age and distance columns must be set")
	}
	if sts.Bins <= 0 {
		return fmt.Errorf("bins must be positive, got %d", sts.Bins)
	}
	if sts.Z < 0 {
		return fmt.Errorf("z must not be negative, got %v", sts.Z)
	}
	if sts.AgreementTol < 0 {
		return fmt.Errorf("agreement tolerance must not be negative, got %v", sts.AgreementTol)
	}
	if _, err := sts.ZScore(); err != nil {
		return err
	}
	for _, f := range Formats {
		if sts.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q, want one of %s", sts.Format, strings.Join(Formats, ", "))
}

// ZScore returns the z-score used for confidence intervals.
func (sts *Settings) ZScore() (float64, error) {
	if sts.Z > 0 {
		return sts.Z, nil
	}
	return uncertainty.ZForLevel(sts.ConfidenceLevel)
}

// Level returns the two-sided confidence level matching ZScore. An explicit Z is
// converted back through the normal CDF.
func (sts *Settings) Level() float64 {
	if sts.Z > 0 {
		return 2*distuv.UnitNormal.CDF(sts.Z) - 1
	}
	return sts.ConfidenceLevel
}
