package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/drift"
	"github.com/ldsec/platedrift/utils"
)

// flagValues holds raw flag values; only flags the user set override the settings.
type flagValues struct {
	config  string
	debug   int
	csv     string
	ageCol  string
	distCol string
	outdir  string
	format  string
	z       float64
	level   float64
	tol     float64
	bins    int
	addr    string
	xlsx    bool
	html    bool
	pretty  bool
}

func newRootCmd() *cobra.Command {
	fv := &flagValues{}
	cmd := &cobra.Command{
		Use:           "platedrift",
		Short:         "Least-squares estimate of Pacific plate drift from volcano ages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetDebugVisible(fv.debug)
		},
	}
	cmd.PersistentFlags().StringVar(&fv.config, "config", "", "TOML settings file")
	cmd.PersistentFlags().IntVar(&fv.debug, "debug", 1, "log verbosity (0-5)")
	cmd.PersistentFlags().StringVar(&fv.csv, "csv", drift.DefaultCSV, "path to the CSV (or .xlsx) data file")
	cmd.PersistentFlags().StringVar(&fv.ageCol, "age_col", drift.DefaultAgeColumn, "age column name")
	cmd.PersistentFlags().StringVar(&fv.distCol, "dist_col", drift.DefaultDistanceColumn, "distance column name")

	cmd.AddCommand(newAnalyzeCmd(fv), newFiguresCmd(fv), newServeCmd(fv))
	return cmd
}

// settings loads the config file, or the defaults, and applies the flags that were set.
func settings(cmd *cobra.Command, fv *flagValues) (*drift.Settings, error) {
	sts := drift.NewSettings()
	if fv.config != "" {
		var err error
		if sts, err = drift.LoadSettings(fv.config); err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("csv") {
		sts.CSV = fv.csv
	}
	if f.Changed("age_col") {
		sts.AgeColumn = fv.ageCol
	}
	if f.Changed("dist_col") {
		sts.DistanceColumn = fv.distCol
	}
	if f.Changed("format") {
		sts.Format = fv.format
	}
	if f.Changed("level") {
		sts.ConfidenceLevel = fv.level
		sts.Z = 0
	}
	if f.Changed("z") {
		sts.Z = fv.z
	}
	if f.Changed("tol") {
		sts.AgreementTol = fv.tol
	}
	if f.Changed("bins") {
		sts.Bins = fv.bins
	}
	if f.Changed("addr") {
		sts.Addr = fv.addr
	}
	if err := sts.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return sts, nil
}

// analyze loads the configured data file and runs the analysis on it.
func analyze(sts *drift.Settings) (*drift.Result, error) {
	log.Lvl2("Loading", sts.CSV)
	tbl, err := utils.LoadTable(sts.CSV)
	if err != nil {
		return nil, err
	}
	age, distance, err := utils.ExtractAgeDistance(tbl, sts.AgeColumn, sts.DistanceColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sts.CSV, err)
	}
	return drift.Analyze(age, distance, sts)
}
