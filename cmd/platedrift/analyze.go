package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/drift"
	"github.com/ldsec/platedrift/report"
	"github.com/ldsec/platedrift/utils"
)

func newAnalyzeCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Fit the drift model and write the summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sts, err := settings(cmd, fv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("outdir") {
				sts.ResultsDir = fv.outdir
			}
			return runAnalyze(cmd, sts, fv)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fv.outdir, "outdir", drift.DefaultResultsDir, "directory for the summary and workbook")
	f.StringVar(&fv.format, "format", drift.DefaultFormat, "summary format: json, toml or yaml")
	f.Float64Var(&fv.z, "z", 0, "z-score of the slope interval (overrides --level)")
	f.Float64Var(&fv.level, "level", drift.DefaultConfidenceLevel, "two-sided confidence level of the slope interval")
	f.Float64Var(&fv.tol, "tol", drift.DefaultAgreementTol, "absolute tolerance between closed-form and SVD coefficients")
	f.BoolVar(&fv.xlsx, "xlsx", false, "also write fit.xlsx")
	f.BoolVar(&fv.pretty, "pretty", false, "print a formatted card instead of the encoded summary")
	return cmd
}

func runAnalyze(cmd *cobra.Command, sts *drift.Settings, fv *flagValues) error {
	res, err := analyze(sts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := res.Summary.Encode(&buf, sts.Format); err != nil {
		return err
	}
	if err := utils.EnsureDir(sts.ResultsDir); err != nil {
		return err
	}
	path := filepath.Join(sts.ResultsDir, "summary."+sts.Format)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Lvl1("Wrote", path)

	if fv.xlsx {
		wb := filepath.Join(sts.ResultsDir, "fit.xlsx")
		if err := report.WriteWorkbook(wb, res); err != nil {
			return err
		}
		log.Lvl1("Wrote", wb)
	}

	if fv.pretty {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), report.RenderTerminal(&res.Summary, report.DefaultTheme()))
		return err
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}
