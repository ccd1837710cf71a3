package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/drift"
	"github.com/ldsec/platedrift/report"
	"github.com/ldsec/platedrift/utils"
)

func newFiguresCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "figures",
		Short: "Export the diagnostic figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sts, err := settings(cmd, fv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("outdir") {
				sts.FiguresDir = fv.outdir
			}
			return runFigures(sts, fv.html)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fv.outdir, "outdir", filepath.Join(drift.DefaultResultsDir, "figures"), "output directory for figures")
	f.IntVar(&fv.bins, "bins", drift.DefaultBins, "number of bins for the residual histogram")
	f.BoolVar(&fv.html, "html", false, "also write report.html with interactive charts")
	return cmd
}

func runFigures(sts *drift.Settings, html bool) error {
	res, err := analyze(sts)
	if err != nil {
		return err
	}
	paths, err := utils.WriteFigures(sts.FiguresDir, res.Age, res.Distance, res.Predicted, res.Residuals, sts.Bins)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Lvl1("Wrote", p)
	}
	if !html {
		return nil
	}

	path := filepath.Join(sts.FiguresDir, "report.html")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.RenderHTML(f, res, sts.Bins); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Lvl1("Wrote", path)
	return nil
}
