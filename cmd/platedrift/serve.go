package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ldsec/platedrift/drift"
	"github.com/ldsec/platedrift/report"
)

func newServeCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis as HTML charts and JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sts, err := settings(cmd, fv)
			if err != nil {
				return err
			}
			res, err := analyze(sts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return report.Serve(ctx, sts.Addr, report.NewRouter(res, sts.Bins))
		},
	}
	cmd.Flags().StringVar(&fv.addr, "addr", drift.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&fv.bins, "bins", drift.DefaultBins, "number of bins for the residual histogram")
	return cmd
}
