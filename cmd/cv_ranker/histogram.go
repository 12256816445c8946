package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/pipeline"
)

var histogramCmd = &cobra.Command{
	Use:   "histogram <paths...>",
	Short: "Show the distribution of résumé scores",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistogram,
}

var histogramBuckets int

func init() {
	histogramCmd.Flags().IntVarP(&histogramBuckets, "buckets", "b", 0, "Number of equal-width buckets (default from config)")
	rootCmd.AddCommand(histogramCmd)
}

func runHistogram(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{
		Paths:   args,
		Config:  cfg,
		Buckets: histogramBuckets,
		Log:     log,
	})
	if err != nil {
		return err
	}
	reportFailures(cmd.ErrOrStderr(), result.Failures)

	observability.NewPrinter(cmd.OutOrStdout()).PrintHistogram(result.Report.Histogram)
	return nil
}
