package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/pipeline"
)

var rankCmd = &cobra.Command{
	Use:   "rank <paths...>",
	Short: "Rank résumés by weighted keyword score",
	Long: "Load every résumé under the given files or directories, extract skills, experience and education " +
		"statements, score and rank them. Prints the ranking, a skill frequency chart and a score histogram, " +
		"and optionally exports CSV/JSON and saves the run to the database.",
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

var (
	rankCSVPath  string
	rankJSONPath string
	rankBuckets  int
	rankSave     bool
	rankLabel    string
	rankQuiet    bool
)

func init() {
	rankCmd.Flags().StringVar(&rankCSVPath, "csv", "", "Write the ranking as CSV to this path")
	rankCmd.Flags().StringVar(&rankJSONPath, "json", "", "Write the JSON report to this path")
	rankCmd.Flags().IntVarP(&rankBuckets, "buckets", "b", 0, "Histogram buckets (default from config)")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Save the run to the database")
	rankCmd.Flags().StringVarP(&rankLabel, "label", "l", "", "Label stored with a saved run")
	rankCmd.Flags().BoolVarP(&rankQuiet, "quiet", "q", false, "Do not print the ranking and charts")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	opts := pipeline.RunOptions{
		Paths:    args,
		Config:   cfg,
		Buckets:  rankBuckets,
		Label:    rankLabel,
		CSVPath:  rankCSVPath,
		JSONPath: rankJSONPath,
		Log:      log,
		OnProgress: func(event pipeline.ProgressEvent) {
			log.WithField("stage", event.Stage).Debug(event.Message)
		},
	}
	if !rankQuiet {
		opts.Printer = observability.NewPrinter(cmd.OutOrStdout())
	}

	if rankSave {
		database, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	reportFailures(cmd.ErrOrStderr(), result.Failures)

	out := cmd.OutOrStdout()
	if result.RunID != uuid.Nil {
		fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
	}
	if rankCSVPath != "" {
		fmt.Fprintf(out, "CSV: %s\n", rankCSVPath)
	}
	if rankJSONPath != "" {
		fmt.Fprintf(out, "Report: %s\n", rankJSONPath)
	}

	return nil
}
