package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/ingestion"
	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/pipeline"
	"github.com/jonathan/cv-ranker/internal/ranking"
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Show the skills, experience and education found in one résumé",
	Long:  "Extract one résumé and print its scored extraction result as JSON, or as a summary box with --box.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractBox bool

func init() {
	extractCmd.Flags().BoolVar(&extractBox, "box", false, "Print a human-readable summary instead of JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	extractor, err := pipeline.NewExtractor(cfg)
	if err != nil {
		return err
	}

	doc, meta, err := ingestion.NewLoader(nil, log).LoadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	log.WithField("hash", meta.Hash).Debug("document loaded")

	scored := ranking.ScoreDocument(doc.Name, extractor.Extract(doc), pipeline.Weights(cfg))

	if extractBox {
		observability.NewPrinter(cmd.OutOrStdout()).PrintDocument(scored)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(scored)
}
