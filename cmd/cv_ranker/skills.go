package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-ranker/internal/observability"
	"github.com/jonathan/cv-ranker/internal/pipeline"
)

var skillsCmd = &cobra.Command{
	Use:   "skills <paths...>",
	Short: "Show how many résumés mention each skill",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSkills,
}

var skillsJSON bool

func init() {
	skillsCmd.Flags().BoolVar(&skillsJSON, "json", false, "Print the frequency table as JSON")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{Paths: args, Config: cfg, Log: log})
	if err != nil {
		return err
	}
	reportFailures(cmd.ErrOrStderr(), result.Failures)

	if skillsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Report.SkillFrequency)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSkillFrequency(result.Report.SkillFrequency)
	return nil
}
