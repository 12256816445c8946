package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-ranker/internal/types"
)

// executeCommand runs the root command in-process with fresh flag values.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{
		"CV_RANKER_DATABASE_URL", "DATABASE_URL", "CV_RANKER_SKILLS",
		"CV_RANKER_LOG_LEVEL", "CV_RANKER_HISTOGRAM_BUCKETS", "CV_RANKER_WORKERS",
	} {
		t.Setenv(key, "")
	}

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// writeCorpus creates three résumés: alice (1.5), carol (0.7) and bob (0).
func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"alice.txt": "Python and SQL developer with 5 years of experience.\n\nBachelor degree in Computer Science.",
		"bob.txt":   "I like cooking.",
		"carol.txt": "Java developer. Master of Science.",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestRankCommand(t *testing.T) {
	dir := writeCorpus(t)

	stdout, _, err := executeCommand(t, "rank", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Documents ranked: 3")
	alice := strings.Index(stdout, "alice.txt")
	carol := strings.Index(stdout, "carol.txt")
	bob := strings.Index(stdout, "bob.txt")
	assert.True(t, alice >= 0 && alice < carol && carol < bob, "unexpected order:\n%s", stdout)
	assert.Contains(t, stdout, "SKILL FREQUENCY")
	assert.Contains(t, stdout, "SCORE DISTRIBUTION")
}

func TestRankCommand_Exports(t *testing.T) {
	dir := writeCorpus(t)
	out := t.TempDir()
	csvPath := filepath.Join(out, "ranking.csv")
	jsonPath := filepath.Join(out, "reports", "ranking.json")

	stdout, _, err := executeCommand(t, "rank", dir, "--csv", csvPath, "--json", jsonPath, "--quiet")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "RANKING")
	assert.Contains(t, stdout, "CSV: "+csvPath)
	assert.Contains(t, stdout, "Report: "+jsonPath)

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "alice.txt,"))

	jsonData, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var report types.RankingReport
	require.NoError(t, json.Unmarshal(jsonData, &report))
	assert.Equal(t, 3, report.DocumentCount)
	assert.Len(t, report.Histogram, 10)
}

func TestRankCommand_ReportsSkippedFiles(t *testing.T) {
	dir := writeCorpus(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("%PDF-1.4 truncated"), 0644))

	stdout, stderr, err := executeCommand(t, "rank", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Documents ranked: 3")
	assert.Contains(t, stderr, "Skipped")
	assert.Contains(t, stderr, "broken.pdf")
}

func TestRankCommand_Errors(t *testing.T) {
	dir := writeCorpus(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no paths", []string{"rank"}, "requires at least 1 arg"},
		{"missing path", []string{"rank", filepath.Join(dir, "nope")}, "failed to expand input paths"},
		{"save without database", []string{"rank", dir, "--save"}, "database URL is required"},
		{"bad log level", []string{"rank", dir, "--log-level", "loud"}, "invalid log level"},
		{"missing config", []string{"rank", dir, "--config", filepath.Join(dir, "missing.json")}, "cannot load config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSkillsCommand(t *testing.T) {
	dir := writeCorpus(t)

	stdout, _, err := executeCommand(t, "skills", dir, "--json")
	require.NoError(t, err)

	var rows []types.SkillCount
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Equal(t, []types.SkillCount{
		{Skill: "Python", Count: 1},
		{Skill: "SQL", Count: 1},
		{Skill: "Java", Count: 1},
	}, rows)

	stdout, _, err = executeCommand(t, "skills", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SKILL FREQUENCY")
	assert.Contains(t, stdout, "Python")
}

func TestSkillsCommand_ConfigFile(t *testing.T) {
	dir := writeCorpus(t)
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"skills": ["Cooking"]}`), 0644))

	stdout, _, err := executeCommand(t, "skills", dir, "--json", "--config", cfgPath)
	require.NoError(t, err)

	var rows []types.SkillCount
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	assert.Equal(t, []types.SkillCount{{Skill: "Cooking", Count: 1}}, rows)
}

func TestHistogramCommand(t *testing.T) {
	dir := writeCorpus(t)

	stdout, _, err := executeCommand(t, "histogram", dir, "--buckets", "3")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SCORE DISTRIBUTION")
	assert.Contains(t, stdout, "[0.00, 0.50)")
	assert.Contains(t, stdout, "[1.00, 1.50]")
}

func TestExtractCommand(t *testing.T) {
	dir := writeCorpus(t)

	stdout, _, err := executeCommand(t, "extract", filepath.Join(dir, "alice.txt"))
	require.NoError(t, err)

	var doc types.ScoredDocument
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "alice.txt", doc.Document)
	assert.Equal(t, []string{"Python", "SQL"}, doc.Result.Skills)
	assert.Equal(t, []string{"Python and SQL developer with 5 years of experience."}, doc.Result.ExperienceSentences)
	assert.Equal(t, []string{"Bachelor degree in Computer Science."}, doc.Result.EducationSentences)
	assert.InDelta(t, 1.5, doc.Score, 1e-9)
}

func TestExtractCommand_Box(t *testing.T) {
	dir := writeCorpus(t)

	stdout, _, err := executeCommand(t, "extract", filepath.Join(dir, "bob.txt"), "--box")
	require.NoError(t, err)

	assert.Contains(t, stdout, "BOB.TXT")
	assert.Contains(t, stdout, "Score: 0.00")
	assert.Contains(t, stdout, "(none)")
}

func TestExtractCommand_RequiresOnePath(t *testing.T) {
	_, _, err := executeCommand(t, "extract")
	assert.Error(t, err)

	_, _, err = executeCommand(t, "extract", "a.txt", "b.txt")
	assert.Error(t, err)
}

func TestVerboseLogging(t *testing.T) {
	dir := writeCorpus(t)

	_, stderr, err := executeCommand(t, "rank", dir, "--quiet", "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "level=debug")
	assert.Contains(t, stderr, "stage=rank")
}
