// Package observability provides formatted output for the CLI and the process logger.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the length of the longest bar in a chart
	barWidth = 30
	// labelWidth is the column reserved for chart labels
	labelWidth = 20
)

// Printer handles formatted output for ranking results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// bar returns a bar proportional to value/maxValue
func bar(value, maxValue int) string {
	if maxValue <= 0 || value <= 0 {
		return ""
	}
	n := max(value*barWidth/maxValue, 1)
	return strings.Repeat("█", n)
}

// PrintRanking outputs every document, highest score first, with its category counts.
func (p *Printer) PrintRanking(ranked []types.ScoredDocument) {
	var sb strings.Builder
	if len(ranked) == 0 {
		sb.WriteString("No documents ranked")
		p.printBox("RANKING", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Documents ranked: %d\n\n", len(ranked)))
	for i, doc := range ranked {
		sb.WriteString(fmt.Sprintf("#%-3d %-30s %8.2f\n", i+1, truncate(doc.Document, 30), doc.Score))
		sb.WriteString(fmt.Sprintf("     skills %d · experience %d · education %d",
			len(doc.Result.Skills), len(doc.Result.ExperienceSentences), len(doc.Result.EducationSentences)))
		if i < len(ranked)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RANKING", sb.String())
}

// PrintSkillFrequency draws a horizontal bar chart of how many documents mention each skill.
func (p *Printer) PrintSkillFrequency(rows []types.SkillCount) {
	if len(rows) == 0 {
		p.printBox("SKILL FREQUENCY", "No skills found")
		return
	}

	maxCount := 0
	for _, row := range rows {
		maxCount = max(maxCount, row.Count)
	}

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%-*s %s %d", labelWidth, truncate(row.Skill, labelWidth), bar(row.Count, maxCount), row.Count))
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL FREQUENCY", sb.String())
}

// PrintHistogram draws the score distribution, one bar per bucket.
func (p *Printer) PrintHistogram(buckets []types.HistogramBucket) {
	if len(buckets) == 0 {
		p.printBox("SCORE DISTRIBUTION", "No scores to plot")
		return
	}

	maxCount := 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
	}

	var sb strings.Builder
	for i, b := range buckets {
		closing := ")"
		if i == len(buckets)-1 {
			closing = "]"
		}
		label := fmt.Sprintf("[%.2f, %.2f%s", b.Lower, b.Upper, closing)
		sb.WriteString(fmt.Sprintf("%-*s %s %d", labelWidth, label, bar(b.Count, maxCount), b.Count))
		if i < len(buckets)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SCORE DISTRIBUTION", sb.String())
}

// PrintDocument outputs the signals found in one document.
func (p *Printer) PrintDocument(doc types.ScoredDocument) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score: %.2f\n\n", doc.Score))

	sb.WriteString("Skills:\n")
	if len(doc.Result.Skills) == 0 {
		sb.WriteString("  (none)\n")
	} else {
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(doc.Result.Skills, ", ")))
	}

	writeSentences(&sb, "Experience", doc.Result.ExperienceSentences)
	writeSentences(&sb, "Education", doc.Result.EducationSentences)

	p.printBox(strings.ToUpper(doc.Document), strings.TrimSuffix(sb.String(), "\n"))
}

func writeSentences(sb *strings.Builder, heading string, sentences []string) {
	sb.WriteString(fmt.Sprintf("\n%s (%d):\n", heading, len(sentences)))
	count := min(len(sentences), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", sentences[i]))
	}
	if len(sentences) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sentences)-maxItemsToShow))
	}
}
