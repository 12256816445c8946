// Package ingestion turns résumé files into documents: it detects the media type,
// extracts raw text with a TextProvider and normalizes it.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	inlineWhitespace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlankLines = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF); PDF extractors also emit form feeds between pages
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")

	// 2. Drop NUL and other control characters left by binary extractors
	content = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || r == '\uFFFD' {
			return -1
		}
		return r
	}, content)

	// 3. Process each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 4. Join lines and remove excessive blank lines (max 2 consecutive)
	result := strings.Join(cleanedLines, "\n")
	result = excessBlankLines.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving bullets and headings
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	// Markdown headings are kept flush left
	if strings.HasPrefix(trimmed, "#") {
		return inlineWhitespace.ReplaceAllString(trimmed, " ")
	}

	// Bullets of any style become "- " so the segmenter sees one marker
	if isBulletLine(trimmed) {
		_, rest, _ := strings.Cut(trimmed, " ")
		return "- " + inlineWhitespace.ReplaceAllString(strings.TrimSpace(rest), " ")
	}

	return inlineWhitespace.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ") ||
		strings.HasPrefix(trimmed, "▪ ") || strings.HasPrefix(trimmed, "◦ ")
}
