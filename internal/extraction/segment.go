// Package extraction finds skills, experience statements and education statements in résumé text
// using case-insensitive keyword presence.
package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/cv-ranker/internal/types"
)

// sentenceEnd matches terminal punctuation, optional closing quotes or brackets,
// and the whitespace that follows. The sentence ends before the whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]+["'”’)\]]*\s+`)

// bulletPrefixes start a new sentence when they open a line
var bulletPrefixes = []string{"- ", "* ", "• ", "· "}

// SegmentSentences splits text into sentences in document order.
// Boundaries are terminal punctuation followed by whitespace, blank lines,
// and bullet list items. Text without any boundary is a single sentence;
// empty or whitespace-only text yields no sentences.
func SegmentSentences(text string) []types.Sentence {
	sentences := make([]types.Sentence, 0)
	for _, block := range splitBlocks(text) {
		for _, s := range splitBlock(block) {
			sentences = append(sentences, types.Sentence{Text: s, Index: len(sentences)})
		}
	}
	return sentences
}

// splitBlocks groups lines into blocks separated by blank lines and bullets.
// Lines of a block are joined with a single space.
func splitBlocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var blocks []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if item, ok := trimBullet(trimmed); ok {
			flush()
			trimmed = item
			if trimmed == "" {
				continue
			}
		}
		current = append(current, trimmed)
	}
	flush()

	return blocks
}

// trimBullet strips a leading bullet marker, reporting whether one was present.
func trimBullet(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	return line, false
}

// splitBlock cuts a block at terminal punctuation.
func splitBlock(block string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(block, -1) {
		// loc[1] is past the trailing whitespace; keep the punctuation only
		end := loc[0] + len(strings.TrimRightFunc(block[loc[0]:loc[1]], unicode.IsSpace))
		if s := strings.TrimSpace(block[start:end]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(block[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
