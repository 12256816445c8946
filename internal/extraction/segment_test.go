package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentenceTexts(text string) []string {
	sentences := SegmentSentences(text)
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

func TestSegmentSentences_Empty(t *testing.T) {
	assert.Empty(t, SegmentSentences(""))
	assert.Empty(t, SegmentSentences("   \n\t\n  "))
	assert.NotNil(t, SegmentSentences(""), "empty input yields an empty, non-nil slice")
}

func TestSegmentSentences_NoTerminalPunctuation(t *testing.T) {
	assert.Equal(t, []string{"Python developer with SQL skills"}, sentenceTexts("  Python developer with SQL skills  "))
}

func TestSegmentSentences_Punctuation(t *testing.T) {
	text := "I have 5 years of experience. I hold a Master degree. I know Python and SQL."
	assert.Equal(t, []string{
		"I have 5 years of experience.",
		"I hold a Master degree.",
		"I know Python and SQL.",
	}, sentenceTexts(text))
}

func TestSegmentSentences_QuestionAndExclamation(t *testing.T) {
	assert.Equal(t, []string{"Really?", "Yes!", "Done"}, sentenceTexts("Really? Yes! Done"))
}

func TestSegmentSentences_ClosingQuoteStaysWithSentence(t *testing.T) {
	assert.Equal(t, []string{`He said "hired."`, "Then left."}, sentenceTexts(`He said "hired." Then left.`))
}

func TestSegmentSentences_DecimalIsNotBoundary(t *testing.T) {
	assert.Equal(t, []string{"Worked 2.5 years at Acme.", "Then moved on."}, sentenceTexts("Worked 2.5 years at Acme. Then moved on."))
}

func TestSegmentSentences_BlankLineAndBullets(t *testing.T) {
	text := "EXPERIENCE\n- Worked at Acme as data analyst\n- Led a team of 4\n\nEDUCATION\nBachelor of Science\nin Physics"
	assert.Equal(t, []string{
		"EXPERIENCE",
		"Worked at Acme as data analyst",
		"Led a team of 4",
		"EDUCATION Bachelor of Science in Physics",
	}, sentenceTexts(text))
}

func TestSegmentSentences_CRLF(t *testing.T) {
	assert.Equal(t, []string{"First.", "Second."}, sentenceTexts("First.\r\n\r\nSecond."))
}

func TestSegmentSentences_IndexesAreSequential(t *testing.T) {
	sentences := SegmentSentences("One. Two.\n\n- Three\n- Four.")
	require.Len(t, sentences, 4)
	for i, s := range sentences {
		assert.Equal(t, i, s.Index)
	}
}

func TestSegmentSentences_Deterministic(t *testing.T) {
	text := "A role at X. Another role!\n\n- PhD in CS\nMSc. BSc?"
	first := SegmentSentences(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, SegmentSentences(text))
	}
}
