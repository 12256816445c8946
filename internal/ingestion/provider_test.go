package ingestion

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal word document with one paragraph per entry.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestProvider_ExtractText_Text(t *testing.T) {
	p := NewProvider()

	text, err := p.ExtractText(context.Background(), "a.txt", MediaText, strings.NewReader("Python and SQL"))
	require.NoError(t, err)
	assert.Equal(t, "Python and SQL", text)
}

func TestProvider_ExtractText_EmptyIsValid(t *testing.T) {
	p := NewProvider()

	text, err := p.ExtractText(context.Background(), "empty.txt", MediaText, strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestProvider_ExtractText_HTML(t *testing.T) {
	p := NewProvider()
	html := `<html><head><title>CV</title><style>p{color:red}</style></head>
<body><h1>Jane Doe</h1><p>Worked at Acme.<br>Python developer.</p>
<ul><li>SQL</li><li>Java</li></ul><script>var x = "Machine Learning";</script></body></html>`

	text, err := p.ExtractText(context.Background(), "cv.html", MediaHTML, strings.NewReader(html))
	require.NoError(t, err)

	cleaned := CleanText(text)
	assert.Contains(t, cleaned, "Jane Doe")
	assert.Contains(t, cleaned, "Worked at Acme.\nPython developer.")
	assert.Contains(t, cleaned, "SQL\nJava")
	assert.NotContains(t, cleaned, "Machine Learning")
	assert.NotContains(t, cleaned, "color:red")
	assert.NotContains(t, cleaned, "CV\n")
}

func TestProvider_ExtractText_Docx(t *testing.T) {
	p := NewProvider()
	data := buildDocx(t, "Jane Doe", "Bachelor of Science in Data Analysis.", "Worked at Acme for 5 years.")

	text, err := p.ExtractText(context.Background(), "cv.docx", MediaDOCX, bytes.NewReader(data))
	require.NoError(t, err)

	lines := strings.Split(CleanText(text), "\n")
	assert.Equal(t, []string{"Jane Doe", "Bachelor of Science in Data Analysis.", "Worked at Acme for 5 years."}, lines)
}

func TestProvider_ExtractText_InvalidPDF(t *testing.T) {
	p := NewProvider()

	_, err := p.ExtractText(context.Background(), "broken.pdf", MediaPDF, strings.NewReader("not a pdf at all"))
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "broken.pdf", extractionErr.Name)
	assert.Equal(t, MediaPDF, extractionErr.MediaType)
	assert.NotNil(t, extractionErr.Unwrap())
}

func TestProvider_ExtractText_InvalidDocx(t *testing.T) {
	p := NewProvider()

	_, err := p.ExtractText(context.Background(), "broken.docx", MediaDOCX, strings.NewReader("PK not really a zip"))
	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestProvider_ExtractText_UnsupportedType(t *testing.T) {
	p := NewProvider()

	_, err := p.ExtractText(context.Background(), "cv.rtf", MediaType("rtf"), strings.NewReader("{\\rtf1}"))
	var mediaErr *UnsupportedMediaTypeError
	require.True(t, errors.As(err, &mediaErr))
	assert.Equal(t, "rtf", mediaErr.MediaType)
}

func TestProvider_ExtractText_CancelledContext(t *testing.T) {
	p := NewProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ExtractText(ctx, "a.txt", MediaText, strings.NewReader("Python"))
	assert.ErrorIs(t, err, context.Canceled)
}
