package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MediaType is the declared kind of an uploaded document
type MediaType string

// Supported media types
const (
	MediaText MediaType = "text"
	MediaPDF  MediaType = "pdf"
	MediaDOCX MediaType = "docx"
	MediaHTML MediaType = "html"
)

// TextProvider returns the raw text of a document. PDF pages are concatenated
// in page order. An empty string is a valid result.
type TextProvider interface {
	ExtractText(ctx context.Context, name string, mediaType MediaType, r io.Reader) (string, error)
}

// Provider is the default TextProvider backed by the pdf, docx and goquery readers.
type Provider struct{}

// NewProvider creates a Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// ExtractText implements TextProvider.
func (p *Provider) ExtractText(ctx context.Context, name string, mediaType MediaType, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &ExtractionError{Name: name, MediaType: mediaType, Cause: err}
	}

	var text string
	switch mediaType {
	case MediaText:
		text = string(data)
	case MediaPDF:
		text, err = extractPDFText(data)
	case MediaDOCX:
		text, err = extractDocxText(data)
	case MediaHTML:
		text, err = extractHTMLText(bytes.NewReader(data))
	default:
		return "", &UnsupportedMediaTypeError{Name: name, MediaType: string(mediaType)}
	}
	if err != nil {
		return "", &ExtractionError{Name: name, MediaType: mediaType, Cause: err}
	}

	return text, nil
}

// extractPDFText concatenates the plain text of every page, in page order.
func extractPDFText(data []byte) (_ string, err error) {
	// The pdf reader panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}

// extractDocxText reads word/document.xml and strips its markup,
// keeping one line per paragraph.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "</w:p>\n")
	content = strings.ReplaceAll(content, "<w:tab/>", " ")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx markup: %w", err)
	}
	return parsed.Text(), nil
}

// blockElements end a line of text when rendered
const blockElements = "p, li, div, section, article, tr, h1, h2, h3, h4, h5, h6, dt, dd, blockquote, pre"

// extractHTMLText returns the visible body text, one line per block element.
func extractHTMLText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
