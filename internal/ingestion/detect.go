package ingestion

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// extensionTypes is the fallback when content sniffing is inconclusive
var extensionTypes = map[string]MediaType{
	".txt":      MediaText,
	".text":     MediaText,
	".md":       MediaText,
	".markdown": MediaText,
	".pdf":      MediaPDF,
	".docx":     MediaDOCX,
	".html":     MediaHTML,
	".htm":      MediaHTML,
}

// SupportedExtension reports whether files with this name are picked up when
// a directory is expanded.
func SupportedExtension(name string) bool {
	_, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]
	return ok
}

// DetectMediaType sniffs data (falling back to the file extension of name)
// and returns the media type to extract it as.
func DetectMediaType(name string, data []byte) (MediaType, error) {
	detected := mimetype.Detect(data)

	switch {
	case detected.Is("application/pdf"):
		return MediaPDF, nil
	case detected.Is(docxMIME):
		return MediaDOCX, nil
	case detected.Is("text/html"):
		return MediaHTML, nil
	}

	if mediaType, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mediaType, nil
	}

	if strings.HasPrefix(detected.String(), "text/") {
		return MediaText, nil
	}

	return "", &UnsupportedMediaTypeError{Name: name, MediaType: detected.String()}
}

// ParseMediaType accepts a short name ("pdf") or a MIME type ("application/pdf").
func ParseMediaType(value string) (MediaType, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if base, _, found := strings.Cut(v, ";"); found {
		v = strings.TrimSpace(base)
	}

	switch v {
	case "text", "txt", "text/plain", "text/markdown":
		return MediaText, nil
	case "pdf", "application/pdf":
		return MediaPDF, nil
	case "docx", docxMIME:
		return MediaDOCX, nil
	case "html", "text/html":
		return MediaHTML, nil
	default:
		return "", &UnsupportedMediaTypeError{MediaType: value}
	}
}
