package ingestion

import "fmt"

// UnsupportedMediaTypeError is returned for files no provider can read
type UnsupportedMediaTypeError struct {
	Name      string
	MediaType string
}

func (e *UnsupportedMediaTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported media type %q for %s", e.MediaType, e.Name)
	}
	return fmt.Sprintf("unsupported media type %q", e.MediaType)
}

// ExtractionError represents a failure to pull text out of a document
type ExtractionError struct {
	Name      string
	MediaType MediaType
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed for %s (%s): %v", e.Name, e.MediaType, e.Cause)
	}
	return fmt.Sprintf("text extraction failed for %s (%s)", e.Name, e.MediaType)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
