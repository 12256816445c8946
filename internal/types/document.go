// Package types provides type definitions for structured data used throughout the cv-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is a résumé whose raw text has been extracted by a text provider.
// Text is never modified once the document is built.
type Document struct {
	ID   string `json:"id"`   // SHA256 hex digest of Text
	Name string `json:"name"` // File name or caller-supplied identifier
	Text string `json:"text"`
}

// Sentence is a contiguous span of a document's text with its position in that document.
type Sentence struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}
