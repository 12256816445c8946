package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

// Metadata describes how a document was ingested
type Metadata struct {
	Name       string    `json:"name"`
	MediaType  MediaType `json:"media_type"`
	Timestamp  string    `json:"timestamp"` // RFC3339 format
	Hash       string    `json:"hash"`      // SHA256 hex digest of the cleaned text
	SizeBytes  int       `json:"size_bytes"`
	Characters int       `json:"characters"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(name string, mediaType MediaType, sizeBytes int, content string) *Metadata {
	return &Metadata{
		Name:       name,
		MediaType:  mediaType,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		SizeBytes:  sizeBytes,
		Characters: utf8.RuneCountInString(content),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
