package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Loader reads résumé files from disk into documents.
type Loader struct {
	provider TextProvider
	log      *logrus.Entry
}

// FileFailure records a file that could not be loaded.
type FileFailure struct {
	Path string
	Err  error
}

// NewLoader creates a Loader. A nil provider uses the default Provider.
func NewLoader(provider TextProvider, log *logrus.Entry) *Loader {
	if provider == nil {
		provider = NewProvider()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{provider: provider, log: log.WithField("component", "ingestion")}
}

// LoadBytes builds a document from in-memory content with a declared media type.
func (l *Loader) LoadBytes(ctx context.Context, name string, mediaType MediaType, data []byte) (types.Document, *Metadata, error) {
	raw, err := l.provider.ExtractText(ctx, name, mediaType, bytes.NewReader(data))
	if err != nil {
		return types.Document{}, nil, err
	}

	cleaned := CleanText(raw)
	meta := NewMetadata(name, mediaType, len(data), cleaned)

	return types.Document{ID: meta.Hash, Name: name, Text: cleaned}, meta, nil
}

// LoadFile reads path, detects its media type and extracts its text.
// The document is named after the file's base name.
func (l *Loader) LoadFile(ctx context.Context, path string) (types.Document, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Document{}, nil, fmt.Errorf("file not found: %w", err)
		}
		return types.Document{}, nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(path)
	mediaType, err := DetectMediaType(name, data)
	if err != nil {
		return types.Document{}, nil, err
	}

	return l.LoadBytes(ctx, name, mediaType, data)
}

// LoadFiles loads every path in order. Files that fail are reported in the
// failure list and skipped; the remaining documents keep their relative order.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]types.Document, []FileFailure, error) {
	docs := make([]types.Document, 0, len(paths))
	var failures []FileFailure

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		doc, meta, err := l.LoadFile(ctx, path)
		if err != nil {
			l.log.WithError(err).WithField("path", path).Warn("skipping document")
			failures = append(failures, FileFailure{Path: path, Err: err})
			continue
		}

		l.log.WithFields(logrus.Fields{
			"document":   doc.Name,
			"media_type": meta.MediaType,
			"characters": meta.Characters,
		}).Debug("document loaded")
		docs = append(docs, doc)
	}

	return docs, failures, nil
}

// ExpandPaths replaces each directory argument with the supported files under
// it, sorted by path. File arguments are kept as given, in order.
func ExpandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if SupportedExtension(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
