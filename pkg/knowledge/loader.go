package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"lesson-notes-be/internal/pkg/logger"
)

// Extractor pulls raw text out of a single reference file.
type Extractor func(path string) (string, error)

// Loader reads every recognised reference document in a directory.
// Nothing is cached: each Load call re-reads the directory.
type Loader struct {
	dir        string
	logger     logger.ILogger
	extractors map[string]Extractor
}

func NewLoader(dir string, log logger.ILogger) *Loader {
	return &Loader{
		dir:    dir,
		logger: log,
		extractors: map[string]Extractor{
			".docx": ExtractDocxText,
			".pdf":  ExtractPDFText,
			".html": ExtractHTMLText,
			".htm":  ExtractHTMLText,
			".md":   readPlainText,
			".txt":  readPlainText,
		},
	}
}

// Dir returns the directory this loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load returns the documents in directory listing order. A missing or
// unreadable directory yields an empty slice; files that fail to extract
// are logged and skipped.
func (l *Loader) Load(ctx context.Context) []LoadedDocument {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		l.logger.Debug("Knowledge", "Knowledge directory unavailable", map[string]interface{}{
			"dir":   l.dir,
			"error": err.Error(),
		})
		return []LoadedDocument{}
	}

	docs := make([]LoadedDocument, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		if !entry.Type().IsRegular() {
			continue
		}

		extract, ok := l.extractors[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		raw, err := extract(path)
		if err != nil {
			l.logger.Warn("Knowledge", "Failed reading reference document", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
			continue
		}

		docs = append(docs, LoadedDocument{
			Filename: entry.Name(),
			Text:     NormalizeText(raw),
		})
	}

	return docs
}

func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
