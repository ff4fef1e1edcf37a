// Package pdf loads documents from a folder of PDF files.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docchat/internal/domain"
	"docchat/internal/logger"
)

// Source reads every *.pdf file in a directory, one document per file.
type Source struct{}

// NewSource creates a PDF document source.
func NewSource() *Source { return &Source{} }

// ListDocuments extracts the text of every PDF in dir. Files with no
// extractable text are silently excluded; files that cannot be read at all
// are logged as warnings and excluded. A missing directory yields no
// documents and no error.
func (s *Source) ListDocuments(dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document dir: %w", err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		text, err := extractText(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("could not read document", "file", entry.Name(), "error", err)
			continue
		}
		if text == "" {
			continue
		}
		docs = append(docs, domain.Document{Name: entry.Name(), Text: text})
	}
	return docs, nil
}

// extractText returns the plain text of all pages joined by newlines.
// The pdf library panics on some malformed files, so recover and report
// those as ordinary read errors.
func extractText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("could not extract page", "file", filepath.Base(path), "page", i, "error", err)
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}
