// Package extract converts uploaded document bytes into plain text.
//
// One extractor exists per supported file type, selected by the declared
// type rather than by sniffing content. Text-based formats (sql, markdown,
// plain-text) are decoded as UTF-8; PDF content is run through a text
// extraction pass page by page.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/labtutor/labtutor/internal/knowledge"
)

// ErrUnsupportedType indicates the declared file type has no extractor.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrNotUTF8 indicates a text upload is not valid UTF-8.
var ErrNotUTF8 = errors.New("file content is not valid UTF-8 text")

// Extractor turns an uploaded byte blob into a single plain-text string.
type Extractor interface {
	Extract(raw []byte) (string, error)
}

// ForType returns the extractor for a declared file type.
func ForType(fileType string) (Extractor, error) {
	switch fileType {
	case knowledge.FileTypePDF:
		return pdfExtractor{}, nil
	case knowledge.FileTypeSQL, knowledge.FileTypeMarkdown, knowledge.FileTypePlain:
		return textExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: pdf, sql, markdown, plain-text)", ErrUnsupportedType, fileType)
	}
}

// TypeFromFilename maps an uploaded filename's extension to a file type tag.
func TypeFromFilename(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return knowledge.FileTypePDF, nil
	case ".sql":
		return knowledge.FileTypeSQL, nil
	case ".md", ".markdown":
		return knowledge.FileTypeMarkdown, nil
	case ".txt":
		return knowledge.FileTypePlain, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: .pdf, .sql, .md, .txt)", ErrUnsupportedType, name)
	}
}

// textExtractor decodes UTF-8 text uploads (sql, markdown, plain-text).
type textExtractor struct{}

func (textExtractor) Extract(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrNotUTF8
	}
	return string(raw), nil
}

// pdfExtractor extracts the plain text layer of a PDF document.
type pdfExtractor struct{}

func (pdfExtractor) Extract(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}
