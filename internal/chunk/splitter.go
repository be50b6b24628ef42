// Package chunk splits extracted document text into bounded-length,
// overlapping passages suitable for embedding.
package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// Splitter produces overlapping passages from raw text.
//
// Splitting is recursive-character based: it prefers paragraph breaks, then
// line breaks, then sentence and word boundaries, falling back to a hard cut
// only when a single unbroken run exceeds the target size. The same input
// always produces the same passages.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter builds a splitter with the given target passage size and
// overlap, both in characters. Overlap must be strictly smaller than size so
// splitting always makes progress.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, errors.New("chunk: size must be greater than zero")
	}
	if overlap < 0 {
		return nil, errors.New("chunk: overlap cannot be negative")
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk: overlap %d must be smaller than size %d", overlap, size)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split divides text into passages. Every passage is non-empty and at most
// the target size apart from boundary slack the splitter allows to avoid
// cutting mid-word; trailing content shorter than the target is kept as the
// final passage. Blank input yields no passages.
func (s *Splitter) Split(text string) ([]string, error) {
	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.size),
		textsplitter.WithChunkOverlap(s.overlap),
	)
	segments, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("chunk: split text: %w", err)
	}

	passages := make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			continue
		}
		passages = append(passages, trimmed)
	}
	return passages, nil
}

// normalizeNewlines folds Windows and old-Mac line endings into \n so that
// paragraph-boundary detection behaves identically across upload sources.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
