// Package ingest turns extracted document text into indexed knowledge
// passages.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/labtutor/labtutor/internal/knowledge"
)

// ErrEmptyDocument indicates the uploaded document has no extractable text.
// This is a caller error, not a system fault.
var ErrEmptyDocument = errors.New("document contains no extractable text")

// Splitter divides raw text into passage-sized pieces.
type Splitter interface {
	Split(text string) ([]string, error)
}

// Upserter is the slice of the knowledge store ingestion depends on.
type Upserter interface {
	Upsert(ctx context.Context, p knowledge.Passage) error
}

// Service coordinates chunking, provenance tagging, and indexing for one
// uploaded document.
type Service struct {
	splitter Splitter
	store    Upserter
	logger   *slog.Logger
	now      func() time.Time // injectable for tests
}

// NewService wires an ingestion service. logger may be nil.
func NewService(splitter Splitter, store Upserter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		splitter: splitter,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Ingest splits text into passages, tags each with provenance, and upserts
// them into the knowledge store. Returns the number of passages created.
//
// The batch is not transactional: if an upsert fails partway, the whole call
// reports failure and the caller re-ingests the document. Chunk batches are
// small and this path is human-triggered, so retry-the-document is cheaper
// than partial-failure bookkeeping.
func (s *Service) Ingest(ctx context.Context, documentName, fileType, text, uploadedBy string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: %s", ErrEmptyDocument, documentName)
	}

	chunks, err := s.splitter.Split(text)
	if err != nil {
		return 0, fmt.Errorf("splitting document %q: %w", documentName, err)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyDocument, documentName)
	}

	uploadedAt := s.now().UTC()
	for i, chunkText := range chunks {
		passage := knowledge.Passage{
			ID:         uuid.NewString(),
			Text:       chunkText,
			Source:     documentName,
			FileType:   fileType,
			UploadedBy: uploadedBy,
			UploadedAt: uploadedAt,
		}
		if err := s.store.Upsert(ctx, passage); err != nil {
			return 0, fmt.Errorf("indexing passage %d/%d of %q: %w", i+1, len(chunks), documentName, err)
		}
	}

	s.logger.Info("document ingested",
		"source", documentName,
		"file_type", fileType,
		"uploaded_by", uploadedBy,
		"passages", len(chunks))

	return len(chunks), nil
}
