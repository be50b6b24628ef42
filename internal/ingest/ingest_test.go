package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
)

// fakeSplitter splits on a marker so tests control chunk boundaries exactly.
type fakeSplitter struct {
	err error
}

func (f fakeSplitter) Split(text string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var chunks []string
	for _, part := range strings.Split(text, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks, nil
}

// fakeUpserter records passages and can fail after N successful upserts.
type fakeUpserter struct {
	passages  []knowledge.Passage
	failAfter int // -1 = never fail
}

func (f *fakeUpserter) Upsert(_ context.Context, p knowledge.Passage) error {
	if f.failAfter >= 0 && len(f.passages) >= f.failAfter {
		return errors.New("upsert failed")
	}
	f.passages = append(f.passages, p)
	return nil
}

func newTestService(store *fakeUpserter) *Service {
	svc := NewService(fakeSplitter{}, store, log.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestIngest(t *testing.T) {
	store := &fakeUpserter{failAfter: -1}
	svc := newTestService(store)

	count, err := svc.Ingest(context.Background(), "routing.md", knowledge.FileTypeMarkdown,
		"first passage|second passage|third passage", "trainer1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, store.passages, 3)
}

func TestIngestTagsProvenance(t *testing.T) {
	store := &fakeUpserter{failAfter: -1}
	svc := newTestService(store)

	_, err := svc.Ingest(context.Background(), "lab-setup.pdf", knowledge.FileTypePDF, "only passage", "trainer1")
	require.NoError(t, err)

	require.Len(t, store.passages, 1)
	p := store.passages[0]
	assert.Equal(t, "only passage", p.Text)
	assert.Equal(t, "lab-setup.pdf", p.Source)
	assert.Equal(t, knowledge.FileTypePDF, p.FileType)
	assert.Equal(t, "trainer1", p.UploadedBy)
	assert.Equal(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC), p.UploadedAt)

	_, err = uuid.Parse(p.ID)
	assert.NoError(t, err, "passage ID should be a uuid")
}

func TestIngestAssignsUniqueIDs(t *testing.T) {
	store := &fakeUpserter{failAfter: -1}
	svc := newTestService(store)

	_, err := svc.Ingest(context.Background(), "doc.txt", knowledge.FileTypePlain, "a|b|c|d", "trainer1")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, p := range store.passages {
		assert.False(t, seen[p.ID], "duplicate ID %s", p.ID)
		seen[p.ID] = true
	}
}

func TestIngestEmptyDocument(t *testing.T) {
	store := &fakeUpserter{failAfter: -1}
	svc := newTestService(store)

	for _, text := range []string{"", "   \n\t"} {
		_, err := svc.Ingest(context.Background(), "empty.txt", knowledge.FileTypePlain, text, "trainer1")
		assert.ErrorIs(t, err, ErrEmptyDocument, "text=%q", text)
	}
	assert.Empty(t, store.passages)
}

func TestIngestSplitterYieldsNothing(t *testing.T) {
	store := &fakeUpserter{failAfter: -1}
	svc := newTestService(store)

	// Non-blank input that still produces zero chunks (only separators).
	_, err := svc.Ingest(context.Background(), "seps.txt", knowledge.FileTypePlain, "|||", "trainer1")
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestIngestUpsertFailureFailsWholeCall(t *testing.T) {
	store := &fakeUpserter{failAfter: 2}
	svc := newTestService(store)

	_, err := svc.Ingest(context.Background(), "doc.txt", knowledge.FileTypePlain, "a|b|c|d", "trainer1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passage 3/4")
}
