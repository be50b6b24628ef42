package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
)

// fakeSearcher returns canned results and records how it was called.
type fakeSearcher struct {
	results  []knowledge.Result
	err      error
	gotQuery string
	gotOpts  int
}

func (f *fakeSearcher) Search(_ context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error) {
	f.gotQuery = query
	f.gotOpts = len(opts)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func passage(text string) knowledge.Result {
	return knowledge.Result{Passage: knowledge.Passage{Text: text}}
}

func TestRetrieveJoinsPassagesInRankOrder(t *testing.T) {
	store := &fakeSearcher{results: []knowledge.Result{
		passage("most relevant"),
		passage("second"),
		passage("third"),
	}}
	r := NewRetriever(store, 8, log.NewNop())

	got := r.Retrieve(context.Background(), "question")
	assert.Equal(t, "most relevant\n\nsecond\n\nthird", got)
}

func TestRetrievePassesQuestionVerbatim(t *testing.T) {
	store := &fakeSearcher{results: []knowledge.Result{passage("x")}}
	r := NewRetriever(store, 8, log.NewNop())

	r.Retrieve(context.Background(), "how do I configure a trunk port?")

	assert.Equal(t, "how do I configure a trunk port?", store.gotQuery)
	assert.Equal(t, 1, store.gotOpts, "expected a topK option")
}

func TestRetrieveEmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeSearcher{}, 8, log.NewNop())

	got := r.Retrieve(context.Background(), "question")
	assert.Equal(t, NoGroundingFound, got)
}

func TestRetrieveSearchFailureDegrades(t *testing.T) {
	store := &fakeSearcher{err: errors.New("connection refused")}
	r := NewRetriever(store, 8, log.NewNop())

	got := r.Retrieve(context.Background(), "question")
	assert.Equal(t, NoGroundingFound, got)
}
