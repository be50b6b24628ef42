// Package rag assembles grounding context for hint generation.
package rag

import (
	"context"
	"log/slog"
	"strings"

	"github.com/labtutor/labtutor/internal/knowledge"
)

// NoGroundingFound is the context handed to the generator when retrieval
// produced nothing usable. The level directives require the generator to
// acknowledge missing grounding instead of inventing facts, so this sentinel
// is a legitimate answer path, not an error.
const NoGroundingFound = "No relevant course material was found in the knowledge base."

// Searcher is the slice of the knowledge store the retriever depends on.
type Searcher interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
}

// Retriever finds the passages most relevant to a learner's question and
// concatenates them into a single context string, most relevant first.
type Retriever struct {
	store  Searcher
	topK   int
	logger *slog.Logger
}

// NewRetriever creates a retriever that fetches up to topK passages per
// question. logger may be nil.
func NewRetriever(store Searcher, topK int, logger *slog.Logger) *Retriever {
	if topK <= 0 {
		topK = 8
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, topK: topK, logger: logger}
}

// Retrieve embeds the question, searches the knowledge store, and joins the
// matching passage texts in rank order separated by blank lines. Rank order
// is preserved because generation weighs earlier context more heavily.
//
// Retrieval degrades rather than fails: an empty index, zero matches, or a
// store error all yield the NoGroundingFound sentinel so the request can
// still be answered honestly.
func (r *Retriever) Retrieve(ctx context.Context, question string) string {
	results, err := r.store.Search(ctx, question, knowledge.WithTopK(r.topK))
	if err != nil {
		r.logger.Warn("knowledge search failed, answering without grounding", "error", err)
		return NoGroundingFound
	}
	if len(results) == 0 {
		return NoGroundingFound
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Passage.Text)
	}
	return strings.Join(texts, "\n\n")
}
