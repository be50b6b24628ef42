package hint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
	"github.com/labtutor/labtutor/internal/rag"
)

// fakeRetriever returns a fixed grounding string and records questions.
type fakeRetriever struct {
	grounding string
	questions []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, question string) string {
	f.questions = append(f.questions, question)
	return f.grounding
}

// fakeGenerator echoes its inputs so tests can assert what reached it.
type fakeGenerator struct {
	err   error
	calls []generatorCall
}

type generatorCall struct {
	question   string
	context    string
	labContext string
	level      Level
}

func (f *fakeGenerator) Generate(_ context.Context, question, context, labContext string, level Level) (string, error) {
	f.calls = append(f.calls, generatorCall{question, context, labContext, level})
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("hint at level %d", int(level)), nil
}

func newTestService(grounding string, genErr error) (*Service, *fakeRetriever, *fakeGenerator) {
	retriever := &fakeRetriever{grounding: grounding}
	generator := &fakeGenerator{err: genErr}
	return NewService(retriever, generator, log.NewNop()), retriever, generator
}

func TestAnswerEmptyQuestion(t *testing.T) {
	svc, retriever, generator := newTestService("some context", nil)

	for _, question := range []string{"", "   ", "\n\t"} {
		_, err := svc.Answer(context.Background(), Request{Question: question, Level: 1})
		assert.ErrorIs(t, err, ErrEmptyQuestion, "question=%q", question)
	}

	// Input errors never reach retrieval or generation.
	assert.Empty(t, retriever.questions)
	assert.Empty(t, generator.calls)
}

func TestAnswerShapesResponse(t *testing.T) {
	svc, _, _ := newTestService("grounding", nil)

	resp, err := svc.Answer(context.Background(), Request{Question: "How does VLAN tagging work?", Level: 2})
	require.NoError(t, err)

	assert.Equal(t, "hint at level 2", resp.Hint)
	assert.Equal(t, 2, resp.Level)
	assert.Equal(t, "Tool/Area", resp.LevelName)
	assert.Equal(t, 2, resp.RemainingLevels)
}

func TestAnswerClampsLevel(t *testing.T) {
	tests := []struct {
		requested int
		wantLevel int
		wantName  string
		wantLeft  int
	}{
		{0, 1, "Concept", 3},
		{-2, 1, "Concept", 3},
		{10, 4, "Full Solution", 0},
		{5, 4, "Full Solution", 0},
	}

	for _, tt := range tests {
		svc, _, generator := newTestService("grounding", nil)

		resp, err := svc.Answer(context.Background(), Request{Question: "q", Level: tt.requested})
		require.NoError(t, err)

		assert.Equal(t, tt.wantLevel, resp.Level, "requested=%d", tt.requested)
		assert.Equal(t, tt.wantName, resp.LevelName, "requested=%d", tt.requested)
		assert.Equal(t, tt.wantLeft, resp.RemainingLevels, "requested=%d", tt.requested)
		require.Len(t, generator.calls, 1)
		assert.Equal(t, Level(tt.wantLevel), generator.calls[0].level)
	}
}

// The same out-of-range request must behave identically on repeat: the
// clamp is stateless and the response carries the clamped level both times.
func TestAnswerClampIsReproducible(t *testing.T) {
	svc, _, _ := newTestService("grounding", nil)
	req := Request{Question: "q", Level: 10}

	first, err := svc.Answer(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Answer(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, first.Level)
}

func TestAnswerPassesGroundingToGenerator(t *testing.T) {
	svc, retriever, generator := newTestService("passage one\n\npassage two", nil)

	_, err := svc.Answer(context.Background(), Request{Question: "  spaced question  ", LabContext: " lab03 ", Level: 3})
	require.NoError(t, err)

	// Question and lab context are trimmed before use.
	assert.Equal(t, []string{"spaced question"}, retriever.questions)
	require.Len(t, generator.calls, 1)
	assert.Equal(t, "spaced question", generator.calls[0].question)
	assert.Equal(t, "passage one\n\npassage two", generator.calls[0].context)
	assert.Equal(t, "lab03", generator.calls[0].labContext)
}

// emptySearcher is a knowledge store slice with nothing indexed.
type emptySearcher struct{}

func (emptySearcher) Search(context.Context, string, ...knowledge.SearchOption) ([]knowledge.Result, error) {
	return nil, nil
}

// An empty knowledge base still answers: the real retriever hands the
// no-grounding sentinel to the generator instead of failing the request.
func TestAnswerWithEmptyKnowledgeBase(t *testing.T) {
	retriever := rag.NewRetriever(emptySearcher{}, 8, log.NewNop())
	generator := &fakeGenerator{}
	svc := NewService(retriever, generator, log.NewNop())

	resp, err := svc.Answer(context.Background(), Request{Question: "How do I reach the gateway?", Level: 1})
	require.NoError(t, err)

	require.Len(t, generator.calls, 1)
	assert.Equal(t, rag.NoGroundingFound, generator.calls[0].context)
	assert.Equal(t, Level(1), generator.calls[0].level)
	assert.Equal(t, 1, resp.Level)
	assert.Equal(t, 3, resp.RemainingLevels)
}

func TestAnswerGenerationFailure(t *testing.T) {
	genErr := errors.New("model unavailable")
	svc, _, _ := newTestService("grounding", genErr)

	_, err := svc.Answer(context.Background(), Request{Question: "q", Level: 1})
	assert.ErrorIs(t, err, genErr)
}
