package hint

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// ErrEmptyQuestion indicates the request carried no question after trimming.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Request is one hint evaluation. Requests are independent: there is no
// conversation memory, and the level must be supplied on every call.
type Request struct {
	Question   string // required, trimmed before use
	LabContext string // optional learner environment description
	Level      int    // requested tier, clamped into [1,4]
}

// Response is the shaped result of a hint evaluation. Field tags define the
// HTTP wire form.
type Response struct {
	Hint            string `json:"hint"`
	Level           int    `json:"level"`            // the clamped level actually used
	LevelName       string `json:"level_name"`       // fixed label for that level
	RemainingLevels int    `json:"remaining_levels"` // 4 - Level, in [0,3]
}

// ContextRetriever supplies grounding context for a question.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string) string
}

// TextGenerator produces the hint text for a prepared request.
type TextGenerator interface {
	Generate(ctx context.Context, question, context, labContext string, level Level) (string, error)
}

// Service is the request-time entry point: it clamps the level, retrieves
// grounding, and drives generation. Stateless across calls — given the same
// inputs and index contents every call is reproducible.
type Service struct {
	retriever ContextRetriever
	generator TextGenerator
	logger    *slog.Logger
}

// NewService wires a hint service from its collaborators. logger may be nil.
func NewService(retriever ContextRetriever, generator TextGenerator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		retriever: retriever,
		generator: generator,
		logger:    logger,
	}
}

// Answer evaluates one hint request.
//
// An empty question is an input error and never reaches retrieval or
// generation. Retrieval failures have already been absorbed into the
// no-grounding sentinel by the retriever; a generation failure propagates
// as a hard error.
func (s *Service) Answer(ctx context.Context, req Request) (Response, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return Response{}, ErrEmptyQuestion
	}

	level := Clamp(req.Level)
	if int(level) != req.Level {
		s.logger.Debug("clamped requested hint level", "requested", req.Level, "used", int(level))
	}

	grounding := s.retriever.Retrieve(ctx, question)

	hintText, err := s.generator.Generate(ctx, question, grounding, strings.TrimSpace(req.LabContext), level)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Hint:            hintText,
		Level:           int(level),
		LevelName:       level.Name(),
		RemainingLevels: level.Remaining(),
	}, nil
}
