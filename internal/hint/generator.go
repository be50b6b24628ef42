package hint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// Generator produces hint text through the configured generation model.
//
// It holds no per-request state; every call is one outbound generation
// request. Generation failures are hard errors — unlike retrieval there is
// no meaningful partial answer without the model.
type Generator struct {
	g           *genkit.Genkit
	modelName   string // provider-qualified, e.g. "googleai/gemini-2.5-flash"
	temperature float32
	language    string
	logger      *slog.Logger
}

// NewGenerator creates a generator bound to a Genkit instance and a
// provider-qualified model name. logger may be nil.
func NewGenerator(g *genkit.Genkit, modelName string, temperature float32, language string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		g:           g,
		modelName:   modelName,
		temperature: temperature,
		language:    language,
		logger:      logger,
	}
}

// Generate renders the level-bounded prompts and performs a single
// generation call. The returned text is the hint; any model error is
// wrapped and propagated unmodified in meaning.
func (gen *Generator) Generate(ctx context.Context, question, context_, labContext string, level Level) (string, error) {
	systemPrompt := buildSystemPrompt(level, gen.language)
	userPrompt := buildUserPrompt(question, context_, labContext, level)

	resp, err := genkit.Generate(ctx, gen.g,
		ai.WithModelName(gen.modelName),
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(userPrompt),
		ai.WithConfig(map[string]any{"temperature": gen.temperature}),
	)
	if err != nil {
		return "", fmt.Errorf("generating hint: %w", err)
	}

	gen.logger.Debug("hint generated",
		"level", int(level),
		"question_length", len(question),
		"response_length", len(resp.Text()))

	return resp.Text(), nil
}
