package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/labtutor/labtutor/internal/config"
	"github.com/labtutor/labtutor/internal/knowledge"
)

func TestProvideEmbedOptionsGemini(t *testing.T) {
	for _, provider := range []string{config.ProviderGemini, ""} {
		opts := provideEmbedOptions(&config.Config{Provider: provider})

		cfg, ok := opts.(*genai.EmbedContentConfig)
		require.True(t, ok, "provider=%q", provider)
		require.NotNil(t, cfg.OutputDimensionality)
		assert.Equal(t, int32(knowledge.VectorDimension), *cfg.OutputDimensionality)
	}
}

func TestProvideEmbedOptionsOtherProviders(t *testing.T) {
	for _, provider := range []string{config.ProviderOllama, config.ProviderOpenAI} {
		opts := provideEmbedOptions(&config.Config{Provider: provider})
		assert.Nil(t, opts, "provider=%q", provider)
	}
}
