package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a configuration that passes Validate with the ollama
// provider, which needs no API key from the environment.
func validConfig() *Config {
	return &Config{
		Provider:         ProviderOllama,
		ModelName:        "llama3.1",
		Temperature:      0.3,
		Language:         "en",
		OllamaHost:       "http://localhost:11434",
		EmbedderModel:    "nomic-embed-text",
		ChunkSize:        DefaultChunkSize,
		ChunkOverlap:     DefaultChunkOverlap,
		RetrievalTopK:    DefaultTopK,
		PostgresHost:     "localhost",
		PostgresPort:     5432,
		PostgresUser:     "labtutor",
		PostgresPassword: "secret",
		PostgresDBName:   "labtutor",
		PostgresSSLMode:  "disable",
		JWTSecret:        "0123456789012345678901234567890123456789",
		TokenTTLMinutes:  DefaultTokenTTLMinutes,
		Users: []User{
			{Username: "trainer1", Password: "pw", Role: RoleTrainer},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateNilConfig(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.Validate(), ErrConfigNil)
}

func TestValidateSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, ErrInvalidProvider},
		{"ollama without host", func(c *Config) { c.OllamaHost = "" }, ErrInvalidOllamaHost},
		{"empty model name", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"temperature too low", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"temperature too high", func(c *Config) { c.Temperature = 2.1 }, ErrInvalidTemperature},
		{"empty embedder model", func(c *Config) { c.EmbedderModel = "" }, ErrInvalidEmbedderModel},
		{"zero chunk size", func(c *Config) { c.ChunkSize = 0 }, ErrInvalidChunking},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, ErrInvalidChunking},
		{"overlap equals size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, ErrInvalidChunking},
		{"zero top k", func(c *Config) { c.RetrievalTopK = 0 }, ErrInvalidTopK},
		{"top k above max", func(c *Config) { c.RetrievalTopK = MaxTopK + 1 }, ErrInvalidTopK},
		{"empty postgres host", func(c *Config) { c.PostgresHost = "" }, ErrInvalidPostgresHost},
		{"postgres port out of range", func(c *Config) { c.PostgresPort = 70000 }, ErrInvalidPostgresPort},
		{"empty postgres db name", func(c *Config) { c.PostgresDBName = "" }, ErrInvalidPostgresDBName},
		{"bad ssl mode", func(c *Config) { c.PostgresSSLMode = "maybe" }, ErrInvalidPostgresSSLMode},
		{"user without password", func(c *Config) { c.Users[0].Password = "" }, ErrInvalidUser},
		{"user with unknown role", func(c *Config) { c.Users[0].Role = "admin" }, ErrInvalidUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidateServe(t *testing.T) {
	require.NoError(t, validConfig().ValidateServe())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, ErrMissingJWTSecret},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "too-short" }, ErrInvalidJWTSecret},
		{"no users", func(c *Config) { c.Users = nil }, ErrInvalidUser},
		// ValidateServe runs the base checks first.
		{"base validation failure", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.ValidateServe(), tt.wantErr)
		})
	}
}

func TestQualifiedModelName(t *testing.T) {
	tests := []struct {
		provider string
		model    string
		want     string
	}{
		{ProviderGemini, "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{ProviderOpenAI, "gpt-4o-mini", "openai/gpt-4o-mini"},
		{ProviderOllama, "llama3.1", "ollama/llama3.1"},
		{"", "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
	}

	for _, tt := range tests {
		cfg := &Config{Provider: tt.provider, ModelName: tt.model}
		assert.Equal(t, tt.want, cfg.QualifiedModelName())
	}
}
