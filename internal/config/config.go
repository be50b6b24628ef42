// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.labtutor/config.yaml or ./config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - AI: provider, model selection, temperature, embedder model
//   - Storage: PostgreSQL connection (see storage.go)
//   - Ingestion: chunk size and overlap for document splitting
//   - Retrieval: number of passages fetched per question
//   - Auth: JWT secret, token lifetime, user accounts (see users.go)
//
// Security: sensitive values (passwords, secrets) are never logged.
// Validation: range checks with sentinel errors for errors.Is() checking.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates a required API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidProvider indicates the AI provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidEmbedderModel indicates the embedder model is invalid.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidOllamaHost indicates the Ollama host is invalid.
	ErrInvalidOllamaHost = errors.New("invalid Ollama host")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is invalid.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is invalid.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")

	// ErrInvalidChunking indicates chunk size/overlap values are inconsistent.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrInvalidTopK indicates the retrieval top-K is out of range.
	ErrInvalidTopK = errors.New("invalid retrieval top_k")

	// ErrMissingJWTSecret indicates the JWT signing secret is not set.
	ErrMissingJWTSecret = errors.New("missing JWT secret")

	// ErrInvalidJWTSecret indicates the JWT signing secret is too short.
	ErrInvalidJWTSecret = errors.New("invalid JWT secret")

	// ErrInvalidUser indicates a configured user account is malformed.
	ErrInvalidUser = errors.New("invalid user account")
)

const (
	// DefaultGeminiEmbedderModel is the default Gemini embedder model.
	// gemini-embedding-001 supports truncation to 768 dimensions via
	// OutputDimensionality; the passages schema uses 768 (knowledge.VectorDimension).
	DefaultGeminiEmbedderModel = "gemini-embedding-001"

	// DefaultChunkSize is the target passage length in characters.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the character overlap between consecutive passages.
	DefaultChunkOverlap = 200

	// DefaultTopK is the number of passages retrieved per question.
	DefaultTopK = 8

	// MaxTopK bounds retrieval fan-out to keep context sizes sane.
	MaxTopK = 50

	// MinJWTSecretLength is the minimum accepted JWT secret length.
	MinJWTSecretLength = 32

	// DefaultTokenTTLMinutes is the access token lifetime (8 hours).
	DefaultTokenTTLMinutes = 480
)

// AI provider identifiers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config stores application configuration.
// Sensitive fields (PostgresPassword, JWTSecret, user passwords) must never be logged.
type Config struct {
	// AI provider and model configuration
	Provider    string  `mapstructure:"provider"`   // "gemini" (default), "ollama", "openai"
	ModelName   string  `mapstructure:"model_name"` // e.g. "gemini-2.5-flash", "gpt-4o-mini"
	Temperature float32 `mapstructure:"temperature"`
	Language    string  `mapstructure:"language"` // answer language, e.g. "en", "de"

	// Ollama configuration (only used when provider is "ollama")
	OllamaHost string `mapstructure:"ollama_host"`

	// Embedder configuration
	EmbedderModel string `mapstructure:"embedder_model"`

	// Document ingestion configuration
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`

	// Retrieval configuration
	RetrievalTopK int `mapstructure:"retrieval_top_k"`

	// Storage configuration (see storage.go)
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"` // SENSITIVE
	PostgresDBName   string `mapstructure:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode"`

	// Auth configuration (see users.go for the account type)
	JWTSecret       string `mapstructure:"jwt_secret"` // SENSITIVE
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
	Users           []User `mapstructure:"users"`

	// HTTP rate limiting (requests per second per server, with burst)
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Observability configuration
	Tracing TracingConfig `mapstructure:"tracing"`
}

// RateLimitConfig bounds request throughput on the HTTP surface.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// TracingConfig configures OTLP trace export to a local collector agent.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	AgentHost   string `mapstructure:"agent_host"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".labtutor")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings when set
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults() {
	// AI defaults
	viper.SetDefault("provider", ProviderGemini)
	viper.SetDefault("model_name", "gemini-2.5-flash")
	viper.SetDefault("temperature", 0.3)
	viper.SetDefault("language", "en")
	viper.SetDefault("ollama_host", "http://localhost:11434")
	viper.SetDefault("embedder_model", DefaultGeminiEmbedderModel)

	// Ingestion defaults
	viper.SetDefault("chunk_size", DefaultChunkSize)
	viper.SetDefault("chunk_overlap", DefaultChunkOverlap)

	// Retrieval defaults
	viper.SetDefault("retrieval_top_k", DefaultTopK)

	// PostgreSQL defaults (matching docker-compose.yml)
	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "labtutor")
	viper.SetDefault("postgres_password", "labtutor_dev_password")
	viper.SetDefault("postgres_db_name", "labtutor")
	viper.SetDefault("postgres_ssl_mode", "disable")

	// Auth defaults
	viper.SetDefault("token_ttl_minutes", DefaultTokenTTLMinutes)

	// Rate limit defaults
	viper.SetDefault("rate_limit.rps", 10.0)
	viper.SetDefault("rate_limit.burst", 20)

	// Tracing defaults
	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.agent_host", "localhost:4318")
	viper.SetDefault("tracing.environment", "dev")
	viper.SetDefault("tracing.service_name", "labtutor")
}

// bindEnvVariables binds sensitive environment variables explicitly.
//
// GEMINI_API_KEY and OPENAI_API_KEY are read directly by the Genkit provider
// plugins, not via Viper; validation checks their presence based on the
// selected provider.
func bindEnvVariables() {
	// Hardcoded keys cannot fail to bind; a panic here is a bug, not a runtime error
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("jwt_secret", "LABTUTOR_JWT_SECRET")
	mustBind("provider", "LABTUTOR_PROVIDER")
	mustBind("model_name", "LABTUTOR_MODEL_NAME")
	mustBind("ollama_host", "LABTUTOR_OLLAMA_HOST")
	mustBind("language", "LABTUTOR_LANGUAGE")
}
