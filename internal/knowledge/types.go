package knowledge

import "time"

// VectorDimension is the embedding dimensionality of the passages table.
// It must match the vector(768) column in db/migrations and the configured
// embedder's output size.
const VectorDimension = 768

// File type tags accepted for uploaded documents.
const (
	FileTypePDF      = "pdf"
	FileTypeSQL      = "sql"
	FileTypeMarkdown = "markdown"
	FileTypePlain    = "plain-text"
)

// Passage is one indexed fragment of grounding text.
// Immutable after creation; metadata is provenance only and never ranked on.
type Passage struct {
	ID         string    // unique identifier (uuid)
	Text       string    // passage content
	Source     string    // originating document name
	FileType   string    // one of the FileType constants
	UploadedBy string    // uploading principal's username
	UploadedAt time.Time // ingestion timestamp
}

// Result is a single search hit with its cosine similarity score.
type Result struct {
	Passage    Passage
	Similarity float32 // 1.0 = identical direction, 0.0 = orthogonal
}

// SearchOption configures search behavior using the functional options pattern.
type SearchOption func(*searchConfig)

type searchConfig struct {
	topK    int
	timeout time.Duration
}

// WithTopK sets the maximum number of results to return. Default is 8.
func WithTopK(k int) SearchOption {
	return func(c *searchConfig) {
		if k > 0 {
			c.topK = k
		}
	}
}

// WithTimeout overrides the per-search timeout. Default is 10 seconds.
func WithTimeout(d time.Duration) SearchOption {
	return func(c *searchConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func buildSearchConfig(opts []SearchOption) *searchConfig {
	cfg := &searchConfig{
		topK:    8,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
