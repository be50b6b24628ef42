package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// passageMetadata is the JSONB shape persisted alongside each passage.
type passageMetadata struct {
	Source     string `json:"source"`
	FileType   string `json:"file_type"`
	UploadedBy string `json:"uploaded_by"`
	UploadedAt string `json:"uploaded_at"`
}

// Store manages knowledge passages with vector search on PostgreSQL + pgvector.
//
// Store is safe for concurrent use by multiple goroutines: the pgx pool
// handles connection sharing, and each upsert/search is independently atomic
// at the database level.
type Store struct {
	pool         *pgxpool.Pool
	embedder     ai.Embedder
	embedOptions any
	logger       *slog.Logger
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithEmbedOptions sets provider-specific options passed on every embed
// request. Gemini's embedding models default to 3072 dimensions and need an
// explicit OutputDimensionality to truncate to the schema dimension; other
// providers must produce VectorDimension-sized vectors natively.
func WithEmbedOptions(opts any) StoreOption {
	return func(s *Store) { s.embedOptions = opts }
}

// NewStore creates a new Store instance.
// logger may be nil, in which case slog.Default() is used.
func NewStore(pool *pgxpool.Pool, embedder ai.Embedder, logger *slog.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		pool:     pool,
		embedder: embedder,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert adds a passage to the store, embedding its text first.
// Idempotent per passage ID: re-upserting replaces content, embedding,
// and metadata for that ID.
func (s *Store) Upsert(ctx context.Context, p Passage) error {
	embedding, err := s.embed(ctx, p.Text)
	if err != nil {
		return fmt.Errorf("embedding passage %q: %w", p.ID, err)
	}

	meta := passageMetadata{
		Source:     p.Source,
		FileType:   p.FileType,
		UploadedBy: p.UploadedBy,
		UploadedAt: p.UploadedAt.UTC().Format(time.RFC3339),
	}
	metadataJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata for passage %q: %w", p.ID, err)
	}

	vec := pgvector.NewVector(embedding)
	_, err = s.pool.Exec(ctx, `
		INSERT INTO passages (id, content, embedding, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content,
		    embedding = EXCLUDED.embedding,
		    metadata = EXCLUDED.metadata`,
		p.ID, p.Text, vec, metadataJSON, p.UploadedAt)
	if err != nil {
		return fmt.Errorf("upserting passage %q: %w", p.ID, err)
	}

	s.logger.Debug("upserted passage", "id", p.ID, "source", p.Source, "length", len(p.Text))
	return nil
}

// Search returns the passages most similar to query, ordered by cosine
// similarity descending. Ties are broken by passage ID so repeated searches
// against an unchanged store return a stable order.
//
// A per-search timeout bounds both the query embedding and the vector scan.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	embedding, err := s.embed(queryCtx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("query embedding timeout: %w", err)
		}
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	vec := pgvector.NewVector(embedding)
	rows, err := s.pool.Query(queryCtx, `
		SELECT id, content, metadata, created_at,
		       1 - (embedding <=> $1) AS similarity
		FROM passages
		ORDER BY embedding <=> $1, id
		LIMIT $2`,
		vec, cfg.topK)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search query timeout: %w", err)
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			id, content  string
			metadataJSON []byte
			createdAt    time.Time
			similarity   float64
		)
		if err := rows.Scan(&id, &content, &metadataJSON, &createdAt, &similarity); err != nil {
			return nil, fmt.Errorf("scanning search row: %w", err)
		}

		var meta passageMetadata
		if err := json.Unmarshal(metadataJSON, &meta); err != nil {
			s.logger.Warn("failed to parse passage metadata", "passage_id", id, "error", err)
		}

		uploadedAt, _ := time.Parse(time.RFC3339, meta.UploadedAt)
		if uploadedAt.IsZero() {
			uploadedAt = createdAt
		}

		results = append(results, Result{
			Passage: Passage{
				ID:         id,
				Text:       content,
				Source:     meta.Source,
				FileType:   meta.FileType,
				UploadedBy: meta.UploadedBy,
				UploadedAt: uploadedAt,
			},
			Similarity: float32(similarity),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading search rows: %w", err)
	}

	return results, nil
}

// Count returns the total number of indexed passages.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM passages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting passages: %w", err)
	}
	return int(count), nil
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// embed generates an embedding vector for text and verifies its dimension
// matches the schema. A dimension mismatch means the configured embedder is
// incompatible with the provisioned collection.
func (s *Store) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   []*ai.Document{ai.DocumentFromText(text, nil)},
		Options: s.embedOptions,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}

	embedding := resp.Embeddings[0].Embedding
	if len(embedding) != VectorDimension {
		return nil, fmt.Errorf("embedder returned %d dimensions, schema requires %d",
			len(embedding), VectorDimension)
	}
	return embedding, nil
}
