// Package app provides application initialization and dependency injection.
//
// App is the core container that wires all application components:
// Genkit, the database pool, the knowledge store, the hint pipeline,
// document ingestion, and authentication.
package app

import (
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/labtutor/labtutor/internal/auth"
	"github.com/labtutor/labtutor/internal/config"
	"github.com/labtutor/labtutor/internal/hint"
	"github.com/labtutor/labtutor/internal/ingest"
	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
)

// App is the core application container.
type App struct {
	// Configuration
	Config *config.Config

	// Core services
	Genkit        *genkit.Genkit
	Embedder      ai.Embedder
	DBPool        *pgxpool.Pool
	Knowledge     *knowledge.Store
	HintService   *hint.Service
	IngestService *ingest.Service
	Authenticator *auth.Authenticator
	Limiter       *rate.Limiter

	logger      log.Logger
	otelCleanup func()
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	a.logger.Info("shutting down application")

	if a.DBPool != nil {
		a.DBPool.Close()
		a.logger.Info("database pool closed")
	}

	if a.otelCleanup != nil {
		a.otelCleanup()
	}

	return nil
}
