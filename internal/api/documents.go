package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labtutor/labtutor/internal/extract"
	"github.com/labtutor/labtutor/internal/ingest"
	"github.com/labtutor/labtutor/internal/knowledge"
	"github.com/labtutor/labtutor/internal/log"
)

// MaxUploadBytes bounds a single document upload.
const MaxUploadBytes = 32 << 20 // 32 MiB

// DocumentHandler handles knowledge-base management endpoints.
type DocumentHandler struct {
	ingest *ingest.Service
	store  *knowledge.Store
	logger log.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(ingestSvc *ingest.Service, store *knowledge.Store, logger log.Logger) *DocumentHandler {
	return &DocumentHandler{ingest: ingestSvc, store: store, logger: logger}
}

// RegisterRoutes registers document routes on the given mux.
func (h *DocumentHandler) RegisterRoutes(mux *http.ServeMux, authed func(http.Handler) http.Handler) {
	mux.Handle("POST /api/documents", authed(http.HandlerFunc(h.upload)))
	mux.Handle("GET /api/stats", authed(http.HandlerFunc(h.stats)))
}

// UploadResponse is the response body for POST /api/documents.
type UploadResponse struct {
	Document string `json:"document"`
	FileType string `json:"file_type"`
	Chunks   int    `json:"chunks"`
}

// upload accepts a multipart document upload and ingests it into the
// knowledge base. Only trainers may upload.
func (h *DocumentHandler) upload(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	if !principal.Role.CanIngest() {
		writeError(w, http.StatusForbidden, "forbidden", "only trainers may upload documents")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "file field is required")
		return
	}
	defer file.Close()

	fileType, err := extract.TypeFromFilename(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported_type", err.Error())
		return
	}

	extractor, err := extract.ForType(fileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported_type", err.Error())
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("failed to read upload", "error", err, "document", header.Filename)
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read upload")
		return
	}

	text, err := extractor.Extract(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "extraction_failed", err.Error())
		return
	}

	chunks, err := h.ingest.Ingest(r.Context(), header.Filename, fileType, text, principal.Username)
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyDocument) {
			writeError(w, http.StatusUnprocessableEntity, "empty_document", "document contains no extractable text")
			return
		}
		h.logger.Error("ingestion failed", "error", err, "document", header.Filename)
		writeError(w, http.StatusInternalServerError, "ingestion_failed", "failed to ingest document")
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{
		Document: header.Filename,
		FileType: fileType,
		Chunks:   chunks,
	})
}

// StatsResponse is the response body for GET /api/stats.
type StatsResponse struct {
	Passages int    `json:"passages"`
	Status   string `json:"status"`
}

// stats returns knowledge-base statistics. Trainer only: passage counts
// reveal what material exists, which the hint levels deliberately withhold.
func (h *DocumentHandler) stats(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	if !principal.Role.CanIngest() {
		writeError(w, http.StatusForbidden, "forbidden", "only trainers may view statistics")
		return
	}

	if h.store == nil {
		h.logger.Error("knowledge store is nil")
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	// Count doubles as the store reachability probe.
	count, err := h.store.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count passages", "error", err)
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "knowledge store unreachable")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{Passages: count, Status: "ok"})
}
