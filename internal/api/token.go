package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labtutor/labtutor/internal/auth"
	"github.com/labtutor/labtutor/internal/log"
)

// MaxCredentialLength bounds username and password inputs.
const MaxCredentialLength = 200

// TokenHandler handles authentication endpoints.
type TokenHandler struct {
	authenticator *auth.Authenticator
	logger        log.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(authenticator *auth.Authenticator, logger log.Logger) *TokenHandler {
	return &TokenHandler{authenticator: authenticator, logger: logger}
}

// RegisterPublicRoutes registers routes that require no authentication.
func (h *TokenHandler) RegisterPublicRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/token", h.issueToken)
}

// RegisterRoutes registers authenticated routes on the given mux.
func (h *TokenHandler) RegisterRoutes(mux *http.ServeMux, authed func(http.Handler) http.Handler) {
	mux.Handle("GET /api/me", authed(http.HandlerFunc(h.me)))
}

// TokenRequest is the request body for POST /api/token.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the response body for POST /api/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// issueToken exchanges a username/password pair for an access token.
func (h *TokenHandler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}
	if len(req.Username) > MaxCredentialLength || len(req.Password) > MaxCredentialLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "credentials too long")
		return
	}

	principal, err := h.authenticator.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid username or password")
			return
		}
		h.logger.Error("authentication failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "authentication failed")
		return
	}

	token, err := h.authenticator.IssueToken(principal)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err, "username", principal.Username)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	h.logger.Info("token issued", "username", principal.Username, "role", principal.Role)
	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        principal.Role.String(),
	})
}

// MeResponse is the response body for GET /api/me.
type MeResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// me returns the identity of the authenticated principal.
func (h *TokenHandler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, MeResponse{
		Username: principal.Username,
		Role:     principal.Role.String(),
	})
}
