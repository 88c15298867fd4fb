// Package adminauth exchanges the admin API key for short-lived bearer
// tokens used by the admin endpoints.
package adminauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"aegis/internal/audit"
	jwttoken "aegis/internal/jwt_token"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/requestcontext"
)

const tokenTTL = time.Hour

// Handler serves POST /v1/admin/login.
type Handler struct {
	jwt     *jwttoken.JWTService
	keyHash []byte
	logger  *slog.Logger
	auditor audit.Recorder
}

// NewHandler builds the login handler. keyHash is the bcrypt hash of the
// admin API key.
func NewHandler(jwt *jwttoken.JWTService, keyHash string, logger *slog.Logger, auditor audit.Recorder) *Handler {
	return &Handler{jwt: jwt, keyHash: []byte(keyHash), logger: logger, auditor: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/admin/login", h.Login)
}

// LoginRequest is the body for POST /v1/admin/login.
type LoginRequest struct {
	APIKey  string `json:"apiKey"`
	Subject string `json:"subject"`
}

// Validate implements httputil.Validatable.
func (r *LoginRequest) Validate() error {
	if r.APIKey == "" {
		return dErrors.New(dErrors.CodeValidation, "apiKey is required")
	}
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Subject == "" {
		r.Subject = "admin"
	}
	return nil
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login verifies the admin API key against its stored bcrypt hash and
// issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	if len(h.keyHash) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin access is not configured"))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.keyHash, []byte(req.APIKey)); err != nil {
		h.logger.WarnContext(ctx, "admin login rejected", "request_id", requestID)
		h.record(ctx, audit.ActionAdminLoginFailed, req.Subject)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid api key"))
		return
	}

	token, err := h.jwt.GenerateAdminToken(req.Subject, tokenTTL)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token"))
		return
	}

	h.logger.InfoContext(ctx, "admin login", "request_id", requestID, "subject", req.Subject)
	h.record(ctx, audit.ActionAdminLogin, req.Subject)
	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
	})
}

func (h *Handler) record(ctx context.Context, action audit.Action, subject string) {
	if h.auditor == nil {
		return
	}
	h.auditor.Record(ctx, audit.Event{Action: action, Actor: subject})
}
