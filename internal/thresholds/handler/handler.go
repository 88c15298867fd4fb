// Package handler exposes admin endpoints for the threshold policy.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aegis/internal/thresholds"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/requestcontext"
)

// Service is the part of the threshold service the HTTP layer depends on.
type Service interface {
	Active(ctx context.Context) (thresholds.Policy, error)
	Update(ctx context.Context, bands []thresholds.BandConfig, updatedBy string) (thresholds.Policy, error)
}

// Handler serves the threshold admin API.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the admin endpoints. The caller wraps the router in
// admin authentication middleware.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/admin/thresholds", h.Get)
	r.Put("/v1/admin/thresholds", h.Put)
}

// Get handles GET /v1/admin/thresholds.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy, err := h.service.Active(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "threshold policy lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

// Put handles PUT /v1/admin/thresholds: validate and store a new policy
// version, recording the authenticated admin as the author.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	policy, err := h.service.Update(ctx, req.Bands, requestcontext.AdminSubject(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "threshold policy replaced",
		"request_id", requestID,
		"version", policy.Version,
	)
	httputil.WriteJSON(w, http.StatusOK, policy)
}
