// Package handler exposes the screening engine over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"aegis/internal/screening"
	"aegis/internal/screening/service"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks

// Service is the part of the scoring service the HTTP layer depends on.
type Service interface {
	ScoreRecord(ctx context.Context, record screening.Record) (*screening.Profile, error)
	ScoreBatch(ctx context.Context, records []screening.Record) ([]service.BatchResult, service.BatchSummary)
	Screen(ctx context.Context, entityType, name string) (*screening.Profile, error)
	History(ctx context.Context, entityID string, limit int) ([]screening.Profile, error)
}

// Handler serves the screening API.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes mounts the screening endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/screen", h.Screen)
	r.Post("/v1/score", h.Score)
	r.Get("/v1/entities/{entityID}/history", h.History)
}

// Screen handles POST /v1/screen: look up the latest stored profile for an
// entity, or a synthetic clear profile when the entity has never been scored.
func (h *Handler) Screen(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ScreenRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	profile, err := h.service.Screen(ctx, req.EntityType, req.Name)
	if err != nil {
		h.logger.ErrorContext(ctx, "screen failed",
			"request_id", requestID,
			"entity_type", req.EntityType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromProfile(profile))
}

// Score handles POST /v1/score: run a batch of raw records through the
// scoring pipeline and persist a new profile version for each.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ScoreRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}

	results, summary := h.service.ScoreBatch(ctx, req.DomainRecords())

	h.logger.InfoContext(ctx, "batch scored",
		"request_id", requestID,
		"total", summary.Total,
		"failed", summary.Failed,
	)

	status := http.StatusOK
	if summary.Failed > 0 && summary.Failed == summary.Total {
		status = http.StatusBadGateway
	}
	httputil.WriteJSON(w, status, FromBatch(results, summary))
}

// History handles GET /v1/entities/{entityID}/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	entityID := chi.URLParam(r, "entityID")

	limit := screening.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	history, err := h.service.History(ctx, entityID, limit)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "history lookup failed",
				"request_id", requestID,
				"entity_id", entityID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	resp := &HistoryResponse{
		EntityID: entityID,
		History:  make([]*ProfileResponse, len(history)),
		Count:    len(history),
	}
	for i := range history {
		resp.History[i] = FromProfile(&history[i])
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
