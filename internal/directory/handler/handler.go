package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/directory/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/httputil"
	"proofpack/pkg/platform/middleware/auth"
	request "proofpack/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Listing, error)
	RequestIntroduction(ctx context.Context, packID id.PackID, req *models.IntroductionRequest) (*models.Introduction, error)
	ListIntroductions(ctx context.Context, packID id.PackID) ([]*models.Introduction, error)
}

type Handler struct {
	service   Service
	logger    *slog.Logger
	validator auth.JWTValidator
}

func New(service Service, logger *slog.Logger, validator auth.JWTValidator) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		validator: validator,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.validator, h.logger))
		r.Get("/directory", h.handleList)
		r.Post("/directory/{packID}/introductions", h.handleRequestIntroduction)
		r.Get("/packs/{packID}/introductions", h.handleListIntroductions)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := models.ParseListQuery(r.URL.Query().Get)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	listings, err := h.service.List(ctx, q)
	if err != nil {
		h.writeServiceError(ctx, w, "directory listing failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"packs":  listings,
		"limit":  q.Limit,
		"offset": q.Offset,
	})
}

func (h *Handler) handleRequestIntroduction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.IntroductionRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	intro, err := h.service.RequestIntroduction(ctx, packID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "introduction request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, intro)
}

func (h *Handler) handleListIntroductions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	intros, err := h.service.ListIntroductions(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list introductions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"introductions": intros})
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteError(w, err)
}
