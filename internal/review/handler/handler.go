package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/identity"
	"proofpack/internal/review/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/httputil"
	"proofpack/pkg/platform/middleware/auth"
	request "proofpack/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	Submit(ctx context.Context, packID id.PackID) (*models.QAReview, error)
	Act(ctx context.Context, req *models.ReviewActionRequest) (*models.QAReview, error)
	Claim(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error)
	Cancel(ctx context.Context, reviewID id.ReviewID, comments string) (*models.QAReview, error)
	GetReview(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error)
	ListReviews(ctx context.Context, status models.Status) ([]*models.QAReview, error)
	ListPackReviews(ctx context.Context, packID id.PackID) ([]*models.QAReview, error)
	AddFinding(ctx context.Context, reviewID id.ReviewID, req *models.AddFindingRequest) (*models.QAReview, error)
	ResolveFinding(ctx context.Context, reviewID id.ReviewID, findingID id.FindingID) (*models.QAReview, error)
	DowngradeFinding(ctx context.Context, reviewID id.ReviewID, findingID id.FindingID, to models.Severity) (*models.QAReview, error)
}

// Handler serves pack submission for owners and the QA queue for reviewers.
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
		r.Post("/packs/{packID}/submit", h.handleSubmit)
		r.Get("/packs/{packID}/reviews", h.handleListPackReviews)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAnyRole(h.logger, identity.RoleReviewer, identity.RoleAdmin))
			r.Post("/qa/review", h.handleAct)
			r.Get("/qa/reviews", h.handleListReviews)
			r.Get("/qa/reviews/{reviewID}", h.handleGetReview)
			r.Post("/qa/reviews/{reviewID}/claim", h.handleClaim)
			r.Post("/qa/reviews/{reviewID}/cancel", h.handleCancel)
			r.Post("/qa/reviews/{reviewID}/findings", h.handleAddFinding)
			r.Post("/qa/reviews/{reviewID}/findings/{findingID}/resolve", h.handleResolveFinding)
			r.Post("/qa/reviews/{reviewID}/findings/{findingID}/downgrade", h.handleDowngradeFinding)
		})
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	review, err := h.service.Submit(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to submit proof pack", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) handleListPackReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reviews, err := h.service.ListPackReviews(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list pack reviews", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *Handler) handleAct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.ReviewActionRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	review, err := h.service.Act(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "review action failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviews, err := h.service.ListReviews(ctx, models.Status(r.URL.Query().Get("status")))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list reviews", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, ok := h.reviewID(w, r)
	if !ok {
		return
	}
	review, err := h.service.GetReview(ctx, reviewID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, ok := h.reviewID(w, r)
	if !ok {
		return
	}
	review, err := h.service.Claim(ctx, reviewID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to claim review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

type cancelRequest struct {
	Comments string `json:"comments"`
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, ok := h.reviewID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[cancelRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	review, err := h.service.Cancel(ctx, reviewID, req.Comments)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to cancel review", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) handleAddFinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, ok := h.reviewID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddFindingRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	review, err := h.service.AddFinding(ctx, reviewID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add finding", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) handleResolveFinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, findingID, ok := h.findingIDs(w, r)
	if !ok {
		return
	}
	review, err := h.service.ResolveFinding(ctx, reviewID, findingID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to resolve finding", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) handleDowngradeFinding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reviewID, findingID, ok := h.findingIDs(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.DowngradeFindingRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	review, err := h.service.DowngradeFinding(ctx, reviewID, findingID, models.Severity(req.Severity))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to downgrade finding", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) reviewID(w http.ResponseWriter, r *http.Request) (id.ReviewID, bool) {
	reviewID, err := id.ParseReviewID(chi.URLParam(r, "reviewID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ReviewID{}, false
	}
	return reviewID, true
}

func (h *Handler) findingIDs(w http.ResponseWriter, r *http.Request) (id.ReviewID, id.FindingID, bool) {
	reviewID, ok := h.reviewID(w, r)
	if !ok {
		return id.ReviewID{}, id.FindingID{}, false
	}
	findingID, err := id.ParseFindingID(chi.URLParam(r, "findingID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ReviewID{}, id.FindingID{}, false
	}
	return reviewID, findingID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteError(w, err)
}
