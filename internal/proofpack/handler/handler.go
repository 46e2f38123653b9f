package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/httputil"
	"proofpack/pkg/platform/middleware/admin"
	"proofpack/pkg/platform/middleware/auth"
	request "proofpack/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the proof pack operations exposed over HTTP.
type Service interface {
	CreatePack(ctx context.Context, req *models.CreatePackRequest) (*models.ProofPack, error)
	GetOwnedPack(ctx context.Context, packID id.PackID) (*models.ProofPack, error)
	ListMyPacks(ctx context.Context) ([]*models.ProofPack, error)
	AddDocument(ctx context.Context, packID id.PackID, req *models.DocumentRequest) (*models.ProofPack, *models.Document, error)
	UpdateDocument(ctx context.Context, packID id.PackID, docID id.DocumentID, req *models.DocumentRequest) (*models.ProofPack, error)
	DeleteDocument(ctx context.Context, packID id.PackID, docID id.DocumentID) (*models.ProofPack, error)
	ResolveGap(ctx context.Context, packID id.PackID, gapID id.GapID) (*models.ProofPack, error)
	OverrideSubScores(ctx context.Context, packID id.PackID, req *models.OverrideRequest) (*models.ProofPack, error)
	Recompute(ctx context.Context, packID id.PackID) (*models.ProofPack, error)
}

// Handler serves the owner-facing pack lifecycle and the operator overrides.
type Handler struct {
	service    Service
	logger     *slog.Logger
	validator  auth.JWTValidator
	adminToken string
}

func New(service Service, logger *slog.Logger, validator auth.JWTValidator, adminToken string) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		validator:  validator,
		adminToken: adminToken,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.validator, h.logger))
		r.Post("/packs", h.handleCreatePack)
		r.Get("/packs", h.handleListPacks)
		r.Get("/packs/{packID}", h.handleGetPack)
		r.Post("/packs/{packID}/documents", h.handleAddDocument)
		r.Put("/packs/{packID}/documents/{documentID}", h.handleUpdateDocument)
		r.Delete("/packs/{packID}/documents/{documentID}", h.handleDeleteDocument)
		r.Post("/packs/{packID}/gaps/{gapID}/resolve", h.handleResolveGap)
	})
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.Put("/admin/packs/{packID}/sub-scores", h.handleOverrideSubScores)
		r.Post("/admin/packs/{packID}/recompute", h.handleRecompute)
	})
}

func (h *Handler) handleCreatePack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreatePackRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	pack, err := h.service.CreatePack(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create proof pack", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, pack)
}

func (h *Handler) handleListPacks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packs, err := h.service.ListMyPacks(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list proof packs", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"packs": packs})
}

func (h *Handler) handleGetPack(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	pack, err := h.service.GetOwnedPack(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to load proof pack", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

type documentResponse struct {
	Pack     *models.ProofPack `json:"pack"`
	Document *models.Document  `json:"document"`
}

func (h *Handler) handleAddDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.DocumentRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	pack, doc, err := h.service.AddDocument(ctx, packID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to add document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, documentResponse{Pack: pack, Document: doc})
}

func (h *Handler) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.DocumentRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	pack, err := h.service.UpdateDocument(ctx, packID, docID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	docID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pack, err := h.service.DeleteDocument(ctx, packID, docID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to delete document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) handleResolveGap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	gapID, err := id.ParseGapID(chi.URLParam(r, "gapID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pack, err := h.service.ResolveGap(ctx, packID, gapID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to resolve gap", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) handleOverrideSubScores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.OverrideRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	pack, err := h.service.OverrideSubScores(ctx, packID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to override sub-scores", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	pack, err := h.service.Recompute(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to recompute proof pack", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) packID(w http.ResponseWriter, r *http.Request) (id.PackID, bool) {
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.PackID{}, false
	}
	return packID, true
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteError(w, err)
}
