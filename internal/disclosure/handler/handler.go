package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/disclosure/models"
	packmodels "proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/httputil"
	"proofpack/pkg/platform/middleware/auth"
	request "proofpack/pkg/platform/middleware/request"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

type Service interface {
	Info(ctx context.Context, rawToken string) (*packmodels.Summary, error)
	NDAStatus(ctx context.Context, rawToken string) (*models.NDAStatus, error)
	AcceptNDA(ctx context.Context, rawToken string) (*models.NDAStatus, error)
	View(ctx context.Context, rawToken string) (*packmodels.ProofPack, error)
	Download(ctx context.Context, rawToken string, documentID id.DocumentID) (*models.DownloadHandle, error)
	CreateGrant(ctx context.Context, packID id.PackID, req *models.CreateGrantRequest) (*models.CreatedGrant, error)
	ListGrants(ctx context.Context, packID id.PackID) ([]*models.ShareGrant, error)
	Revoke(ctx context.Context, packID id.PackID, rawToken string) (*models.ShareGrant, error)
	BumpNDAVersion(ctx context.Context, packID id.PackID, rawToken string) (*models.ShareGrant, error)
	AccessLog(ctx context.Context, packID id.PackID) ([]models.AccessLogEntry, error)
}

// Handler serves the share-token protocol and the owner's grant management.
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
	r.Get("/share/{token}", h.handleInfo)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.validator, h.logger))
		r.Get("/share/{token}/nda", h.handleNDAStatus)
		r.Post("/share/{token}/nda", h.handleAcceptNDA)
		r.Get("/share/{token}/view", h.handleView)
		r.Post("/share/{token}/view", h.handleDownload)

		r.Post("/packs/{packID}/shares", h.handleCreateGrant)
		r.Get("/packs/{packID}/shares", h.handleListGrants)
		r.Post("/packs/{packID}/shares/{token}/revoke", h.handleRevoke)
		r.Post("/packs/{packID}/shares/{token}/nda-version", h.handleBumpNDAVersion)
		r.Get("/packs/{packID}/access-log", h.handleAccessLog)
	})
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.service.Info(ctx, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "share info failed", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleNDAStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status, err := h.service.NDAStatus(ctx, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "nda status failed", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleAcceptNDA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := httputil.DecodeAndPrepare[models.AcceptNDARequest](w, r, h.logger, ctx, request.GetRequestID(ctx)); !ok {
		return
	}
	status, err := h.service.AcceptNDA(ctx, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "nda acceptance failed", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusOK, status)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pack, err := h.service.View(ctx, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "share view failed", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusOK, pack)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.DownloadRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	documentID, err := id.ParseDocumentID(req.DocumentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	handle, err := h.service.Download(ctx, chi.URLParam(r, "token"), documentID)
	if err != nil {
		h.writeServiceError(ctx, w, "share download failed", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusOK, handle)
}

func (h *Handler) handleCreateGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CreateGrantRequest](w, r, h.logger, ctx, request.GetRequestID(ctx))
	if !ok {
		return
	}
	created, err := h.service.CreateGrant(ctx, packID, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create share grant", err)
		return
	}
	noStore(w)
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListGrants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	grants, err := h.service.ListGrants(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list share grants", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"grants": grants})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	grant, err := h.service.Revoke(ctx, packID, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to revoke share grant", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, grant)
}

func (h *Handler) handleBumpNDAVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	grant, err := h.service.BumpNDAVersion(ctx, packID, chi.URLParam(r, "token"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to bump nda version", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, grant)
}

func (h *Handler) handleAccessLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	packID, ok := h.packID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.AccessLog(ctx, packID)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to read access log", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) packID(w http.ResponseWriter, r *http.Request) (id.PackID, bool) {
	packID, err := id.ParsePackID(chi.URLParam(r, "packID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.PackID{}, false
	}
	return packID, true
}

// noStore keeps share responses out of shared caches.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}

func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteError(w, err)
}
