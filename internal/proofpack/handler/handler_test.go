package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"proofpack/internal/proofpack/handler/mocks"
	"proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/middleware/auth"
	"proofpack/pkg/testutil"
)

const adminToken = "admin-secret"

type stubValidator struct{ userID string }

func (v stubValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	if token != "valid" {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{UserID: v.userID}, nil
}

type PackHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
	userID  id.UserID
}

func TestPackHandlerSuite(t *testing.T) {
	suite.Run(t, new(PackHandlerSuite))
}

func (s *PackHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.userID = id.UserID(uuid.New())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(s.service, logger, stubValidator{userID: s.userID.String()}, adminToken)
	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func (s *PackHandlerSuite) authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer valid")
	return req
}

func samplePack() *models.ProofPack {
	return &models.ProofPack{
		ID:          id.PackID(uuid.New()),
		CompanyName: "Acme",
		Status:      models.PackStatusDraft,
		Health:      score.PackHealth{Overall: 84},
		Documents:   []models.Document{},
		Gaps:        []models.Gap{},
		Version:     1,
		CreatedAt:   time.Now(),
	}
}

func (s *PackHandlerSuite) TestCreatePack() {
	s.Run("requires authentication", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/packs", map[string]string{"company_name": "Acme"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("validates body before calling the service", func() {
		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/packs", map[string]string{"company_name": "  "}))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("creates pack", func() {
		pack := samplePack()
		s.service.EXPECT().CreatePack(gomock.Any(), &models.CreatePackRequest{CompanyName: "Acme", Industry: "construction"}).
			Return(pack, nil)

		req := s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost, "/packs",
			map[string]string{"company_name": " Acme ", "industry": "construction"}))
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "id", pack.ID.String())
	})
}

func (s *PackHandlerSuite) TestGetPack() {
	s.Run("malformed id", func() {
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/packs/not-a-uuid")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("not found maps to 404", func() {
		packID := id.PackID(uuid.New())
		s.service.EXPECT().GetOwnedPack(gomock.Any(), packID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "proof pack not found"))
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/packs/"+packID.String())))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("returns pack without storage keys", func() {
		pack := samplePack()
		pack.Documents = []models.Document{{ID: id.DocumentID(uuid.New()), FileName: "a.pdf", StorageKey: "secret/key"}}
		s.service.EXPECT().GetOwnedPack(gomock.Any(), pack.ID).Return(pack, nil)
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewRequest(s.T(), http.MethodGet, "/packs/"+pack.ID.String())))
		testutil.AssertStatusOK(s.T(), rr)
		s.NotContains(rr.Body.String(), "secret/key")
	})
}

func (s *PackHandlerSuite) TestAddDocument() {
	pack := samplePack()

	s.Run("rejects unknown category", func() {
		body := map[string]any{"category": "selfie", "file_name": "a.pdf", "storage_key": "k"}
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/packs/"+pack.ID.String()+"/documents", body)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("state conflict is 409", func() {
		s.service.EXPECT().AddDocument(gomock.Any(), pack.ID, gomock.Any()).
			Return(nil, nil, dErrors.New(dErrors.CodeStateConflict, "proof pack is being modified concurrently").WithState(pack))
		body := map[string]any{"category": "insurance", "file_name": "a.pdf", "storage_key": "k"}
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/packs/"+pack.ID.String()+"/documents", body)))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "state_conflict")
	})

	s.Run("dependency failure hides detail", func() {
		s.service.EXPECT().AddDocument(gomock.Any(), pack.ID, gomock.Any()).
			Return(nil, nil, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeDependency, "failed to save proof pack"))
		body := map[string]any{"category": "insurance", "file_name": "a.pdf", "storage_key": "k"}
		rr := testutil.DoRequest(s.router, s.authed(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/packs/"+pack.ID.String()+"/documents", body)))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
		s.NotContains(rr.Body.String(), "connection refused")
	})
}

func (s *PackHandlerSuite) TestAdminRoutes() {
	pack := samplePack()

	s.Run("missing admin token", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/admin/packs/"+pack.ID.String()+"/recompute"))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("recompute with admin token", func() {
		s.service.EXPECT().Recompute(gomock.Any(), pack.ID).Return(pack, nil)
		req := testutil.NewRequest(s.T(), http.MethodPost, "/admin/packs/"+pack.ID.String()+"/recompute")
		req.Header.Set("X-Admin-Token", adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("override passes sub-scores through", func() {
		s.service.EXPECT().OverrideSubScores(gomock.Any(), pack.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.PackID, req *models.OverrideRequest) (*models.ProofPack, error) {
				s.Equal(90.0, req.Completeness)
				s.Equal("audit", req.Reason)
				return pack, nil
			})
		req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/admin/packs/"+pack.ID.String()+"/sub-scores",
			map[string]any{"completeness": 90, "expiration": 80, "quality": 70, "remediation": 100, "reason": "audit"})
		req.Header.Set("X-Admin-Token", adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
	})
}
