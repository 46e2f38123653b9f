package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"proofpack/internal/blob"
	"proofpack/internal/disclosure/models"
	"proofpack/internal/disclosure/token"
	"proofpack/internal/notification"
	"proofpack/internal/platform/metrics"
	packmodels "proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,AccessLog,RevocationList,PackReader,BlobResolver,Notifier

const (
	defaultGrantTTL     = 14 * 24 * time.Hour
	defaultMaxGrantTTL  = 90 * 24 * time.Hour
	defaultHandleTTL    = 5 * time.Minute
	defaultStoreTimeout = 5 * time.Second
	accessLogPageSize   = 500
	maxGrantRetries     = 5
)

type Store interface {
	CreateGrant(ctx context.Context, grant *models.ShareGrant) error
	FindGrant(ctx context.Context, digest string) (*models.ShareGrant, error)
	ListGrants(ctx context.Context, packID id.PackID) ([]*models.ShareGrant, error)
	UpdateGrant(ctx context.Context, grant *models.ShareGrant) error
	FindAcceptance(ctx context.Context, digest string, userID id.UserID) (*models.NDAAcceptance, error)
	SaveAcceptance(ctx context.Context, acceptance *models.NDAAcceptance) (bool, error)
	ListAccess(ctx context.Context, packID id.PackID, limit int) ([]models.AccessLogEntry, error)
}

// AccessLog persists one entry or fails.
type AccessLog interface {
	Record(ctx context.Context, entry models.AccessLogEntry) (models.AccessLogEntry, error)
}

// RevocationList is consulted before the grant store so revocations reach
// every instance at once.
type RevocationList interface {
	Revoke(ctx context.Context, digest string, ttl time.Duration) error
	IsRevoked(ctx context.Context, digest string) (bool, error)
}

type PackReader interface {
	GetPack(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error)
}

type BlobResolver interface {
	Resolve(ctx context.Context, key string, ttl time.Duration) (*blob.Handle, error)
}

type Notifier interface {
	Emit(ctx context.Context, event notification.Event)
}

// Service gates pack disclosure behind share tokens and NDA acceptance.
// Unknown, expired and revoked tokens are indistinguishable to callers.
type Service struct {
	store        Store
	accessLog    AccessLog
	packs        PackReader
	blobs        BlobResolver
	revocations  RevocationList
	notifier     Notifier
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	grantTTL     time.Duration
	maxGrantTTL  time.Duration
	handleTTL    time.Duration
	storeTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithRevocationList(l RevocationList) Option {
	return func(s *Service) {
		s.revocations = l
	}
}

// WithGrantTTL sets the default lifetime of a grant and the longest one an
// owner may ask for.
func WithGrantTTL(def, max time.Duration) Option {
	return func(s *Service) {
		if def > 0 {
			s.grantTTL = def
		}
		if max > 0 {
			s.maxGrantTTL = max
		}
	}
}

func WithHandleTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.handleTTL = d
		}
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, accessLog AccessLog, packs PackReader, blobs BlobResolver, opts ...Option) *Service {
	s := &Service{
		store:        store,
		accessLog:    accessLog,
		packs:        packs,
		blobs:        blobs,
		logger:       slog.Default(),
		tracer:       otel.Tracer("proofpack/disclosure"),
		grantTTL:     defaultGrantTTL,
		maxGrantTTL:  defaultMaxGrantTTL,
		handleTTL:    defaultHandleTTL,
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func denied() error {
	return dErrors.New(dErrors.CodeAccessDenied, "access denied")
}

// Info returns the public summary behind a token. No documents are exposed.
func (s *Service) Info(ctx context.Context, rawToken string) (*packmodels.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.info")
	defer span.End()

	grant, err := s.resolveGrant(ctx, rawToken)
	if err != nil {
		s.recordAccess("info", err)
		return nil, err
	}
	pack, err := s.loadPack(ctx, grant)
	if err != nil {
		s.recordAccess("info", err)
		return nil, err
	}
	summary := pack.Summary()
	s.recordAccess("info", nil)
	return &summary, nil
}

// NDAStatus reports whether the caller has accepted the grant's current NDA.
func (s *Service) NDAStatus(ctx context.Context, rawToken string) (*models.NDAStatus, error) {
	grant, err := s.resolveGrant(ctx, rawToken)
	if err != nil {
		s.recordAccess("nda", err)
		return nil, err
	}
	acceptance, err := s.findAcceptance(ctx, grant.TokenDigest, requestcontext.UserID(ctx))
	if err != nil {
		return nil, err
	}
	return &models.NDAStatus{
		Accepted:   acceptance.Covers(grant),
		NDAVersion: grant.NDAVersion,
	}, nil
}

// AcceptNDA records the caller's acceptance of the current NDA version.
// Accepting a version twice changes nothing.
func (s *Service) AcceptNDA(ctx context.Context, rawToken string) (*models.NDAStatus, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.accept_nda")
	defer span.End()

	grant, err := s.resolveGrant(ctx, rawToken)
	if err != nil {
		s.recordAccess("nda", err)
		return nil, err
	}
	caller := requestcontext.UserID(ctx)
	acceptance := &models.NDAAcceptance{
		TokenDigest: grant.TokenDigest,
		UserID:      caller,
		Version:     grant.NDAVersion,
		AcceptedAt:  requestcontext.Now(ctx),
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	created, err := s.store.SaveAcceptance(storeCtx, acceptance)
	cancel()
	if err != nil {
		return nil, storeError(err, "failed to record nda acceptance")
	}
	s.recordAccess("nda", nil)

	if created {
		s.logger.InfoContext(ctx, "nda accepted",
			"pack_id", grant.ProofPackID.String(),
			"user_id", caller.String(),
			"nda_version", grant.NDAVersion,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.notifier != nil {
			s.notifier.Emit(ctx, notification.Event{
				Kind:      notification.KindNDAAccepted,
				PackID:    grant.ProofPackID,
				Recipient: grant.CreatedBy,
				Attributes: map[string]string{
					"buyer_id":    caller.String(),
					"nda_version": strconv.Itoa(grant.NDAVersion),
				},
				OccurredAt: acceptance.AcceptedAt,
			})
		}
	}
	return &models.NDAStatus{Accepted: true, NDAVersion: grant.NDAVersion}, nil
}

// View returns the full pack once the access has been logged.
func (s *Service) View(ctx context.Context, rawToken string) (*packmodels.ProofPack, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.view")
	defer span.End()

	grant, pack, err := s.authorizeRead(ctx, rawToken)
	if err != nil {
		s.recordAccess("view", err)
		return nil, err
	}
	if err := s.logAccess(ctx, grant, models.ActionViewPack, nil); err != nil {
		s.recordAccess("view", err)
		return nil, err
	}
	s.recordAccess("view", nil)
	return pack, nil
}

// Download resolves a short-lived handle for one document of the pack. The
// handle is only released after the access is logged.
func (s *Service) Download(ctx context.Context, rawToken string, documentID id.DocumentID) (*models.DownloadHandle, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.download", trace.WithAttributes(
		attribute.String("document.id", documentID.String()),
	))
	defer span.End()

	grant, pack, err := s.authorizeRead(ctx, rawToken)
	if err != nil {
		s.recordAccess("download", err)
		return nil, err
	}
	doc, ok := pack.FindDocument(documentID)
	if !ok {
		err := dErrors.New(dErrors.CodeNotFound, "document not found")
		s.recordAccess("download", err)
		return nil, err
	}
	blobCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	handle, err := s.blobs.Resolve(blobCtx, doc.StorageKey, s.handleTTL)
	cancel()
	if err != nil {
		err = blobError(err)
		s.recordAccess("download", err)
		return nil, err
	}
	if err := s.logAccess(ctx, grant, models.ActionDownloadDocument, &documentID); err != nil {
		s.recordAccess("download", err)
		return nil, err
	}
	s.recordAccess("download", nil)
	return &models.DownloadHandle{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		URL:        handle.URL,
		ExpiresAt:  handle.ExpiresAt,
	}, nil
}

// authorizeRead admits callers holding a live grant and a current NDA
// acceptance.
func (s *Service) authorizeRead(ctx context.Context, rawToken string) (*models.ShareGrant, *packmodels.ProofPack, error) {
	grant, err := s.resolveGrant(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}
	acceptance, err := s.findAcceptance(ctx, grant.TokenDigest, requestcontext.UserID(ctx))
	if err != nil {
		return nil, nil, err
	}
	if !acceptance.Covers(grant) {
		return nil, nil, denied()
	}
	pack, err := s.loadPack(ctx, grant)
	if err != nil {
		return nil, nil, err
	}
	return grant, pack, nil
}

// resolveGrant maps a raw token to a live grant. Every way of failing that
// depends on the token's state yields the same access denied error.
func (s *Service) resolveGrant(ctx context.Context, rawToken string) (*models.ShareGrant, error) {
	if !token.WellFormed(rawToken) {
		return nil, denied()
	}
	digest := token.Digest(rawToken)

	if s.revocations != nil {
		listCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		revoked, err := s.revocations.IsRevoked(listCtx, digest)
		cancel()
		if err != nil {
			s.logger.WarnContext(ctx, "revocation list unavailable, relying on grant store",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		} else if revoked {
			return nil, denied()
		}
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	grant, err := s.store.FindGrant(storeCtx, digest)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, denied()
	}
	if err != nil {
		return nil, storeError(err, "failed to load share grant")
	}
	if !grant.IsActive(requestcontext.Now(ctx)) {
		return nil, denied()
	}
	return grant, nil
}

func (s *Service) loadPack(ctx context.Context, grant *models.ShareGrant) (*packmodels.ProofPack, error) {
	pack, err := s.packs.GetPack(ctx, grant.ProofPackID)
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil, denied()
	}
	if err != nil {
		return nil, err
	}
	return pack, nil
}

// findAcceptance returns nil when the caller never accepted.
func (s *Service) findAcceptance(ctx context.Context, digest string, userID id.UserID) (*models.NDAAcceptance, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	acceptance, err := s.store.FindAcceptance(storeCtx, digest, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "failed to load nda acceptance")
	}
	return acceptance, nil
}

func (s *Service) logAccess(ctx context.Context, grant *models.ShareGrant, action models.AccessAction, documentID *id.DocumentID) error {
	logCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	_, err := s.accessLog.Record(logCtx, models.AccessLogEntry{
		TokenDigest: grant.TokenDigest,
		ProofPackID: grant.ProofPackID,
		UserID:      requestcontext.UserID(ctx),
		DocumentID:  documentID,
		Action:      action,
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDependency, "access could not be recorded")
	}
	return nil
}

func (s *Service) recordAccess(phase string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "granted"
	switch {
	case err == nil:
	case dErrors.HasCode(err, dErrors.CodeAccessDenied):
		outcome = "denied"
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	s.metrics.DisclosureAccess.WithLabelValues(phase, outcome).Inc()
}

func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeDependency, "disclosure store timed out")
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeDependency, "request cancelled")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, msg)
}

func blobError(err error) error {
	if errors.Is(err, blob.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "document content not found")
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, "failed to resolve download handle")
}
