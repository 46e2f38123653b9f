package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"proofpack/internal/blob"
	directoryhandler "proofpack/internal/directory/handler"
	directoryservice "proofpack/internal/directory/service"
	directorystore "proofpack/internal/directory/store"
	"proofpack/internal/disclosure/accesslog"
	disclosurehandler "proofpack/internal/disclosure/handler"
	disclosureservice "proofpack/internal/disclosure/service"
	disclosurestore "proofpack/internal/disclosure/store"
	"proofpack/internal/disclosure/store/revocation"
	"proofpack/internal/identity"
	"proofpack/internal/notification"
	"proofpack/internal/notification/kafka"
	"proofpack/internal/platform/config"
	"proofpack/internal/platform/database"
	"proofpack/internal/platform/metrics"
	platformredis "proofpack/internal/platform/redis"
	packhandler "proofpack/internal/proofpack/handler"
	packservice "proofpack/internal/proofpack/service"
	packstore "proofpack/internal/proofpack/store"
	reviewhandler "proofpack/internal/review/handler"
	reviewmodels "proofpack/internal/review/models"
	reviewservice "proofpack/internal/review/service"
	reviewstore "proofpack/internal/review/store"
)

const memoryBlobBaseURL = "memory://proof-documents"

// infra holds the optional backends. A nil field means the in-memory
// fallback is in use for that concern.
type infra struct {
	logger *slog.Logger
	db     *sql.DB
	redis  *platformredis.Client
	kafka  *kafka.Transport
	azure  *blob.Azure
}

func openInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	i := &infra{logger: log}

	if cfg.Database.DSN != "" {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		i.db = db
	}

	client, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		i.Close()
		return nil, err
	}
	i.redis = client

	if len(cfg.Kafka.Brokers) > 0 {
		transport, err := kafka.New(cfg.Kafka, log)
		if err != nil {
			i.Close()
			return nil, err
		}
		if err := transport.EnsureTopic(ctx, 1, 1); err != nil {
			log.Warn("notification topic not ensured", "topic", cfg.Kafka.Topic, "error", err)
		}
		i.kafka = transport
	}

	if cfg.Blob.ConnectionString != "" {
		azure, err := blob.NewAzure(cfg.Blob, log)
		if err != nil {
			i.Close()
			return nil, err
		}
		if err := azure.EnsureContainer(ctx); err != nil {
			i.Close()
			return nil, fmt.Errorf("blob container: %w", err)
		}
		i.azure = azure
	}
	return i, nil
}

func (i *infra) Close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

type registrar interface {
	Register(r chi.Router)
}

type app struct {
	dispatcher *notification.Dispatcher
	handlers   []registrar
}

type stores struct {
	packs         packservice.Store
	reviews       reviewservice.Store
	disclosure    disclosureservice.Store
	access        accesslog.Store
	intros        directoryservice.Store
	reviewHistory directoryservice.ReviewHistory
}

func buildStores(i *infra) stores {
	if i.db != nil {
		reviews := reviewstore.NewPostgres(i.db)
		disclosure := disclosurestore.NewPostgres(i.db)
		return stores{
			packs:         packstore.NewPostgres(i.db),
			reviews:       reviews,
			disclosure:    disclosure,
			access:        disclosure,
			intros:        directorystore.NewPostgres(i.db),
			reviewHistory: reviews,
		}
	}
	reviews := reviewstore.NewInMemory()
	disclosure := disclosurestore.NewInMemory()
	return stores{
		packs:         packstore.NewInMemory(),
		reviews:       reviews,
		disclosure:    disclosure,
		access:        disclosure,
		intros:        directorystore.NewInMemory(),
		reviewHistory: reviews,
	}
}

func buildApp(cfg config.Server, log *slog.Logger, m *metrics.Metrics, i *infra) *app {
	var transport notification.Transport = notification.NewLogTransport(log)
	if i.kafka != nil {
		transport = i.kafka
	}
	dispatcher := notification.NewDispatcher(transport,
		notification.WithLogger(log),
		notification.WithMetrics(m),
		notification.WithBufferSize(cfg.Notification.BufferSize),
		notification.WithRetryInterval(cfg.Notification.RetryInterval),
		notification.WithSendTimeout(cfg.Notification.SendTimeout),
		notification.WithFailureThreshold(cfg.Notification.FailureThreshold),
	)

	st := buildStores(i)
	storeTimeout := cfg.Database.QueryTimeout

	packs := packservice.New(st.packs,
		packservice.WithLogger(log),
		packservice.WithNotifier(dispatcher),
		packservice.WithMetrics(m),
		packservice.WithStoreTimeout(storeTimeout),
	)

	policy := reviewmodels.StrictPolicy()
	if !cfg.Review.StrictPolicy {
		policy = reviewmodels.Policy{}
	}
	reviews := reviewservice.New(st.reviews, packs,
		reviewservice.WithLogger(log),
		reviewservice.WithNotifier(dispatcher),
		reviewservice.WithMetrics(m),
		reviewservice.WithPolicy(policy),
		reviewservice.WithStoreTimeout(storeTimeout),
	)

	var blobs disclosureservice.BlobResolver = blob.NewMemory(memoryBlobBaseURL)
	if i.azure != nil {
		blobs = i.azure
	}
	disclosureOpts := []disclosureservice.Option{
		disclosureservice.WithLogger(log),
		disclosureservice.WithNotifier(dispatcher),
		disclosureservice.WithMetrics(m),
		disclosureservice.WithGrantTTL(cfg.Disclosure.DefaultGrantTTL, cfg.Disclosure.MaxGrantTTL),
		disclosureservice.WithHandleTTL(cfg.Blob.HandleTTL),
		disclosureservice.WithStoreTimeout(storeTimeout),
	}
	if i.redis != nil {
		disclosureOpts = append(disclosureOpts, disclosureservice.WithRevocationList(revocation.NewRedisList(i.redis.Client)))
	} else {
		disclosureOpts = append(disclosureOpts, disclosureservice.WithRevocationList(revocation.NewMemoryList()))
	}
	access := accesslog.New(st.access, accesslog.WithLogger(log), accesslog.WithMetrics(m))
	disclosure := disclosureservice.New(st.disclosure, access, packs, blobs, disclosureOpts...)

	directory := directoryservice.New(st.intros, packs,
		directoryservice.WithLogger(log),
		directoryservice.WithNotifier(dispatcher),
		directoryservice.WithMetrics(m),
		directoryservice.WithReviewHistory(st.reviewHistory),
		directoryservice.WithStoreTimeout(storeTimeout),
	)

	validator := identity.NewJWTServiceAdapter(
		identity.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience),
	)

	return &app{
		dispatcher: dispatcher,
		handlers: []registrar{
			packhandler.New(packs, log, validator, cfg.Auth.AdminToken),
			reviewhandler.New(reviews, log, validator),
			disclosurehandler.New(disclosure, log, validator),
			directoryhandler.New(directory, log, validator),
		},
	}
}
