package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpack/internal/identity"
	"proofpack/internal/platform/config"
	"proofpack/internal/platform/logger"
	"proofpack/internal/platform/metrics"
	id "proofpack/pkg/domain"
	"proofpack/pkg/testutil"
)

func inMemoryConfig() config.Server {
	cfg := config.FromEnv()
	cfg.Database.DSN = ""
	cfg.Redis.URL = ""
	cfg.Kafka.Brokers = nil
	cfg.Blob.ConnectionString = ""
	cfg.Auth.JWTSigningKey = "router-test-key"
	cfg.Auth.AdminToken = "router-test-admin"
	return cfg
}

func TestRouterWiring(t *testing.T) {
	testutil.Given(t, "a server wired with in-memory backends", func(t *testing.T) {
		cfg := inMemoryConfig()
		log := logger.NewWithWriter(io.Discard, "error")
		m := metrics.New(prometheus.NewRegistry())

		i, err := openInfra(context.Background(), cfg, log)
		require.NoError(t, err)
		t.Cleanup(i.Close)

		a := buildApp(cfg, log, m, i)
		router := newRouter(log, m, i, a)

		jwt := identity.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
		token, err := jwt.GenerateAccessToken(id.UserID(uuid.New()), nil, time.Hour)
		require.NoError(t, err)

		testutil.When(t, "checking health", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

			testutil.Then(t, "it reports ok with no backends to check", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "status", "ok")
			})
		})

		testutil.When(t, "listing packs without a bearer token", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/packs"))

			testutil.Then(t, "the request is unauthorized", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusUnauthorized)
			})
		})

		testutil.When(t, "creating a pack with a valid token", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/packs", map[string]string{
				"company_name": "Northwind Logistics",
				"industry":     "logistics",
			})
			rr := testutil.DoRequest(router, testutil.WithBearer(req, token))

			testutil.Then(t, "the draft pack is returned", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusCreated)
				var body map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "draft", body["status"])
				assert.NotEmpty(t, body["id"])
			})
		})

		testutil.When(t, "opening an unknown share link", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/share/not-a-real-token"))

			testutil.Then(t, "access is denied without detail", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusForbidden)
				testutil.AssertErrorDescription(t, rr, "access denied")
			})
		})

		testutil.When(t, "calling an operator route without the admin token", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/admin/packs/"+uuid.NewString()+"/recompute", nil)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the request is rejected", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusUnauthorized)
			})
		})
	})
}
