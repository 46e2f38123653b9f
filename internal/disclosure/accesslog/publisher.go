// Package accesslog records disclosure reads with fail-closed semantics: the
// caller blocks until the entry is persisted, and a failed write must fail the
// read that triggered it.
package accesslog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"proofpack/internal/disclosure/models"
	"proofpack/internal/platform/metrics"
	id "proofpack/pkg/domain"
	"proofpack/pkg/requestcontext"
)

type Store interface {
	AppendAccess(ctx context.Context, entry models.AccessLogEntry) error
}

type Publisher struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

func New(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Record completes entry from the request context and writes it. A non-nil
// error means nothing was logged.
func (p *Publisher) Record(ctx context.Context, entry models.AccessLogEntry) (models.AccessLogEntry, error) {
	if entry.UserID.IsNil() {
		return entry, fmt.Errorf("access log entry requires UserID")
	}
	if entry.TokenDigest == "" {
		return entry, fmt.Errorf("access log entry requires TokenDigest")
	}
	if entry.Action == "" {
		return entry, fmt.Errorf("access log entry requires Action")
	}

	if entry.ID == (id.AccessLogID{}) {
		entry.ID = id.AccessLogID(uuid.New())
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}
	if entry.ClientIP == "" {
		entry.ClientIP = requestcontext.ClientIP(ctx)
	}
	if entry.UserAgent == "" {
		entry.UserAgent = requestcontext.UserAgent(ctx)
	}
	if entry.Device == "" {
		entry.Device = DescribeDevice(entry.UserAgent)
	}

	if err := p.store.AppendAccess(ctx, entry); err != nil {
		if p.metrics != nil {
			p.metrics.AccessLogFailures.Inc()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: access log write failed",
				"action", string(entry.Action),
				"user_id", entry.UserID.String(),
				"pack_id", entry.ProofPackID.String(),
				"error", err,
			)
		}
		return entry, fmt.Errorf("access log persistence failed: %w", err)
	}
	return entry, nil
}

// DescribeDevice condenses a User-Agent header into "browser on os", or "bot".
func DescribeDevice(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return ""
	}
	parsed := useragent.New(ua)
	if parsed.Bot() {
		return "bot"
	}
	browser, _ := parsed.Browser()
	os := parsed.OS()
	switch {
	case browser != "" && os != "":
		return browser + " on " + os
	case browser != "":
		return browser
	}
	return os
}
