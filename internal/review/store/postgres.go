package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"proofpack/internal/review/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore keeps reviews in qa_reviews and their findings in
// review_findings. The one-active-review rule is the partial unique index
// qa_reviews_one_active_per_pack.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reviewColumns = `id, proof_pack_id, reviewer_id, status, decision, comments,
	scheduled_at, started_at, completed_at, cancelled_at, version`

func (s *PostgresStore) Create(ctx context.Context, review *models.QAReview) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		_, err := exec.ExecContext(ctx, `
			INSERT INTO qa_reviews (`+reviewColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		`, uuid.UUID(review.ID), uuid.UUID(review.ProofPackID), nullUser(review.ReviewerID),
			string(review.Status), string(review.Decision), review.Comments, review.ScheduledAt,
			nullTime(review.StartedAt), nullTime(review.CompletedAt), nullTime(review.CancelledAt))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return sentinel.ErrAlreadyExists
			}
			return fmt.Errorf("insert qa review: %w", err)
		}
		if err := s.replaceFindings(ctx, exec, review); err != nil {
			return err
		}
		review.Version = 1
		return nil
	})
}

func (s *PostgresStore) FindByID(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error) {
	return s.findOne(ctx, `SELECT `+reviewColumns+` FROM qa_reviews WHERE id = $1`, uuid.UUID(reviewID))
}

func (s *PostgresStore) FindActiveByPack(ctx context.Context, packID id.PackID) (*models.QAReview, error) {
	return s.findOne(ctx, `
		SELECT `+reviewColumns+` FROM qa_reviews
		WHERE proof_pack_id = $1 AND status IN ('scheduled', 'in_progress')
	`, uuid.UUID(packID))
}

func (s *PostgresStore) ListByPack(ctx context.Context, packID id.PackID) ([]*models.QAReview, error) {
	return s.findMany(ctx, `
		SELECT `+reviewColumns+` FROM qa_reviews
		WHERE proof_pack_id = $1
		ORDER BY scheduled_at, id
	`, uuid.UUID(packID))
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.QAReview, error) {
	return s.findMany(ctx, `
		SELECT `+reviewColumns+` FROM qa_reviews
		WHERE status = $1
		ORDER BY scheduled_at, id
	`, string(status))
}

// Update applies the compare-and-swap on version and rewrites findings.
func (s *PostgresStore) Update(ctx context.Context, review *models.QAReview) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		res, err := exec.ExecContext(ctx, `
			UPDATE qa_reviews SET
				reviewer_id = $3, status = $4, decision = $5, comments = $6,
				started_at = $7, completed_at = $8, cancelled_at = $9,
				version = version + 1
			WHERE id = $1 AND version = $2
		`, uuid.UUID(review.ID), review.Version, nullUser(review.ReviewerID), string(review.Status),
			string(review.Decision), review.Comments,
			nullTime(review.StartedAt), nullTime(review.CompletedAt), nullTime(review.CancelledAt))
		if err != nil {
			return fmt.Errorf("update qa review: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update qa review: %w", err)
		}
		if affected == 0 {
			var exists bool
			if err := exec.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM qa_reviews WHERE id = $1)`, uuid.UUID(review.ID),
			).Scan(&exists); err != nil {
				return fmt.Errorf("check qa review: %w", err)
			}
			if !exists {
				return sentinel.ErrNotFound
			}
			return sentinel.ErrConflict
		}
		if err := s.replaceFindings(ctx, exec, review); err != nil {
			return err
		}
		review.Version++
		return nil
	})
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.QAReview, error) {
	reviews, err := s.findMany(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return reviews[0], nil
}

func (s *PostgresStore) findMany(ctx context.Context, query string, args ...any) ([]*models.QAReview, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query qa reviews: %w", err)
	}
	reviews, err := scanReviews(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadFindings(ctx, exec, reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *PostgresStore) replaceFindings(ctx context.Context, exec tx.Executor, review *models.QAReview) error {
	reviewID := uuid.UUID(review.ID)
	if _, err := exec.ExecContext(ctx, `DELETE FROM review_findings WHERE review_id = $1`, reviewID); err != nil {
		return fmt.Errorf("clear review findings: %w", err)
	}
	for i, f := range review.Findings {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO review_findings
				(id, review_id, position, severity, category, description, status, created_at, resolved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.UUID(f.ID), reviewID, i, string(f.Severity), f.Category, f.Description,
			string(f.Status), f.CreatedAt, nullTime(f.ResolvedAt))
		if err != nil {
			return fmt.Errorf("insert review finding: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) loadFindings(ctx context.Context, exec tx.Executor, reviews []*models.QAReview) error {
	if len(reviews) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.QAReview, len(reviews))
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		r.Findings = []models.Finding{}
		byID[uuid.UUID(r.ID)] = r
		ids = append(ids, r.ID.String())
	}
	rows, err := exec.QueryContext(ctx, `
		SELECT review_id, id, severity, category, description, status, created_at, resolved_at
		FROM review_findings WHERE review_id = ANY($1::uuid[])
		ORDER BY review_id, position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load review findings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			reviewID, findingID uuid.UUID
			severity, status    string
			f                   models.Finding
			resolvedAt          sql.NullTime
		)
		if err := rows.Scan(&reviewID, &findingID, &severity, &f.Category, &f.Description,
			&status, &f.CreatedAt, &resolvedAt); err != nil {
			return fmt.Errorf("scan review finding: %w", err)
		}
		f.ID = id.FindingID(findingID)
		f.Severity = models.Severity(severity)
		f.Status = models.FindingStatus(status)
		f.ResolvedAt = timePtr(resolvedAt)
		if r, ok := byID[reviewID]; ok {
			r.Findings = append(r.Findings, f)
		}
	}
	return rows.Err()
}

func scanReviews(rows *sql.Rows) ([]*models.QAReview, error) {
	defer rows.Close()
	var reviews []*models.QAReview
	for rows.Next() {
		var (
			r                                   models.QAReview
			reviewID, packID                    uuid.UUID
			reviewerID                          uuid.NullUUID
			status, decision                    string
			startedAt, completedAt, cancelledAt sql.NullTime
		)
		if err := rows.Scan(&reviewID, &packID, &reviewerID, &status, &decision, &r.Comments,
			&r.ScheduledAt, &startedAt, &completedAt, &cancelledAt, &r.Version); err != nil {
			return nil, fmt.Errorf("scan qa review: %w", err)
		}
		r.ID = id.ReviewID(reviewID)
		r.ProofPackID = id.PackID(packID)
		if reviewerID.Valid {
			reviewer := id.UserID(reviewerID.UUID)
			r.ReviewerID = &reviewer
		}
		r.Status = models.Status(status)
		r.Decision = models.Decision(decision)
		r.StartedAt = timePtr(startedAt)
		r.CompletedAt = timePtr(completedAt)
		r.CancelledAt = timePtr(cancelledAt)
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate qa reviews: %w", err)
	}
	return reviews, nil
}

func nullUser(u *id.UserID) uuid.NullUUID {
	if u == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*u), Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
