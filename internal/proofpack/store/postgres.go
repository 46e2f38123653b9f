package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists packs across proof_packs, pack_documents and pack_gaps.
// Child rows are replaced wholesale inside the same transaction as the
// version-checked parent update.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const packColumns = `id, owner_id, company_name, industry, status,
	completeness, expiration, quality, remediation, overall,
	version, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, pack *models.ProofPack) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		_, err := exec.ExecContext(ctx, `
			INSERT INTO proof_packs (`+packColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12)
		`, uuid.UUID(pack.ID), uuid.UUID(pack.OwnerID), pack.CompanyName, pack.Industry, string(pack.Status),
			pack.Health.Completeness, pack.Health.Expiration, pack.Health.Quality, pack.Health.Remediation,
			pack.Health.Overall, pack.CreatedAt, pack.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return sentinel.ErrAlreadyExists
			}
			return fmt.Errorf("insert proof pack: %w", err)
		}
		if err := s.replaceChildren(ctx, exec, pack); err != nil {
			return err
		}
		pack.Version = 1
		return nil
	})
}

func (s *PostgresStore) FindByID(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	row := exec.QueryRowContext(ctx, `SELECT `+packColumns+` FROM proof_packs WHERE id = $1`, uuid.UUID(packID))
	pack, err := scanPack(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find proof pack: %w", err)
	}
	if err := s.loadChildren(ctx, exec, []*models.ProofPack{pack}); err != nil {
		return nil, err
	}
	return pack, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.ProofPack, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT `+packColumns+` FROM proof_packs
		WHERE owner_id = $1
		ORDER BY created_at
	`, uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list proof packs by owner: %w", err)
	}
	packs, err := scanPacks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, exec, packs); err != nil {
		return nil, err
	}
	return packs, nil
}

// Update applies the compare-and-swap on version. A missing row and a stale
// version are told apart so callers can map them differently.
func (s *PostgresStore) Update(ctx context.Context, pack *models.ProofPack) error {
	return tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		res, err := exec.ExecContext(ctx, `
			UPDATE proof_packs SET
				company_name = $3, industry = $4, status = $5,
				completeness = $6, expiration = $7, quality = $8, remediation = $9, overall = $10,
				version = version + 1, updated_at = $11
			WHERE id = $1 AND version = $2
		`, uuid.UUID(pack.ID), pack.Version, pack.CompanyName, pack.Industry, string(pack.Status),
			pack.Health.Completeness, pack.Health.Expiration, pack.Health.Quality, pack.Health.Remediation,
			pack.Health.Overall, pack.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update proof pack: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update proof pack: %w", err)
		}
		if affected == 0 {
			var exists bool
			if err := exec.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM proof_packs WHERE id = $1)`, uuid.UUID(pack.ID),
			).Scan(&exists); err != nil {
				return fmt.Errorf("check proof pack: %w", err)
			}
			if !exists {
				return sentinel.ErrNotFound
			}
			return sentinel.ErrConflict
		}
		if err := s.replaceChildren(ctx, exec, pack); err != nil {
			return err
		}
		pack.Version++
		return nil
	})
}

func (s *PostgresStore) ListApproved(ctx context.Context, filter models.DirectoryFilter) ([]*models.ProofPack, error) {
	query := `SELECT ` + packColumns + ` FROM proof_packs WHERE status = $1 AND overall >= $2`
	args := []any{string(models.PackStatusApproved), filter.MinScore}
	if filter.Industry != "" {
		args = append(args, filter.Industry)
		query += fmt.Sprintf(" AND lower(industry) = lower($%d)", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		query += fmt.Sprintf(" AND (company_name ILIKE $%d OR industry ILIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY overall DESC, company_name ASC, id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved proof packs: %w", err)
	}
	packs, err := scanPacks(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, exec, packs); err != nil {
		return nil, err
	}
	return packs, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresStore) replaceChildren(ctx context.Context, exec tx.Executor, pack *models.ProofPack) error {
	packID := uuid.UUID(pack.ID)
	if _, err := exec.ExecContext(ctx, `DELETE FROM pack_documents WHERE pack_id = $1`, packID); err != nil {
		return fmt.Errorf("clear pack documents: %w", err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM pack_gaps WHERE pack_id = $1`, packID); err != nil {
		return fmt.Errorf("clear pack gaps: %w", err)
	}
	for i, doc := range pack.Documents {
		_, err := exec.ExecContext(ctx, `
			INSERT INTO pack_documents
				(id, pack_id, position, category, file_name, content_type, size_bytes, storage_key, expiration_date, uploaded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.UUID(doc.ID), packID, i, string(doc.Category), doc.FileName, doc.ContentType,
			doc.SizeBytes, doc.StorageKey, nullTime(doc.ExpirationDate), doc.UploadedAt)
		if err != nil {
			return fmt.Errorf("insert pack document: %w", err)
		}
	}
	for i, gap := range pack.Gaps {
		var documentID any
		if gap.DocumentID != nil {
			documentID = uuid.UUID(*gap.DocumentID)
		}
		_, err := exec.ExecContext(ctx, `
			INSERT INTO pack_gaps
				(id, pack_id, position, category, severity, recommendation, status, document_id, resolved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.UUID(gap.ID), packID, i, string(gap.Category), string(gap.Severity), gap.Recommendation,
			string(gap.Status), documentID, nullTime(gap.ResolvedAt))
		if err != nil {
			return fmt.Errorf("insert pack gap: %w", err)
		}
	}
	return nil
}

// loadChildren fetches documents and gaps for all packs in two queries.
func (s *PostgresStore) loadChildren(ctx context.Context, exec tx.Executor, packs []*models.ProofPack) error {
	if len(packs) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.ProofPack, len(packs))
	ids := make([]string, 0, len(packs))
	for _, p := range packs {
		p.Documents = []models.Document{}
		p.Gaps = []models.Gap{}
		byID[uuid.UUID(p.ID)] = p
		ids = append(ids, p.ID.String())
	}

	docRows, err := exec.QueryContext(ctx, `
		SELECT pack_id, id, category, file_name, content_type, size_bytes, storage_key, expiration_date, uploaded_at
		FROM pack_documents WHERE pack_id = ANY($1::uuid[])
		ORDER BY pack_id, position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load pack documents: %w", err)
	}
	defer docRows.Close()
	for docRows.Next() {
		var (
			packID, docID uuid.UUID
			doc           models.Document
			category      string
			expiration    sql.NullTime
		)
		if err := docRows.Scan(&packID, &docID, &category, &doc.FileName, &doc.ContentType,
			&doc.SizeBytes, &doc.StorageKey, &expiration, &doc.UploadedAt); err != nil {
			return fmt.Errorf("scan pack document: %w", err)
		}
		doc.ID = id.DocumentID(docID)
		doc.Category = models.DocumentCategory(category)
		doc.ExpirationDate = timePtr(expiration)
		if p, ok := byID[packID]; ok {
			p.Documents = append(p.Documents, doc)
		}
	}
	if err := docRows.Err(); err != nil {
		return fmt.Errorf("iterate pack documents: %w", err)
	}

	gapRows, err := exec.QueryContext(ctx, `
		SELECT pack_id, id, category, severity, recommendation, status, document_id, resolved_at
		FROM pack_gaps WHERE pack_id = ANY($1::uuid[])
		ORDER BY pack_id, position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load pack gaps: %w", err)
	}
	defer gapRows.Close()
	for gapRows.Next() {
		var (
			packID, gapID                      uuid.UUID
			category, severity, status, recomm string
			documentID                         uuid.NullUUID
			resolvedAt                         sql.NullTime
		)
		if err := gapRows.Scan(&packID, &gapID, &category, &severity, &recomm, &status, &documentID, &resolvedAt); err != nil {
			return fmt.Errorf("scan pack gap: %w", err)
		}
		gap := models.Gap{
			ID:             id.GapID(gapID),
			Category:       models.GapCategory(category),
			Severity:       models.GapSeverity(severity),
			Recommendation: recomm,
			Status:         models.GapStatus(status),
			ResolvedAt:     timePtr(resolvedAt),
		}
		if documentID.Valid {
			docID := id.DocumentID(documentID.UUID)
			gap.DocumentID = &docID
		}
		if p, ok := byID[packID]; ok {
			p.Gaps = append(p.Gaps, gap)
		}
	}
	return gapRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPack(row rowScanner) (*models.ProofPack, error) {
	var (
		pack            models.ProofPack
		packID, ownerID uuid.UUID
		status          string
		health          score.PackHealth
	)
	if err := row.Scan(&packID, &ownerID, &pack.CompanyName, &pack.Industry, &status,
		&health.Completeness, &health.Expiration, &health.Quality, &health.Remediation, &health.Overall,
		&pack.Version, &pack.CreatedAt, &pack.UpdatedAt); err != nil {
		return nil, err
	}
	pack.ID = id.PackID(packID)
	pack.OwnerID = id.UserID(ownerID)
	pack.Status = models.PackStatus(status)
	pack.Health = health
	return &pack, nil
}

func scanPacks(rows *sql.Rows) ([]*models.ProofPack, error) {
	defer rows.Close()
	var packs []*models.ProofPack
	for rows.Next() {
		pack, err := scanPack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proof pack: %w", err)
		}
		packs = append(packs, pack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof packs: %w", err)
	}
	return packs, nil
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
