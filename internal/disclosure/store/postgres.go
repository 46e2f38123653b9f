package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"proofpack/internal/disclosure/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore keeps grants in share_grants, acceptances in nda_acceptances
// and the access log in access_log. access_log is insert-only.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const grantColumns = `token_digest, proof_pack_id, created_by, label, nda_version,
	created_at, expires_at, revoked, revoked_at, version`

func (s *PostgresStore) CreateGrant(ctx context.Context, grant *models.ShareGrant) error {
	exec := tx.ExecutorFrom(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO share_grants (`+grantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, grant.TokenDigest, uuid.UUID(grant.ProofPackID), uuid.UUID(grant.CreatedBy), grant.Label,
		grant.NDAVersion, grant.CreatedAt, grant.ExpiresAt, grant.Revoked, nullTime(grant.RevokedAt), grant.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert share grant: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindGrant(ctx context.Context, digest string) (*models.ShareGrant, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	row := exec.QueryRowContext(ctx, `SELECT `+grantColumns+` FROM share_grants WHERE token_digest = $1`, digest)
	grant, err := scanGrant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find share grant: %w", err)
	}
	return grant, nil
}

func (s *PostgresStore) ListGrants(ctx context.Context, packID id.PackID) ([]*models.ShareGrant, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT `+grantColumns+` FROM share_grants
		WHERE proof_pack_id = $1
		ORDER BY created_at
	`, uuid.UUID(packID))
	if err != nil {
		return nil, fmt.Errorf("list share grants: %w", err)
	}
	defer rows.Close()
	var grants []*models.ShareGrant
	for rows.Next() {
		grant, err := scanGrant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan share grant: %w", err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate share grants: %w", err)
	}
	return grants, nil
}

// UpdateGrant is a compare-and-set on version: ErrConflict means another
// writer got there first and grant must be reloaded.
func (s *PostgresStore) UpdateGrant(ctx context.Context, grant *models.ShareGrant) error {
	exec := tx.ExecutorFrom(ctx, s.db)
	res, err := exec.ExecContext(ctx, `
		UPDATE share_grants SET
			revoked = $3, revoked_at = $4, nda_version = $5,
			version = version + 1
		WHERE token_digest = $1 AND version = $2
	`, grant.TokenDigest, grant.Version, grant.Revoked, nullTime(grant.RevokedAt), grant.NDAVersion)
	if err != nil {
		return fmt.Errorf("update share grant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update share grant: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := exec.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM share_grants WHERE token_digest = $1)`, grant.TokenDigest,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check share grant: %w", err)
		}
		if !exists {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrConflict
	}
	grant.Version++
	return nil
}

func (s *PostgresStore) FindAcceptance(ctx context.Context, digest string, userID id.UserID) (*models.NDAAcceptance, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	a := models.NDAAcceptance{TokenDigest: digest, UserID: userID}
	err := exec.QueryRowContext(ctx, `
		SELECT version, accepted_at FROM nda_acceptances
		WHERE token_digest = $1 AND user_id = $2
	`, digest, uuid.UUID(userID)).Scan(&a.Version, &a.AcceptedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find nda acceptance: %w", err)
	}
	a.AcceptedAt = a.AcceptedAt.UTC()
	return &a, nil
}

// SaveAcceptance upserts unless the stored version already matches, in which
// case the stored row is loaded into acceptance and created is false.
func (s *PostgresStore) SaveAcceptance(ctx context.Context, acceptance *models.NDAAcceptance) (bool, error) {
	var created bool
	err := tx.Run(ctx, s.db, func(ctx context.Context) error {
		exec := tx.ExecutorFrom(ctx, s.db)
		var acceptedAt time.Time
		err := exec.QueryRowContext(ctx, `
			INSERT INTO nda_acceptances (token_digest, user_id, version, accepted_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (token_digest, user_id) DO UPDATE SET
				version = EXCLUDED.version,
				accepted_at = EXCLUDED.accepted_at
			WHERE nda_acceptances.version <> EXCLUDED.version
			RETURNING accepted_at
		`, acceptance.TokenDigest, uuid.UUID(acceptance.UserID), acceptance.Version, acceptance.AcceptedAt).Scan(&acceptedAt)
		if err == nil {
			created = true
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("save nda acceptance: %w", err)
		}
		existing, err := s.FindAcceptance(ctx, acceptance.TokenDigest, acceptance.UserID)
		if err != nil {
			return err
		}
		*acceptance = *existing
		return nil
	})
	return created, err
}

func (s *PostgresStore) AppendAccess(ctx context.Context, entry models.AccessLogEntry) error {
	exec := tx.ExecutorFrom(ctx, s.db)
	var documentID uuid.NullUUID
	if entry.DocumentID != nil {
		documentID = uuid.NullUUID{UUID: uuid.UUID(*entry.DocumentID), Valid: true}
	}
	_, err := exec.ExecContext(ctx, `
		INSERT INTO access_log
			(id, token_digest, proof_pack_id, user_id, document_id, action, occurred_at, client_ip, user_agent, device)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.UUID(entry.ID), entry.TokenDigest, uuid.UUID(entry.ProofPackID), uuid.UUID(entry.UserID),
		documentID, string(entry.Action), entry.Timestamp, entry.ClientIP, entry.UserAgent, entry.Device)
	if err != nil {
		return fmt.Errorf("append access log: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAccess(ctx context.Context, packID id.PackID, limit int) ([]models.AccessLogEntry, error) {
	query := `
		SELECT id, token_digest, proof_pack_id, user_id, document_id, action, occurred_at, client_ip, user_agent, device
		FROM access_log WHERE proof_pack_id = $1
		ORDER BY occurred_at DESC, id DESC`
	args := []any{uuid.UUID(packID)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list access log: %w", err)
	}
	defer rows.Close()
	var entries []models.AccessLogEntry
	for rows.Next() {
		var (
			e                    models.AccessLogEntry
			entryID, pID, userID uuid.UUID
			documentID           uuid.NullUUID
			action               string
		)
		if err := rows.Scan(&entryID, &e.TokenDigest, &pID, &userID, &documentID, &action,
			&e.Timestamp, &e.ClientIP, &e.UserAgent, &e.Device); err != nil {
			return nil, fmt.Errorf("scan access log: %w", err)
		}
		e.ID = id.AccessLogID(entryID)
		e.ProofPackID = id.PackID(pID)
		e.UserID = id.UserID(userID)
		if documentID.Valid {
			docID := id.DocumentID(documentID.UUID)
			e.DocumentID = &docID
		}
		e.Action = models.AccessAction(action)
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate access log: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGrant(row rowScanner) (*models.ShareGrant, error) {
	var (
		g                 models.ShareGrant
		packID, createdBy uuid.UUID
		revokedAt         sql.NullTime
	)
	if err := row.Scan(&g.TokenDigest, &packID, &createdBy, &g.Label, &g.NDAVersion,
		&g.CreatedAt, &g.ExpiresAt, &g.Revoked, &revokedAt, &g.Version); err != nil {
		return nil, err
	}
	g.ProofPackID = id.PackID(packID)
	g.CreatedBy = id.UserID(createdBy)
	g.CreatedAt = g.CreatedAt.UTC()
	g.ExpiresAt = g.ExpiresAt.UTC()
	if revokedAt.Valid {
		at := revokedAt.Time.UTC()
		g.RevokedAt = &at
	}
	return &g, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
