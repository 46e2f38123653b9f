package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"proofpack/internal/directory/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore keeps introductions in the introductions table, unique on
// (buyer_id, proof_pack_id).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const introColumns = `id, buyer_id, proof_pack_id, message, score_at_request, created_at`

func (s *PostgresStore) Create(ctx context.Context, intro *models.Introduction) error {
	exec := tx.ExecutorFrom(ctx, s.db)
	_, err := exec.ExecContext(ctx, `
		INSERT INTO introductions (`+introColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(intro.ID), uuid.UUID(intro.BuyerID), uuid.UUID(intro.ProofPackID),
		intro.Message, intro.ScoreAtRequest, intro.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert introduction: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByBuyerAndPack(ctx context.Context, buyerID id.UserID, packID id.PackID) (*models.Introduction, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	row := exec.QueryRowContext(ctx, `
		SELECT `+introColumns+` FROM introductions
		WHERE buyer_id = $1 AND proof_pack_id = $2
	`, uuid.UUID(buyerID), uuid.UUID(packID))
	intro, err := scanIntroduction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find introduction: %w", err)
	}
	return intro, nil
}

func (s *PostgresStore) ListByPack(ctx context.Context, packID id.PackID) ([]*models.Introduction, error) {
	exec := tx.ExecutorFrom(ctx, s.db)
	rows, err := exec.QueryContext(ctx, `
		SELECT `+introColumns+` FROM introductions
		WHERE proof_pack_id = $1
		ORDER BY created_at DESC, id
	`, uuid.UUID(packID))
	if err != nil {
		return nil, fmt.Errorf("list introductions: %w", err)
	}
	defer rows.Close()

	var out []*models.Introduction
	for rows.Next() {
		intro, err := scanIntroduction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan introduction: %w", err)
		}
		out = append(out, intro)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntroduction(row rowScanner) (*models.Introduction, error) {
	var (
		introID, buyerID, packID uuid.UUID
		intro                    models.Introduction
	)
	if err := row.Scan(&introID, &buyerID, &packID, &intro.Message, &intro.ScoreAtRequest, &intro.CreatedAt); err != nil {
		return nil, err
	}
	intro.ID = id.IntroductionID(introID)
	intro.BuyerID = id.UserID(buyerID)
	intro.ProofPackID = id.PackID(packID)
	return &intro, nil
}
