// Package session implements the login session repository using PostgreSQL.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sessionColumns = `id, user_id, expires_at, created_at`

const createSQL = `
INSERT INTO sessions (id, user_id, expires_at, created_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + sessionColumns

const getByIDSQL = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

const deleteSQL = `DELETE FROM sessions WHERE id = $1`

const deleteExpiredSQL = `DELETE FROM sessions WHERE expires_at < $1`

// Create inserts a session. An unknown user yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanSession(q.QueryRow(ctx, createSQL, s.ID, s.UserID, s.ExpiresAt, s.CreatedAt))
	if err != nil {
		return nil, postgres.MapError(err, "session", s.ID)
	}
	return created, nil
}

// GetByID returns a session by id, expired or not.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSession(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "session", id)
	}
	return s, nil
}

// Delete removes a session. Deleting a missing session yields domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "session", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteExpired removes every session that expired before now and returns
// how many were removed.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteExpiredSQL, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
