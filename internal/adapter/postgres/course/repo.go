// Package course implements the course enrollment repository using PostgreSQL.
package course

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Repo provides enrollment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new course repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const courseColumns = `id, user_id, language_id, level, enrolled_at, updated_at`

const upsertSQL = `
INSERT INTO user_courses (id, user_id, language_id, level)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, language_id) DO UPDATE
SET level = EXCLUDED.level, updated_at = now()
RETURNING ` + courseColumns

const listSQL = `
SELECT ` + courseColumns + `
FROM user_courses
WHERE user_id = $1
ORDER BY enrolled_at DESC`

// Upsert enrolls the user in a language or updates the level of an existing
// enrollment. enrolled_at is kept from the first enrollment.
func (r *Repo) Upsert(ctx context.Context, userID uuid.UUID, languageID, level string) (*domain.Course, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCourse(q.QueryRow(ctx, upsertSQL, uuid.New(), userID, languageID, level))
	if err != nil {
		return nil, postgres.MapError(err, "course", languageID)
	}
	return c, nil
}

// List returns the user's enrollments, most recent first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return out, nil
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var c domain.Course
	if err := row.Scan(&c.ID, &c.UserID, &c.LanguageID, &c.Level, &c.EnrolledAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
