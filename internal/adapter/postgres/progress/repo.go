// Package progress implements the lesson progress repository using PostgreSQL.
package progress

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Repo provides lesson progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var progressColumns = []string{
	"id", "user_id", "language_id", "lesson_id", "status", "score", "completed_at", "created_at", "updated_at",
}

const returningColumns = `id, user_id, language_id, lesson_id, status, score, completed_at, created_at, updated_at`

// A missing score keeps the stored one; completed_at is stamped whenever the
// status is set to completed and is otherwise left alone.
const upsertSQL = `
INSERT INTO lesson_progress (id, user_id, language_id, lesson_id, status, score, completed_at)
VALUES ($1, $2, $3, $4, $5::text, $6, CASE WHEN $5::text = 'completed' THEN now() END)
ON CONFLICT (user_id, language_id, lesson_id) DO UPDATE
SET status       = EXCLUDED.status,
    score        = COALESCE(EXCLUDED.score, lesson_progress.score),
    completed_at = COALESCE(EXCLUDED.completed_at, lesson_progress.completed_at),
    updated_at   = now()
RETURNING ` + returningColumns

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Upsert creates or updates the progress row for (user, language, lesson).
func (r *Repo) Upsert(ctx context.Context, p domain.LessonProgress) (*domain.LessonProgress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, upsertSQL, uuid.New(), p.UserID, p.LanguageID, p.LessonID, string(p.Status), p.Score)
	got, err := scanProgress(row)
	if err != nil {
		return nil, postgres.MapError(err, "lesson_progress", p.LessonID)
	}
	return got, nil
}

// List returns the learner's progress in a language ordered by lesson id.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(progressColumns...).
		From("lesson_progress").
		Where(sq.Eq{"user_id": userID, "language_id": languageID}).
		OrderBy("lesson_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build progress query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	out := make([]domain.LessonProgress, 0)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func scanProgress(row pgx.Row) (*domain.LessonProgress, error) {
	var (
		p      domain.LessonProgress
		status string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.LanguageID, &p.LessonID, &status, &p.Score, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = domain.ProgressStatus(status)
	return &p, nil
}
