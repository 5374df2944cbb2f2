// Package wordbank implements the per-learner word knowledge repository using
// PostgreSQL. Counter increments are single-statement upserts so concurrent
// turns never lose an update.
package wordbank

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

// Repo provides word bank persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word bank repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, user_id, language_id, word, translation, romaji, status, times_seen, times_used, created_at, updated_at`

var columnList = []string{
	"id", "user_id", "language_id", "word", "translation", "romaji",
	"status", "times_seen", "times_used", "created_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const upsertSeenSQL = `
INSERT INTO word_bank (id, user_id, language_id, word, translation, romaji, status, times_seen, times_used)
VALUES ($1, $2, $3, $4, $5, $6, 'passive', 1, 0)
ON CONFLICT (user_id, language_id, word) DO UPDATE
SET times_seen  = word_bank.times_seen + 1,
    translation = EXCLUDED.translation,
    romaji      = EXCLUDED.romaji,
    updated_at  = now()
RETURNING ` + columns

const upsertUsedSQL = `
INSERT INTO word_bank (id, user_id, language_id, word, status, times_seen, times_used)
VALUES ($1, $2, $3, $4, 'active', 0, 1)
ON CONFLICT (user_id, language_id, word) DO UPDATE
SET times_used = word_bank.times_used + 1,
    status     = 'active',
    updated_at = now()
RETURNING ` + columns

const getByWordsSQL = `
SELECT ` + columns + `
FROM word_bank
WHERE user_id = $1 AND language_id = $2 AND word = ANY($3)`

// UpsertSeen records that the tutor showed the word. The latest translation
// and romaji overwrite the stored ones; status is left unchanged.
func (r *Repo) UpsertSeen(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx, upsertSeenSQL,
		uuid.New(), s.UserID, s.LanguageID, s.Word, s.Translation, s.Romaji,
	)
	w, err := scanWord(row)
	if err != nil {
		return nil, postgres.MapError(err, "word", s.Word)
	}
	return w, nil
}

// UpsertUsed records that the learner produced the word and forces it active.
func (r *Repo) UpsertUsed(ctx context.Context, userID uuid.UUID, languageID, word string) (*domain.WordKnowledge, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	w, err := scanWord(q.QueryRow(ctx, upsertUsedSQL, uuid.New(), userID, languageID, word))
	if err != nil {
		return nil, postgres.MapError(err, "word", word)
	}
	return w, nil
}

// GetByWords returns the stored records among words. Missing words are absent
// from the result.
func (r *Repo) GetByWords(ctx context.Context, userID uuid.UUID, languageID string, words []string) ([]domain.WordKnowledge, error) {
	if len(words) == 0 {
		return []domain.WordKnowledge{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, getByWordsSQL, userID, languageID, words)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	return collectWords(rows)
}

// List returns a page of the learner's word bank and the unpaged total,
// ordered active first, then by usage and recency.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, languageID string, f domain.WordBankFilter) ([]domain.WordKnowledge, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.Eq{"user_id": userID, "language_id": languageID}
	if f.Status != nil {
		where["status"] = string(*f.Status)
	}

	countSQL, countArgs, err := psql.Select("count(*)").From("word_bank").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	query := psql.Select(columnList...).
		From("word_bank").
		Where(where).
		OrderBy("status ASC", "times_used DESC", "updated_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	listSQL, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}
	rows, err := q.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	words, err := collectWords(rows)
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

func scanWord(row pgx.Row) (*domain.WordKnowledge, error) {
	var (
		w      domain.WordKnowledge
		status string
	)
	err := row.Scan(
		&w.ID, &w.UserID, &w.LanguageID, &w.Word, &w.Translation, &w.Romaji,
		&status, &w.TimesSeen, &w.TimesUsed, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.Status = domain.WordStatus(status)
	return &w, nil
}

func collectWords(rows pgx.Rows) ([]domain.WordKnowledge, error) {
	defer rows.Close()

	words := make([]domain.WordKnowledge, 0)
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}
