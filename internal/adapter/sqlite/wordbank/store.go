// Package wordbank is a file-backed word bank on SQLite used for offline
// replays. It satisfies the same repository contract as the PostgreSQL
// word bank, including atomic counter upserts.
package wordbank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Store implements the word bank repository on SQLite.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// Run is one replay of a recorded transcript file.
type Run struct {
	ID         string
	Source     string
	Turns      int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Open opens or creates a SQLite word bank at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection serializes writers; upserts stay atomic either way.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newRunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS word_bank (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		language_id TEXT NOT NULL,
		word        TEXT NOT NULL,
		translation TEXT,
		romaji      TEXT,
		status      TEXT NOT NULL DEFAULT 'passive',
		times_seen  INTEGER NOT NULL DEFAULT 0,
		times_used  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (user_id, language_id, word)
	);

	CREATE TABLE IF NOT EXISTS replay_runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		turns       INTEGER NOT NULL DEFAULT 0,
		started_at  TEXT NOT NULL,
		finished_at TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const wordColumns = `id, user_id, language_id, word, translation, romaji, status, times_seen, times_used, created_at, updated_at`

const upsertSeenSQL = `
INSERT INTO word_bank (id, user_id, language_id, word, translation, romaji, status, times_seen, times_used, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, 'passive', 1, 0, ?, ?)
ON CONFLICT (user_id, language_id, word) DO UPDATE
SET times_seen  = times_seen + 1,
    translation = excluded.translation,
    romaji      = excluded.romaji,
    updated_at  = excluded.updated_at
RETURNING ` + wordColumns

const upsertUsedSQL = `
INSERT INTO word_bank (id, user_id, language_id, word, status, times_seen, times_used, created_at, updated_at)
VALUES (?, ?, ?, ?, 'active', 0, 1, ?, ?)
ON CONFLICT (user_id, language_id, word) DO UPDATE
SET times_used = times_used + 1,
    status     = 'active',
    updated_at = excluded.updated_at
RETURNING ` + wordColumns

// UpsertSeen records that the tutor showed the word.
func (s *Store) UpsertSeen(ctx context.Context, w domain.WordSighting) (*domain.WordKnowledge, error) {
	now := timestamp()
	row := s.db.QueryRowContext(ctx, upsertSeenSQL,
		uuid.NewString(), w.UserID.String(), w.LanguageID, w.Word, w.Translation, w.Romaji, now, now,
	)
	rec, err := scanWord(row)
	if err != nil {
		return nil, fmt.Errorf("word %s: %w", w.Word, err)
	}
	return rec, nil
}

// UpsertUsed records that the learner produced the word and forces it active.
func (s *Store) UpsertUsed(ctx context.Context, userID uuid.UUID, languageID, word string) (*domain.WordKnowledge, error) {
	now := timestamp()
	row := s.db.QueryRowContext(ctx, upsertUsedSQL, uuid.NewString(), userID.String(), languageID, word, now, now)
	rec, err := scanWord(row)
	if err != nil {
		return nil, fmt.Errorf("word %s: %w", word, err)
	}
	return rec, nil
}

// GetByWords returns the stored records among words.
func (s *Store) GetByWords(ctx context.Context, userID uuid.UUID, languageID string, words []string) ([]domain.WordKnowledge, error) {
	if len(words) == 0 {
		return []domain.WordKnowledge{}, nil
	}
	query, args, err := sq.Select(wordColumns).
		From("word_bank").
		Where(sq.Eq{"user_id": userID.String(), "language_id": languageID, "word": words}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build words query: %w", err)
	}
	return s.queryWords(ctx, query, args...)
}

// List returns a page of the learner's word bank and the unpaged total.
func (s *Store) List(ctx context.Context, userID uuid.UUID, languageID string, f domain.WordBankFilter) ([]domain.WordKnowledge, int, error) {
	where := sq.Eq{"user_id": userID.String(), "language_id": languageID}
	if f.Status != nil {
		where["status"] = string(*f.Status)
	}

	countSQL, countArgs, err := sq.Select("count(*)").From("word_bank").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	query := sq.Select(wordColumns).
		From("word_bank").
		Where(where).
		OrderBy("status ASC", "times_used DESC", "updated_at DESC")
	if f.Limit > 0 {
		query = query.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	listSQL, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}
	words, err := s.queryWords(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return words, total, nil
}

// StartRun registers a replay of source and returns its ULID.
func (s *Store) StartRun(ctx context.Context, source string) (string, error) {
	id := s.newRunID()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO replay_runs (id, source, started_at) VALUES (?, ?, ?)`,
		id, source, timestamp(),
	)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run with the number of replayed turns.
func (s *Store) FinishRun(ctx context.Context, id string, turns int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE replay_runs SET turns = ?, finished_at = ? WHERE id = ?`,
		turns, timestamp(), id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Runs returns every replay run, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, turns, started_at, finished_at FROM replay_runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			started  string
			finished sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Turns, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished.Valid {
			t, _ := time.Parse(time.RFC3339Nano, finished.String)
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *Store) queryWords(ctx context.Context, query string, args ...any) ([]domain.WordKnowledge, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
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

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(row scanner) (*domain.WordKnowledge, error) {
	var (
		w                    domain.WordKnowledge
		id, userID, status   string
		translation, romaji  sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&id, &userID, &w.LanguageID, &w.Word, &translation, &romaji,
		&status, &w.TimesSeen, &w.TimesUsed, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if w.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	if w.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user_id: %w", err)
	}
	if translation.Valid {
		w.Translation = &translation.String
	}
	if romaji.Valid {
		w.Romaji = &romaji.String
	}
	w.Status = domain.WordStatus(status)
	w.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	w.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &w, nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
