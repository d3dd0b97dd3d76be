package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/innerlog/sift/pkg/sift/internalerr"
	"github.com/innerlog/sift/pkg/sift/mood"
	"github.com/innerlog/sift/pkg/sift/sentiment"
	"github.com/innerlog/sift/pkg/sift/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite journal database with WAL mode enabled, creating the
// schema if needed.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entry (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	mood TEXT,
	sentiment_score INTEGER,
	sentiment_label TEXT,
	keywords TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entry_embedding (
	entry_id TEXT PRIMARY KEY,
	embedding TEXT NOT NULL,
	embedding_model TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	FOREIGN KEY(entry_id) REFERENCES entry(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) UpsertEntry(ctx context.Context, e store.Entry) error {
	keywords, err := json.Marshal(e.Keywords)
	if err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO entry (id, content, mood, sentiment_score, sentiment_label, keywords, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	content = excluded.content,
	mood = excluded.mood,
	sentiment_score = excluded.sentiment_score,
	sentiment_label = excluded.sentiment_label,
	keywords = excluded.keywords`,
		e.ID, e.Content, nullableString(string(e.Mood)),
		nullableScore(e), nullableString(string(e.SentimentLabel)),
		string(keywords), e.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *sqliteStore) GetEntry(ctx context.Context, id string) (store.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, content, mood, sentiment_score, sentiment_label, keywords, created_at
FROM entry WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return store.Entry{}, fmt.Errorf("entry %s: %w", id, internalerr.ErrNotFound)
	}
	return entry, err
}

func (s *sqliteStore) ListEntries(ctx context.Context) ([]store.Entry, error) {
	return s.queryEntries(ctx, `
SELECT id, content, mood, sentiment_score, sentiment_label, keywords, created_at
FROM entry ORDER BY created_at`)
}

func (s *sqliteStore) EntriesMissingSentiment(ctx context.Context) ([]store.Entry, error) {
	return s.queryEntries(ctx, `
SELECT id, content, mood, sentiment_score, sentiment_label, keywords, created_at
FROM entry
WHERE sentiment_score IS NULL OR sentiment_label IS NULL OR sentiment_label = ''
ORDER BY created_at`)
}

func (s *sqliteStore) UpdateSentiment(ctx context.Context, id string, score sentiment.BatchScore, label sentiment.Label) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entry SET sentiment_score = ?, sentiment_label = ? WHERE id = ?`,
		int(score), string(label), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *sqliteStore) UpdateMood(ctx context.Context, id string, m mood.Mood) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entry SET mood = ? WHERE id = ?`, string(m), id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

func (s *sqliteStore) UpsertEmbedding(ctx context.Context, e store.Embedding) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO entry_embedding (entry_id, embedding, embedding_model, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(entry_id) DO UPDATE SET
	embedding = excluded.embedding,
	embedding_model = excluded.embedding_model,
	updated_at = excluded.updated_at`,
		e.EntryID, e.Vector, e.Model, e.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *sqliteStore) ListEmbeddings(ctx context.Context) ([]store.Embedding, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT entry_id, embedding, embedding_model, updated_at FROM entry_embedding`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var embeddings []store.Embedding
	for rows.Next() {
		var e store.Embedding
		var updatedAt string
		if err := rows.Scan(&e.EntryID, &e.Vector, &e.Model, &updatedAt); err != nil {
			return nil, err
		}
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		embeddings = append(embeddings, e)
	}
	return embeddings, rows.Err()
}

func (s *sqliteStore) queryEntries(ctx context.Context, query string) ([]store.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (store.Entry, error) {
	var e store.Entry
	var moodVal, label, keywords sql.NullString
	var score sql.NullInt64
	var createdAt string

	if err := row.Scan(&e.ID, &e.Content, &moodVal, &score, &label, &keywords, &createdAt); err != nil {
		return store.Entry{}, err
	}

	e.Mood = mood.Mood(moodVal.String)
	e.SentimentScore = sentiment.BatchScore(score.Int64)
	e.SentimentLabel = sentiment.Label(label.String)
	if keywords.Valid && keywords.String != "" {
		if err := json.Unmarshal([]byte(keywords.String), &e.Keywords); err != nil {
			return store.Entry{}, fmt.Errorf("entry %s keywords: %w", e.ID, err)
		}
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

func requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("entry %s: %w", id, internalerr.ErrNotFound)
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableScore stores NULL for unscored entries so the backfill query can
// find them.
func nullableScore(e store.Entry) any {
	if e.SentimentLabel == "" {
		return nil
	}
	return int(e.SentimentScore)
}
