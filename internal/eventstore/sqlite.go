package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the history database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, ErrDatabaseOpenFailed.Message()).
			WithContext("path", dbPath).
			Build()
	}
	// A :memory: database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStorage, ErrInitializeSchemaFailed.Message()).
			WithContext("path", dbPath).
			Build()
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		website TEXT NOT NULL,
		format TEXT NOT NULL,
		sections TEXT NOT NULL,
		fingerprint TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_generations_timestamp ON generations(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds a record to the history.
func (s *SQLiteStore) Append(ctx context.Context, rec GenerationRecord) error {
	if !rec.valid() {
		return ErrInvalidRecord
	}

	sections, err := json.Marshal(rec.Sections)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStorage, ErrAppendFailed.Message()).
			WithContext("id", rec.ID).
			Build()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO generations (id, timestamp, website, format, sections, fingerprint) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Timestamp.UnixMilli(), rec.Website, rec.Format, string(sections), rec.Fingerprint,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStorage, ErrAppendFailed.Message()).
			WithContext("id", rec.ID).
			Build()
	}
	return nil
}

// Recent returns up to limit records, newest first. The limit is clamped with ClampLimit.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, timestamp, website, format, sections, fingerprint FROM generations ORDER BY timestamp DESC, seq DESC LIMIT ?",
		ClampLimit(limit),
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, ErrQueryFailed.Message()).Build()
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// PruneBefore deletes records strictly older than cutoff.
func (s *SQLiteStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM generations WHERE timestamp < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryStorage, ErrPruneFailed.Message()).
			WithContext("cutoff", cutoff.UTC().Format(time.RFC3339)).
			Build()
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryStorage, ErrPruneFailed.Message()).Build()
	}
	return n, nil
}

func scanRecords(rows *sql.Rows) ([]GenerationRecord, error) {
	records := make([]GenerationRecord, 0)
	for rows.Next() {
		var (
			rec      GenerationRecord
			millis   int64
			sections string
		)
		if err := rows.Scan(&rec.ID, &millis, &rec.Website, &rec.Format, &sections, &rec.Fingerprint); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, ErrQueryFailed.Message()).Build()
		}
		rec.Timestamp = time.UnixMilli(millis).UTC()
		if err := json.Unmarshal([]byte(sections), &rec.Sections); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, ErrQueryFailed.Message()).
				WithContext("id", rec.ID).
				Build()
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, ErrQueryFailed.Message()).Build()
	}
	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
