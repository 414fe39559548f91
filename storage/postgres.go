package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type PSQLStorage struct {
	db *sql.DB
}

// Creates a new Postgres Storage using the provided connection string.
//
// If clearDB is true, the database will be cleared on startup. You
// probably only want this for testing.
func NewPSQLStorage(connStr string, clearDB bool) (*PSQLStorage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if clearDB {
		_, err = db.Exec(`DROP TABLE IF EXISTS snapshot;`)
		if err != nil {
			return nil, fmt.Errorf("clearing db: %w", err)
		}
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
    kind TEXT NOT NULL,
    fetched_at TIMESTAMPTZ NOT NULL,
    payload BYTEA NOT NULL,
    PRIMARY KEY (kind)
);`)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	return &PSQLStorage{db: db}, nil
}

func (s *PSQLStorage) PutSnapshot(kind string, fetchedAt time.Time, payload []byte) error {
	_, err := s.db.Exec(`
INSERT INTO snapshot (kind, fetched_at, payload)
VALUES ($1, $2, $3)
ON CONFLICT (kind) DO UPDATE SET
    fetched_at = EXCLUDED.fetched_at,
    payload = EXCLUDED.payload`,
		kind, fetchedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

func (s *PSQLStorage) GetSnapshot(kind string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time

	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM snapshot WHERE kind = $1",
		kind,
	).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading snapshot: %w", err)
	}

	return payload, fetchedAt, nil
}

func (s *PSQLStorage) Close() error {
	return s.db.Close()
}
