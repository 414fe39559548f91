package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteConfig struct {
	OnDisk    bool
	Directory string
}

type SQLiteStorage struct {
	SQLiteConfig

	db *sql.DB
}

func NewSQLiteStorage(cfg ...SQLiteConfig) (*SQLiteStorage, error) {
	onDisk := false
	directory := ""
	if len(cfg) > 0 {
		onDisk = cfg[0].OnDisk
		directory = cfg[0].Directory
	}

	sourceName := ":memory:"
	if onDisk {
		sourceName = directory + "/pathboard.db"
	}

	db, err := sql.Open("sqlite3", sourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot (
    kind TEXT NOT NULL,
    fetched_at TIMESTAMP NOT NULL,
    payload BLOB NOT NULL,
PRIMARY KEY (kind)
);`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot table: %w", err)
	}

	return &SQLiteStorage{
		SQLiteConfig: SQLiteConfig{
			OnDisk:    onDisk,
			Directory: directory,
		},
		db: db,
	}, nil
}

func (s *SQLiteStorage) PutSnapshot(kind string, fetchedAt time.Time, payload []byte) error {
	_, err := s.db.Exec(`
INSERT INTO snapshot (kind, fetched_at, payload)
VALUES (?, ?, ?)
ON CONFLICT (kind) DO UPDATE SET
    fetched_at = excluded.fetched_at,
    payload = excluded.payload`,
		kind, fetchedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) GetSnapshot(kind string) ([]byte, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time

	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM snapshot WHERE kind = ?",
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

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
