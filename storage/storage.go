// Package storage persists the most recent good payload of each
// upstream document. A fresh process can then serve the last known
// snapshot before its first successful fetch, and the feed client can
// answer from the snapshot when the upstream is briefly unreachable.
package storage

import (
	"errors"
	"time"
)

// Snapshot kinds used by the feed client.
const (
	SnapshotRidePath = "ridepath"
	SnapshotAlerts   = "alerts"
)

var ErrNotFound = errors.New("snapshot not found")

type Storage interface {
	// Stores a payload for the kind, replacing any previous
	// snapshot of that kind.
	PutSnapshot(kind string, fetchedAt time.Time, payload []byte) error

	// Retrieves the stored payload and its fetch time.
	// Returns ErrNotFound if nothing has been stored for the kind.
	GetSnapshot(kind string) ([]byte, time.Time, error)
}
