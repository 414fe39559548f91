package storage

import (
	"sync"
	"time"
)

// In-memory Storage. Snapshots don't survive the process, which is
// fine for tests and for callers that don't care about cold starts.
type MemoryStorage struct {
	mutex     sync.Mutex
	snapshots map[string]memorySnapshot
}

type memorySnapshot struct {
	fetchedAt time.Time
	payload   []byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		snapshots: map[string]memorySnapshot{},
	}
}

func (s *MemoryStorage) PutSnapshot(kind string, fetchedAt time.Time, payload []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.snapshots[kind] = memorySnapshot{
		fetchedAt: fetchedAt,
		payload:   buf,
	}

	return nil
}

func (s *MemoryStorage) GetSnapshot(kind string) ([]byte, time.Time, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	snap, found := s.snapshots[kind]
	if !found {
		return nil, time.Time{}, ErrNotFound
	}

	buf := make([]byte, len(snap.payload))
	copy(buf, snap.payload)
	return buf, snap.fetchedAt, nil
}
