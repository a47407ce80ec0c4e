package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// MemoryStore is an in-memory Store
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]Snapshot)}
}

// Save stores s, replacing any snapshot with the same ID
func (m *MemoryStore) Save(ctx context.Context, s Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSnapshot(s); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s.Payload = append([]byte(nil), s.Payload...)
	m.snapshots[s.ID] = s
	return nil
}

// Get returns the snapshot with id
func (m *MemoryStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", id, domain.ErrNotFound)
	}
	return &s, nil
}

// ListByProfile returns a profile's snapshots, oldest first
func (m *MemoryStore) ListByProfile(ctx context.Context, profileID string) ([]Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	list := []Snapshot{}
	for _, s := range m.snapshots {
		if s.ProfileID == profileID {
			list = append(list, s)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
