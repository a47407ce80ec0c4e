package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/maplemetrics/maplemetrics/internal/domain"
)

// ProfileStore keeps user profiles in memory keyed by ID
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

// NewProfileStore creates an empty profile store
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domain.UserProfile)}
}

// Put stores p and returns its ID, assigning one when p has none
func (ps *ProfileStore) Put(ctx context.Context, p domain.UserProfile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.profiles[p.ID] = p
	return p.ID, nil
}

// Get returns the profile with id
func (ps *ProfileStore) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ps.mu.RLock()
	defer ps.mu.RUnlock()
	p, ok := ps.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

// Delete removes the profile with id
func (ps *ProfileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, ok := ps.profiles[id]; !ok {
		return fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	}
	delete(ps.profiles, id)
	return nil
}
