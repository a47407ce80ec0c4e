// Package storage persists calculation snapshots and user profiles.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"go.uber.org/zap"
)

// Supported storage drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Snapshot is a saved calculation result belonging to a profile
type Snapshot struct {
	ID        string          `json:"id"`
	ProfileID string          `json:"profileId"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	Payload   json.RawMessage `json:"payload"`
}

// Store saves and retrieves snapshots
type Store interface {
	Save(ctx context.Context, s Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	ListByProfile(ctx context.Context, profileID string) ([]Snapshot, error)
	Close() error
}

// NewSnapshot marshals payload into a new snapshot with a fresh ID
func NewSnapshot(profileID, kind string, payload any) (Snapshot, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to encode %s snapshot: %w", kind, err)
	}
	return Snapshot{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Payload:   data,
	}, nil
}

func validateSnapshot(s Snapshot) error {
	if s.ID == "" {
		return domain.NewValidationError("id", "is required")
	}
	if s.ProfileID == "" {
		return domain.NewValidationError("profile_id", "is required")
	}
	if s.Kind == "" {
		return domain.NewValidationError("kind", "is required")
	}
	return nil
}

// Open returns the store for driver. The sqlite driver requires dsn.
func Open(driver, dsn string, logger *zap.Logger) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(dsn, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
