package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a Store backed by a SQLite database file
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger
}

// NewSQLiteStore opens or creates the database at path and ensures the schema exists
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store requires a database path")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, dbPath: path, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug("snapshot store opened", zap.String("path", path))
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		created_at TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_profile ON snapshots(profile_id, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores snap, replacing any snapshot with the same ID
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	if err := validateSnapshot(snap); err != nil {
		return err
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (id, profile_id, kind, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.ProfileID, snap.Kind, snap.CreatedAt.UTC().Format(timeLayout), string(snap.Payload))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.ID, err)
	}

	s.logger.Debug("snapshot saved",
		zap.String("id", snap.ID),
		zap.String("profile_id", snap.ProfileID),
		zap.String("kind", snap.Kind))
	return nil
}

// Get returns the snapshot with id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, profile_id, kind, created_at, payload FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	return snap, nil
}

// ListByProfile returns a profile's snapshots, oldest first
func (s *SQLiteStore) ListByProfile(ctx context.Context, profileID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_id, kind, created_at, payload FROM snapshots
		WHERE profile_id = ? ORDER BY created_at, id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	list := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}
		list = append(list, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return list, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var createdAt, payload string
	if err := row.Scan(&snap.ID, &snap.ProfileID, &snap.Kind, &createdAt, &payload); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	snap.CreatedAt = t
	snap.Payload = []byte(payload)
	return &snap, nil
}
