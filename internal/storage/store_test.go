package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// storeFactories returns a constructor per Store implementation
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "snapshots.db"), zap.NewNop())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			ctx := context.Background()

			snap, err := NewSnapshot("profile-1", "mortgage", domain.MortgageSummary{
				Principal:      decimal.NewFromInt(400000),
				MonthlyPayment: decimal.RequireFromString("2456.35"),
				Years:          25,
			})
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, snap))

			got, err := store.Get(ctx, snap.ID)
			require.NoError(t, err)
			assert.Equal(t, snap.ID, got.ID)
			assert.Equal(t, "profile-1", got.ProfileID)
			assert.Equal(t, "mortgage", got.Kind)
			assert.True(t, snap.CreatedAt.Equal(got.CreatedAt))

			var summary domain.MortgageSummary
			require.NoError(t, json.Unmarshal(got.Payload, &summary))
			assert.True(t, summary.MonthlyPayment.Equal(decimal.RequireFromString("2456.35")))
			assert.Equal(t, 25, summary.Years)
		})
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()

			_, err := store.Get(context.Background(), "does-not-exist")
			assert.True(t, errors.Is(err, domain.ErrNotFound))
		})
	}
}

func TestStore_ListByProfile(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			ctx := context.Background()

			start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			snaps := []Snapshot{
				{ID: "c", ProfileID: "p1", Kind: "retirement", CreatedAt: start.Add(2 * time.Second), Payload: json.RawMessage(`{}`)},
				{ID: "a", ProfileID: "p1", Kind: "housing", CreatedAt: start, Payload: json.RawMessage(`{}`)},
				{ID: "b", ProfileID: "p2", Kind: "housing", CreatedAt: start.Add(time.Second), Payload: json.RawMessage(`{}`)},
				{ID: "d", ProfileID: "p1", Kind: "salary", CreatedAt: start.Add(1500 * time.Millisecond), Payload: json.RawMessage(`{}`)},
			}
			for _, s := range snaps {
				require.NoError(t, store.Save(ctx, s))
			}

			list, err := store.ListByProfile(ctx, "p1")
			require.NoError(t, err)
			ids := make([]string, len(list))
			for i, s := range list {
				ids[i] = s.ID
			}
			assert.Equal(t, []string{"a", "d", "c"}, ids)

			empty, err := store.ListByProfile(ctx, "nobody")
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			ctx := context.Background()

			s := Snapshot{ID: "x", ProfileID: "p1", Kind: "housing", CreatedAt: time.Now().UTC(), Payload: json.RawMessage(`{"v":1}`)}
			require.NoError(t, store.Save(ctx, s))
			s.Payload = json.RawMessage(`{"v":2}`)
			require.NoError(t, store.Save(ctx, s))

			got, err := store.Get(ctx, "x")
			require.NoError(t, err)
			assert.JSONEq(t, `{"v":2}`, string(got.Payload))

			list, err := store.ListByProfile(ctx, "p1")
			require.NoError(t, err)
			assert.Len(t, list, 1)
		})
	}
}

func TestStore_SaveValidation(t *testing.T) {
	tests := []struct {
		name  string
		snap  Snapshot
		field string
	}{
		{"missing id", Snapshot{ProfileID: "p", Kind: "k"}, "id"},
		{"missing profile", Snapshot{ID: "i", Kind: "k"}, "profile_id"},
		{"missing kind", Snapshot{ID: "i", ProfileID: "p"}, "kind"},
	}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			defer store.Close()
			for _, tt := range tests {
				err := store.Save(context.Background(), tt.snap)
				ve, ok := domain.IsValidationError(err)
				require.True(t, ok, tt.name)
				assert.Equal(t, tt.field, ve.Field, tt.name)
			}
		})
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, Snapshot{ID: "x", ProfileID: "p", Kind: "k"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshots.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	snap, err := NewSnapshot("p1", "benefits", map[string]string{"province": "ON"})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, snap))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"province":"ON"}`, string(got.Payload))
}

func TestSQLiteStore_InMemory(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	defer store.Close()

	snap, err := NewSnapshot("p1", "utilities", struct{}{})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), snap))

	_, err = store.Get(context.Background(), snap.ID)
	assert.NoError(t, err)
}

func TestOpen(t *testing.T) {
	s, err := Open("", "", nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(DriverSQLite, filepath.Join(t.TempDir(), "db.sqlite"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(DriverSQLite, "", nil)
	assert.Error(t, err)

	_, err = Open("postgres", "dsn", nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestProfileStore(t *testing.T) {
	ps := NewProfileStore()
	ctx := context.Background()

	id, err := ps.Put(ctx, domain.UserProfile{Age: 34, Province: "BC", AnnualIncome: decimal.NewFromInt(85000)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := ps.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "BC", got.Province)

	sameID, err := ps.Put(ctx, domain.UserProfile{ID: id, Age: 35, Province: "BC"})
	require.NoError(t, err)
	assert.Equal(t, id, sameID)
	got, err = ps.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 35, got.Age)

	require.NoError(t, ps.Delete(ctx, id))
	_, err = ps.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, ps.Delete(ctx, id), domain.ErrNotFound)
}
