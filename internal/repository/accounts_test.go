package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Gab661-coder/Gabinvest/internal/domain"
)

// memStore is an in-memory Store used to observe exactly what the registry
// persists.
type memStore struct {
	data   map[string][]byte
	setErr error
	sets   int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Init(ctx context.Context) error { return nil }

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

const usersKey = "investnaira_users"

func TestCreate_FreshEmail(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	user, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)

	require.Equal(t, "Ada", user.Name)
	require.Equal(t, "ada@x.com", user.Email)
	require.Equal(t, float64(1000), user.Balance)
	require.Zero(t, user.TotalInvested)
	require.Zero(t, user.TotalReturns)
	require.NotNil(t, user.Investments)
	require.Empty(t, user.Investments)
	require.NotZero(t, user.ID)
	require.False(t, user.JoinDate.IsZero())

	// the full list was mirrored to the store
	var persisted []domain.User
	require.NoError(t, json.Unmarshal(store.data[usersKey], &persisted))
	require.Len(t, persisted, 1)
	require.Equal(t, user.Email, persisted[0].Email)
	require.Equal(t, "secret", persisted[0].Password)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	_, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)
	setsBefore := store.sets

	_, err = registry.Create(ctx, "Eve", "ada@x.com", "0801", "other")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	require.Len(t, registry.Users(), 1)
	require.Equal(t, setsBefore, store.sets)
}

func TestCreate_PersistFailureRollsBack(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	store.setErr = errors.New("disk full")
	_, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.Error(t, err)
	require.Empty(t, registry.Users())
}

func TestFindByCredentials(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	created, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)

	found, ok := registry.FindByCredentials("ada@x.com", "secret")
	require.True(t, ok)
	require.Equal(t, created.ID, found.ID)

	_, ok = registry.FindByCredentials("ada@x.com", "wrong")
	require.False(t, ok)

	_, ok = registry.FindByCredentials("nobody@x.com", "secret")
	require.False(t, ok)
}

func TestExists(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	require.False(t, registry.Exists("ada@x.com"))

	_, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)

	require.True(t, registry.Exists("ada@x.com"))
}

func TestSave_ReplacesById(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	user, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)

	user.TotalInvested = 5000
	require.NoError(t, registry.Save(ctx, user))

	saved, ok := registry.FindByCredentials("ada@x.com", "secret")
	require.True(t, ok)
	require.Equal(t, float64(5000), saved.TotalInvested)
}

func TestSave_UnknownIDReported(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)

	err := registry.Save(context.Background(), domain.User{ID: 42})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoad_AbsentRecordYieldsEmpty(t *testing.T) {
	registry := NewAccountRegistry(newMemStore(), usersKey)

	require.NoError(t, registry.Load(context.Background()))
	require.Empty(t, registry.Users())
}

func TestLoad_RoundTrip(t *testing.T) {
	store := newMemStore()
	registry := NewAccountRegistry(store, usersKey)
	ctx := context.Background()

	first, err := registry.Create(ctx, "Ada", "ada@x.com", "0800", "secret")
	require.NoError(t, err)
	second, err := registry.Create(ctx, "Eve", "eve@x.com", "0801", "hunter2")
	require.NoError(t, err)

	reloaded := NewAccountRegistry(store, usersKey)
	require.NoError(t, reloaded.Load(ctx))

	users := reloaded.Users()
	require.Len(t, users, 2)
	require.Equal(t, first, users[0])
	require.Equal(t, second, users[1])
}

func TestLoad_CorruptRecord(t *testing.T) {
	store := newMemStore()
	store.data[usersKey] = []byte(`{not json`)
	registry := NewAccountRegistry(store, usersKey)

	err := registry.Load(context.Background())
	require.ErrorIs(t, err, ErrCorruptRecord)
	require.Empty(t, registry.Users())
}
