package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var dbSeq int

func setupStore(t *testing.T) *StoreRepository {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:store%d?mode=memory&cache=shared", dbSeq)
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := &StoreRepository{db: db}
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestStore_GetAbsentKey(t *testing.T) {
	store := setupStore(t)

	value, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users", []byte(`[{"id":1}]`)))

	value, err := store.Get(ctx, "users")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":1}]`), value)
}

func TestStore_SetOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("first")))
	require.NoError(t, store.Set(ctx, "k", []byte("second")))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("second"), value)
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, value)

	// deleting an absent key is a no-op
	require.NoError(t, store.Delete(ctx, "k"))
}
