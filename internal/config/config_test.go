package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	require.Equal(t, "data/gabinvest.db", cfg.Database.Path)
	require.Equal(t, "investnaira_users", cfg.Storage.UsersKey)
	require.Equal(t, "investnaira_currentUser", cfg.Storage.SessionKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GABINVEST_SERVER_ADDR", "127.0.0.1:9090")
	t.Setenv("GABINVEST_DATABASE_PATH", "/tmp/test.db")
	t.Setenv("GABINVEST_STORAGE_USERSKEY", "demo_users")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	require.Equal(t, "/tmp/test.db", cfg.Database.Path)
	require.Equal(t, "demo_users", cfg.Storage.UsersKey)
	require.Equal(t, "investnaira_currentUser", cfg.Storage.SessionKey)
}
