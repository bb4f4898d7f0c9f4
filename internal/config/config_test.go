package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gridwatch/outage-service/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "outage-service", cfg.App.Name)
	require.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	require.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	require.Equal(t, "outage.events", cfg.Notify.AMQPExchange)
	require.Equal(t, 30*time.Second, cfg.Notify.StatsTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("REPORT_STATS_TTL_SECONDS", "120")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	require.Equal(t, 5*time.Second, cfg.App.RequestTimeout())
	require.Equal(t, 2*time.Minute, cfg.Notify.StatsTTL())
	require.False(t, cfg.Postgres.RunMigrations)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "sixty")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
}
