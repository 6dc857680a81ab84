package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOG_MAX_SIZE_MB", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.ListenAddr)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Equal(t, 100, cfg.LogMaxSizeMB)
	require.False(t, cfg.TelegramEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_MAX_AGE_DAYS", "7")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	require.Equal(t, 7, cfg.LogMaxAgeDays)
	require.Equal(t, int64(-100123), cfg.TelegramChatID)
	require.True(t, cfg.TelegramEnabled())
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("LOG_MAX_SIZE_MB", "lots")

	_, err := Load()
	require.Error(t, err)
}
