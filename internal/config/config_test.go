package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "dashboard_config.json"))

	assert.Equal(t, "Prof. Cosmic", cfg.UserName)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, "token.json", cfg.TokenFile)
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user_name":"Ada","timezone":"America/Chicago"}`), 0o644))

	cfg := Load(path)
	assert.Equal(t, "Ada", cfg.UserName)
	assert.Equal(t, "America/Chicago", cfg.Timezone)
	assert.Equal(t, "primary", cfg.CalendarID, "unset keys keep their defaults")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_config.json")

	cfg := Default()
	cfg.UserName = "Ada"
	cfg.JournalPath = "/tmp/journal"
	require.NoError(t, Save(path, cfg))

	assert.Equal(t, cfg, Load(path))
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DASHBOARD_USER_NAME", "Grace")
	t.Setenv("PRIMARY_TIMEZONE", "UTC")

	cfg := Default().FromEnv()
	assert.Equal(t, "Grace", cfg.UserName)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "primary", cfg.CalendarID)
}
