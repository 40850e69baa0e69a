package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	expected := &Config{
		Env:         "development",
		APIBaseURL:  "http://localhost:5000/api/v1",
		HTTPTimeout: 15 * time.Second,
		TokenDBPath: "cityreport.db",
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CITYREPORT_API_URL", "https://api.example.org/v2")
	t.Setenv("CITYREPORT_HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/v2", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "cityreport.db", cfg.TokenDBPath)
}

func TestLoad_ConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://from-file:5000\nenv: production\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("CITYREPORT_ENV", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://from-file:5000", cfg.APIBaseURL)
	// env always wins over the file
	assert.Equal(t, "staging", cfg.Env)
}

func TestLoad_MissingFileFails(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
}
