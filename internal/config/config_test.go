package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
club_id: "77"
manager_id: "5"
data_dir: /tmp/seasons
`)

	cfg := Load(path)
	assert.Equal(t, "77", cfg.ClubID)
	assert.Equal(t, "5", cfg.ManagerID)
	assert.Equal(t, "/tmp/seasons", cfg.DataDir)
	assert.Equal(t, "https://api.leverade.com", cfg.APIBaseURL)
	assert.Equal(t, "https://clupik.pro", cfg.ClupikBaseURL)
	assert.Equal(t, "_site", cfg.OutputDir)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
club_id: "77"
manager_id: "5"
api_base_url: https://file.example
`)
	t.Setenv("API_BASE_URL", "https://env.example")
	t.Setenv("CLUB_ID", "99")

	cfg := Load(path)
	assert.Equal(t, "https://env.example", cfg.APIBaseURL)
	assert.Equal(t, "99", cfg.ClubID)
	assert.Equal(t, "5", cfg.ManagerID)
}

func TestLoadWithoutFileUsesEnvironment(t *testing.T) {
	t.Setenv("CLUB_ID", "77")
	t.Setenv("MANAGER_ID", "5")

	cfg := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, "77", cfg.ClubID)
	assert.Equal(t, "5", cfg.ManagerID)
}
