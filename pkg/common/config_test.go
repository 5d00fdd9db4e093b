package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("visionProvider: gemini\nsearchMaxResults: 3\nproviderTimeout: 1500\nverbose: true\n"), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "gemini", config.GetString("visionProvider"))
	assert.Equal(t, "openai", config.GetStringOrDefault("textProvider", "openai"))
	assert.Equal(t, 3, config.GetIntOrDefault("searchMaxResults", 5))
	assert.Equal(t, 1500*time.Millisecond, config.GetDurationOrDefault("providerTimeout", 0))
	assert.True(t, config.GetBoolOrDefault("verbose", false))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigWrongTypesFallBackToDefaults(t *testing.T) {
	config := NewConfig(map[string]any{
		"name":    42,
		"count":   "five",
		"enabled": "yes",
		"timeout": -1,
	})
	assert.Equal(t, "", config.GetString("name"))
	assert.Equal(t, 5, config.GetIntOrDefault("count", 5))
	assert.False(t, config.GetBoolOrDefault("enabled", false))
	assert.Equal(t, time.Second, config.GetDurationOrDefault("timeout", time.Second))
	assert.Equal(t, 7, NewConfig(nil).GetIntOrDefault("anything", 7))
}
