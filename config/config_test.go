package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		EnvDataDir, EnvStoreDir, EnvStoreBackend, EnvLogLevel,
		EnvOpenAIAPIKey, EnvModelName, EnvEmbeddingModel,
	} {
		t.Setenv(key, "")
	}

	s := Load()
	assert.Equal(t, DefaultDataDir, s.DataDir)
	assert.Equal(t, DefaultStoreBackend, s.StoreBackend)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, DefaultModelName, s.ModelName)
	assert.Equal(t, DefaultEmbeddingModel, s.EmbeddingModel)
	assert.False(t, s.HasOpenAI())
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv(EnvDataDir, "/srv/corpus")
	t.Setenv(EnvStoreBackend, "sqlite")
	t.Setenv(EnvOpenAIAPIKey, "sk-test")

	s := Load()
	assert.Equal(t, "/srv/corpus", s.DataDir)
	assert.Equal(t, "sqlite", s.StoreBackend)
	assert.True(t, s.HasOpenAI())
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides variables that exist, so these must be truly
	// unset, not just empty. t.Setenv registers the restore.
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvModelName, "")
	os.Unsetenv(EnvLogLevel)
	os.Unsetenv(EnvModelName)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile,
		[]byte(EnvLogLevel+"=debug\n"+EnvModelName+"=gpt-4o\n"), 0o644))

	s := Load(envFile)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "gpt-4o", s.ModelName)

	t.Run("missing file is ignored", func(t *testing.T) {
		s := Load(filepath.Join(dir, "absent.env"))
		assert.Equal(t, DefaultStoreBackend, s.StoreBackend)
	})
}
