package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/digicafe/internal/config"
)

func TestStoreKeyKeepsFileSettings(t *testing.T) {
	t.Setenv("DIGICAFE_MODEL", "env-model")
	t.Setenv("DIGICAFE_LOG_LEVEL", "DEBUG")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiz_questions: 3\n"), 0644))

	require.NoError(t, storeKey(path, "secret"))

	stored, err := config.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", stored.APIKey)
	assert.Equal(t, 3, stored.QuizQuestions)
	assert.Equal(t, config.DefaultModel, stored.Model)
	assert.Equal(t, "INFO", stored.LogLevel)

	require.NoError(t, storeKey(path, ""))
	stored, err = config.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, stored.APIKey)
}

func TestStoreKeyRefusesBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	broken := []byte("model: [broken\n")
	require.NoError(t, os.WriteFile(path, broken, 0644))

	assert.Error(t, storeKey(path, "secret"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, broken, data)
}
