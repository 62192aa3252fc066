package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, ".draftforge/channels.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draftforge.yaml")
	raw := `
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
  timeout: 90s
storage:
  database_path: /tmp/test.db
logging:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 90*time.Second, cfg.LLM.TimeoutDuration())
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DatabasePath)
	assert.True(t, cfg.Logging.Development)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DRAFTFORGE_LLM_PROVIDER", "gemini")
	t.Setenv("DRAFTFORGE_LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("DRAFTFORGE_API_KEY", "override-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "override-key", cfg.LLM.APIKey)
}

func TestProviderNativeKeyFallback(t *testing.T) {
	t.Setenv("DRAFTFORGE_API_KEY", "")
	t.Setenv("DRAFTFORGE_LLM_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "sk-native")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-native", cfg.LLM.APIKey)
}

func TestTimeoutDurationFallback(t *testing.T) {
	assert.Equal(t, 2*time.Minute, LLMConfig{}.TimeoutDuration())
	assert.Equal(t, 2*time.Minute, LLMConfig{Timeout: "garbage"}.TimeoutDuration())
	assert.Equal(t, 30*time.Second, LLMConfig{Timeout: "30s"}.TimeoutDuration())
}
