package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Len(t, cfg.Advice.Candidates, 5)
	require.Equal(t, "google/gemini-2.0-flash-exp:free", cfg.Advice.Candidates[0])
	require.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
advice:
  candidates: ["a/one", "b/two"]
  maxNoteTokens: 50
llm:
  timeout: 5s
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV_FILE", "")
	t.Setenv("ADVICE_CANDIDATES", "x/first, gemini:gemini-2.5-flash ,")
	t.Setenv("EXPO_PUBLIC_OPENROUTER_API_KEY", "sk-or-test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, []string{"x/first", "gemini:gemini-2.5-flash"}, cfg.Advice.Candidates)
	require.Equal(t, 50, cfg.Advice.MaxNoteTokens)
	require.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "sk-or-test", cfg.LLM.APIKey)
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	envPath := filepath.Join(dir, "app.env")
	require.NoError(t, os.WriteFile(envPath, []byte("OPENROUTER_API_KEY=from-dotenv\n"), 0o600))
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("EXPO_PUBLIC_OPENROUTER_API_KEY", "")
	// godotenv does not override variables that are already set, even when empty.
	require.NoError(t, os.Unsetenv("OPENROUTER_API_KEY"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.LLM.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Advice.Candidates = nil
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Advice.Candidates = []string{"ok", " "}
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Valkey.Enabled = true
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.RateLimit.Burst = 0
	require.Error(t, cfg.Validate())
}

func TestShippedConfigLoads(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV_FILE", "")
	t.Setenv("ADVICE_CANDIDATES", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenTTL)
	require.Equal(t, int64(2<<20), cfg.Avatar.MaxBytes)
	require.False(t, cfg.Avatar.Enabled())
	sweep := time.Duration(len(cfg.Advice.Candidates)) * cfg.LLM.Timeout
	require.GreaterOrEqual(t, cfg.HTTP.WriteTimeout, sweep)
}

func TestValidateWriteTimeoutCoversAdviceSweep(t *testing.T) {
	cfg := defaultConfig()
	cfg.HTTP.WriteTimeout = 30 * time.Second
	require.ErrorContains(t, cfg.Validate(), "advice sweep budget")

	cfg = defaultConfig()
	cfg.HTTP.WriteTimeout = time.Duration(len(cfg.Advice.Candidates)) * cfg.LLM.Timeout
	require.NoError(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.LLM.Timeout = 0
	cfg.HTTP.WriteTimeout = 90 * time.Second
	require.Error(t, cfg.Validate(), "unset llm.timeout falls back to the client default")

	cfg = defaultConfig()
	cfg.HTTP.WriteTimeout = 0
	require.NoError(t, cfg.Validate())
}
