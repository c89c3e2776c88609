package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	// Keep a stray .env in the package directory from leaking into assertions.
	chdir(t, t.TempDir())
	for _, key := range []string{
		"YOUTUBE_API_KEY", "CLIENT_SECRET_FILE", "OAUTH_TOKEN_FILE",
		"YOUTUBE_MAX_RESULTS", "REPORT_SAVE", "REPORT_DIR", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMaxResults), cfg.Search.MaxResults)
	assert.True(t, cfg.Report.Save)
	assert.Equal(t, ".", cfg.Report.Dir)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.YouTube.HasAPIKey())
	assert.False(t, cfg.YouTube.HasClientSecret())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("YOUTUBE_API_KEY", " key-123 ")
	t.Setenv("CLIENT_SECRET_FILE", "client_secret.json")
	t.Setenv("YOUTUBE_MAX_RESULTS", "25")
	t.Setenv("REPORT_SAVE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.YouTube.APIKey)
	assert.Equal(t, "client_secret.json", cfg.YouTube.ClientSecretFile)
	assert.Equal(t, int64(25), cfg.Search.MaxResults)
	assert.False(t, cfg.Report.Save)
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("YOUTUBE_API_KEY")
	require.NoError(t, os.WriteFile(".env", []byte("YOUTUBE_API_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("YOUTUBE_API_KEY") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.YouTube.APIKey)
}

func TestLoadRejectsInvalidMaxResults(t *testing.T) {
	for _, value := range []string{"0", "-3", "ten", "51"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("YOUTUBE_MAX_RESULTS", value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "YOUTUBE_MAX_RESULTS")
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
