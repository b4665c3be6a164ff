package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	// godotenv never overrides a variable that is already set, even if empty
	for _, k := range []string{EnvToken, EnvGuild, EnvStatus} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	return dir
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 15*time.Minute, cfg.ButtonTimeout())
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingToken)
}

func TestLoadMergedPrecedence(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Status = "from-file"
	cfg.GuildID = "111"
	cfg.MaxRange = 5
	require.NoError(t, SaveYAML(cfg, path))

	t.Setenv(EnvGuild, "222")

	got, used, err := LoadMerged(Options{Status: "from-flag", Debug: true})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "from-flag", got.Status)
	assert.Equal(t, "222", got.GuildID)
	assert.Equal(t, 5, got.MaxRange)
	assert.True(t, got.Debug)
}

func TestLoadMergedEnvFile(t *testing.T) {
	isolate(t)

	envFile := filepath.Join(t.TempDir(), "bot.env")
	require.NoError(t, os.WriteFile(envFile, []byte("TOKEN=abc123\nSTATUS=comics\n"), 0600))

	got, _, err := LoadMerged(Options{IgnoreConfig: true, EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "abc123", got.Token)
	assert.Equal(t, "comics", got.Status)
	assert.NoError(t, got.RequireToken())
}

func TestLoadMergedMissingEnvFile(t *testing.T) {
	isolate(t)

	_, _, err := LoadMerged(Options{EnvFile: filepath.Join(t.TempDir(), "nope.env")})
	assert.Error(t, err)
}

func TestLoadMergedNormalizesZeroValues(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("base_url: \"\"\nmax_range: 0\nrange_workers: -3\n"), 0600))

	got, _, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, "https://xkcd.com", got.BaseURL)
	assert.Equal(t, 10, got.MaxRange)
	assert.Equal(t, 4, got.RangeWorkers)
}

func TestProfiles(t *testing.T) {
	isolate(t)

	_, err := ActiveConfigPath()
	assert.ErrorIs(t, err, ErrNoConfig)

	defPath, err := InitDefaultConfig()
	require.NoError(t, err)

	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = CreateConfig("prod")
	require.NoError(t, err)
	_, err = CreateConfig("prod")
	assert.Error(t, err)

	require.NoError(t, SwitchConfig("prod"))
	active, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "prod", active)

	require.NoError(t, RenameConfig("prod", "live"))
	active, _ = CurrentLabel()
	assert.Equal(t, "live", active)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.Equal(t, defPath, list[0].Path)
	assert.Equal(t, "live", list[1].Label)
	assert.True(t, list[1].Active)

	require.NoError(t, RemoveConfig("live"))
	active, _ = CurrentLabel()
	assert.Equal(t, DefaultLabel, active)

	assert.Error(t, RemoveConfig(DefaultLabel))
	assert.Error(t, SwitchConfig("missing"))
}
