package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMaxName, c.MaxName())
	assert.Equal(t, DefaultMaxPath, c.MaxPath())
	assert.Equal(t, slog.LevelWarn, c.LogLevel())
	assert.False(t, c.IsSet("limits.max_name"))
}

func TestSetGet(t *testing.T) {
	var c Config

	require.NoError(t, c.Set("author.name", "alice"))
	require.NoError(t, c.Set("limits.max_name", "64"))
	require.NoError(t, c.Set("limits.max_path", "512"))
	require.NoError(t, c.Set("log.level", "DEBUG"))

	v, err := c.Get("author.name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
	assert.Equal(t, 64, c.MaxName())
	assert.Equal(t, 512, c.MaxPath())
	assert.Equal(t, slog.LevelDebug, c.LogLevel())

	level, err := c.Get("log.level")
	require.NoError(t, err)
	assert.Equal(t, "debug", level)

	assert.True(t, c.IsSet("limits.max_path"))
	assert.Len(t, c.All(), len(ValidKeys()))
}

func TestSetRejects(t *testing.T) {
	var c Config
	assert.ErrorIs(t, c.Set("limits.max_name", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_path", "abc"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("log.level", "loud"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("sync.files", "true"), ErrUnknownKey)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")

	// Missing file yields defaults.
	cfg, err := loadFile(p, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxName, cfg.MaxName())

	require.NoError(t, os.WriteFile(p, []byte("author:\n  name: bob\nlimits:\n  max_name: 32\nlog:\n  level: info\n"), 0644))
	cfg, err = loadFile(p, ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.Author.Name)
	assert.Equal(t, 32, cfg.MaxName())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, ScopeLocal, cfg.Scope())

	require.NoError(t, os.WriteFile(p, []byte("limits:\n  max_path: 0\n"), 0644))
	_, err = loadFile(p, ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, os.WriteFile(p, []byte("author: [unclosed"), 0644))
	_, err = loadFile(p, ScopeLocal)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")

	c := &Config{path: p}
	require.NoError(t, c.Set("author.email", "a@example.com"))
	require.NoError(t, c.Save())

	loaded, err := loadFile(p, ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", loaded.Author.Email)
}

func TestUnsetAndEntries(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("limits.max_name", "10"))
	require.NoError(t, c.Set("author.name", "bob"))

	entries := c.Entries()
	require.Len(t, entries, len(ValidKeys()))
	for i, k := range ValidKeys() {
		assert.Equal(t, k, entries[i].Key)
	}
	assert.Equal(t, Entry{Key: "limits.max_name", Value: "10", Set: true}, entries[2])
	assert.Equal(t, Entry{Key: "log.level", Value: "warn", Set: false}, entries[4])

	require.NoError(t, c.Unset("limits.max_name"))
	assert.Equal(t, DefaultMaxName, c.MaxName())
	assert.False(t, c.IsSet("limits.max_name"))
	assert.ErrorIs(t, c.Unset("nope"), ErrUnknownKey)
}

func TestValidateMessages(t *testing.T) {
	var c Config
	err := c.Set("limits.max_name", "0")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "limits.max_name must be between 1 and 4096, got 0")

	err = c.Set("limits.max_path", "70000")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "limits.max_path must be between 1 and 65536")

	err = c.Set("log.level", "loud")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "log.level must be one of debug, info, warn, error")

	assert.False(t, c.IsSet("limits.max_name"), "rejected value is not kept")
}

func TestScope(t *testing.T) {
	s, err := ParseScope("local")
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, s)
	assert.Equal(t, "local", s.String())
	assert.Equal(t, "global", ScopeGlobal.String())

	_, err = ParseScope("team")
	assert.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c := &Config{path: filepath.Join(dir, "config.yaml")}
	require.NoError(t, c.Set("author.name", "ann"))
	require.NoError(t, c.Save())
	require.NoError(t, c.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.yaml", entries[0].Name())
}

func TestLoadNormalisesLevel(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log:\n  level: DEBUG\n"), 0644))
	cfg, err := loadFile(p, ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}
