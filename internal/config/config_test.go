package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.Log, cfg.Log)
	assert.Equal(t, want.Parse, cfg.Parse)
	assert.Empty(t, cfg.File)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHAPTERIZE_LOG_LEVEL", "debug")
	t.Setenv("CHAPTERIZE_PARSE_APPLY_LEXICONS", "true")
	t.Setenv("CHAPTERIZE_PARSE_CONCURRENCY", "3")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Parse.ApplyLexicons)
	assert.Equal(t, 3, cfg.Parse.Concurrency)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapterize.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: info
  format: json
parse:
  output: text
  concurrency: 2
`), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, OutputText, cfg.Parse.Output)
	assert.Equal(t, 2, cfg.Parse.Concurrency)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CHAPTERIZE_PARSE_CONCURRENCY", "3")

	flags := pflag.NewFlagSet("parse", pflag.ContinueOnError)
	flags.Int("concurrency", 0, "")
	flags.String("output", "", "")
	flags.Bool("apply-lexicons", false, "")
	require.NoError(t, flags.Parse([]string{"--concurrency=5", "--apply-lexicons"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Parse.Concurrency)
	assert.True(t, cfg.Parse.ApplyLexicons)
	// Unset flags do not hide lower layers.
	assert.Equal(t, OutputJSON, cfg.Parse.Output)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("unknown output format", func(t *testing.T) {
		t.Setenv("CHAPTERIZE_PARSE_OUTPUT", "xml")
		_, err := Load("", nil)
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("negative concurrency", func(t *testing.T) {
		t.Setenv("CHAPTERIZE_PARSE_CONCURRENCY", "-1")
		_, err := Load("", nil)
		assert.ErrorContains(t, err, "concurrency")
	})
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apply_lexicons: false")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Parse, cfg.Parse)
	assert.Equal(t, DefaultConfig().Log, cfg.Log)
}
