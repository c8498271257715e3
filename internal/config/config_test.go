package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/letterhead"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/retry"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "lexrender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
version: "1.0"
configuration: trees/lexeme.yaml
lexicon:
  path: data/sena.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "trees/lexeme.yaml"), cfg.Configuration)
	assert.Equal(t, filepath.Join(dir, "data/sena.yaml"), cfg.Lexicon.Path)
	assert.Equal(t, filepath.Join(dir, DefaultOutputDirectory), cfg.Output.Directory)
	assert.Equal(t, render.ModePreview, cfg.Output.Mode)
	assert.Equal(t, DefaultDocument, cfg.Output.Document)
	assert.Equal(t, DefaultStylesheet, cfg.Output.Stylesheet)
	assert.Positive(t, cfg.Render.Workers)
	assert.True(t, cfg.LetterHeadingsEnabled())
	assert.Equal(t, LogLevelInfo, cfg.Monitoring.Logging.Level)
	assert.Equal(t, 1, cfg.Numbering.SearchDepth)
	require.NotNil(t, cfg.Numbering.RequireSubsenseData)
	assert.True(t, *cfg.Numbering.RequireSubsenseData)
}

func TestLoadExpandsEnvironmentFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEXRENDER_TEST_TITLE=Sena Dictionary\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LEXRENDER_TEST_TITLE") })

	path := writeConfig(t, dir, `
version: "1.0"
configuration: tree.yaml
lexicon: {archive: sena.db}
output:
  title: ${LEXRENDER_TEST_TITLE}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Sena Dictionary", cfg.Output.Title)
}

func TestEnvFileDoesNotOverrideProcessEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LEXRENDER_TEST_MODE=web\n"), 0o600))
	t.Setenv("LEXRENDER_TEST_MODE", "static")

	path := writeConfig(t, dir, `
version: "1.0"
configuration: tree.yaml
lexicon: {path: lex.yaml}
output: {mode: "${LEXRENDER_TEST_MODE}"}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, render.ModeStatic, cfg.Output.Mode)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := &Config{
		Output:     OutputConfig{Mode: "Webonary", Direction: "sideways", PageSize: -5},
		Sort:       SortConfig{Field: "Citation_Form"},
		Render:     RenderConfig{Workers: -1},
		Monitoring: MonitoringConfig{Logging: MonitoringLogging{Level: "WARNING", Format: "xml"}},
		Media:      MediaConfig{Retries: -2, RetryBackoff: "sometimes"},
	}
	res, err := NormalizeConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, render.ModeWeb, cfg.Output.Mode)
	assert.Equal(t, render.DirLTR, cfg.Output.Direction)
	assert.Equal(t, 0, cfg.Output.PageSize)
	assert.Equal(t, string(letterhead.SortCitationForm), cfg.Sort.Field)
	assert.Equal(t, 0, cfg.Render.Workers)
	assert.Equal(t, LogLevelWarn, cfg.Monitoring.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Monitoring.Logging.Format)
	assert.Equal(t, retry.BackoffLinear, cfg.Media.RetryBackoff)
	assert.Zero(t, cfg.Media.Retries)
	assert.NotEmpty(t, res.Warnings)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{Version: CurrentVersion, Configuration: "t.yaml", Lexicon: LexiconConfig{Path: "l.yaml"}}
		require.NoError(t, ApplyDefaults(cfg))
		return cfg
	}
	require.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"version", func(c *Config) { c.Version = "2.0" }},
		{"no tree", func(c *Config) { c.Configuration = "" }},
		{"no lexicon", func(c *Config) { c.Lexicon = LexiconConfig{} }},
		{"two lexicons", func(c *Config) { c.Lexicon.Archive = "x.db" }},
		{"same output file", func(c *Config) { c.Output.Stylesheet = c.Output.Document }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("version: \"1.0\"\nforges: []\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestSettings(t *testing.T) {
	wss := []lexicon.WritingSystem{{Code: "seh", Vernacular: true, Collation: "pt"}, {Code: "en"}}
	off := false
	cfg := &Config{
		Output:    OutputConfig{Mode: render.ModeWeb, Directory: "/tmp/out", Direction: render.DirRTL, Template: true},
		Sort:      SortConfig{Field: string(letterhead.SortLexemeForm)},
		Numbering: NumberingConfig{RequireSubsenseData: &off, SearchDepth: 3},
		Media:     MediaConfig{Converter: "ffmpeg", Retries: 2, RetryBackoff: retry.BackoffFixed},
	}
	s := cfg.Settings(wss)
	assert.Equal(t, render.ModeWeb, s.Mode)
	assert.Equal(t, "/tmp/out", s.ExportPath)
	assert.Equal(t, render.DirRTL, s.Direction)
	assert.True(t, s.Template)
	assert.Equal(t, letterhead.SortPolicy{Field: letterhead.SortLexemeForm, WritingSystem: "seh"}, s.Sort)
	assert.False(t, s.Numbering.RequireSubsenseData)
	assert.Equal(t, 3, s.Numbering.SearchDepth)
	assert.Equal(t, "pt", cfg.CollationLocale(s))
	assert.Len(t, cfg.MaterializerOptions(), 1)

	cfg.Output.Mode = render.ModePreview
	assert.Empty(t, cfg.ExportPath())
	assert.Empty(t, cfg.MaterializerOptions())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexrender.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	t.Setenv("DICTIONARY_TITLE", "Example")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Example", cfg.Output.Title)
	assert.Equal(t, 100, cfg.Output.PageSize)
}

func TestLoadMediaRetry(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: "1.0"
configuration: tree.yaml
lexicon: {path: lex.yaml}
media:
  converter: ffmpeg
  retries: 2
  retry_backoff: Exponential
  retry_delay: 250ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Media.Retries)
	assert.Equal(t, retry.BackoffExponential, cfg.Media.RetryBackoff)
	assert.Equal(t, 250*time.Millisecond, cfg.Media.RetryDelay)
}
