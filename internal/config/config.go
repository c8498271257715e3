// Package config loads the application configuration: where the lexicon and
// configuration tree live, how output is written and how the run is
// observed.
package config

import (
	"time"

	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/retry"
)

// CurrentVersion is the configuration file format version.
const CurrentVersion = "1.0"

// Config represents the application configuration.
type Config struct {
	Version string `yaml:"version"`
	// Configuration is the path of the configuration tree document.
	Configuration string           `yaml:"configuration"`
	Lexicon       LexiconConfig    `yaml:"lexicon"`
	Publication   string           `yaml:"publication,omitempty"`
	Output        OutputConfig     `yaml:"output"`
	Sort          SortConfig       `yaml:"sort,omitempty"`
	Numbering     NumberingConfig  `yaml:"numbering,omitempty"`
	Render        RenderConfig     `yaml:"render,omitempty"`
	Media         MediaConfig      `yaml:"media,omitempty"`
	Monitoring    MonitoringConfig `yaml:"monitoring,omitempty"`
}

// LexiconConfig locates the lexical data: a YAML document or a SQLite
// archive produced by the import command.
type LexiconConfig struct {
	Path    string `yaml:"path,omitempty"`
	Archive string `yaml:"archive,omitempty"`
	// MediaRoot overrides the media directory recorded in the lexicon.
	MediaRoot string `yaml:"media_root,omitempty"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Mode      render.OutputMode `yaml:"mode,omitempty"`
	Directory string            `yaml:"directory,omitempty"`
	// Document is the file name of the rendered dictionary inside Directory.
	Document string `yaml:"document,omitempty"`
	// Stylesheet is the file name of the generated CSS; "inline" embeds it.
	Stylesheet string `yaml:"stylesheet,omitempty"`
	Title      string `yaml:"title,omitempty"`
	Direction  string `yaml:"direction,omitempty"`
	PageSize   int    `yaml:"page_size,omitempty"`
	Template   bool   `yaml:"template,omitempty"`
	// Clean removes Directory before writing.
	Clean bool `yaml:"clean,omitempty"`
}

// SortConfig selects the sort key and collation of the listing.
type SortConfig struct {
	Field         string `yaml:"field,omitempty"`
	WritingSystem string `yaml:"writing_system,omitempty"`
	// Collation is a BCP 47 locale; defaults to the writing system's own.
	Collation string `yaml:"collation,omitempty"`
}

// NumberingConfig tunes when a lone sense is numbered because of its
// subsenses.
type NumberingConfig struct {
	RequireSubsenseData *bool `yaml:"require_subsense_data,omitempty"`
	SearchDepth         int   `yaml:"search_depth,omitempty"`
}

// RenderConfig represents batch render configuration.
type RenderConfig struct {
	Workers          int   `yaml:"workers,omitempty"`
	LetterHeadings   *bool `yaml:"letter_headings,omitempty"`
	ShowMinorEntries bool  `yaml:"show_minor_entries,omitempty"`
}

// MediaConfig configures media conversion for web output.
type MediaConfig struct {
	// Converter is the encoder binary used to convert audio; empty disables
	// conversion.
	Converter string `yaml:"converter,omitempty"`
	// Retries re-run a failed encode this many times.
	Retries      int               `yaml:"retries,omitempty"`
	RetryBackoff retry.BackoffMode `yaml:"retry_backoff,omitempty"`
	RetryDelay   time.Duration     `yaml:"retry_delay,omitempty"`
}

// MonitoringConfig represents logging and metrics configuration.
type MonitoringConfig struct {
	Logging MonitoringLogging `yaml:"logging,omitempty"`
	Metrics MonitoringMetrics `yaml:"metrics,omitempty"`
}

// MonitoringLogging represents logging configuration.
type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MonitoringMetrics represents metrics configuration.
type MonitoringMetrics struct {
	// Textfile is written after each run for the node exporter.
	Textfile string `yaml:"textfile,omitempty"`
	// Listen serves /metrics while watching, e.g. ":9464".
	Listen string `yaml:"listen,omitempty"`
}

// LetterHeadingsEnabled reports whether letter headings are emitted.
func (c *Config) LetterHeadingsEnabled() bool {
	return c.Render.LetterHeadings == nil || *c.Render.LetterHeadings
}
