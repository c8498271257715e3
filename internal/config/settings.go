package config

import (
	"git.home.luguber.info/inful/lexrender/internal/assets"
	"git.home.luguber.info/inful/lexrender/internal/letterhead"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/retry"
)

// ExportPath is where media is copied: the output directory, or nothing in
// preview mode.
func (c *Config) ExportPath() string {
	if c.Output.Mode == render.ModePreview {
		return ""
	}
	return c.Output.Directory
}

// Settings derives the generator settings for a lexicon's writing systems.
func (c *Config) Settings(wss []lexicon.WritingSystem) render.Settings {
	s := render.DefaultSettings(wss)
	s.Mode = c.Output.Mode
	s.ExportPath = c.ExportPath()
	s.Template = c.Output.Template
	if c.Output.Direction != "" {
		s.Direction = c.Output.Direction
	}
	if c.Sort.Field != "" {
		s.Sort.Field = letterhead.SortField(c.Sort.Field)
	}
	if c.Sort.WritingSystem != "" {
		s.Sort.WritingSystem = c.Sort.WritingSystem
	}
	if c.Numbering.SearchDepth > 0 {
		s.Numbering.SearchDepth = c.Numbering.SearchDepth
	}
	if c.Numbering.RequireSubsenseData != nil {
		s.Numbering.RequireSubsenseData = *c.Numbering.RequireSubsenseData
	}
	return s
}

// CollationLocale is the locale of the listing collator: the configured one,
// else the sort writing system's collation tag, else its code.
func (c *Config) CollationLocale(s render.Settings) string {
	if c.Sort.Collation != "" {
		return c.Sort.Collation
	}
	ws := s.SortWritingSystem()
	if ws.Collation != "" {
		return ws.Collation
	}
	return ws.Code
}

// MaterializerOptions configure media conversion. Audio is converted only
// for web output with a converter configured; failed encodes are retried
// per the media retry settings.
func (c *Config) MaterializerOptions() []assets.Option {
	if c.Output.Mode != render.ModeWeb || c.Media.Converter == "" {
		return nil
	}
	conv := assets.NewExecConverter(c.Media.Converter)
	conv.Retry = retry.NewPolicy(c.Media.RetryBackoff, c.Media.RetryDelay, 0, c.Media.Retries)
	return []assets.Option{assets.WithConverter(conv)}
}
