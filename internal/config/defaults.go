package config

import (
	"fmt"
	"runtime"

	"git.home.luguber.info/inful/lexrender/internal/render"
)

// Defaults for unset values.
const (
	DefaultOutputDirectory = "out"
	DefaultDocument        = "dictionary.xhtml"
	DefaultStylesheet      = "configured.css"
	DefaultTitle           = "Dictionary"
	// InlineStylesheet embeds the generated CSS in the document.
	InlineStylesheet = "inline"
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// OutputDefaultApplier handles output defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	o := &cfg.Output
	if o.Mode == "" {
		o.Mode = render.ModePreview
	}
	if o.Directory == "" {
		o.Directory = DefaultOutputDirectory
	}
	if o.Document == "" {
		o.Document = DefaultDocument
	}
	if o.Stylesheet == "" {
		o.Stylesheet = DefaultStylesheet
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	return nil
}

// RenderDefaultApplier handles worker pool and numbering defaults.
type RenderDefaultApplier struct{}

func (RenderDefaultApplier) Domain() string { return "render" }

func (RenderDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Render.Workers == 0 {
		cfg.Render.Workers = runtime.NumCPU()
	}
	if cfg.Numbering.SearchDepth == 0 {
		cfg.Numbering.SearchDepth = 1
	}
	if cfg.Numbering.RequireSubsenseData == nil {
		on := true
		cfg.Numbering.RequireSubsenseData = &on
	}
	return nil
}

// MonitoringDefaultApplier handles logging defaults.
type MonitoringDefaultApplier struct{}

func (MonitoringDefaultApplier) Domain() string { return "monitoring" }

func (MonitoringDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Monitoring.Logging.Level == "" {
		cfg.Monitoring.Logging.Level = LogLevelInfo
	}
	if cfg.Monitoring.Logging.Format == "" {
		cfg.Monitoring.Logging.Format = LogFormatText
	}
	return nil
}

// defaultAppliers run in order.
var defaultAppliers = []DefaultApplier{
	OutputDefaultApplier{},
	RenderDefaultApplier{},
	MonitoringDefaultApplier{},
}

// ApplyDefaults fills every unset value.
func ApplyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
