package config

import (
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// ValidateConfig checks a normalised configuration with defaults applied.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator checks one domain at a time.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	for _, check := range []func() error{
		cv.validateVersion,
		cv.validateSources,
		cv.validateOutput,
		cv.validateRender,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validateVersion() error {
	if cv.config.Version != CurrentVersion {
		return errors.ValidationError("unsupported configuration version").
			WithContext("version", cv.config.Version).
			WithContext("expected", CurrentVersion).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateSources() error {
	if cv.config.Configuration == "" {
		return errors.ValidationError("configuration tree path is required").
			WithContext("field", "configuration").
			Build()
	}
	lex := cv.config.Lexicon
	switch {
	case lex.Path == "" && lex.Archive == "":
		return errors.ValidationError("either lexicon.path or lexicon.archive must be set").Build()
	case lex.Path != "" && lex.Archive != "":
		return errors.ValidationError("lexicon.path and lexicon.archive are mutually exclusive").Build()
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	o := cv.config.Output
	if o.Directory == "" {
		return errors.ValidationError("output.directory is required").Build()
	}
	if o.Document == o.Stylesheet {
		return errors.ValidationError("output.document and output.stylesheet must differ").
			WithContext("file", o.Document).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateRender() error {
	if cv.config.Render.Workers < 1 {
		return errors.ValidationError("render.workers must be at least 1").
			WithContext("workers", cv.config.Render.Workers).
			Build()
	}
	return nil
}
