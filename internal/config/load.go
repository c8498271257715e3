package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
)

// Load reads a configuration file. Env files next to it are loaded first,
// ${VAR} references are expanded, then the result is normalised, defaulted
// and validated. Relative paths are resolved against the file's directory.
func Load(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	loaded, err := loadEnvFiles(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load env file").
			WithContext("dir", dir).
			Build()
	}
	for _, f := range loaded {
		slog.Debug("Loaded environment file", logfields.Path(f))
	}

	// #nosec G304 -- configuration path is operator supplied.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration file").
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolvePaths(dir)
	return cfg, nil
}

// Parse decodes configuration YAML after expanding environment variables and
// runs normalisation, defaults and validation.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode configuration").Build()
	}

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "normalize").Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalised", slog.String("detail", w))
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to apply defaults").Build()
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{
		&c.Configuration,
		&c.Lexicon.Path,
		&c.Lexicon.Archive,
		&c.Lexicon.MediaRoot,
		&c.Output.Directory,
		&c.Monitoring.Metrics.Textfile,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	example := Config{
		Version:       CurrentVersion,
		Configuration: "lexeme-based.yaml",
		Lexicon:       LexiconConfig{Path: "lexicon.yaml"},
		Output: OutputConfig{
			Mode:       "static",
			Directory:  DefaultOutputDirectory,
			Document:   DefaultDocument,
			Stylesheet: DefaultStylesheet,
			Title:      "${DICTIONARY_TITLE}",
			PageSize:   100,
		},
		Sort:   SortConfig{Field: "headword"},
		Render: RenderConfig{Workers: 4},
		Monitoring: MonitoringConfig{
			Logging: MonitoringLogging{Level: LogLevelInfo, Format: LogFormatText},
		},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode example configuration").Build()
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
