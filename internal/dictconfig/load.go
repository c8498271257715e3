package dictconfig

import (
	"bytes"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// Parse decodes a configuration document and normalises option enums.
func Parse(data []byte) (*Configuration, error) {
	var cfg Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode configuration tree").
			Fatal().
			Build()
	}
	normalize := func(n *Node) error {
		if n.WritingSystems != nil {
			n.WritingSystems.Type = wsTypeNormalizer.Normalize(string(n.WritingSystems.Type))
		}
		return nil
	}
	for _, roots := range [][]*Node{cfg.Parts, cfg.SharedItems} {
		for _, n := range roots {
			_ = Walk(n, normalize)
		}
	}
	return &cfg, nil
}

// Load reads a configuration document from disk. The result still has to go
// through Resolve before rendering.
func Load(path string) (*Configuration, error) {
	// #nosec G304 -- configuration path is operator supplied.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration tree").
			WithContext("path", path).
			Fatal().
			Build()
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadResolved reads and resolves a configuration document.
func LoadResolved(path string) (*Configuration, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Resolve(cfg)
}
