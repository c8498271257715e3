package lexicon

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// Parse decodes a YAML lexicon document. Unknown keys are rejected so that
// misspelled field names do not silently drop data.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to decode lexicon document").Build()
	}
	return &doc, nil
}

// LoadFile reads and indexes a YAML lexicon document. A relative media_root is
// resolved against the document's directory.
func LoadFile(path string) (*Lexicon, error) {
	// #nosec G304 -- path is supplied by the operator on the command line.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read lexicon").
			WithContext("path", path).
			Build()
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.MediaRoot == "" {
		doc.MediaRoot = filepath.Dir(path)
	} else if !filepath.IsAbs(doc.MediaRoot) {
		doc.MediaRoot = filepath.Join(filepath.Dir(path), doc.MediaRoot)
	}
	return New(doc)
}
