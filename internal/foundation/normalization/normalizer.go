// Package normalization maps loosely written configuration strings onto typed enums.
package normalization

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// Normalizer provides type-safe string-to-enum normalization.
// Keys are compared case-insensitively, and '-', '_' and spaces are equivalent.
type Normalizer[T comparable] struct {
	name         string
	validValues  map[string]T
	defaultValue T
	validKeys    []string
}

// NewNormalizer creates a normalizer named after the setting it parses.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := Key(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum value, or returns the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[Key(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// Parse converts raw to the enum value. Empty input yields the default;
// unknown input yields a validation error listing the accepted keys.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := Key(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if value, ok := n.validValues[key]; ok {
		return value, nil
	}
	var zero T
	return zero, errors.ValidationError("invalid "+n.name).
		WithContext("value", raw).
		WithContext("valid", strings.Join(n.validKeys, "|")).
		Build()
}

// ValidKeys returns all valid normalized keys, sorted.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

// Key is the canonical comparison form of a configuration string.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', ' ':
			return '-'
		}
		return r
	}, s)
}
