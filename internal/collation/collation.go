// Package collation adapts golang.org/x/text/collate to the comparisons the
// renderer needs: full ordering for sorting and primary-strength equality for
// letter grouping.
package collation

import (
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// Collator orders strings for one locale.
type Collator interface {
	Compare(a, b string) int
	// PrimaryEqual reports whether a and b differ at most in case, accents
	// or width.
	PrimaryEqual(a, b string) bool
}

// TextCollator is the x/text backed Collator. collate.Collator keeps
// internal buffers, so access is serialised.
type TextCollator struct {
	tag     language.Tag
	mu      sync.Mutex
	full    *collate.Collator
	primary *collate.Collator
}

var _ Collator = (*TextCollator)(nil)

// New builds a collator for a BCP 47 locale such as "en" or "tr-TR".
func New(locale string) (*TextCollator, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid collation locale").
			WithContext("locale", locale).
			Build()
	}
	return &TextCollator{
		tag:     tag,
		full:    collate.New(tag, collate.Numeric),
		primary: collate.New(tag, collate.Loose),
	}, nil
}

// Tag returns the collator's language.
func (c *TextCollator) Tag() language.Tag { return c.tag }

func (c *TextCollator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.full.CompareString(a, b)
}

func (c *TextCollator) PrimaryEqual(a, b string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.primary.CompareString(a, b) == 0
}

// SortStable orders items by key under c, keeping the relative order of
// items whose keys compare equal.
func SortStable[T any](c Collator, items []T, key func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return c.Compare(key(a), key(b))
	})
}
