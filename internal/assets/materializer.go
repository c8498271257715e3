// Package assets copies (and when asked, converts) media referenced by
// entries into the export tree, deduplicating by content.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
)

// Record describes a materialised asset.
type Record struct {
	Source      string
	Fingerprint string
	// Path is relative to the export root ("pictures/a.png"), or the absolute
	// source path when nothing is copied.
	Path string
	ID   string
}

// Stats counts what a session did.
type Stats struct {
	Copied    int
	Reused    int
	Converted int
	Failed    int
}

type tableKey struct {
	fingerprint string
	folder      string
}

// Materializer places assets for one render session. It is safe for
// concurrent use.
type Materializer struct {
	exportPath string
	converter  Converter

	mu    sync.Mutex
	table map[tableKey]Record
	stats Stats
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithConverter converts the formats c handles before placing them.
func WithConverter(c Converter) Option {
	return func(m *Materializer) { m.converter = c }
}

// New returns a materializer copying into exportPath. An empty exportPath
// disables copying: assets resolve to their absolute source path.
func New(exportPath string, opts ...Option) *Materializer {
	m := &Materializer{exportPath: exportPath, table: make(map[tableKey]Record)}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Copies reports whether assets are written to an export tree.
func (m *Materializer) Copies() bool { return m.exportPath != "" }

// Stats returns a snapshot of the session counters.
func (m *Materializer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Resolve materialises src into folder. Identical content in the same folder
// maps to one file however many sources point at it; a different file
// already holding the natural name pushes the copy to name_1.ext, name_2.ext
// and so on. An unreadable source is an asset error and nothing is written.
func (m *Materializer) Resolve(ctx context.Context, src, folder string) (Record, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return Record{}, m.fail(errors.WrapError(err, errors.CategoryAsset, "invalid asset path").
			WithSeverity(errors.SeverityWarning).
			WithContext("asset", src).
			Build())
	}
	fp, err := fingerprint(abs)
	if err != nil {
		return Record{}, m.fail(errors.WrapError(err, errors.CategoryAsset, "unreadable asset").
			WithSeverity(errors.SeverityWarning).
			WithContext("asset", src).
			Build())
	}
	if !m.Copies() {
		return Record{Source: abs, Fingerprint: fp, Path: abs, ID: ID(abs)}, nil
	}

	if m.converter != nil {
		if ext, ok := m.converter.TargetExt(abs); ok {
			return m.resolveConverted(ctx, abs, fp, folder, ext)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.table[tableKey{fp, folder}]; ok {
		m.stats.Reused++
		return rec, nil
	}
	rec, err := m.place(abs, abs, fp, folder, filepath.Base(abs))
	if err != nil {
		m.stats.Failed++
		return Record{}, err
	}
	m.table[tableKey{fp, folder}] = rec
	return rec, nil
}

// resolveConverted converts src to ext and places the result, deduplicated
// by the converted content. The source fingerprint is remembered too, so the
// same source is converted once per session.
func (m *Materializer) resolveConverted(ctx context.Context, src, srcFP, folder, ext string) (Record, error) {
	srcKey := tableKey{"src:" + srcFP, folder}
	m.mu.Lock()
	if rec, ok := m.table[srcKey]; ok {
		m.stats.Reused++
		m.mu.Unlock()
		return rec, nil
	}
	m.mu.Unlock()

	tmpDir, err := os.MkdirTemp("", "lexrender-convert-*")
	if err != nil {
		return Record{}, m.fail(errors.WrapError(err, errors.CategoryFileSystem, "failed to create conversion directory").Build())
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ext
	converted := filepath.Join(tmpDir, name)
	if err := m.converter.Convert(ctx, src, converted); err != nil {
		return Record{}, m.fail(errors.WrapError(err, errors.CategoryAsset, "asset conversion failed").
			WithSeverity(errors.SeverityWarning).
			WithContext("asset", src).
			Build())
	}
	fp, err := fingerprint(converted)
	if err != nil {
		return Record{}, m.fail(errors.WrapError(err, errors.CategoryAsset, "unreadable converted asset").
			WithSeverity(errors.SeverityWarning).
			WithContext("asset", src).
			Build())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Converted++
	if rec, ok := m.table[tableKey{fp, folder}]; ok {
		m.stats.Reused++
		m.table[srcKey] = rec
		return rec, nil
	}
	rec, err := m.place(src, converted, fp, folder, name)
	if err != nil {
		m.stats.Failed++
		return Record{}, err
	}
	m.table[tableKey{fp, folder}] = rec
	m.table[srcKey] = rec
	return rec, nil
}

// place writes content (whose fingerprint is fp) under folder, reusing an
// identical file of the chosen name. Callers hold m.mu.
func (m *Materializer) place(src, content, fp, folder, name string) (Record, error) {
	dir := filepath.Join(m.exportPath, folder)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Record{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to create asset folder").
			WithContext("folder", dir).
			Build()
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		dst := filepath.Join(dir, candidate)
		existing, err := fingerprint(dst)
		switch {
		case err == nil && existing == fp:
			m.stats.Reused++
			slog.Debug("Reusing identical asset", logfields.Asset(src), logfields.Path(dst))
			return m.record(src, fp, folder, candidate), nil
		case err == nil:
			continue
		case !os.IsNotExist(err):
			return Record{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to inspect asset destination").
				WithContext("path", dst).
				Build()
		}
		if err := copyFile(content, dst); err != nil {
			return Record{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to copy asset").
				WithContext("asset", src).
				WithContext("path", dst).
				Build()
		}
		m.stats.Copied++
		slog.Debug("Copied asset", logfields.Asset(src), logfields.Path(dst))
		return m.record(src, fp, folder, candidate), nil
	}
}

func (m *Materializer) record(src, fp, folder, name string) Record {
	rel := filepath.ToSlash(filepath.Join(folder, name))
	return Record{Source: src, Fingerprint: fp, Path: rel, ID: ID(rel)}
}

func (m *Materializer) fail(err *errors.ClassifiedError) error {
	m.mu.Lock()
	m.stats.Failed++
	m.mu.Unlock()
	return err
}

// ID derives an element id from a file name: "g" followed by the name with
// every character outside [A-Za-z0-9_-] replaced by '_'.
func ID(path string) string {
	base := filepath.Base(path)
	var b strings.Builder
	b.Grow(len(base) + 1)
	b.WriteByte('g')
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func fingerprint(path string) (string, error) {
	// #nosec G304 -- asset paths come from the lexicon being rendered.
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile writes src to dst through a temporary file in dst's directory.
func copyFile(src, dst string) error {
	// #nosec G304 -- see fingerprint.
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".asset-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
