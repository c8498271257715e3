package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/lexrender/internal/letterhead"
	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/retry"
)

// NormalizationResult captures adjustments and warnings from normalization.
type NormalizationResult struct{ Warnings []string }

func (r *NormalizationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// NormalizeConfig canonicalises enumerated and bounded fields before
// defaults are applied. Unknown values fall back to the default with a
// warning.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeOutput(&c.Output, res)
	normalizeSort(&c.Sort, res)
	normalizeMonitoring(&c.Monitoring, res)
	normalizeMedia(&c.Media, res)

	if c.Render.Workers < 0 {
		res.warn("render.workers %d coerced to default", c.Render.Workers)
		c.Render.Workers = 0
	}
	if c.Numbering.SearchDepth < 0 {
		res.warn("numbering.search_depth %d coerced to default", c.Numbering.SearchDepth)
		c.Numbering.SearchDepth = 0
	}
	return res, nil
}

func normalizeOutput(o *OutputConfig, res *NormalizationResult) {
	mode, err := render.ParseOutputMode(string(o.Mode))
	if err != nil {
		res.warn("output.mode %q unknown, using %s", o.Mode, render.ModePreview)
		mode = render.ModePreview
	}
	o.Mode = mode

	switch dir := strings.ToLower(strings.TrimSpace(o.Direction)); dir {
	case "", render.DirLTR, render.DirRTL:
		o.Direction = dir
	default:
		res.warn("output.direction %q unknown, using %s", o.Direction, render.DirLTR)
		o.Direction = render.DirLTR
	}
	if o.PageSize < 0 {
		res.warn("output.page_size %d coerced to 0 (single page)", o.PageSize)
		o.PageSize = 0
	}
}

func normalizeSort(s *SortConfig, res *NormalizationResult) {
	field, err := letterhead.ParseSortField(s.Field)
	if err != nil {
		res.warn("sort.field %q unknown, using %s", s.Field, letterhead.SortHeadWord)
		field = letterhead.SortHeadWord
	}
	s.Field = string(field)
}

func normalizeMonitoring(m *MonitoringConfig, res *NormalizationResult) {
	if raw := strings.TrimSpace(string(m.Logging.Level)); raw != "" {
		lvl := NormalizeLogLevel(raw)
		if string(lvl) != strings.ToLower(raw) {
			res.warn("monitoring.logging.level %q normalised to %s", raw, lvl)
		}
		m.Logging.Level = lvl
	}
	if raw := strings.TrimSpace(string(m.Logging.Format)); raw != "" {
		format := NormalizeLogFormat(raw)
		if string(format) != strings.ToLower(raw) {
			res.warn("monitoring.logging.format %q normalised to %s", raw, format)
		}
		m.Logging.Format = format
	}
}

func normalizeMedia(m *MediaConfig, res *NormalizationResult) {
	mode, err := retry.ParseBackoffMode(string(m.RetryBackoff))
	if err != nil {
		res.warn("media.retry_backoff %q unknown, using %s", m.RetryBackoff, retry.BackoffLinear)
		mode = retry.BackoffLinear
	}
	m.RetryBackoff = mode
	if m.Retries < 0 {
		res.warn("media.retries %d coerced to 0", m.Retries)
		m.Retries = 0
	}
}
