package render

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/foundation/normalization"
	"git.home.luguber.info/inful/lexrender/internal/letterhead"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/sensenum"
	"git.home.luguber.info/inful/lexrender/internal/util/sets"
)

// OutputMode selects how media is materialised.
type OutputMode string

const (
	// ModePreview embeds absolute source paths.
	ModePreview OutputMode = "preview"
	// ModeStatic copies media next to the output.
	ModeStatic OutputMode = "static"
	// ModeWeb copies media and converts audio for browsers.
	ModeWeb OutputMode = "web"
)

var modeNormalizer = normalization.NewNormalizer("output mode", map[string]OutputMode{
	"preview":  ModePreview,
	"static":   ModeStatic,
	"export":   ModeStatic,
	"web":      ModeWeb,
	"webonary": ModeWeb,
}, ModePreview)

// ParseOutputMode accepts the configuration spellings of an output mode.
func ParseOutputMode(raw string) (OutputMode, error) {
	return modeNormalizer.Parse(raw)
}

// Text directions.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// Option ids expanding to every writing system of a default list.
const (
	AllVernacular = "all-vernacular"
	AllAnalysis   = "all-analysis"
)

// Settings are the generator settings shared by every render call.
type Settings struct {
	WritingSystems    []lexicon.WritingSystem
	DefaultVernacular []string
	DefaultAnalysis   []string
	Mode              OutputMode
	// ExportPath is where media is copied; empty embeds absolute source paths.
	ExportPath string
	// Direction is the text direction of the document body.
	Direction string
	// Template renders placeholder tokens instead of live text and media.
	Template  bool
	Sort      letterhead.SortPolicy
	Numbering sensenum.NumberingPolicy
}

// DefaultSettings derives settings from a writing-system registry: default
// lists from the vernacular flags, sorting by headword in the first
// vernacular and the default numbering policy.
func DefaultSettings(wss []lexicon.WritingSystem) Settings {
	s := Settings{
		WritingSystems: wss,
		Mode:           ModePreview,
		Direction:      DirLTR,
		Numbering:      sensenum.DefaultPolicy,
	}
	for _, ws := range wss {
		if ws.Vernacular {
			s.DefaultVernacular = append(s.DefaultVernacular, ws.Code)
		} else {
			s.DefaultAnalysis = append(s.DefaultAnalysis, ws.Code)
		}
	}
	s.Sort = letterhead.SortPolicy{Field: letterhead.SortHeadWord}
	if len(s.DefaultVernacular) > 0 {
		s.Sort.WritingSystem = s.DefaultVernacular[0]
	}
	return s
}

// WritingSystem looks up a registered writing system.
func (s Settings) WritingSystem(code string) (lexicon.WritingSystem, bool) {
	for _, ws := range s.WritingSystems {
		if ws.Code == code {
			return ws, true
		}
	}
	return lexicon.WritingSystem{}, false
}

// SortWritingSystem is the writing system letter headings are computed in.
func (s Settings) SortWritingSystem() lexicon.WritingSystem {
	if ws, ok := s.WritingSystem(s.Sort.WritingSystem); ok {
		return ws
	}
	return lexicon.WritingSystem{Code: s.Sort.WritingSystem}
}

// EnabledWritingSystems returns the writing-system codes a node shows, in
// order. Without an option list the node's list type decides; the ids
// "vernacular" and "analysis" stand for the first default of that list.
func (s Settings) EnabledWritingSystems(opts *dictconfig.WritingSystemOptions) []string {
	ids := opts.EnabledIDs()
	if opts == nil || len(opts.Options) == 0 {
		var typ dictconfig.WritingSystemType
		if opts != nil {
			typ = opts.Type
		}
		switch typ {
		case dictconfig.WritingSystemsVernacular, dictconfig.WritingSystemsPronunciation:
			ids = []string{AllVernacular}
		case dictconfig.WritingSystemsAnalysis:
			ids = []string{AllAnalysis}
		default:
			ids = []string{AllVernacular, AllAnalysis}
		}
	}
	seen := sets.New[string]()
	out := make([]string, 0, len(ids))
	add := func(codes ...string) {
		for _, c := range codes {
			if c != "" && seen.Insert(c) {
				out = append(out, c)
			}
		}
	}
	for _, id := range ids {
		switch id {
		case dictconfig.DefaultVernacular:
			add(first(s.DefaultVernacular))
		case dictconfig.DefaultAnalysis:
			add(first(s.DefaultAnalysis))
		case AllVernacular:
			add(s.DefaultVernacular...)
		case AllAnalysis:
			add(s.DefaultAnalysis...)
		default:
			add(id)
		}
	}
	return out
}

// RunDirection is the direction of text in ws. Unregistered writing systems
// take the direction of the first strong character.
func (s Settings) RunDirection(code, text string) string {
	if ws, ok := s.WritingSystem(code); ok {
		if ws.RightToLeft {
			return DirRTL
		}
		return DirLTR
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.R, bidi.AL:
			return DirRTL
		case bidi.L:
			return DirLTR
		}
	}
	return s.documentDirection()
}

func (s Settings) documentDirection() string {
	if s.Direction == DirRTL {
		return DirRTL
	}
	return DirLTR
}

func first(codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return codes[0]
}
