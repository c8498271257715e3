// Package lexicon holds the lexical object graph the renderer reads from:
// entries, senses, examples, pronunciations, media, variant and complex form
// references and typed relations.
//
// The renderer only ever sees the graph through the read-only Store interface.
// Lexicon is the in-memory implementation, loaded from a YAML document or a
// SQLite archive.
package lexicon

import "slices"

// Class names reported by Object.Class. Field accessors are registered per class.
const (
	ClassEntry          = "Entry"
	ClassSense          = "Sense"
	ClassExample        = "Example"
	ClassTranslation    = "Translation"
	ClassPronunciation  = "Pronunciation"
	ClassMediaFile      = "MediaFile"
	ClassPicture        = "Picture"
	ClassGramInfo       = "GramInfo"
	ClassEntryRef       = "EntryRef"
	ClassEntryType      = "EntryType"
	ClassSemanticDomain = "SemanticDomain"
	ClassRelationType   = "RelationType"
	ClassRelation       = "Relation"
	ClassPublication    = "Publication"
)

// Object is any addressable node of the lexical graph.
type Object interface {
	GUID() string
	Class() string
}

// Publishable objects carry their own per-publication exclusion list.
type Publishable interface {
	Object
	ExcludedFrom(publicationID string) bool
}

// CustomFielder exposes user-defined fields by name.
type CustomFielder interface {
	CustomField(name string) (CustomValue, bool)
}

// Base carries identity and publication exclusions shared by most objects.
type Base struct {
	ID             string   `yaml:"id" json:"id"`
	DoNotPublishIn []string `yaml:"do_not_publish_in,omitempty" json:"do_not_publish_in,omitempty"`
}

// GUID returns the stable identifier.
func (b *Base) GUID() string { return b.ID }

// ExcludedFrom reports whether the object is explicitly hidden from a publication.
func (b *Base) ExcludedFrom(publicationID string) bool {
	return slices.Contains(b.DoNotPublishIn, publicationID)
}

// MultiString maps writing-system codes to text.
type MultiString map[string]string

// Get returns the alternative for ws, or "".
func (m MultiString) Get(ws string) string { return m[ws] }

// IsEmpty reports whether no alternative has text.
func (m MultiString) IsEmpty() bool {
	for _, v := range m {
		if v != "" {
			return false
		}
	}
	return true
}

// Best returns the first non-empty alternative among wss.
func (m MultiString) Best(wss ...string) (ws, text string) {
	for _, ws := range wss {
		if t := m[ws]; t != "" {
			return ws, t
		}
	}
	return "", ""
}

// CustomKind is the value type of a user-defined field.
type CustomKind string

const (
	CustomString      CustomKind = "string"
	CustomMultiString CustomKind = "multistring"
	CustomInteger     CustomKind = "integer"
	CustomList        CustomKind = "list"
	CustomMarkdown    CustomKind = "markdown"
)

// CustomValue is the value of a user-defined field.
type CustomValue struct {
	Kind    CustomKind  `yaml:"kind" json:"kind"`
	String  string      `yaml:"string,omitempty" json:"string,omitempty"`
	Multi   MultiString `yaml:"multi,omitempty" json:"multi,omitempty"`
	Integer int         `yaml:"integer,omitempty" json:"integer,omitempty"`
	Items   []string    `yaml:"items,omitempty" json:"items,omitempty"`
	// WritingSystem is the language of String, Items and Markdown values.
	WritingSystem string `yaml:"ws,omitempty" json:"ws,omitempty"`
}

// IsEmpty reports whether the value carries no data.
func (v CustomValue) IsEmpty() bool {
	switch v.Kind {
	case CustomMultiString:
		return v.Multi.IsEmpty()
	case CustomInteger:
		return v.Integer == 0
	case CustomList:
		return len(v.Items) == 0
	default:
		return v.String == ""
	}
}

// Custom is embedded by objects that accept user-defined fields.
type Custom struct {
	Fields map[string]CustomValue `yaml:"custom,omitempty" json:"custom,omitempty"`
}

// CustomField looks up a user-defined field.
func (c *Custom) CustomField(name string) (CustomValue, bool) {
	v, ok := c.Fields[name]
	return v, ok
}

// Entry is a top-level lexical record.
type Entry struct {
	Base            `yaml:",inline"`
	Custom          `yaml:",inline"`
	LexemeForm      MultiString      `yaml:"lexeme_form,omitempty" json:"lexeme_form,omitempty"`
	CitationForm    MultiString      `yaml:"citation_form,omitempty" json:"citation_form,omitempty"`
	HomographNumber int              `yaml:"homograph,omitempty" json:"homograph,omitempty"`
	MorphType       string           `yaml:"morph_type,omitempty" json:"morph_type,omitempty"`
	Senses          []*Sense         `yaml:"senses,omitempty" json:"senses,omitempty"`
	Pronunciations  []*Pronunciation `yaml:"pronunciations,omitempty" json:"pronunciations,omitempty"`
	EntryRefs       []*EntryRef      `yaml:"entry_refs,omitempty" json:"entry_refs,omitempty"`
	Etymology       MultiString      `yaml:"etymology,omitempty" json:"etymology,omitempty"`
	Note            MultiString      `yaml:"note,omitempty" json:"note,omitempty"`
	Bibliography    MultiString      `yaml:"bibliography,omitempty" json:"bibliography,omitempty"`
}

func (*Entry) Class() string { return ClassEntry }

// HeadWord returns the citation form for ws, falling back to the lexeme form.
func (e *Entry) HeadWord(ws string) string {
	if t := e.CitationForm.Get(ws); t != "" {
		return t
	}
	return e.LexemeForm.Get(ws)
}

// HeadWords merges citation and lexeme forms per writing system.
func (e *Entry) HeadWords() MultiString {
	out := make(MultiString, len(e.LexemeForm)+len(e.CitationForm))
	for ws, t := range e.LexemeForm {
		if t != "" {
			out[ws] = t
		}
	}
	for ws, t := range e.CitationForm {
		if t != "" {
			out[ws] = t
		}
	}
	return out
}

// IsMinor reports whether the entry is a variant or complex form of another entry.
func (e *Entry) IsMinor() bool { return len(e.EntryRefs) > 0 }

// Sense is a meaning unit, possibly nested.
type Sense struct {
	Base            `yaml:",inline"`
	Custom          `yaml:",inline"`
	Gloss           MultiString `yaml:"gloss,omitempty" json:"gloss,omitempty"`
	Definition      MultiString `yaml:"definition,omitempty" json:"definition,omitempty"`
	Grammar         *GramInfo   `yaml:"grammar,omitempty" json:"grammar,omitempty"`
	Examples        []*Example  `yaml:"examples,omitempty" json:"examples,omitempty"`
	Senses          []*Sense    `yaml:"senses,omitempty" json:"senses,omitempty"`
	Pictures        []*Picture  `yaml:"pictures,omitempty" json:"pictures,omitempty"`
	SemanticDomains []string    `yaml:"semantic_domains,omitempty" json:"semantic_domains,omitempty"`
	ScientificName  string      `yaml:"scientific_name,omitempty" json:"scientific_name,omitempty"`
	Note            MultiString `yaml:"note,omitempty" json:"note,omitempty"`
}

func (*Sense) Class() string { return ClassSense }

// GramInfo is the grammatical information of a sense.
type GramInfo struct {
	Base         `yaml:",inline"`
	PartOfSpeech MultiString `yaml:"part_of_speech,omitempty" json:"part_of_speech,omitempty"`
	Abbreviation MultiString `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	Features     string      `yaml:"features,omitempty" json:"features,omitempty"`
}

func (*GramInfo) Class() string { return ClassGramInfo }

// Example is an illustrative sentence.
type Example struct {
	Base         `yaml:",inline"`
	Custom       `yaml:",inline"`
	Text         MultiString    `yaml:"text,omitempty" json:"text,omitempty"`
	Translations []*Translation `yaml:"translations,omitempty" json:"translations,omitempty"`
	Reference    MultiString    `yaml:"reference,omitempty" json:"reference,omitempty"`
}

func (*Example) Class() string { return ClassExample }

// Translation is a free translation of an example.
type Translation struct {
	Base `yaml:",inline"`
	Text MultiString `yaml:"text,omitempty" json:"text,omitempty"`
	Type string      `yaml:"type,omitempty" json:"type,omitempty"`
}

func (*Translation) Class() string { return ClassTranslation }

// Pronunciation is a spoken form with optional recordings.
type Pronunciation struct {
	Base      `yaml:",inline"`
	Form      MultiString  `yaml:"form,omitempty" json:"form,omitempty"`
	CVPattern string       `yaml:"cv_pattern,omitempty" json:"cv_pattern,omitempty"`
	Media     []*MediaFile `yaml:"media,omitempty" json:"media,omitempty"`
}

func (*Pronunciation) Class() string { return ClassPronunciation }

// MediaFile references an audio or video file.
type MediaFile struct {
	Base  `yaml:",inline"`
	File  string      `yaml:"file" json:"file"`
	Label MultiString `yaml:"label,omitempty" json:"label,omitempty"`
}

func (*MediaFile) Class() string { return ClassMediaFile }

// Picture references an image file.
type Picture struct {
	Base    `yaml:",inline"`
	File    string      `yaml:"file" json:"file"`
	Caption MultiString `yaml:"caption,omitempty" json:"caption,omitempty"`
}

func (*Picture) Class() string { return ClassPicture }

// RefKind distinguishes variant references from complex form references.
type RefKind string

const (
	RefVariant     RefKind = "variant"
	RefComplexForm RefKind = "complex"
)

// EntryRef is owned by a minor entry and points at the entries or senses it
// is a variant or complex form of.
type EntryRef struct {
	Base           `yaml:",inline"`
	Kind           RefKind     `yaml:"kind" json:"kind"`
	Components     []string    `yaml:"components" json:"components"`
	Types          []string    `yaml:"types,omitempty" json:"types,omitempty"`
	HideMinorEntry bool        `yaml:"hide_minor_entry,omitempty" json:"hide_minor_entry,omitempty"`
	Summary        MultiString `yaml:"summary,omitempty" json:"summary,omitempty"`
}

func (*EntryRef) Class() string { return ClassEntryRef }

// EntryType is a variant type or complex form type.
type EntryType struct {
	Base                `yaml:",inline"`
	Name                MultiString `yaml:"name,omitempty" json:"name,omitempty"`
	Abbreviation        MultiString `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	ReverseName         MultiString `yaml:"reverse_name,omitempty" json:"reverse_name,omitempty"`
	ReverseAbbreviation MultiString `yaml:"reverse_abbreviation,omitempty" json:"reverse_abbreviation,omitempty"`
}

func (*EntryType) Class() string { return ClassEntryType }

// SemanticDomain is an item of the semantic domain list.
type SemanticDomain struct {
	Base         `yaml:",inline"`
	Name         MultiString `yaml:"name,omitempty" json:"name,omitempty"`
	Abbreviation MultiString `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
}

func (*SemanticDomain) Class() string { return ClassSemanticDomain }

// Mapping is the shape of a relation type.
type Mapping string

const (
	// MappingCollection relates any number of objects symmetrically.
	MappingCollection Mapping = "collection"
	// MappingPair relates exactly two objects symmetrically.
	MappingPair Mapping = "pair"
	// MappingSequence relates objects symmetrically in authored order.
	MappingSequence Mapping = "sequence"
	// MappingAsymmetricPair relates a head (first target) to one other object.
	MappingAsymmetricPair Mapping = "asymmetric_pair"
	// MappingTree relates a whole (first target) to its parts.
	MappingTree Mapping = "tree"
)

// Symmetric reports whether the mapping ignores direction.
func (m Mapping) Symmetric() bool {
	switch m {
	case MappingAsymmetricPair, MappingTree:
		return false
	default:
		return true
	}
}

// RelationType is a typed link kind, owning its relation instances.
type RelationType struct {
	Base                `yaml:",inline"`
	Name                MultiString `yaml:"name,omitempty" json:"name,omitempty"`
	Abbreviation        MultiString `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	ReverseName         MultiString `yaml:"reverse_name,omitempty" json:"reverse_name,omitempty"`
	ReverseAbbreviation MultiString `yaml:"reverse_abbreviation,omitempty" json:"reverse_abbreviation,omitempty"`
	Mapping             Mapping     `yaml:"mapping" json:"mapping"`
	Relations           []*Relation `yaml:"relations,omitempty" json:"relations,omitempty"`
}

func (*RelationType) Class() string { return ClassRelationType }

// Relation is one relation instance; Targets keep their authored order.
type Relation struct {
	Base    `yaml:",inline"`
	Targets []string `yaml:"targets" json:"targets"`
}

func (*Relation) Class() string { return ClassRelation }

// Publication is a named visibility audience.
type Publication struct {
	Base `yaml:",inline"`
	Name MultiString `yaml:"name,omitempty" json:"name,omitempty"`
}

func (*Publication) Class() string { return ClassPublication }

// WritingSystem describes a language/script pairing used by MultiString values.
type WritingSystem struct {
	Code         string `yaml:"code" json:"code"`
	Abbreviation string `yaml:"abbreviation,omitempty" json:"abbreviation,omitempty"`
	RightToLeft  bool   `yaml:"rtl,omitempty" json:"rtl,omitempty"`
	// Vernacular marks the language being described; others are analysis languages.
	Vernacular bool `yaml:"vernacular,omitempty" json:"vernacular,omitempty"`
	// Collation is the BCP 47 tag of the sort order; defaults to Code.
	Collation string `yaml:"collation,omitempty" json:"collation,omitempty"`
	// LetterAliases map a lowercase letter to the representative uppercase
	// letter shown in letter headings (e.g. "i" -> "İ").
	LetterAliases map[string]string `yaml:"letter_aliases,omitempty" json:"letter_aliases,omitempty"`
	// Multigraphs are letter sequences that sort and head as a single letter.
	Multigraphs []string `yaml:"multigraphs,omitempty" json:"multigraphs,omitempty"`
}
