// Package fields binds configuration field tags to data through a registry
// of typed accessors, one table per object class, with a name-keyed fallback
// to user-defined fields.
package fields

import (
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// Kind discriminates Value.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindMulti
	KindInt
	KindObject
	KindCollection
	KindMedia
	KindCustom
	// KindRelations carries the source object of a cross-reference field; the
	// groups are computed by the cross-reference resolver.
	KindRelations
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindMulti:
		return "multistring"
	case KindInt:
		return "integer"
	case KindObject:
		return "object"
	case KindCollection:
		return "collection"
	case KindMedia:
		return "media"
	case KindCustom:
		return "custom"
	case KindRelations:
		return "relations"
	default:
		return "unknown"
	}
}

// Media folders under the export path.
const (
	FolderPictures    = "pictures"
	FolderAudioVisual = "AudioVisual"
)

// Value is the data bound to a node.
type Value struct {
	Kind   Kind
	Text   string
	Multi  lexicon.MultiString
	Int    int
	Object lexicon.Object
	Items  []lexicon.Object
	Custom lexicon.CustomValue
	// Folder is the asset folder of a media value.
	Folder string
	// Reference marks data reached by following a link rather than ownership.
	// Visibility of referenced objects is decided by referenceability, and
	// already-checked owners are not checked again.
	Reference bool
}

// Empty is the value of absent data.
var Empty = Value{}

func StringValue(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{Kind: KindString, Text: s}
}

func MultiValue(m lexicon.MultiString) Value {
	if m.IsEmpty() {
		return Empty
	}
	return Value{Kind: KindMulti, Multi: m}
}

func IntValue(n int) Value {
	if n == 0 {
		return Empty
	}
	return Value{Kind: KindInt, Int: n}
}

// ObjectValue wraps an owned object; nil yields Empty.
func ObjectValue(o lexicon.Object) Value {
	if isNil(o) {
		return Empty
	}
	return Value{Kind: KindObject, Object: o}
}

// RefValue wraps a referenced object.
func RefValue(o lexicon.Object) Value {
	v := ObjectValue(o)
	if v.Kind != KindEmpty {
		v.Reference = true
	}
	return v
}

// CollectionValue wraps owned members.
func CollectionValue[T lexicon.Object](items []T) Value {
	if len(items) == 0 {
		return Empty
	}
	out := make([]lexicon.Object, 0, len(items))
	for _, it := range items {
		if !isNil(it) {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return Empty
	}
	return Value{Kind: KindCollection, Items: out}
}

// RefCollectionValue wraps referenced members.
func RefCollectionValue[T lexicon.Object](items []T) Value {
	v := CollectionValue(items)
	if v.Kind != KindEmpty {
		v.Reference = true
	}
	return v
}

func MediaValue(path, folder string, owner lexicon.Object) Value {
	if path == "" {
		return Empty
	}
	return Value{Kind: KindMedia, Text: path, Folder: folder, Object: owner}
}

func CustomValue(c lexicon.CustomValue) Value {
	if c.IsEmpty() {
		return Empty
	}
	return Value{Kind: KindCustom, Custom: c}
}

// IsEmpty reports whether the value carries no data.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Objects returns the value as a member list: the items of a collection or
// the single object.
func (v Value) Objects() []lexicon.Object {
	switch v.Kind {
	case KindCollection:
		return v.Items
	case KindObject:
		return []lexicon.Object{v.Object}
	default:
		return nil
	}
}

func isNil(o lexicon.Object) bool {
	if o == nil {
		return true
	}
	switch p := o.(type) {
	case *lexicon.Entry:
		return p == nil
	case *lexicon.Sense:
		return p == nil
	case *lexicon.GramInfo:
		return p == nil
	case *lexicon.Example:
		return p == nil
	case *lexicon.Translation:
		return p == nil
	case *lexicon.Pronunciation:
		return p == nil
	case *lexicon.MediaFile:
		return p == nil
	case *lexicon.Picture:
		return p == nil
	case *lexicon.EntryRef:
		return p == nil
	case *lexicon.EntryType:
		return p == nil
	case *lexicon.SemanticDomain:
		return p == nil
	}
	return false
}
