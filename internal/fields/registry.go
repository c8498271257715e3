package fields

import (
	stderrors "errors"
	"sort"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// ErrNoData reports that a field exists but has nothing to show for this
// object. Callers suppress the node; it is never surfaced.
var ErrNoData = stderrors.New("no data")

// AnyClass registers an accessor for every class.
const AnyClass = "*"

// Accessor reads one field of obj.
type Accessor func(s lexicon.Store, obj lexicon.Object) (Value, error)

// Binding is a registered field.
type Binding struct {
	Accessor Accessor
	// ListFiltered fields yield typed members that must be filtered through
	// the node's list options; a node without them is misconfigured.
	ListFiltered bool
}

// Registry maps (class, field tag) to accessors.
type Registry struct {
	bindings map[string]map[string]Binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]map[string]Binding)}
}

// Register binds tag on class, replacing any previous binding.
func (r *Registry) Register(class, tag string, a Accessor) {
	r.register(class, tag, Binding{Accessor: a})
}

// RegisterListFiltered binds a field whose members are filtered by list options.
func (r *Registry) RegisterListFiltered(class, tag string, a Accessor) {
	r.register(class, tag, Binding{Accessor: a, ListFiltered: true})
}

func (r *Registry) register(class, tag string, b Binding) {
	m, ok := r.bindings[class]
	if !ok {
		m = make(map[string]Binding)
		r.bindings[class] = m
	}
	m[tag] = b
}

// Lookup finds the binding for tag on class.
func (r *Registry) Lookup(class, tag string) (Binding, bool) {
	if b, ok := r.bindings[class][tag]; ok {
		return b, true
	}
	b, ok := r.bindings[AnyClass][tag]
	return b, ok
}

// Tags lists the tags registered for class, sorted.
func (r *Registry) Tags(class string) []string {
	out := make([]string, 0, len(r.bindings[class]))
	for tag := range r.bindings[class] {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Resolve reads tag from obj. Tags with no registered accessor fall back to
// the object's user-defined fields. An unknown tag is a validation error.
func (r *Registry) Resolve(s lexicon.Store, obj lexicon.Object, tag string) (Value, error) {
	if isNil(obj) {
		return Empty, ErrNoData
	}
	if b, ok := r.Lookup(obj.Class(), tag); ok {
		return b.Accessor(s, obj)
	}
	if cf, ok := obj.(lexicon.CustomFielder); ok {
		if v, ok := cf.CustomField(tag); ok {
			return CustomValue(v), nil
		}
	}
	return Empty, errors.ValidationError("unknown field").
		WithSeverity(errors.SeverityWarning).
		WithContext("field", tag).
		WithContext("class", obj.Class()).
		Build()
}

// ResolveCustom reads a user-defined field by name. An object without the
// field has no data.
func (r *Registry) ResolveCustom(obj lexicon.Object, name string) (Value, error) {
	cf, ok := obj.(lexicon.CustomFielder)
	if !ok {
		return Empty, ErrNoData
	}
	v, ok := cf.CustomField(name)
	if !ok {
		return Empty, ErrNoData
	}
	return CustomValue(v), nil
}

// ResolvePath reads tag and, when sub is set, dereferences sub on the object
// tag yields. It also returns the object the final value was read from. A
// dereferenced value is marked as a reference.
func (r *Registry) ResolvePath(s lexicon.Store, obj lexicon.Object, tag, sub string) (Value, lexicon.Object, error) {
	v, err := r.Resolve(s, obj, tag)
	if err != nil || sub == "" || v.IsEmpty() {
		return v, obj, err
	}
	if v.Kind != KindObject {
		return Empty, obj, errors.ValidationError("sub field on non-object value").
			WithSeverity(errors.SeverityWarning).
			WithContext("field", tag).
			WithContext("sub_field", sub).
			WithContext("kind", v.Kind.String()).
			Build()
	}
	sv, err := r.Resolve(s, v.Object, sub)
	if err != nil {
		return Empty, v.Object, err
	}
	sv.Reference = sv.Reference || v.Reference
	return sv, v.Object, nil
}
