package render

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
)

// Fixed classes of generated elements.
const (
	ClassSenseNumber      = "sensenumber"
	ClassSharedGrammar    = "sharedgrammaticalinfo"
	ClassWritingSystem    = "writingsystemprefix"
	ClassHomographNumber  = "homographnumber"
	classItemSuffix       = "-item"
	duplicateSuffixMarker = "_"
)

// AnchorID is the element id of the object with guid. Links use "#" + AnchorID.
func AnchorID(guid string) string { return "g" + guid }

// ClassName is the class of the element a node renders: the override, or the
// lowercased field tag and sub field. Duplicated nodes get their label suffix
// appended so siblings of the same field stay distinguishable.
func ClassName(n *dictconfig.Node) string {
	return baseClass(n) + duplicateSuffix(n)
}

// ItemClass is the class of one member of a collection node: the singular of
// the base class.
func ItemClass(n *dictconfig.Node) string {
	base := baseClass(n)
	if len(base) > 1 && strings.HasSuffix(base, "s") {
		base = strings.TrimSuffix(base, "s")
	} else {
		base += classItemSuffix
	}
	return base + duplicateSuffix(n)
}

func baseClass(n *dictconfig.Node) string {
	if n.CSSClassNameOverride != "" {
		return n.CSSClassNameOverride
	}
	name := n.FieldDescription + n.SubField
	if name == "" {
		name = n.Label
	}
	return Sanitize(strings.ToLower(name))
}

func duplicateSuffix(n *dictconfig.Node) string {
	if !n.IsDuplicate() {
		return ""
	}
	s := Sanitize(n.LabelSuffix)
	if s == "" {
		return ""
	}
	return duplicateSuffixMarker + s
}

// Sanitize makes s usable as a class name or element id: runs of anything but
// letters, digits and underscores become a single hyphen, trimmed at the ends.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
