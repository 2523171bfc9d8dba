package xwalk

import (
	"maps"
	"slices"
	"strings"
)

// FieldKind is the component type of a model field. It is an open set; the
// engine only treats group, richtext, multiselect and aem-tag specially.
type FieldKind string

// Field kinds known to the engine.
const (
	KindText        FieldKind = "text"
	KindRichText    FieldKind = "richtext"
	KindImage       FieldKind = "image"
	KindReference   FieldKind = "reference"
	KindSelect      FieldKind = "select"
	KindMultiSelect FieldKind = "multiselect"
	KindTag         FieldKind = "aem-tag"
	KindGroup       FieldKind = "group"
)

// MultiValue reports whether values of this kind are encoded as "[a,b,c]".
func (k FieldKind) MultiValue() bool {
	return k == KindMultiSelect || k == KindTag
}

// Field is one named, typed slot of a model.
type Field struct {
	Name      string    `json:"name" yaml:"name"`
	Component FieldKind `json:"component" yaml:"component"`
	Label     string    `json:"label,omitempty" yaml:"label,omitempty"`
	ValueType string    `json:"valueType,omitempty" yaml:"valueType,omitempty"`

	// Fields holds the members of a synthesized group field.
	Fields []Field `json:"-" yaml:"-"`
}

// Suffixes of auxiliary fields, longest first.
var suffixes = []string{"MimeType", "Title", "Type", "Text", "Alt"}

// Suffixes returns the recognized auxiliary field suffixes, longest first.
func Suffixes() []string {
	return slices.Clone(suffixes)
}

// PlanFields groups fields sharing the prefix before their first underscore.
// A group replaces its members at the position where the prefix first
// appears; other fields keep their order.
func PlanFields(fields []Field) []Field {
	planned := make([]Field, 0, len(fields))
	groups := make(map[string]int)
	for _, f := range fields {
		prefix, _, ok := strings.Cut(f.Name, "_")
		if !ok {
			planned = append(planned, f)
			continue
		}
		if i, seen := groups[prefix]; seen {
			planned[i].Fields = append(planned[i].Fields, f)
			continue
		}
		groups[prefix] = len(planned)
		planned = append(planned, Field{
			Name:      prefix,
			Component: KindGroup,
			Fields:    []Field{f},
		})
	}
	return planned
}

// MainFields returns the fields matched positionally against markup: every
// field except those named <other field><suffix>.
func MainFields(fields []Field) []Field {
	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		names[f.Name] = true
	}
	main := make([]Field, 0, len(fields))
	for _, f := range fields {
		if base, ok := suffixBase(f.Name); ok && names[base] {
			continue
		}
		main = append(main, f)
	}
	return main
}

// suffixBase strips the longest recognized suffix from name.
func suffixBase(name string) (string, bool) {
	for _, s := range suffixes {
		if base, ok := strings.CutSuffix(name, s); ok && base != "" {
			return base, true
		}
	}
	return "", false
}

// CollapseValues returns the value of the auxiliary field with the given
// suffix, computed from the element a base field was read from.
type CollapseValues func(suffix string) string

// Collapse consumes the auxiliary fields of the named field. Every pending
// field called name+suffix is removed from the returned pending list and its
// non-empty value is stored under its own key in the returned record. The
// inputs are not modified.
func Collapse(name string, pending []Field, props Properties, values CollapseValues) ([]Field, Properties) {
	out := maps.Clone(props)
	if out == nil {
		out = make(Properties)
	}
	consumed := make(map[string]bool)
	for _, s := range suffixes {
		target := name + s
		if !slices.ContainsFunc(pending, func(f Field) bool { return f.Name == target }) {
			continue
		}
		consumed[target] = true
		if values == nil {
			continue
		}
		if v := values(s); v != "" {
			out[target] = v
		}
	}
	if len(consumed) == 0 {
		return pending, out
	}
	rest := make([]Field, 0, len(pending)-len(consumed))
	for _, f := range pending {
		if !consumed[f.Name] {
			rest = append(rest, f)
		}
	}
	return rest, out
}
