package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
)

// group fills the members of a group field from a sequence of elements.
// Fields and elements are consumed left to right by independent cursors:
// unrecognized elements are skipped, a rich text field absorbs consecutive
// text elements, and any other field takes exactly one non-empty value.
func (e *extraction) group(f xwalk.Field, children *goquery.Selection) {
	pending := f.Fields
	fields := xwalk.MainFields(pending)

	fi, ci := 0, 0
	for fi < len(fields) && ci < children.Length() {
		el := children.Eq(ci)
		class := e.m.classify(el.Get(0))
		if class == nil {
			ci++
			continue
		}
		field := fields[fi]

		if field.Component == xwalk.KindRichText {
			if class.Name == xwalk.HandlerButton || class.Name == xwalk.HandlerImage {
				fi++
				continue
			}
			ci++
			v := e.m.normalizeMarkup(renderNodes(el.Nodes...))
			if v == "" {
				fi++
				continue
			}
			e.props[field.Name] += v
			pending, e.props = xwalk.Collapse(field.Name, pending, e.props, collapseValues(el))
			continue
		}

		ci++
		v := groupValue(field, class, el)
		if v == "" {
			continue
		}
		e.props.Set(field.Name, v)
		pending, e.props = xwalk.Collapse(field.Name, pending, e.props, collapseValues(el))
		fi++
	}
}

// groupValue derives the value of a non rich text group member.
func groupValue(f xwalk.Field, class *xwalk.Classification, el *goquery.Selection) string {
	switch class.Name {
	case xwalk.HandlerButton:
		return xwalk.EscapeEntities(strings.TrimSpace(attrOf(el, "a", "href")))
	case xwalk.HandlerImage:
		return xwalk.EscapeEntities(strings.TrimSpace(attrOf(el, "img", "src")))
	}
	return textValue(f, el)
}
