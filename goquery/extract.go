package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
	"github.com/h2non/filetype"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// classesField is read from the block's class list instead of a row.
const classesField = "classes"

const headings = "h1, h2, h3, h4, h5, h6"

// extraction holds the state of one ExtractProperties call.
type extraction struct {
	m       *Mapper
	mode    xwalk.Mode
	props   xwalk.Properties
	pending []xwalk.Field
}

// ExtractProperties reads the fields of a model from the children of node.
// The i-th positional field of the model is paired with the i-th element
// child; fields beyond the available children stay unset. When model is
// non-empty the record always carries it under "model".
func (m *Mapper) ExtractProperties(node *goquery.Selection, model string, mode xwalk.Mode) xwalk.Properties {
	props := make(xwalk.Properties)
	if model == "" {
		return props
	}

	cm, ok := m.Schema.Model(model)
	if !ok {
		m.logger().Warn("model not found", "model", model, "mode", mode.String())
		props[xwalk.ModelKey] = model
		return props
	}

	e := &extraction{
		m:       m,
		mode:    mode,
		props:   props,
		pending: xwalk.PlanFields(cm.Fields),
	}
	children := node.Children()
	next := 0
	for _, f := range xwalk.MainFields(e.pending) {
		if f.Name == classesField && mode != xwalk.ModeBlockItem {
			e.classes(node, f)
			continue
		}
		if next >= children.Length() {
			continue
		}
		child := children.Eq(next)
		next++

		switch f.Component {
		case xwalk.KindGroup:
			e.group(f, e.cell(child).Children())
		case xwalk.KindRichText:
			e.props.Set(f.Name, e.richText(e.cell(child)))
		default:
			e.value(f, child)
		}
	}

	e.props[xwalk.ModelKey] = model
	return e.props
}

// cell returns the element holding the value of a row: the row itself for
// item rows, otherwise its first nested div, or its last one in key-value mode.
func (e *extraction) cell(row *goquery.Selection) *goquery.Selection {
	if e.mode == xwalk.ModeBlockItem {
		return row
	}
	divs := row.ChildrenFiltered("div")
	switch {
	case divs.Length() == 0:
		return row
	case e.mode == xwalk.ModeKeyValue:
		return divs.Last()
	default:
		return divs.First()
	}
}

// classes stores the block classes following the block name.
func (e *extraction) classes(node *goquery.Selection, f xwalk.Field) {
	list := classList(node)
	if len(list) < 2 {
		return
	}
	v := strings.Join(list[1:], ",")
	if f.Component.MultiValue() {
		v = "[" + v + "]"
	}
	e.props.Set(f.Name, xwalk.EscapeEntities(v))
}

// value reads a scalar field, preferring an image, then a link, then a
// heading, and falling back to the text of the row's cell.
func (e *extraction) value(f xwalk.Field, row *goquery.Selection) {
	if img := row.Find("img").First(); img.Length() > 0 {
		src, _ := img.Attr("src")
		e.set(f.Name, xwalk.EscapeEntities(strings.TrimSpace(src)), img)
		return
	}
	if a := row.Find("a").First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		scope := a.Closest("p")
		if scope.Length() == 0 {
			scope = a
		}
		e.set(f.Name, xwalk.EscapeEntities(strings.TrimSpace(href)), scope)
		return
	}
	if h := row.Find(headings).First(); h.Length() > 0 {
		e.set(f.Name, xwalk.EscapeEntities(strings.TrimSpace(h.Text())), h)
		return
	}
	e.props.Set(f.Name, textValue(f, e.cell(row)))
}

// set stores a value and folds the field's auxiliary fields read from el.
func (e *extraction) set(name, v string, el *goquery.Selection) {
	if v == "" {
		return
	}
	e.props.Set(name, v)
	e.pending, e.props = xwalk.Collapse(name, e.pending, e.props, collapseValues(el))
}

// richText serializes the element content of cell. Bare text is wrapped in
// a paragraph; empty paragraphs yield the empty string.
func (e *extraction) richText(cell *goquery.Selection) string {
	content := cell.Children()
	if content.Length() == 0 {
		if plainText(cell) == "" {
			return ""
		}
		return e.m.normalizeMarkup(renderNodes(paragraph(cell.Text())))
	}
	return e.m.normalizeMarkup(renderNodes(content.Nodes...))
}

// normalizeMarkup sanitizes, canonicalizes and escapes serialized markup.
func (m *Mapper) normalizeMarkup(markup string) string {
	if m.Sanitizer != nil {
		markup = m.Sanitizer.Sanitize(markup)
	}
	markup = literalText(markup)
	switch strings.TrimSpace(markup) {
	case "", "<p></p>", "<p>\u00a0</p>", "<p>&nbsp;</p>", "<p>&#160;</p>":
		return ""
	}
	return xwalk.Escape(markup)
}

// textValue returns the escaped text of el, bracketing multi-value kinds.
func textValue(f xwalk.Field, el *goquery.Selection) string {
	text := plainText(el)
	if text == "" {
		return ""
	}
	if f.Component.MultiValue() {
		var values []string
		for _, v := range strings.Split(text, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		text = "[" + strings.Join(values, ",") + "]"
	}
	return xwalk.EscapeEntities(text)
}

// plainText returns the trimmed text of el; non-breaking spaces alone count
// as empty.
func plainText(el *goquery.Selection) string {
	text := strings.TrimSpace(el.Text())
	if strings.Trim(text, "\u00a0 \t\r\n") == "" {
		return ""
	}
	return text
}

// collapseValues computes the values of auxiliary fields from the element a
// base field was read from.
func collapseValues(el *goquery.Selection) xwalk.CollapseValues {
	return func(suffix string) string {
		var v string
		switch suffix {
		case "Alt":
			v = attrOf(el, "img", "alt")
		case "Title":
			if v = attrOf(el, "a", "title"); v == "" {
				v = attrOf(el, "img", "title")
			}
		case "Text":
			if a := selfOrFirst(el, "a"); a.Length() > 0 {
				v = a.Text()
			} else {
				v = el.Text()
			}
		case "Type":
			v = elementType(el)
		case "MimeType":
			v = mimeType(el)
		}
		return xwalk.EscapeEntities(strings.TrimSpace(v))
	}
}

// elementType returns the tag name of a heading, or the button style of a
// link: primary when wrapped in strong, secondary when wrapped in em.
func elementType(el *goquery.Selection) string {
	if el.Is(headings) {
		return goquery.NodeName(el)
	}
	a := selfOrFirst(el, "a")
	if a.Length() == 0 {
		return ""
	}
	switch goquery.NodeName(a.Parent()) {
	case "strong", "b":
		return "primary"
	case "em", "i":
		return "secondary"
	}
	return ""
}

// mimeType derives the MIME type of the linked or embedded resource from
// its file extension.
func mimeType(el *goquery.Selection) string {
	ref := attrOf(el, "img", "src")
	if ref == "" {
		ref = attrOf(el, "a", "href")
	}
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" || !filetype.IsSupported(ext) {
		return ""
	}
	return filetype.GetType(ext).MIME.Value
}

// selfOrFirst returns el when it matches tag, else its first descendant
// matching tag.
func selfOrFirst(el *goquery.Selection, tag string) *goquery.Selection {
	if el.Is(tag) {
		return el
	}
	return el.Find(tag).First()
}

func attrOf(el *goquery.Selection, tag, attr string) string {
	v, _ := selfOrFirst(el, tag).Attr(attr)
	return v
}

// paragraph wraps text in a detached p element.
func paragraph(text string) *html.Node {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return p
}

func renderNodes(nodes ...*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return ""
		}
	}
	return b.String()
}

// textEntities maps the entities serializers write in text to the form kept
// in stored markup: quotes and '>' literal, non-breaking spaces named.
var textEntities = strings.NewReplacer(
	"&#39;", "'",
	"&#34;", `"`,
	"&quot;", `"`,
	"&gt;", ">",
	"\u00a0", "&nbsp;",
)

// literalText rewrites the text of serialized markup with textEntities.
// Tags and comments are copied unchanged, so attribute values keep their
// escaping.
func literalText(markup string) string {
	var b strings.Builder
	b.Grow(len(markup))
	for markup != "" {
		i := strings.IndexByte(markup, '<')
		if i < 0 {
			b.WriteString(textEntities.Replace(markup))
			break
		}
		b.WriteString(textEntities.Replace(markup[:i]))
		markup = markup[i:]

		end := ">"
		if strings.HasPrefix(markup, "<!--") {
			end = "-->"
		}
		j := strings.Index(markup, end)
		if j < 0 {
			b.WriteString(markup)
			break
		}
		j += len(end)
		b.WriteString(markup[:j])
		markup = markup[j:]
	}
	return b.String()
}
