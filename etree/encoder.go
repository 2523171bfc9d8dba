// Package etree encodes mapped blocks as JCR content XML using etree.
package etree

import (
	"io"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
)

// Namespaces declared on the root element.
const (
	jcrNS   = "http://www.jcp.org/jcr/1.0"
	ntNS    = "http://www.jcp.org/jcr/nt/1.0"
	slingNS = "http://sling.apache.org/jcr/sling/1.0"
)

// Ensure Encoder implements xwalk.Encoder at compile time.
var _ xwalk.Encoder = (*Encoder)(nil)

// Encoder writes mapped blocks as a .content.xml document. Every segment of a
// block path becomes a nested element below jcr:root; the block element
// carries the node's properties as attributes and its items as children.
type Encoder struct {
	// Indent is the number of spaces per nesting level. Zero writes the
	// document on one line.
	Indent int
}

// NewEncoder creates an Encoder indenting with two spaces.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// Encode writes the document for blocks to w.
func (e *Encoder) Encode(w io.Writer, blocks []*xwalk.MappedBlock) error {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalAttrVal = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("jcr:root")
	root.CreateAttr("xmlns:jcr", jcrNS)
	root.CreateAttr("xmlns:nt", ntNS)
	root.CreateAttr("xmlns:sling", slingNS)
	root.CreateAttr(xwalk.PrimaryTypeKey, xwalk.PrimaryType)

	for _, b := range blocks {
		el := pathElement(root, b.Path)
		if b.Node != nil {
			writeNode(el, b.Node)
		}
	}

	if e.Indent > 0 {
		doc.Indent(e.Indent)
	}
	_, err := doc.WriteTo(w)
	return err
}

// pathElement returns the element at path below root, creating the missing
// segments as unstructured nodes.
func pathElement(root *etree.Element, path string) *etree.Element {
	el := root
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		child := el.SelectElement(seg)
		if child == nil {
			child = el.CreateElement(seg)
			child.CreateAttr(xwalk.PrimaryTypeKey, xwalk.PrimaryType)
		}
		el = child
	}
	return el
}

func writeNode(el *etree.Element, n *xwalk.ContentNode) {
	el.CreateAttr(xwalk.ResourceTypeKey, n.ResourceType)
	if n.Name != "" {
		el.CreateAttr("name", n.Name)
	}
	if n.Filter != "" {
		el.CreateAttr("filter", n.Filter)
	}
	writeProperties(el, n.Properties)
	for _, it := range n.Children {
		writeProperties(el.CreateElement(it.Name), it.Attributes)
	}
}

// writeProperties adds props as attributes: the fixed keys first, then the
// rest in name order. Values are stored escaped; they are unescaped here so
// the document carries them escaped exactly once.
func writeProperties(el *etree.Element, props xwalk.Properties) {
	for _, k := range []string{xwalk.PrimaryTypeKey, xwalk.ResourceTypeKey} {
		if v, ok := props[k]; ok {
			el.CreateAttr(k, html.UnescapeString(v))
		}
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == xwalk.PrimaryTypeKey || k == xwalk.ResourceTypeKey {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		el.CreateAttr(k, html.UnescapeString(props[k]))
	}
}
