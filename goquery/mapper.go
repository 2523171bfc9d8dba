// Package goquery implements block mapping over parsed markup using goquery.
package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
)

// Ensure Mapper implements xwalk.BlockMapper at compile time.
var _ xwalk.BlockMapper = (*Mapper)(nil)

// Mapper maps blocks into content nodes using a content schema.
// Schema tables are only read; a Mapper may be shared by concurrent callers
// as long as Paths is either nil or a PathMap.
type Mapper struct {
	// Schema holds the component models, definition and filters.
	Schema *xwalk.Schema

	// Classifier recognizes the elements of grouped fields.
	// Defaults to a Classifier when nil.
	Classifier xwalk.Classifier

	// Sanitizer, when set, cleans rich text markup before it is escaped.
	Sanitizer xwalk.Sanitizer

	// Paths, when set, receives the markup node of every item row.
	Paths *xwalk.PathMap

	// Logger receives extraction diagnostics. Defaults to discarding them.
	Logger *slog.Logger
}

// NewMapper creates a Mapper for the given schema with the default
// classifier and an empty path map.
func NewMapper(schema *xwalk.Schema) *Mapper {
	return &Mapper{
		Schema:     schema,
		Classifier: NewClassifier(),
		Paths:      xwalk.NewPathMap(),
	}
}

// MapBlock maps a block into a content node. The block name is its first
// class; it selects the template, whose model drives property extraction and
// whose filter lists the components its rows may be.
func (m *Mapper) MapBlock(block *html.Node, path string) *xwalk.ContentNode {
	node := &xwalk.ContentNode{ResourceType: xwalk.BlockResourceType}
	if block == nil {
		m.logger().Error("no block to map", "path", path)
		return node
	}
	sel := goquery.NewDocumentFromNode(block).Selection

	classes := classList(sel)
	if len(classes) == 0 {
		m.logger().Error("block has no class name", "path", path)
		return node
	}
	name := classes[0]

	if !m.Schema.Complete() {
		m.logger().Error("schema tables missing",
			"block", name,
			"path", path,
			"models", m.Schema != nil && m.Schema.Models != nil,
			"definition", m.Schema != nil && m.Schema.Definition != nil,
			"filters", m.Schema != nil && m.Schema.Filters != nil,
		)
		return node
	}

	desc := m.Schema.Definition.ResolveByName(name)
	if desc.IsZero() {
		m.logger().Warn("no template for block", "block", name, "path", path)
		return node
	}

	mode := xwalk.ModeSimple
	if desc.KeyValue {
		mode = xwalk.ModeKeyValue
	}

	node.Name = desc.Name
	node.Filter = desc.FilterID
	node.Properties = m.ExtractProperties(sel, desc.Model, mode)
	node.Children = m.ResolveItems(sel, m.Schema.AllowedComponents(desc.FilterID), path)
	return node
}

// IsBlock reports whether sel is a block: a classed div inside a section,
// where sections are the divs directly under main.
func IsBlock(sel *goquery.Selection) bool {
	if goquery.NodeName(sel) != "div" || len(classList(sel)) == 0 {
		return false
	}
	section := sel.Parent()
	return goquery.NodeName(section) == "div" && goquery.NodeName(section.Parent()) == "main"
}

func (m *Mapper) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}

func (m *Mapper) classify(node *html.Node) *xwalk.Classification {
	c := m.Classifier
	if c == nil {
		c = NewClassifier()
	}
	var ancestors []*html.Node
	for p := node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			ancestors = append(ancestors, p)
		}
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return c.Classify(node, ancestors)
}

// classList returns the classes of the first element of sel.
func classList(sel *goquery.Selection) []string {
	class, _ := sel.Attr("class")
	return strings.Fields(class)
}
