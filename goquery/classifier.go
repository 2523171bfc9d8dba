package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
)

var _ xwalk.Classifier = (*Classifier)(nil)

// Classifier recognizes the authored elements found inside grouped cells.
// It checks for images first, then buttons (a paragraph holding nothing but
// a link, optionally emphasized), headings, and finally any element with
// content.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the handler for node, or nil for elements without content.
func (c *Classifier) Classify(node *html.Node, ancestors []*html.Node) *xwalk.Classification {
	if node == nil || node.Type != html.ElementNode {
		return nil
	}
	sel := goquery.NewDocumentFromNode(node).Selection

	// Everything inside preformatted text is plain content.
	for _, a := range ancestors {
		if a.Data == "pre" {
			return c.classifyText(sel)
		}
	}

	switch {
	case c.isImage(sel):
		return &xwalk.Classification{Name: xwalk.HandlerImage}
	case c.isButton(sel):
		return &xwalk.Classification{Name: xwalk.HandlerButton}
	case sel.Is(headings):
		return &xwalk.Classification{Name: xwalk.HandlerTitle}
	}
	return c.classifyText(sel)
}

func (c *Classifier) classifyText(sel *goquery.Selection) *xwalk.Classification {
	if plainText(sel) == "" && sel.Find("img, picture, video, iframe, svg").Length() == 0 {
		return nil
	}
	return &xwalk.Classification{Name: xwalk.HandlerText}
}

// isImage checks for a picture or an image, alone or wrapped without text.
func (c *Classifier) isImage(sel *goquery.Selection) bool {
	if sel.Is("picture, img") {
		return true
	}
	return sel.Find("img").Length() > 0 && plainText(sel) == ""
}

// isButton checks for a link, alone or as the only content of a paragraph.
func (c *Classifier) isButton(sel *goquery.Selection) bool {
	if sel.Is("a[href]") {
		return true
	}
	if !sel.Is("p, div") {
		return false
	}
	links := sel.Find("a[href]")
	if links.Length() != 1 {
		return false
	}
	return strings.TrimSpace(sel.Text()) == strings.TrimSpace(links.Text())
}
