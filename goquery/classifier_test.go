package goquery_test

import (
	"testing"

	"github.com/fwojciec/xwalk"
	"github.com/fwojciec/xwalk/goquery"
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"
)

// Ensure Classifier implements xwalk.Classifier at compile time.
var _ xwalk.Classifier = (*goquery.Classifier)(nil)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"paragraph with a single link is a button", `<div id="c"><p><a href="/go">Go</a></p></div>`, xwalk.HandlerButton},
		{"emphasized link is a button", `<div id="c"><p><strong><a href="/go">Go</a></strong></p></div>`, xwalk.HandlerButton},
		{"bare link is a button", `<div id="c"><a href="/go">Go</a></div>`, xwalk.HandlerButton},
		{"picture is an image", `<div id="c"><picture><img src="/a.png"></picture></div>`, xwalk.HandlerImage},
		{"paragraph holding an image is an image", `<div id="c"><p><img src="/a.png"></p></div>`, xwalk.HandlerImage},
		{"linked image is an image", `<div id="c"><p><a href="/x"><img src="/a.png"></a></p></div>`, xwalk.HandlerImage},
		{"heading is a title", `<div id="c"><h3>Title</h3></div>`, xwalk.HandlerTitle},
		{"paragraph with text and a link is text", `<div id="c"><p>See <a href="/x">this</a> page</p></div>`, xwalk.HandlerText},
		{"list is text", `<div id="c"><ul><li>one</li></ul></div>`, xwalk.HandlerText},
		{"paragraph with two links is text", `<div id="c"><p><a href="/a">A</a><a href="/b">B</a></p></div>`, xwalk.HandlerText},
		{"link inside preformatted text is text", `<div id="c"><pre><a href="/a">A</a></pre></div>`, xwalk.HandlerText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node := firstElementChild(parseBlock(t, tt.markup, "#c"))
			if tt.name == "link inside preformatted text is text" {
				node = firstElementChild(node)
			}

			got := goquery.NewClassifier().Classify(node, ancestorsOf(node))

			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, got.Name)
			}
		})
	}

	t.Run("returns nil for empty elements", func(t *testing.T) {
		t.Parallel()

		for _, markup := range []string{
			`<div id="c"><br></div>`,
			`<div id="c"><p>   </p></div>`,
			`<div id="c"><p>&nbsp;</p></div>`,
		} {
			node := firstElementChild(parseBlock(t, markup, "#c"))
			assert.Nil(t, goquery.NewClassifier().Classify(node, nil), markup)
		}
	})

	t.Run("returns nil for text nodes", func(t *testing.T) {
		t.Parallel()

		node := parseBlock(t, `<div id="c">text</div>`, "#c").FirstChild

		assert.Nil(t, goquery.NewClassifier().Classify(node, nil))
		assert.Nil(t, goquery.NewClassifier().Classify(nil, nil))
	})
}

func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func ancestorsOf(n *html.Node) []*html.Node {
	var out []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			out = append([]*html.Node{p}, out...)
		}
	}
	return out
}
