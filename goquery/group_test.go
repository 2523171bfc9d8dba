package goquery_test

import (
	"testing"

	"github.com/fwojciec/xwalk"
	"github.com/fwojciec/xwalk/goquery"
	"github.com/fwojciec/xwalk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func groupSchema() *xwalk.Schema {
	return &xwalk.Schema{
		Models: []xwalk.ComponentModel{
			{ID: "cta", Fields: []xwalk.Field{
				field("cta_text", xwalk.KindRichText),
				field("cta_image", xwalk.KindReference),
				field("cta_imageAlt", xwalk.KindText),
				field("cta_link", "aem-content"),
				field("cta_linkType", xwalk.KindSelect),
			}},
			{ID: "pair", Fields: []xwalk.Field{
				field("pair_first", xwalk.KindText),
				field("pair_second", xwalk.KindText),
			}},
		},
		Definition: &xwalk.ComponentDefinition{},
		Filters:    []xwalk.Filter{},
	}
}

const ctaBlock = `<div class="cta"><div><div>
  <p>One</p>
  <span> </span>
  <p>Two</p>
  <picture><img src="/i.png" alt="I"></picture>
  <p><em><a href="/l">L</a></em></p>
</div></div></div>`

func TestMapper_ExtractProperties_Group(t *testing.T) {
	t.Parallel()

	t.Run("accumulates rich text until another kind of element", func(t *testing.T) {
		t.Parallel()

		props := goquery.NewMapper(groupSchema()).ExtractProperties(selection(t, ctaBlock, "div.cta"), "cta", xwalk.ModeSimple)

		assert.Equal(t, xwalk.Properties{
			"model":        "cta",
			"cta_text":     "&lt;p>One&lt;/p>&lt;p>Two&lt;/p>",
			"cta_image":    "/i.png",
			"cta_imageAlt": "I",
			"cta_link":     "/l",
			"cta_linkType": "secondary",
		}, props)
	})

	t.Run("skips elements the classifier does not recognize", func(t *testing.T) {
		t.Parallel()

		m := goquery.NewMapper(groupSchema())
		var calls int
		m.Classifier = &mock.Classifier{
			ClassifyFn: func(node *html.Node, ancestors []*html.Node) *xwalk.Classification {
				calls++
				return nil
			},
		}

		props := m.ExtractProperties(selection(t, ctaBlock, "div.cta"), "cta", xwalk.ModeSimple)

		assert.Equal(t, xwalk.Properties{"model": "cta"}, props)
		assert.Equal(t, 5, calls)
	})

	t.Run("passes ancestors from the root down", func(t *testing.T) {
		t.Parallel()

		m := goquery.NewMapper(groupSchema())
		var got []*html.Node
		m.Classifier = &mock.Classifier{
			ClassifyFn: func(node *html.Node, ancestors []*html.Node) *xwalk.Classification {
				if got == nil {
					got = ancestors
				}
				return &xwalk.Classification{Name: xwalk.HandlerText}
			},
		}

		m.ExtractProperties(selection(t, ctaBlock, "div.cta"), "cta", xwalk.ModeSimple)

		require.NotEmpty(t, got)
		assert.Equal(t, "html", got[0].Data)
		assert.Equal(t, "div", got[len(got)-1].Data)
	})

	t.Run("gives each plain field one element", func(t *testing.T) {
		t.Parallel()

		block := `<div class="pair"><div><div><p>A</p><p>B</p><p>C</p></div></div></div>`

		props := goquery.NewMapper(groupSchema()).ExtractProperties(selection(t, block, "div.pair"), "pair", xwalk.ModeSimple)

		assert.Equal(t, xwalk.Properties{"model": "pair", "pair_first": "A", "pair_second": "B"}, props)
	})

	t.Run("treats an item cell as the group container", func(t *testing.T) {
		t.Parallel()

		row := `<div class="row"><div><p>A</p><p>B</p></div></div>`

		props := goquery.NewMapper(groupSchema()).ExtractProperties(selection(t, row, "div.row"), "pair", xwalk.ModeBlockItem)

		assert.Equal(t, xwalk.Properties{"model": "pair", "pair_first": "A", "pair_second": "B"}, props)
	})
}
