package etree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/fwojciec/xwalk"
	xetree "github.com/fwojciec/xwalk/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, blocks []*xwalk.MappedBlock) *etree.Element {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, xetree.NewEncoder().Encode(&buf, blocks))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

func descend(t *testing.T, el *etree.Element, path string) *etree.Element {
	t.Helper()
	for _, seg := range strings.Split(path, "/") {
		el = el.SelectElement(seg)
		require.NotNil(t, el, "missing element %s", seg)
	}
	return el
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("writes blocks under their paths", func(t *testing.T) {
		t.Parallel()

		root := encode(t, []*xwalk.MappedBlock{
			{
				Path: "/content/page/jcr:content/root/section/block",
				Node: &xwalk.ContentNode{
					ResourceType: xwalk.BlockResourceType,
					Name:         "Hero",
					Properties:   xwalk.Properties{"model": "hero", "text": "&lt;p>Hi&lt;/p>"},
				},
			},
			{
				Path: "/content/page/jcr:content/root/section/block_0",
				Node: &xwalk.ContentNode{ResourceType: xwalk.BlockResourceType, Name: "Cards", Filter: "cards"},
			},
		})

		assert.Equal(t, "jcr:root", root.FullTag())
		assert.Equal(t, xwalk.PrimaryType, root.SelectAttrValue(xwalk.PrimaryTypeKey, ""))

		section := descend(t, root, "content/page/jcr:content/root/section")
		assert.Equal(t, xwalk.PrimaryType, section.SelectAttrValue(xwalk.PrimaryTypeKey, ""))

		hero := section.SelectElement("block")
		require.NotNil(t, hero)
		assert.Equal(t, xwalk.BlockResourceType, hero.SelectAttrValue(xwalk.ResourceTypeKey, ""))
		assert.Equal(t, "Hero", hero.SelectAttrValue("name", ""))
		assert.Equal(t, "hero", hero.SelectAttrValue("model", ""))
		assert.Equal(t, "<p>Hi</p>", hero.SelectAttrValue("text", ""))
		assert.Nil(t, hero.SelectAttr("filter"))

		cards := section.SelectElement("block_0")
		require.NotNil(t, cards)
		assert.Equal(t, "cards", cards.SelectAttrValue("filter", ""))
	})

	t.Run("writes items as child elements", func(t *testing.T) {
		t.Parallel()

		root := encode(t, []*xwalk.MappedBlock{{
			Path: "/root/block",
			Node: &xwalk.ContentNode{
				ResourceType: xwalk.BlockResourceType,
				Name:         "Cards",
				Children: []*xwalk.Item{
					{Type: "element", Name: "item", Attributes: xwalk.Properties{
						xwalk.PrimaryTypeKey:  xwalk.PrimaryType,
						xwalk.ResourceTypeKey: xwalk.ItemResourceType,
						"model":               "card",
						"tags":                "[a,b]",
					}},
					{Type: "element", Name: "item_0", Attributes: xwalk.Properties{
						xwalk.PrimaryTypeKey:  xwalk.PrimaryType,
						xwalk.ResourceTypeKey: xwalk.ItemResourceType,
					}},
				},
			},
		}})

		block := descend(t, root, "root/block")
		items := block.ChildElements()
		require.Len(t, items, 2)
		assert.Equal(t, "item", items[0].Tag)
		assert.Equal(t, "item_0", items[1].Tag)

		attrs := items[0].Attr
		require.Len(t, attrs, 4)
		assert.Equal(t, xwalk.PrimaryTypeKey, attrs[0].FullKey())
		assert.Equal(t, xwalk.ResourceTypeKey, attrs[1].FullKey())
		assert.Equal(t, "model", attrs[2].Key)
		assert.Equal(t, "[a,b]", attrs[3].Value)
	})

	t.Run("escapes stored markup once", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := xetree.NewEncoder().Encode(&buf, []*xwalk.MappedBlock{{
			Path: "/root/block",
			Node: &xwalk.ContentNode{
				ResourceType: xwalk.BlockResourceType,
				Name:         "Text",
				Properties: xwalk.Properties{
					"text": xwalk.Escape("<p>Hi &amp; bye</p>"),
					"code": xwalk.Escape("<pre><code>a\nb</code></pre>"),
				},
			},
		}})

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, `text="&lt;p>Hi &amp; bye&lt;/p>"`)
		assert.Contains(t, out, `code="&lt;pre>&lt;code>a&#xA;b&lt;/code>&lt;/pre>"`)
		assert.NotContains(t, out, "&amp;lt;")
	})

	t.Run("writes bare root without blocks", func(t *testing.T) {
		t.Parallel()

		root := encode(t, nil)

		assert.Empty(t, root.ChildElements())
	})
}
