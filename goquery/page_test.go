package goquery_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/xwalk"
	"github.com/fwojciec/xwalk/goquery"
	"github.com/fwojciec/xwalk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<!DOCTYPE html>
<html>
<body>
<header><div class="nav"></div></header>
<main>
  <div>
    <h1>Default content</h1>
    <div class="hero"><div><div><img src="/hero.png" alt="Hero"></div></div></div>
    <div class="teaser"><div><div><h2>News</h2></div></div></div>
  </div>
  <div>
    <div class="cards">
      <div><div><img src="/c.png"></div><div><p>Card A</p></div></div>
    </div>
  </div>
</main>
</body>
</html>`

func TestPageMapper_MapPage(t *testing.T) {
	t.Parallel()

	t.Run("maps blocks in document order with paths", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		seen := make(map[string]string)
		blocks := &mock.BlockMapper{
			MapBlockFn: func(block *html.Node, path string) *xwalk.ContentNode {
				mu.Lock()
				defer mu.Unlock()
				for _, a := range block.Attr {
					if a.Key == "class" {
						seen[path] = a.Val
					}
				}
				return &xwalk.ContentNode{ResourceType: xwalk.BlockResourceType, Name: path}
			},
		}

		got, err := goquery.NewPageMapper(blocks, 3).MapPage(context.Background(), strings.NewReader(page), "/content/site/index/jcr:content/root")

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "/content/site/index/jcr:content/root/section/block", got[0].Path)
		assert.Equal(t, "/content/site/index/jcr:content/root/section/block_0", got[1].Path)
		assert.Equal(t, "/content/site/index/jcr:content/root/section_0/block", got[2].Path)
		for _, b := range got {
			assert.Equal(t, b.Path, b.Node.Name)
		}
		assert.Equal(t, map[string]string{
			"/content/site/index/jcr:content/root/section/block":   "hero",
			"/content/site/index/jcr:content/root/section/block_0": "teaser",
			"/content/site/index/jcr:content/root/section_0/block": "cards",
		}, seen)
	})

	t.Run("maps blocks with the schema mapper", func(t *testing.T) {
		t.Parallel()

		got, err := goquery.NewPageMapper(goquery.NewMapper(testSchema()), 0).MapPage(context.Background(), strings.NewReader(page), "/root")

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, xwalk.Properties{"model": "hero", "image": "/hero.png", "imageAlt": "Hero"}, got[0].Node.Properties)
		assert.Equal(t, "News", got[1].Node.Properties["title"])
		assert.Equal(t, "h2", got[1].Node.Properties["titleType"])
		require.Len(t, got[2].Node.Children, 1)
		assert.Equal(t, "card", got[2].Node.Children[0].Attributes["model"])
	})

	t.Run("returns no blocks for a page without main", func(t *testing.T) {
		t.Parallel()

		blocks := &mock.BlockMapper{}

		got, err := goquery.NewPageMapper(blocks, 1).MapPage(context.Background(), strings.NewReader(`<div><div class="hero"></div></div>`), "/root")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		blocks := &mock.BlockMapper{
			MapBlockFn: func(block *html.Node, path string) *xwalk.ContentNode {
				return &xwalk.ContentNode{}
			},
		}

		_, err := goquery.NewPageMapper(blocks, 1).MapPage(ctx, strings.NewReader(page), "/root")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
