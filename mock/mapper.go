package mock

import (
	"context"
	"io"

	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
)

var _ xwalk.BlockMapper = (*BlockMapper)(nil)

// BlockMapper is a mock implementation of xwalk.BlockMapper.
type BlockMapper struct {
	MapBlockFn func(block *html.Node, path string) *xwalk.ContentNode
}

func (m *BlockMapper) MapBlock(block *html.Node, path string) *xwalk.ContentNode {
	return m.MapBlockFn(block, path)
}

var _ xwalk.PageMapper = (*PageMapper)(nil)

// PageMapper is a mock implementation of xwalk.PageMapper.
type PageMapper struct {
	MapPageFn func(ctx context.Context, r io.Reader, basePath string) ([]*xwalk.MappedBlock, error)
}

func (m *PageMapper) MapPage(ctx context.Context, r io.Reader, basePath string) ([]*xwalk.MappedBlock, error) {
	return m.MapPageFn(ctx, r, basePath)
}

var _ xwalk.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of xwalk.Classifier.
type Classifier struct {
	ClassifyFn func(node *html.Node, ancestors []*html.Node) *xwalk.Classification
}

func (c *Classifier) Classify(node *html.Node, ancestors []*html.Node) *xwalk.Classification {
	return c.ClassifyFn(node, ancestors)
}

var _ xwalk.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of xwalk.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(markup string) string
}

func (s *Sanitizer) Sanitize(markup string) string {
	return s.SanitizeFn(markup)
}
