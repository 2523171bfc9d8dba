package goquery

import (
	"context"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

var _ xwalk.PageMapper = (*PageMapper)(nil)

// Base node names of the sections and blocks of a page.
const (
	sectionName = "section"
	blockName   = "block"
)

// PageMapper finds the blocks of a page and maps each of them.
type PageMapper struct {
	// Blocks maps a single block.
	Blocks xwalk.BlockMapper

	// Concurrency limits how many blocks are mapped at once. Defaults to 1.
	Concurrency int
}

// NewPageMapper creates a PageMapper mapping blocks with blocks.
func NewPageMapper(blocks xwalk.BlockMapper, concurrency int) *PageMapper {
	return &PageMapper{Blocks: blocks, Concurrency: concurrency}
}

// MapPage parses the page and maps its blocks in document order. Sections
// are the divs directly under main; block paths are
// <basePath>/<section>/<block>, with sections and blocks named like items
// (section, section_0, ...; block, block_0, ...).
func (p *PageMapper) MapPage(ctx context.Context, r io.Reader, basePath string) ([]*xwalk.MappedBlock, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, xwalk.Errorf(xwalk.EINVALID, "failed to parse HTML: %v", err)
	}

	type job struct {
		node *html.Node
		path string
	}
	var jobs []job
	doc.Find("main").First().ChildrenFiltered("div").Each(func(si int, section *goquery.Selection) {
		sectionPath := basePath + "/" + xwalk.NodeName(sectionName, si)
		bi := 0
		section.Children().Each(func(_ int, el *goquery.Selection) {
			if !IsBlock(el) {
				return
			}
			jobs = append(jobs, job{
				node: el.Get(0),
				path: sectionPath + "/" + xwalk.NodeName(blockName, bi),
			})
			bi++
		})
	})

	limit := p.Concurrency
	if limit <= 0 {
		limit = 1
	}

	blocks := make([]*xwalk.MappedBlock, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			blocks[i] = &xwalk.MappedBlock{
				Path: j.path,
				Node: p.Blocks.MapBlock(j.node, j.path),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return blocks, nil
}
