// Package htmltomarkdown renders mapped blocks as a markdown preview using
// html-to-markdown.
package htmltomarkdown

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"slices"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/xwalk"
)

// Ensure Encoder implements xwalk.Encoder at compile time.
var _ xwalk.Encoder = (*Encoder)(nil)

// Encoder writes a human readable preview of mapped blocks. Each block is a
// section titled with its path listing its properties; rich text values are
// converted back to markdown and quoted.
type Encoder struct {
	conv *converter.Converter
}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Encoder{conv: conv}
}

// Encode writes the preview of blocks to w.
func (e *Encoder) Encode(w io.Writer, blocks []*xwalk.MappedBlock) error {
	bw := bufio.NewWriter(w)
	for i, b := range blocks {
		if i > 0 {
			bw.WriteString("\n")
		}
		if err := e.writeBlock(bw, b); err != nil {
			return fmt.Errorf("block %s: %w", b.Path, err)
		}
	}
	return bw.Flush()
}

func (e *Encoder) writeBlock(w *bufio.Writer, b *xwalk.MappedBlock) error {
	fmt.Fprintf(w, "## %s\n\n", b.Path)
	n := b.Node
	if n == nil || n.Name == "" {
		w.WriteString("_unmapped_\n")
		return nil
	}

	fmt.Fprintf(w, "**%s**", n.Name)
	if n.Filter != "" {
		fmt.Fprintf(w, " (filter `%s`)", n.Filter)
	}
	w.WriteString("\n\n")
	if err := e.writeProperties(w, n.Properties); err != nil {
		return err
	}

	for _, it := range n.Children {
		fmt.Fprintf(w, "\n### %s\n\n", it.Name)
		if err := e.writeProperties(w, it.Attributes); err != nil {
			return fmt.Errorf("%s: %w", it.Name, err)
		}
	}
	return nil
}

// writeProperties lists props in name order, skipping the fixed node keys.
func (e *Encoder) writeProperties(w *bufio.Writer, props xwalk.Properties) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == xwalk.PrimaryTypeKey || k == xwalk.ResourceTypeKey {
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := html.UnescapeString(props[k])
		if !strings.HasPrefix(v, "<") {
			fmt.Fprintf(w, "- %s: %s\n", k, v)
			continue
		}
		md, err := e.conv.ConvertString(v)
		if err != nil {
			return fmt.Errorf("converting %s: %w", k, err)
		}
		fmt.Fprintf(w, "- %s:\n", k)
		for _, line := range strings.Split(strings.TrimSpace(md), "\n") {
			w.WriteString("  > ")
			w.WriteString(line)
			w.WriteString("\n")
		}
	}
	return nil
}
