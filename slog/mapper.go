// Package slog decorates xwalk services with structured logging.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/xwalk"
	"golang.org/x/net/html"
)

// Ensure LoggingBlockMapper implements xwalk.BlockMapper.
var _ xwalk.BlockMapper = (*LoggingBlockMapper)(nil)

// LoggingBlockMapper wraps a BlockMapper with debug logging.
type LoggingBlockMapper struct {
	next   xwalk.BlockMapper
	logger *slog.Logger
}

// NewLoggingBlockMapper creates a new LoggingBlockMapper.
func NewLoggingBlockMapper(next xwalk.BlockMapper, logger *slog.Logger) *LoggingBlockMapper {
	return &LoggingBlockMapper{next: next, logger: logger}
}

// MapBlock delegates to the wrapped mapper and logs the result.
func (m *LoggingBlockMapper) MapBlock(block *html.Node, path string) (node *xwalk.ContentNode) {
	defer func(begin time.Time) {
		attrs := []any{"path", path, "class", classOf(block)}
		if node != nil {
			attrs = append(attrs,
				"name", node.Name,
				"properties", len(node.Properties),
				"items", len(node.Children),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin))
		m.logger.Debug("block mapped", attrs...)
	}(time.Now())
	return m.next.MapBlock(block, path)
}

// classOf returns the class attribute of node.
func classOf(node *html.Node) string {
	if node == nil {
		return ""
	}
	for _, a := range node.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

// Ensure LoggingPageMapper implements xwalk.PageMapper.
var _ xwalk.PageMapper = (*LoggingPageMapper)(nil)

// LoggingPageMapper wraps a PageMapper with logging.
type LoggingPageMapper struct {
	next   xwalk.PageMapper
	logger *slog.Logger
}

// NewLoggingPageMapper creates a new LoggingPageMapper.
func NewLoggingPageMapper(next xwalk.PageMapper, logger *slog.Logger) *LoggingPageMapper {
	return &LoggingPageMapper{next: next, logger: logger}
}

// MapPage delegates to the wrapped mapper and logs the operation.
func (m *LoggingPageMapper) MapPage(ctx context.Context, r io.Reader, basePath string) (blocks []*xwalk.MappedBlock, err error) {
	defer func(begin time.Time) {
		m.logger.Info("page mapped",
			"base", basePath,
			"blocks", len(blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.MapPage(ctx, r, basePath)
}
