package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/xwalk"
)

// Ensure LoggingSchemaLoader implements xwalk.SchemaLoader.
var _ xwalk.SchemaLoader = (*LoggingSchemaLoader)(nil)

// LoggingSchemaLoader wraps a SchemaLoader with logging. Missing tables are
// reported as a warning since blocks cannot be mapped without them.
type LoggingSchemaLoader struct {
	next   xwalk.SchemaLoader
	logger *slog.Logger
}

// NewLoggingSchemaLoader creates a new LoggingSchemaLoader.
func NewLoggingSchemaLoader(next xwalk.SchemaLoader, logger *slog.Logger) *LoggingSchemaLoader {
	return &LoggingSchemaLoader{next: next, logger: logger}
}

// LoadSchema delegates to the wrapped loader and logs the operation.
func (l *LoggingSchemaLoader) LoadSchema(ctx context.Context) (s *xwalk.Schema, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if s != nil {
			attrs = append(attrs,
				"models", len(s.Models),
				"components", components(s.Definition),
				"filters", len(s.Filters),
			)
		}
		l.logger.Info("schema loaded", attrs...)
		if err == nil && !s.Complete() {
			l.logger.Warn("schema incomplete",
				"models", s != nil && s.Models != nil,
				"definition", s != nil && s.Definition != nil,
				"filters", s != nil && s.Filters != nil,
			)
		}
	}(time.Now())
	return l.next.LoadSchema(ctx)
}

func components(d *xwalk.ComponentDefinition) int {
	if d == nil {
		return 0
	}
	n := 0
	for _, g := range d.Groups {
		n += len(g.Components)
	}
	return n
}
