package mock

import (
	"context"

	"github.com/fwojciec/xwalk"
)

var _ xwalk.SchemaLoader = (*SchemaLoader)(nil)

// SchemaLoader is a mock implementation of xwalk.SchemaLoader.
type SchemaLoader struct {
	LoadSchemaFn func(ctx context.Context) (*xwalk.Schema, error)
}

func (l *SchemaLoader) LoadSchema(ctx context.Context) (*xwalk.Schema, error) {
	return l.LoadSchemaFn(ctx)
}
