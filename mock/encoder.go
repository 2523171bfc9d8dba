package mock

import (
	"io"

	"github.com/fwojciec/xwalk"
)

var _ xwalk.Encoder = (*Encoder)(nil)

// Encoder is a mock implementation of xwalk.Encoder.
type Encoder struct {
	EncodeFn func(w io.Writer, blocks []*xwalk.MappedBlock) error
}

func (e *Encoder) Encode(w io.Writer, blocks []*xwalk.MappedBlock) error {
	return e.EncodeFn(w, blocks)
}
