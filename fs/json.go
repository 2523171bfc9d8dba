package fs

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/xwalk"
)

// Ensure JSONEncoder implements xwalk.Encoder at compile time.
var _ xwalk.Encoder = JSONEncoder{}

// JSONEncoder writes mapped blocks as an indented JSON array.
type JSONEncoder struct{}

// Encode writes blocks as a JSON array of {path, node} objects. Markup in
// property values is written as is.
func (JSONEncoder) Encode(w io.Writer, blocks []*xwalk.MappedBlock) error {
	if blocks == nil {
		blocks = []*xwalk.MappedBlock{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(blocks)
}
