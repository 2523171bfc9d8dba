package xwalk

import (
	"context"
	"io"
	"slices"
	"sync"

	"golang.org/x/net/html"
)

// Classification names the semantic kind of a markup element.
type Classification struct {
	// Name is the handler name, e.g. "button", "image", "title" or "text".
	Name string
}

// Handler names produced by classifiers.
const (
	HandlerButton = "button"
	HandlerImage  = "image"
	HandlerTitle  = "title"
	HandlerText   = "text"
)

// Classifier decides which handler applies to a markup element.
type Classifier interface {
	// Classify returns nil when no handler recognizes the node.
	// Ancestors are ordered from the document root to the node's parent.
	Classify(node *html.Node, ancestors []*html.Node) *Classification
}

// BlockMapper maps a single block into a content node.
type BlockMapper interface {
	// MapBlock never fails: missing schema data degrades to a node without
	// properties and a logged diagnostic.
	MapBlock(block *html.Node, path string) *ContentNode
}

// PageMapper maps every block of a page.
type PageMapper interface {
	// MapPage parses the page and returns its blocks in document order.
	MapPage(ctx context.Context, r io.Reader, basePath string) ([]*MappedBlock, error)
}

// Sanitizer cleans serialized rich text markup.
type Sanitizer interface {
	Sanitize(markup string) string
}

// Encoder writes mapped blocks in an output format.
type Encoder interface {
	Encode(w io.Writer, blocks []*MappedBlock) error
}

// PathMap records the markup node of every mapped item by its content path.
// It is safe for concurrent use.
type PathMap struct {
	mu    sync.Mutex
	nodes map[string]*html.Node
}

// NewPathMap returns an empty PathMap.
func NewPathMap() *PathMap {
	return &PathMap{nodes: make(map[string]*html.Node)}
}

// Record associates node with path, replacing any previous node.
func (m *PathMap) Record(path string, node *html.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nodes == nil {
		m.nodes = make(map[string]*html.Node)
	}
	m.nodes[path] = node
}

// Lookup returns the node recorded for path.
func (m *PathMap) Lookup(path string) (*html.Node, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[path]
	return n, ok
}

// Paths returns all recorded paths in sorted order.
func (m *PathMap) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.nodes))
	for p := range m.nodes {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}
