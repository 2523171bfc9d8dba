package xwalk

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Fixed resource types and node type of mapped content.
const (
	BlockResourceType = "core/franklin/components/block/v1/block"
	ItemResourceType  = BlockResourceType + "/item"
	PrimaryType       = "nt:unstructured"

	// Attribute keys carried by every item.
	PrimaryTypeKey  = "jcr:primaryType"
	ResourceTypeKey = "sling:resourceType"

	// ModelKey holds the id of the model a record was extracted with.
	ModelKey = "model"
)

// Mode selects how a node's children are read during extraction.
type Mode int

// Extraction modes.
const (
	// ModeSimple reads one row per field, taking the value from the first cell.
	ModeSimple Mode = iota
	// ModeKeyValue reads one row per field, taking the value from the last cell.
	ModeKeyValue
	// ModeBlockItem reads one cell per field of a repeating item row.
	ModeBlockItem
)

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeKeyValue:
		return "key-value"
	case ModeBlockItem:
		return "block-item"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// Properties maps field names to normalized values. Multi-value selections
// are encoded as "[a,b,c]". Empty values are never stored.
type Properties map[string]string

// Set stores v under key, deleting the key when v is empty.
func (p Properties) Set(key, v string) {
	if v == "" {
		delete(p, key)
		return
	}
	p[key] = v
}

// ContentNode is the mapped representation of a block.
type ContentNode struct {
	ResourceType string
	Name         string
	Filter       string
	Properties   Properties
	Children     []*Item
}

// MarshalJSON flattens the properties next to the fixed keys. A property
// named like a fixed key replaces it.
func (n *ContentNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Properties)+4)
	m["rt"] = n.ResourceType
	if n.Name != "" {
		m["name"] = n.Name
	}
	if n.Filter != "" {
		m["filter"] = n.Filter
	}
	if n.Children != nil {
		m["children"] = n.Children
	}
	for k, v := range n.Properties {
		m[k] = v
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Item is one repeating child row of a block.
type Item struct {
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Attributes Properties `json:"attributes"`

	// Candidates ranks every extraction attempted for the row, best first.
	Candidates []Candidate `json:"-"`
}

// Candidate is the extraction of a row with one allowed component.
type Candidate struct {
	ComponentID string
	Model       string
	Properties  Properties
}

// Count returns the number of extracted attributes.
func (c Candidate) Count() int {
	return len(c.Properties)
}

// MappedBlock is a block mapped at a content path.
type MappedBlock struct {
	Path string       `json:"path"`
	Node *ContentNode `json:"node"`
}

// NodeName returns the name of the i-th sibling node sharing a base name.
// The first node is called base, the following ones base_0, base_1 and so on.
func NodeName(base string, i int) string {
	if i == 0 {
		return base
	}
	return base + "_" + strconv.Itoa(i-1)
}
