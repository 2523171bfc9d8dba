package xwalk

import (
	"context"
	"regexp"
	"strings"
)

// ComponentModel is the ordered field schema of a block or item type.
type ComponentModel struct {
	ID     string  `json:"id" yaml:"id"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// ComponentDefinition lists every component known to the authoring
// environment, organised in groups.
type ComponentDefinition struct {
	Groups []ComponentGroup `json:"groups" yaml:"groups"`
}

// ComponentGroup is a titled set of components.
type ComponentGroup struct {
	Title      string      `json:"title" yaml:"title"`
	ID         string      `json:"id" yaml:"id"`
	Components []Component `json:"components" yaml:"components"`
}

// Component is one entry of the component definition.
type Component struct {
	Title   string  `json:"title" yaml:"title"`
	ID      string  `json:"id" yaml:"id"`
	Plugins Plugins `json:"plugins" yaml:"plugins"`
}

// Plugins holds the plugin configuration embedded in a component.
type Plugins struct {
	Xwalk XwalkPlugin `json:"xwalk" yaml:"xwalk"`
}

// XwalkPlugin is the block configuration of a component.
type XwalkPlugin struct {
	Page PagePlugin `json:"page" yaml:"page"`
}

// PagePlugin carries the resource type and template of a component.
type PagePlugin struct {
	ResourceType string   `json:"resourceType" yaml:"resourceType"`
	Template     Template `json:"template" yaml:"template"`
}

// Template is the template embedded in a component definition.
type Template struct {
	Name     string `json:"name" yaml:"name"`
	Model    string `json:"model" yaml:"model"`
	Filter   string `json:"filter" yaml:"filter"`
	KeyValue bool   `json:"key-value" yaml:"key-value"`
}

// TemplateDescriptor is the resolved template of a component.
// The zero value means no schema is available.
type TemplateDescriptor struct {
	Name     string
	FilterID string
	Model    string
	KeyValue bool
}

// IsZero reports whether the descriptor resolved to nothing.
func (d TemplateDescriptor) IsZero() bool {
	return d == TemplateDescriptor{}
}

// Filter lists the component ids allowed as children of a block.
type Filter struct {
	ID         string   `json:"id" yaml:"id"`
	Components []string `json:"components" yaml:"components"`
}

// Schema bundles the three schema tables consumed by the engine.
// A nil table means the table is missing.
type Schema struct {
	Models     []ComponentModel
	Definition *ComponentDefinition
	Filters    []Filter
}

// Complete reports whether all three tables are present.
func (s *Schema) Complete() bool {
	return s != nil && s.Models != nil && s.Definition != nil && s.Filters != nil
}

// Model returns the model with the given id.
func (s *Schema) Model(id string) (*ComponentModel, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for i := range s.Models {
		if s.Models[i].ID == id {
			return &s.Models[i], true
		}
	}
	return nil, false
}

// AllowedComponents returns the component ids allowed by the filter with the
// given id. An unknown filter allows nothing.
func (s *Schema) AllowedComponents(filterID string) []string {
	if s == nil || filterID == "" {
		return nil
	}
	for _, f := range s.Filters {
		if f.ID == filterID {
			return f.Components
		}
	}
	return nil
}

var nonAlphanumeric = regexp.MustCompile(`[^0-9a-z]+`)

// ClassName converts a name into the slug used as a block class name.
func ClassName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ResolveByName returns the template whose name matches the class name.
// Names are compared as class names. When several components match, the last
// one in table order wins.
func (d *ComponentDefinition) ResolveByName(className string) TemplateDescriptor {
	want := ClassName(className)
	return d.resolve(func(c *Component) bool {
		return ClassName(c.Plugins.Xwalk.Page.Template.Name) == want
	})
}

// ResolveByID returns the template of the component with the given id.
// When several components share the id, the last one in table order wins.
func (d *ComponentDefinition) ResolveByID(id string) TemplateDescriptor {
	return d.resolve(func(c *Component) bool {
		return c.ID == id
	})
}

// resolve walks the whole table without stopping at the first match.
// TODO: report duplicate template names and ids once schema validation exists.
func (d *ComponentDefinition) resolve(match func(*Component) bool) TemplateDescriptor {
	var desc TemplateDescriptor
	if d == nil {
		return desc
	}
	for _, g := range d.Groups {
		for i := range g.Components {
			c := &g.Components[i]
			if !match(c) {
				continue
			}
			t := c.Plugins.Xwalk.Page.Template
			desc = TemplateDescriptor{
				Name:     t.Name,
				FilterID: t.Filter,
				Model:    t.Model,
				KeyValue: t.KeyValue,
			}
		}
	}
	return desc
}

// SchemaLoader loads the schema tables.
type SchemaLoader interface {
	// LoadSchema reads the schema tables. Missing tables are left nil.
	LoadSchema(ctx context.Context) (*Schema, error)
}
