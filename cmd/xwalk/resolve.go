package main

import (
	"fmt"

	"github.com/fwojciec/xwalk"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	var desc xwalk.TemplateDescriptor
	if c.ByID {
		desc = deps.Schema.Definition.ResolveByID(c.Name)
	} else {
		desc = deps.Schema.Definition.ResolveByName(c.Name)
	}

	if desc.IsZero() {
		err := xwalk.Errorf(xwalk.ENOTFOUND, "no template for %q", c.Name)
		fmt.Fprintf(deps.Stderr, "error: %s\n", xwalk.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "name:      %s\n", desc.Name)
	fmt.Fprintf(deps.Stdout, "class:     %s\n", xwalk.ClassName(desc.Name))
	fmt.Fprintf(deps.Stdout, "model:     %s\n", desc.Model)
	fmt.Fprintf(deps.Stdout, "filter:    %s\n", desc.FilterID)
	fmt.Fprintf(deps.Stdout, "key-value: %t\n", desc.KeyValue)

	if allowed := deps.Schema.AllowedComponents(desc.FilterID); len(allowed) > 0 {
		fmt.Fprintln(deps.Stdout, "items:")
		for _, id := range allowed {
			item := deps.Schema.Definition.ResolveByID(id)
			fmt.Fprintf(deps.Stdout, "  %s (model %s)\n", id, item.Model)
		}
	}
	return nil
}
