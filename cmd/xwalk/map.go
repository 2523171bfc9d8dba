package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/xwalk"
	"github.com/fwojciec/xwalk/fs"
)

// Run executes the map command.
func (c *MapCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	blocks, err := deps.Pages.MapPage(deps.Ctx, f, c.BasePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xwalk.ErrorMessage(err))
		return err
	}

	if c.Out == "" {
		return deps.Encoder.Encode(deps.Stdout, blocks)
	}

	path, written, err := fs.NewWriter(c.Out, deps.Encoder, deps.Ext).WritePage(deps.Ctx, c.Page, blocks)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if !written {
		fmt.Fprintf(deps.Stdout, "Mapped %d blocks, %s unchanged\n", len(blocks), path)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Mapped %d blocks to %s\n", len(blocks), path)
	return nil
}
