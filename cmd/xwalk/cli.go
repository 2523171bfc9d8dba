package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/xwalk"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Schema  *xwalk.Schema
	Pages   xwalk.PageMapper
	Encoder xwalk.Encoder
	Ext     string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log extraction details"`

	Map     MapCmd     `cmd:"" help:"Map the blocks of a page"`
	Resolve ResolveCmd `cmd:"" help:"Show the template a block class or component id resolves to"`
}

// MapCmd is the "map" subcommand.
type MapCmd struct {
	Page        string `arg:"" type:"existingfile" help:"HTML page to map"`
	Schema      string `short:"s" required:"" type:"existingdir" help:"Directory holding the schema files"`
	Format      string `short:"f" default:"json" enum:"json,xml,markdown" help:"Output format (json, xml, markdown)"`
	BasePath    string `name:"base-path" default:"/content/page/jcr:content/root" help:"Content path of the page root"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent block limit"`
	Sanitize    bool   `help:"Sanitize rich text before mapping"`
	Out         string `short:"o" type:"path" help:"Write the output to this directory instead of stdout"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Name   string `arg:"" help:"Block class name, or component id with --by-id"`
	Schema string `short:"s" required:"" type:"existingdir" help:"Directory holding the schema files"`
	ByID   bool   `name:"by-id" help:"Resolve a component id instead of a class name"`
}
