package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/xwalk"
	"github.com/fwojciec/xwalk/bluemonday"
	"github.com/fwojciec/xwalk/etree"
	"github.com/fwojciec/xwalk/fs"
	"github.com/fwojciec/xwalk/goquery"
	"github.com/fwojciec/xwalk/htmltomarkdown"
	xslog "github.com/fwojciec/xwalk/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SchemaLoader overrides the loader reading the --schema directory.
	// Set before calling Run().
	SchemaLoader xwalk.SchemaLoader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("xwalk"),
		kong.Description("Map authored block markup into content nodes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'xwalk --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := strings.Fields(kongCtx.Command())[0]

	var schemaDir string
	switch cmd {
	case "map":
		schemaDir = cli.Map.Schema
	case "resolve":
		schemaDir = cli.Resolve.Schema
	}

	loader := m.SchemaLoader
	if loader == nil {
		loader = fs.NewSchemaLoader(schemaDir)
	}
	schema, err := xslog.NewLoggingSchemaLoader(loader, deps.Logger).LoadSchema(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: --schema must contain component-models, component-definition and component-filters files\n")
		return fmt.Errorf("failed to load schema from %q: %w", schemaDir, err)
	}
	deps.Schema = schema

	if cmd == "map" {
		mapper := goquery.NewMapper(schema)
		mapper.Logger = deps.Logger
		if cli.Map.Sanitize {
			mapper.Sanitizer = bluemonday.NewSanitizer()
		}
		blocks := xslog.NewLoggingBlockMapper(mapper, deps.Logger)
		deps.Pages = xslog.NewLoggingPageMapper(
			goquery.NewPageMapper(blocks, cli.Map.Concurrency),
			deps.Logger,
		)
		deps.Encoder, deps.Ext = newEncoder(cli.Map.Format)
	}

	return kongCtx.Run(deps)
}

// newEncoder returns the encoder for an output format and the extension of
// the files it writes.
func newEncoder(format string) (xwalk.Encoder, string) {
	switch format {
	case "xml":
		return etree.NewEncoder(), ".xml"
	case "markdown":
		return htmltomarkdown.NewEncoder(), ".md"
	}
	return fs.JSONEncoder{}, ".json"
}
