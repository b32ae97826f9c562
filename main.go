package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"

	"textmapper/api"
	"textmapper/config"
	"textmapper/core"
	"textmapper/export"
	"textmapper/importer"
	"textmapper/layout"
	"textmapper/mapper"
	"textmapper/markdown"
	"textmapper/pathfinding"
	"textmapper/terminal"
	"textmapper/validation"
)

const version = "0.3.0"

// Exit code for documents that fail validation.
const exitInvalid = 2

func main() {
	// Define command line flags
	var (
		help     = flag.Bool("help", false, "Show help")
		debug    = flag.Bool("debug", false, "Log debug output to stderr")
		validate = flag.Bool("validate", false, "Validate the document and print findings before rendering")
		strict   = flag.Bool("strict", false, "Fail when a spline cannot be routed, and report unused types when validating")
		preview  = flag.Bool("preview", false, "Show the map in the terminal")

		// Export flags
		format     = flag.String("format", "svg", "Export format: svg, png, json, msgpack")
		outputFile = flag.String("o", "", "Output file (default: stdout)")

		// Input flags
		inputFormat = flag.String("input-format", "", "Input format: json, yaml, messagepack (auto-detect if not specified)")
		configFile  = flag.String("config", "", "YAML file with default options")
		metric      = flag.String("metric", "grid", "Routing metric: grid or pixel")

		// Markdown mode flags
		markdownMode = flag.Bool("markdown", false, "Render a text-mapper block from a markdown file")
		blockIndex   = flag.Int("block", 0, "Which map block to render (1-based index, 0 = only block)")

		serve     = flag.String("serve", "", "Serve the HTTP API on this address, e.g. :8080")
		cacheSize = flag.Int("cache", 1000, "Routed segments kept between documents")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [map.yaml]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders hex maps described in YAML, JSON or MessagePack documents.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s map.yaml                         # SVG to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o map.png map.yaml  # PNG file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -validate -strict map.yaml       # Check a document\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -preview map.yaml                # Browse the map in the terminal\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -markdown -block 2 README.md     # Render the 2nd text-mapper block\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config opts.yaml -serve :8080   # HTTP API\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		descriptions := export.GetFormatDescriptions()
		for _, f := range export.GetAvailableFormats() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", f, descriptions[f])
		}
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	if *debug {
		mapper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	base := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		base = loaded
	}

	routeMetric, err := parseMetric(*metric)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	opts := []mapper.Option{
		mapper.WithMetric(routeMetric),
		mapper.WithRouteCache(pathfinding.NewRouteCache(*cacheSize)),
	}
	if *strict {
		opts = append(opts, mapper.WithStrictRouting())
	}

	// Server mode does not take a document
	if *serve != "" {
		e := api.NewServer(api.NewHandlers(version, base, opts...))
		fmt.Fprintf(os.Stderr, "Serving on %s\n", *serve)
		if err := e.Start(*serve); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: Please provide a map document\n\n")
		flag.Usage()
		os.Exit(1)
	}
	filename := args[0]

	var doc *core.Document
	if *markdownMode {
		doc, err = loadMarkdownBlock(filename, *blockIndex, *inputFormat)
	} else {
		doc, err = loadDocument(filename, *inputFormat)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		validator := validation.NewDocumentValidator()
		validator.SetStrictMode(*strict)
		findings := validator.Validate(doc)
		for _, f := range findings {
			fmt.Fprintln(os.Stderr, f.String())
		}
		if validation.HasErrors(findings) {
			os.Exit(exitInvalid)
		}
	}

	opts = append([]mapper.Option{mapper.WithOptions(base)}, opts...)
	m, err := mapper.Process(doc, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error laying out map: %v\n", err)
		os.Exit(1)
	}
	if m.Empty() {
		fmt.Fprintf(os.Stderr, "Warning: %s has no regions or splines\n", filename)
	}

	if *preview {
		if err := runPreview(m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := writeMap(m, exportFormat, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting map: %v\n", err)
		os.Exit(1)
	}
}

func parseMetric(name string) (pathfinding.Metric, error) {
	switch name {
	case "grid", "":
		return pathfinding.GridMetric, nil
	case "pixel":
		return pathfinding.PixelMetric, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (want grid or pixel)", name)
	}
}

// loadDocument reads a document, picking the decoder from inputFormat,
// then the file extension, then the content.
func loadDocument(filename string, inputFormat string) (*core.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	registry := importer.NewImporterRegistry()
	if inputFormat != "" {
		return registry.ImportWithFormat(data, inputFormat)
	}
	return registry.ImportFile(filename, data)
}

// loadMarkdownBlock extracts one text-mapper block from a markdown file.
// A block without an id uses its content hash, so re-rendering an
// unchanged block keeps its element ids.
func loadMarkdownBlock(filename string, blockIndex int, inputFormat string) (*core.Document, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading markdown file: %w", err)
	}

	blocks := markdown.NewScanner(string(content)).FindMapBlocks()
	block, err := selectBlock(blocks, blockIndex)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	registry := importer.NewImporterRegistry()
	var doc *core.Document
	if inputFormat != "" {
		doc, err = registry.ImportWithFormat([]byte(block.Content), inputFormat)
	} else {
		doc, err = registry.Import([]byte(block.Content))
	}
	if err != nil {
		return nil, fmt.Errorf("importing map from markdown block: %w", err)
	}
	if doc.ID == "" {
		doc.ID = block.ID()
	}
	return doc, nil
}

var errNoBlocks = errors.New("no text-mapper blocks found")

func selectBlock(blocks []markdown.MapBlock, blockIndex int) (markdown.MapBlock, error) {
	switch {
	case len(blocks) == 0:
		return markdown.MapBlock{}, errNoBlocks
	case blockIndex > 0:
		if blockIndex > len(blocks) {
			return markdown.MapBlock{}, fmt.Errorf("block index %d is out of range (found %d blocks)", blockIndex, len(blocks))
		}
		return blocks[blockIndex-1], nil
	case len(blocks) == 1:
		return blocks[0], nil
	}

	msg := "multiple map blocks found, please specify which one with -block:"
	for i, b := range blocks {
		msg += "\n  " + markdown.FormatBlockInfo(b, i)
	}
	return markdown.MapBlock{}, errors.New(msg)
}

func writeMap(m *layout.Map, format export.Format, outputFile string) error {
	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := exporter.Export(w, m); err != nil {
		return err
	}
	if outputFile != "" {
		fmt.Fprintf(os.Stderr, "Successfully exported %s to %s\n", exporter.GetFormatName(), outputFile)
	}
	return nil
}

func runPreview(m *layout.Map) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	return terminal.NewPreview(screen, m).Run()
}
