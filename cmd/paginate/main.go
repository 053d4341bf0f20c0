// Command paginate computes page breaks for an HTML or Markdown document
// and prints the page list as JSON. Layout is synthesized from simple text
// metrics, so the output is deterministic and browser-free.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/fields"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/pagination"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/scripting"
)

type options struct {
	inputPath  string
	format     string
	pageWidth  float64
	pageHeight float64
	margin     float64
	pageGap    float64
	withFields bool
	pretty     bool
	verbose    bool
}

type output struct {
	Units       pagination.Units       `json:"units"`
	Pages       []pagination.Page      `json:"pages"`
	Fields      []fields.FieldSegments `json:"fields,omitempty"`
	FieldValues map[string]string      `json:"fieldValues,omitempty"`
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "paginate: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "paginate: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/paginate [flags] <document>\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Use '-' to read the document from stdin.\n")
		flag.PrintDefaults()
	}
	format := flag.String("format", "auto", "Input format: html, markdown or auto (by extension)")
	pageWidth := flag.Float64("page-width", pagination.DefaultPageWidthPx, "Page width in pixels")
	pageHeight := flag.Float64("page-height", pagination.DefaultPageHeightPx, "Page height in pixels")
	margin := flag.Float64("margin", pagination.DefaultMarginPx, "Page margin in pixels, applied on all sides")
	pageGap := flag.Float64("gap", 0, "Visual gap between rendered pages in pixels")
	withFields := flag.Bool("fields", false, "Project field segments and display values onto pages")
	pretty := flag.Bool("pretty", false, "Indent the JSON output")
	verbose := flag.Bool("v", false, "Log pagination progress to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing document path")
	}
	opts.inputPath = flag.Arg(0)
	opts.format = *format
	opts.pageWidth = *pageWidth
	opts.pageHeight = *pageHeight
	opts.margin = *margin
	opts.pageGap = *pageGap
	opts.withFields = *withFields
	opts.pretty = *pretty
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	src, err := readInput(opts.inputPath)
	if err != nil {
		return err
	}

	doc, err := parseDocument(src, detectFormat(opts))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	metrics := measure.DefaultMetrics()
	metrics.ContentWidthPx = opts.pageWidth - 2*opts.margin
	if metrics.ContentWidthPx <= 0 {
		metrics.ContentWidthPx = opts.pageWidth
	}
	layout := measure.Synthesize(doc, metrics)

	logger := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		logger = observability.NewWriterLogger(os.Stderr, true)
	}

	res := pagination.GeneratePageBreaks(doc, layout,
		pagination.WithPageSize(opts.pageWidth, opts.pageHeight),
		pagination.WithMargins(pagination.Margins{
			Top: opts.margin, Bottom: opts.margin,
			Left: opts.margin, Right: opts.margin,
		}),
		pagination.WithPageGap(opts.pageGap),
		pagination.WithLogger(logger),
	)

	out := output{Units: res.Units, Pages: res.Pages}
	if opts.withFields {
		out.Fields = fields.ComputeFieldSegments(*res, layout, logger)
		out.FieldValues = fields.DisplayValues(context.Background(), doc,
			len(res.Pages), scripting.NewEngine(), logger)
	}

	enc := json.NewEncoder(os.Stdout)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func detectFormat(opts options) string {
	if opts.format != "auto" {
		return opts.format
	}
	switch strings.ToLower(filepath.Ext(opts.inputPath)) {
	case ".md", ".markdown":
		return "markdown"
	default:
		return "html"
	}
}

func parseDocument(src []byte, format string) (*dom.Document, error) {
	switch format {
	case "markdown":
		return dom.ParseMarkdown(src)
	case "html":
		return dom.ParseHTML(bytes.NewReader(src))
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
