package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// inputFlags select the pages to convert.
type inputFlags struct {
	command string
	files   []string
	manBin  string
}

// outputFlags select where results go.
type outputFlags struct {
	path   string
	print  bool
	format string
}

// documentFlags holds HTML shell flags.
type documentFlags struct {
	title      string
	lang       string
	stylesheet string
	style      string
	assetPath  string
}

// extraFlags enable the optional document stages.
type extraFlags struct {
	toc         bool
	tocTitle    string
	source      bool
	sourceStyle string
	footerMD    string
}

// pageFlags holds PDF page layout flags.
type pageFlags struct {
	size   string
	margin float64
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	input    inputFlags
	output   outputFlags
	document documentFlags
	extras   extraFlags
	page     pageFlags
	workers  int
	timeout  string
}

// parseConvertFlags parses convert command flags and returns the
// positional arguments. Usage printing is left to the caller.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	f := &convertFlags{}

	// Common flags
	fs.StringVar(&f.common.config, "config", "", "config file name or path")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.common.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVar(&f.common.noColor, "no-color", false, "disable colored warnings")

	// Input flags
	fs.StringVarP(&f.input.command, "command", "c", "", "convert the installed page for a command")
	fs.StringArrayVarP(&f.input.files, "file", "f", nil, "convert a page file (repeatable)")
	fs.StringVar(&f.input.manBin, "man", "", "man binary used to locate pages")

	// Output flags
	fs.StringVarP(&f.output.path, "output", "o", "", "output file or directory")
	fs.BoolVarP(&f.output.print, "print", "p", false, "write the result to stdout (also to -o if given)")
	fs.StringVar(&f.output.format, "format", "", "output format: html, markdown, pdf")

	// Document flags
	fs.StringVar(&f.document.title, "title", "", "document title (\"auto\" = from .TH)")
	fs.StringVar(&f.document.lang, "lang", "", "document language attribute")
	fs.StringVar(&f.document.stylesheet, "stylesheet", "", "stylesheet href (default: styles.css)")
	fs.StringVar(&f.document.style, "style", "", "inline style name or CSS file path")
	fs.StringVar(&f.document.assetPath, "asset-path", "", "directory with custom styles/")

	// Optional stages
	fs.BoolVar(&f.extras.toc, "toc", false, "add a section outline")
	fs.StringVar(&f.extras.tocTitle, "toc-title", "", "outline heading")
	fs.BoolVar(&f.extras.source, "source", false, "append the highlighted troff source")
	fs.StringVar(&f.extras.sourceStyle, "source-style", "", "chroma style for the source listing")
	fs.StringVar(&f.extras.footerMD, "footer-md", "", "Markdown note for the page footer")

	// PDF flags
	fs.StringVar(&f.page.size, "page-size", "", "page size: letter, a4, legal")
	fs.Float64Var(&f.page.margin, "margin", 0, "page margin in inches (0.25-3.0)")

	// Execution flags
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF rendering timeout (e.g., 30s, 2m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
