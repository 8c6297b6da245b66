package man2html

import (
	"fmt"
	"strings"
)

// Format selects the output produced by Convert.
type Format string

// Output formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ParseFormat parses a format name, case-insensitively. Empty is HTML and
// "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q (must be html, markdown, or pdf)", ErrInvalidFormat, s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatPDF:
		return ".pdf"
	default:
		return ".html"
	}
}

// TitleAuto asks Convert to take the document title from the .TH header.
const TitleAuto = "auto"

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds and default in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// pageDimensions maps page sizes to width and height in inches.
var pageDimensions = map[string]struct{ width, height float64 }{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size   string  // "letter" (default), "a4", "legal"
	Margin float64 // inches; 0 = DefaultMargin
}

// DefaultPageSettings returns US Letter with 0.5 inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{Size: PageSizeLetter, Margin: DefaultMargin}
}

// Validate checks page size and margin. A nil receiver is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Size != "" {
		if _, ok := pageDimensions[strings.ToLower(p.Size)]; !ok {
			return fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, p.Size)
		}
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns width, height and margin in inches, filling defaults.
func (p *PageSettings) dimensions() (width, height, margin float64) {
	size, margin := PageSizeLetter, DefaultMargin
	if p != nil {
		if p.Size != "" {
			size = strings.ToLower(p.Size)
		}
		if p.Margin != 0 {
			margin = p.Margin
		}
	}
	d := pageDimensions[size]
	return d.width, d.height, margin
}

// TOC requests a section outline at the top of the page.
type TOC struct {
	Title string // optional heading above the outline
}

// Listing requests the highlighted troff source at the end of the page.
type Listing struct {
	Style string // chroma style name; empty = "github"
}

// Note is a Markdown note rendered into the page footer.
type Note struct {
	Markdown string
}

// Input contains the data for a single conversion.
type Input struct {
	Lines   []string // troff source, one entry per line; may be empty
	Title   string   // empty = "======"; TitleAuto = from .TH
	Format  Format   // empty = FormatHTML
	Page    *PageSettings
	TOC     *TOC
	Listing *Listing
	Note    *Note
	BaseDir string // relative links resolve against it for PDF rendering
}

// ConvertResult holds the output of a conversion. HTML is always set;
// Markdown and PDF only for their format.
type ConvertResult struct {
	HTML     []byte
	Markdown []byte
	PDF      []byte
	Title    string   // title written to the document
	Unknown  []string // unknown macros, in order of first appearance
}

// Bytes returns the output for format.
func (r *ConvertResult) Bytes(format Format) []byte {
	switch format {
	case FormatMarkdown:
		return r.Markdown
	case FormatPDF:
		return r.PDF
	default:
		return r.HTML
	}
}
