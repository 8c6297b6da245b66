package man2html

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/aymerick/douceur/parser"

	"github.com/alnah/go-man2html/internal/assets"
	"github.com/alnah/go-man2html/internal/fileutil"
	"github.com/alnah/go-man2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.OutlineInjector = (*pipeline.Outline)(nil)
	_ pipeline.SourceInjector  = (*pipeline.SourceListing)(nil)
	_ pipeline.FooterInjector  = (*pipeline.MarkdownFooter)(nil)
	_ pdfConverter             = (*rodConverter)(nil)
	_ pdfRenderer              = (*rodRenderer)(nil)
	_ markdownConverter        = htmlToMarkdown{}
)

// Converter turns manual pages into documents.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg         converterConfig
	assetLoader assets.StyleLoader
	outline     pipeline.OutlineInjector
	source      pipeline.SourceInjector
	footer      pipeline.FooterInjector
	markdown    markdownConverter
	pdf         pdfConverter
}

// NewConverter creates a Converter. Returns an error if the style cannot be
// resolved.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		assetLoader: assets.NewEmbeddedLoader(),
		outline:     &pipeline.Outline{},
		source:      pipeline.NewSourceListing(),
		footer:      pipeline.NewMarkdownFooter(),
		markdown:    htmlToMarkdown{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Tests inject a mock through withPDFConverter.
	if c.pdf == nil {
		c.pdf = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline. HTML is always produced; Markdown and PDF
// are produced for their format only.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	format, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	collector := &unknownCollector{next: c.cfg.diagnostics}
	engine := pipeline.NewEngine(collector)

	var body strings.Builder
	for fragment := range engine.Convert(slices.Values(input.Lines)) {
		body.WriteString(fragment)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	title := resolveTitle(input.Title, input.Lines)
	doc := pipeline.WrapDocument(body.String(), &pipeline.ShellData{
		Title:      title,
		Lang:       c.cfg.lang,
		Stylesheet: c.cfg.stylesheet,
		InlineCSS:  c.cfg.resolvedStyle,
	})

	if input.TOC != nil {
		doc, err = c.outline.InjectOutline(ctx, doc, &pipeline.OutlineData{Title: input.TOC.Title})
		if err != nil {
			return nil, fmt.Errorf("injecting outline: %w", err)
		}
	}
	if input.Listing != nil {
		doc, err = c.source.InjectSource(ctx, doc, &pipeline.SourceData{
			Source: strings.Join(input.Lines, "\n"),
			Style:  input.Listing.Style,
		})
		if err != nil {
			return nil, fmt.Errorf("injecting source listing: %w", err)
		}
	}
	if input.Note != nil {
		doc, err = c.footer.InjectFooter(ctx, doc, &pipeline.FooterData{Markdown: input.Note.Markdown})
		if err != nil {
			return nil, fmt.Errorf("injecting footer: %w", err)
		}
	}

	res := &ConvertResult{
		HTML:    []byte(doc),
		Title:   title,
		Unknown: collector.macros,
	}

	switch format {
	case FormatMarkdown:
		md, err := c.markdown.ToMarkdown(ctx, doc)
		if err != nil {
			return nil, err
		}
		res.Markdown = []byte(md)
	case FormatPDF:
		if input.BaseDir != "" {
			doc, err = pipeline.ResolveLinks(doc, input.BaseDir)
			if err != nil {
				return nil, fmt.Errorf("resolving links: %w", err)
			}
		}
		pdf, err := c.pdf.ToPDF(ctx, doc, &pdfOptions{Page: input.Page})
		if err != nil {
			return nil, fmt.Errorf("converting to PDF: %w", err)
		}
		res.PDF = pdf
	}

	return res, nil
}

// Stream converts lines and yields the body fragments as they are
// produced: one per line, then the closing fragment. No document shell is
// added. Like the engine underneath, the sequence is single-pass, and it
// stops early when ctx is done.
func (c *Converter) Stream(ctx context.Context, lines iter.Seq[string]) iter.Seq[string] {
	var diag pipeline.Diagnostics = pipeline.DiscardDiagnostics{}
	if c.cfg.diagnostics != nil {
		diag = c.cfg.diagnostics
	}
	fragments := pipeline.NewEngine(diag).Convert(lines)

	return func(yield func(string) bool) {
		for fragment := range fragments {
			if ctx.Err() != nil {
				return
			}
			if !yield(fragment) {
				return
			}
		}
	}
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdf != nil {
		return c.pdf.Close()
	}
	return nil
}

// Styles lists the style names WithStyle accepts.
func (c *Converter) Styles() []string {
	return c.assetLoader.Styles()
}

// resolveTitle applies the TitleAuto rule. Without a usable .TH header the
// default title is kept.
func resolveTitle(title string, lines []string) string {
	if title != TitleAuto {
		return title
	}
	for _, line := range lines {
		if t, ok := pipeline.TitleFromHeader(line); ok {
			return t
		}
	}
	return ""
}

// resolveStyle resolves the style input (CSS content, URL, path, or name).
// CSS content and files are parsed before they are accepted; a URL
// replaces the linked stylesheet instead of being inlined.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsCSS(input) {
		if err := validateCSS(input); err != nil {
			return err
		}
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsURL(input) {
		c.cfg.stylesheet = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		if err := validateCSS(string(content)); err != nil {
			return fmt.Errorf("style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateCSS parses css and rejects it when it cannot be parsed or holds
// no rules.
func validateCSS(css string) error {
	sheet, err := parser.Parse(css)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStylesheet, err)
	}
	if len(sheet.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidStylesheet)
	}
	return nil
}

// validateInput checks the fields Convert depends on and returns the
// effective format.
func (c *Converter) validateInput(input Input) (Format, error) {
	format, err := ParseFormat(string(input.Format))
	if err != nil {
		return "", err
	}
	if err := input.Page.Validate(); err != nil {
		return "", err
	}
	return format, nil
}
