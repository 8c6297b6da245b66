package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrSourceHighlight indicates the troff source listing could not be rendered.
var ErrSourceHighlight = errors.New("source highlighting failed")

// DefaultSourceStyle is the chroma style used when none is configured.
const DefaultSourceStyle = "github"

// SourceData configures the highlighted source listing.
type SourceData struct {
	Source string // raw troff source, newline separated
	Style  string // chroma style name; empty = DefaultSourceStyle
}

// SourceInjector appends the original troff source to a document.
type SourceInjector interface {
	InjectSource(ctx context.Context, doc string, data *SourceData) (string, error)
}

// SourceListing implements SourceInjector with chroma's groff lexer.
type SourceListing struct {
	formatter *chromahtml.Formatter
}

var _ SourceInjector = (*SourceListing)(nil)

// NewSourceListing creates a SourceListing emitting class-based markup.
func NewSourceListing() *SourceListing {
	return &SourceListing{
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.WithLineNumbers(true)),
	}
}

// InjectSource highlights data.Source and inserts it in a collapsible
// <details class="source"> block before </body>, together with the
// stylesheet for the highlight classes. A nil data returns doc unchanged.
func (s *SourceListing) InjectSource(ctx context.Context, doc string, data *SourceData) (string, error) {
	if data == nil {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lexer := lexers.Get("groff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	styleName := data.Style
	if styleName == "" {
		styleName = DefaultSourceStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, data.Source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceHighlight, err)
	}

	var code strings.Builder
	if err := s.formatter.Format(&code, style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceHighlight, err)
	}
	var css strings.Builder
	if err := s.formatter.WriteCSS(&css, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceHighlight, err)
	}

	var b strings.Builder
	b.WriteString("<details class=\"source\">\n")
	b.WriteString("\t<summary>Source</summary>\n")
	b.WriteString("\t<style>" + sanitizeCSS(css.String()) + "</style>\n")
	b.WriteString(code.String())
	b.WriteString("\n</details>\n")
	return insertBeforeBodyEnd(doc, b.String()), nil
}
