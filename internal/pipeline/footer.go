package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrFooterRender indicates the Markdown footer note could not be rendered.
var ErrFooterRender = errors.New("footer rendering failed")

// FooterData holds the Markdown note placed at the end of the page.
type FooterData struct {
	Markdown string
}

// FooterInjector renders and appends a footer note.
type FooterInjector interface {
	InjectFooter(ctx context.Context, doc string, data *FooterData) (string, error)
}

// MarkdownFooter implements FooterInjector with goldmark.
type MarkdownFooter struct {
	md goldmark.Markdown
}

var _ FooterInjector = (*MarkdownFooter)(nil)

// NewMarkdownFooter creates a MarkdownFooter with GFM and code highlighting.
// Raw HTML in the note is not passed through.
func NewMarkdownFooter() *MarkdownFooter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	return &MarkdownFooter{md: md}
}

// InjectFooter renders data.Markdown into a <footer> before </body>.
// A nil data or an empty note returns doc unchanged.
func (f *MarkdownFooter) InjectFooter(ctx context.Context, doc string, data *FooterData) (string, error) {
	if data == nil || data.Markdown == "" {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := f.md.Convert([]byte(data.Markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFooterRender, err)
	}
	return insertBeforeBodyEnd(doc, "<footer>\n"+buf.String()+"</footer>\n"), nil
}
