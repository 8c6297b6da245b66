package man2html

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// markdownConverter turns a finished HTML page into Markdown.
type markdownConverter interface {
	ToMarkdown(ctx context.Context, doc string) (string, error)
}

// htmlToMarkdown implements markdownConverter with html-to-markdown.
type htmlToMarkdown struct{}

// ToMarkdown converts doc and trims surrounding whitespace. Head content
// such as the title and stylesheet does not appear in the output.
func (htmlToMarkdown) ToMarkdown(ctx context.Context, doc string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
