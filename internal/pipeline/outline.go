package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// headingSelector matches section (h3) and subsection (h4) headings.
var headingSelector = cascadia.MustCompile("section > h3, section > h4")

// OutlineData configures the section outline.
type OutlineData struct {
	Title string // optional heading above the outline
}

// OutlineInjector adds a navigable outline of section headings.
type OutlineInjector interface {
	InjectOutline(ctx context.Context, doc string, data *OutlineData) (string, error)
}

// Outline implements OutlineInjector.
type Outline struct{}

var _ OutlineInjector = (*Outline)(nil)

// outlineEntry is one heading listed in the outline.
type outlineEntry struct {
	level int // 1 = section, 2 = subsection
	id    string
	text  string
}

// InjectOutline gives every section heading an id and inserts a
// <nav class="toc"> listing them right after <body>. A nil data or a
// document without headings is returned unchanged.
func (o *Outline) InjectOutline(ctx context.Context, doc string, data *OutlineData) (string, error) {
	if data == nil {
		return doc, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parsing document: %w", err)
	}

	headings := headingSelector.MatchAll(root)
	if len(headings) == 0 {
		return doc, nil
	}

	used := make(map[string]int)
	entries := make([]outlineEntry, 0, len(headings))
	for _, h := range headings {
		text := strings.TrimSpace(nodeText(h))
		id := uniqueSlug(slugify(text), used)
		setAttr(h, "id", id)

		level := 1
		if h.DataAtom == atom.H4 {
			level = 2
		}
		entries = append(entries, outlineEntry{level: level, id: id, text: text})
	}

	body := findBody(root)
	if body == nil {
		return doc, nil
	}
	body.InsertBefore(buildOutline(entries, data.Title), body.FirstChild)

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return b.String(), nil
}

// buildOutline creates the <nav> node for entries.
func buildOutline(entries []outlineEntry, title string) *html.Node {
	nav := element(atom.Nav, html.Attribute{Key: "class", Val: "toc"})
	if title != "" {
		h := element(atom.H2, html.Attribute{Key: "class", Val: "toc-title"})
		h.AppendChild(&html.Node{Type: html.TextNode, Data: title})
		nav.AppendChild(h)
	}

	list := element(atom.Ul)
	nav.AppendChild(list)
	for _, e := range entries {
		li := element(atom.Li, html.Attribute{Key: "class", Val: "toc-level-" + strconv.Itoa(e.level)})
		a := element(atom.A, html.Attribute{Key: "href", Val: "#" + e.id})
		a.AppendChild(&html.Node{Type: html.TextNode, Data: e.text})
		li.AppendChild(a)
		list.AppendChild(li)
	}
	return nav
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// nodeText concatenates the text nodes below n.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// slugFolder strips diacritics so "Überblick" becomes "uberblick".
var slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slugify turns heading text into an id: lower case letters and digits
// separated by single hyphens.
func slugify(text string) string {
	folded, _, err := transform.String(slugFolder, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			hyphen = false
			continue
		}
		hyphen = true
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// uniqueSlug appends -2, -3, ... to slugs already handed out.
func uniqueSlug(slug string, used map[string]int) string {
	used[slug]++
	if n := used[slug]; n > 1 {
		return slug + "-" + strconv.Itoa(n)
	}
	return slug
}
