package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ResolveLinks rewrites relative stylesheet and anchor paths in doc to
// absolute file:// URLs under baseDir, so a page loaded from memory (the PDF
// renderer) still finds its stylesheet. An empty baseDir returns doc
// unchanged.
//
// Paths that escape baseDir, URLs, anchors and absolute paths are left as
// they are.
func ResolveLinks(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parseDocument(doc)
	if err != nil {
		return "", err
	}
	resolveNode(root, absBase)
	return renderDocument(root, fragment)
}

// parseDocument parses a full page, or a body fragment when doc has no
// doctype or <html> prefix.
func parseDocument(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		root, err := html.Parse(strings.NewReader(content))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderDocument renders root; fragments are rendered child by child so no
// <html><body> wrapper is added.
func renderDocument(root *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func resolveNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Link, atom.A:
			resolveAttr(n, "href", baseDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, baseDir)
	}
}

func resolveAttr(n *html.Node, key, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		abs := filepath.Join(baseDir, attr.Val)
		if !isPathUnderDir(abs, baseDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(abs)
	}
}

// isRelativePath reports whether path is a local relative path.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	for _, scheme := range []string{"http:", "https:", "file:", "data:", "mailto:", "ftp:"} {
		if strings.HasPrefix(path, scheme) {
			return false
		}
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir reports whether absPath lies within dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
