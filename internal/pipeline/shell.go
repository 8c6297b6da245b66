package pipeline

import (
	"html"
	"strings"
)

// Shell defaults matching the classic man2html output.
const (
	DefaultTitle      = "======"
	DefaultStylesheet = "styles.css"
)

// ShellData configures the document wrapped around the converted body.
type ShellData struct {
	Title      string // empty = DefaultTitle
	Lang       string // optional lang attribute on <html>
	Stylesheet string // href of the linked stylesheet; empty = DefaultStylesheet
	InlineCSS  string // when set, embedded as <style> instead of the link
}

// WrapDocument returns the complete HTML page for body.
func WrapDocument(body string, data *ShellData) string {
	if data == nil {
		data = &ShellData{}
	}
	title := data.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.Grow(len(body) + 256)
	b.WriteString("<!DOCTYPE html>\n")
	if data.Lang != "" {
		b.WriteString(`<html lang="` + html.EscapeString(data.Lang) + `">` + "\n")
	} else {
		b.WriteString("<html>\n")
	}
	b.WriteString("<head>\n")
	b.WriteString("\t<meta charset='UTF-8'>\n")
	b.WriteString("\t<title>" + html.EscapeString(title) + "</title>\n")
	if data.InlineCSS != "" {
		b.WriteString("\t<style>" + sanitizeCSS(data.InlineCSS) + "</style>\n")
	} else {
		href := data.Stylesheet
		if href == "" {
			href = DefaultStylesheet
		}
		b.WriteString("\t<link rel=\"stylesheet\" href=\"" + html.EscapeString(href) + "\">\n")
	}
	b.WriteString("</head>\n")
	b.WriteString("<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n")
	b.WriteString("</html>\n")
	return b.String()
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// TitleFromHeader derives a page title such as "LS(1)" from a .TH line.
// It returns false when raw is not a header line or has no name.
func TitleFromHeader(raw string) (string, bool) {
	line := ClassifyLine(raw)
	if categorize(line.Macro) != categoryHeader {
		return "", false
	}
	fields := headerFields(line.Content)
	switch len(fields) {
	case 0:
		return "", false
	case 1:
		return fields[0], true
	default:
		return fields[0] + "(" + fields[1] + ")", true
	}
}

// headerFields splits .TH arguments on spaces, keeping double-quoted
// arguments together.
func headerFields(content string) []string {
	var fields []string
	var cur strings.Builder
	quoted := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range content {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ' ' || r == '\t':
			if quoted {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}

// insertBeforeBodyEnd places block right before the last </body>, or
// appends it when the document has none.
func insertBeforeBodyEnd(doc, block string) string {
	if idx := strings.LastIndex(strings.ToLower(doc), "</body>"); idx != -1 {
		return doc[:idx] + block + doc[idx:]
	}
	return doc + block
}

// insertAfterBodyStart places block right after the opening <body> tag, or
// prepends it when the document has none.
func insertAfterBodyStart(doc, block string) string {
	lower := strings.ToLower(doc)
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if closeIdx := strings.Index(doc[idx:], ">"); closeIdx != -1 {
			pos := idx + closeIdx + 1
			return doc[:pos] + block + doc[pos:]
		}
	}
	return block + doc
}
