package pipeline

import (
	"slices"
	"strings"
	"testing"
)

func TestWrapDocument(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("\t<br>\n", nil)
		want := "<!DOCTYPE html>\n<html>\n<head>\n\t<meta charset='UTF-8'>\n" +
			"\t<title>======</title>\n" +
			"\t<link rel=\"stylesheet\" href=\"styles.css\">\n" +
			"</head>\n<body>\n\t<br>\n</body>\n</html>\n"
		if got != want {
			t.Errorf("WrapDocument() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("title and lang are escaped", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("", &ShellData{Title: "a<b>", Lang: "en"})
		if !strings.Contains(got, "<title>a&lt;b&gt;</title>") {
			t.Errorf("title not escaped: %s", got)
		}
		if !strings.Contains(got, "<html lang=\"en\">\n") {
			t.Errorf("lang attribute missing: %s", got)
		}
	})

	t.Run("custom stylesheet", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("", &ShellData{Stylesheet: "man.css"})
		if !strings.Contains(got, `href="man.css"`) {
			t.Errorf("stylesheet href missing: %s", got)
		}
	})

	t.Run("inline css replaces link", func(t *testing.T) {
		t.Parallel()

		got := WrapDocument("", &ShellData{InlineCSS: "p{}</style><script>"})
		if strings.Contains(got, "<link") {
			t.Errorf("link emitted alongside inline css: %s", got)
		}
		if !strings.Contains(got, `<style>p{}<\/style><script></style>`) {
			t.Errorf("inline css not sanitized: %s", got)
		}
	})
}

func TestTitleFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "name and section", input: ".TH LS 1 2024-01-01", want: "LS(1)", wantOK: true},
		{name: "quoted name", input: `.TH "GIT ADD" 1`, want: "GIT ADD(1)", wantOK: true},
		{name: "name only", input: ".TH FOO", want: "FOO", wantOK: true},
		{name: "no arguments", input: ".TH", wantOK: false},
		{name: "not a header", input: ".SH NAME", wantOK: false},
		{name: "plain text", input: "TH LS 1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := TitleFromHeader(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("TitleFromHeader(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHeaderFields(t *testing.T) {
	t.Parallel()

	got := headerFields(`LS  1 "May 2024" "GNU coreutils"`)
	want := []string{"LS", "1", "May 2024", "GNU coreutils"}
	if !slices.Equal(got, want) {
		t.Errorf("headerFields() = %q, want %q", got, want)
	}
}

func TestInsertHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		fn    func(string, string) string
		doc   string
		block string
		want  string
	}{
		{name: "before body end", fn: insertBeforeBodyEnd, doc: "<body>x</body>", block: "Y", want: "<body>xY</body>"},
		{name: "before body end uppercase", fn: insertBeforeBodyEnd, doc: "<BODY>x</BODY>", block: "Y", want: "<BODY>xY</BODY>"},
		{name: "append without body", fn: insertBeforeBodyEnd, doc: "x", block: "Y", want: "xY"},
		{name: "after body start", fn: insertAfterBodyStart, doc: "<body class=\"a\">x</body>", block: "Y", want: "<body class=\"a\">Yx</body>"},
		{name: "prepend without body", fn: insertAfterBodyStart, doc: "x", block: "Y", want: "Yx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.fn(tt.doc, tt.block); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
