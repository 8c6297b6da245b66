package man2html

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{input: "", expected: FormatHTML},
		{input: "html", expected: FormatHTML},
		{input: "HTML", expected: FormatHTML},
		{input: "markdown", expected: FormatMarkdown},
		{input: "md", expected: FormatMarkdown},
		{input: " pdf ", expected: FormatPDF},
		{input: "docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want %v", tt.input, err, ErrInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormat_Ext(t *testing.T) {
	t.Parallel()

	tests := map[Format]string{
		FormatHTML:     ".html",
		FormatMarkdown: ".md",
		FormatPDF:      ".pdf",
		"":             ".html",
	}
	for f, want := range tests {
		if got := f.Ext(); got != want {
			t.Errorf("Format(%q).Ext() = %q, want %q", f, got, want)
		}
	}
}

func TestPageSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{name: "nil is valid", page: nil},
		{name: "zero value is valid", page: &PageSettings{}},
		{name: "defaults", page: DefaultPageSettings()},
		{name: "case-insensitive size", page: &PageSettings{Size: "A4"}},
		{name: "legal", page: &PageSettings{Size: "legal"}},
		{name: "margin at minimum", page: &PageSettings{Margin: MinMargin}},
		{name: "margin at maximum", page: &PageSettings{Margin: MaxMargin}},
		{name: "unknown size", page: &PageSettings{Size: "tabloid"}, wantErr: ErrInvalidPageSize},
		{name: "margin below minimum", page: &PageSettings{Margin: 0.1}, wantErr: ErrInvalidMargin},
		{name: "margin above maximum", page: &PageSettings{Margin: 3.5}, wantErr: ErrInvalidMargin},
		{name: "negative margin", page: &PageSettings{Margin: -1}, wantErr: ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageSettings_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                  string
		page                  *PageSettings
		width, height, margin float64
	}{
		{name: "nil uses letter", page: nil, width: 8.5, height: 11, margin: DefaultMargin},
		{name: "a4", page: &PageSettings{Size: "A4"}, width: 8.27, height: 11.69, margin: DefaultMargin},
		{name: "legal with margin", page: &PageSettings{Size: "legal", Margin: 1}, width: 8.5, height: 14, margin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, m := tt.page.dimensions()
			if w != tt.width || h != tt.height || m != tt.margin {
				t.Errorf("dimensions() = %v, %v, %v, want %v, %v, %v", w, h, m, tt.width, tt.height, tt.margin)
			}
		})
	}
}

func TestConvertResult_Bytes(t *testing.T) {
	t.Parallel()

	res := &ConvertResult{HTML: []byte("h"), Markdown: []byte("m"), PDF: []byte("p")}
	for format, want := range map[Format]string{FormatHTML: "h", FormatMarkdown: "m", FormatPDF: "p"} {
		if got := string(res.Bytes(format)); got != want {
			t.Errorf("Bytes(%q) = %q, want %q", format, got, want)
		}
	}
}
