package man2html

import (
	"io"
	"time"

	"github.com/alnah/go-man2html/internal/pipeline"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	diagnostics   Diagnostics
	styleInput    string // name, file path, or CSS content
	resolvedStyle string // CSS inlined into every page
	stylesheet    string // href of the linked stylesheet
	lang          string
	assetPath     string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("man2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithDiagnostics sets the sink receiving unknown macros. The default
// discards them.
func WithDiagnostics(d Diagnostics) Option {
	return func(c *Converter) {
		c.cfg.diagnostics = d
	}
}

// WithDiagnosticsWriter writes one plain line per unknown macro to w.
func WithDiagnosticsWriter(w io.Writer) Option {
	return func(c *Converter) {
		c.cfg.diagnostics = pipeline.WriterDiagnostics{W: w}
	}
}

// WithStyle inlines a stylesheet into every page instead of linking one.
// The value is an embedded style name ("default", "dark", "plain"), a path
// to a CSS file, or raw CSS content. An http(s) URL is linked instead of
// inlined and takes precedence over WithStylesheet.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithStylesheet sets the href of the linked stylesheet (default
// "styles.css"). Ignored when WithStyle is set.
func WithStylesheet(href string) Option {
	return func(c *Converter) {
		c.cfg.stylesheet = href
	}
}

// WithLang sets the lang attribute of the <html> element.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}

// WithAssetPath adds a directory of custom styles (styles/NAME.css) looked up
// before the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}
