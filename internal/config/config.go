package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength      = 200
	MaxLangLength       = 35 // BCP 47 tags stay well under this
	MaxURLLength        = 2048
	MaxStyleLength      = 4096 // name or path
	MaxDirLength        = 4096
	MaxTOCTitleLength   = 100
	MaxMarkdownLength   = 10000
	MaxPageSizeLength   = 10
	MaxSourceStyleLength = 64
)

// Margin bounds in inches.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// ConfigDirName is the directory searched under the user config dir.
const ConfigDirName = "go-man2html"

// Config holds all configuration for page conversion.
type Config struct {
	Document    DocumentConfig    `yaml:"document"`
	Output      OutputConfig      `yaml:"output"`
	TOC         TOCConfig         `yaml:"toc"`
	Source      SourceConfig      `yaml:"source"`
	Footer      FooterConfig      `yaml:"footer"`
	PDF         PDFConfig         `yaml:"pdf"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// DocumentConfig defines the HTML shell.
type DocumentConfig struct {
	Title      string `yaml:"title"`      // Empty = "======"; "auto" = from .TH
	Lang       string `yaml:"lang"`       // <html lang>, empty = omitted
	Stylesheet string `yaml:"stylesheet"` // <link> href (default: styles.css)
	Style      string `yaml:"style"`      // Embedded style name or CSS file path, inlined
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Format     string `yaml:"format"`     // "html", "markdown", "pdf" (default: html)
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// TOCConfig defines the section outline.
type TOCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
}

// SourceConfig defines the highlighted source listing.
type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name
}

// FooterConfig defines the Markdown footer note.
type FooterConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Markdown string `yaml:"markdown"`
}

// PDFConfig defines PDF rendering.
type PDFConfig struct {
	PageSize string        `yaml:"pageSize"` // "letter", "a4", "legal"
	Margin   float64       `yaml:"margin"`   // inches, 0 = default
	Timeout  time.Duration `yaml:"timeout"`  // 0 = default
}

// DiagnosticsConfig defines warning output.
type DiagnosticsConfig struct {
	Quiet bool  `yaml:"quiet"`
	Color *bool `yaml:"color"` // nil = auto-detect
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"document.stylesheet", c.Document.Stylesheet, MaxURLLength},
		{"document.style", c.Document.Style, MaxStyleLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxDirLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"source.style", c.Source.Style, MaxSourceStyleLength},
		{"footer.markdown", c.Footer.Markdown, MaxMarkdownLength},
		{"pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Output.Format) {
	case "", "html", "markdown", "md", "pdf":
	default:
		return fmt.Errorf("%w: output.format %q (must be html, markdown, or pdf)", ErrInvalidValue, c.Output.Format)
	}

	switch strings.ToLower(c.PDF.PageSize) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.PageSize)
	}

	if c.PDF.Margin != 0 && (c.PDF.Margin < MinMargin || c.PDF.Margin > MaxMargin) {
		return fmt.Errorf("%w: pdf.margin %.2f (must be between %.2f and %.2f)", ErrInvalidValue, c.PDF.Margin, MinMargin, MaxMargin)
	}
	if c.PDF.Timeout < 0 {
		return fmt.Errorf("%w: pdf.timeout %v is negative", ErrInvalidValue, c.PDF.Timeout)
	}

	if c.Footer.Enabled && strings.TrimSpace(c.Footer.Markdown) == "" {
		return fmt.Errorf("%w: footer.markdown required when footer is enabled", ErrInvalidValue)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration with every optional stage disabled.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "html"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath tries NAME.yaml and NAME.yml in the current directory,
// then in the user config directory.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, ConfigDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
