package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/config"
)

// ErrInvalidTimeout reports an unparsable or non-positive --timeout.
var ErrInvalidTimeout = errors.New("invalid timeout")

// conversionParams groups parameters shared across batch/page conversion.
type conversionParams struct {
	input  man2html.Input // Lines and BaseDir are filled per page
	format man2html.Format
	pages  pageLoader // nil when no command names were given
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	// Load configuration: flags > env > config file > defaults
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	quiet := flags.common.quiet || cfg.Diagnostics.Quiet
	if !quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	format, err := man2html.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	sources, err := collectSources(flags.input.command, flags.input.files, positionalArgs)
	if err != nil {
		return err
	}
	pages, err := planOutputs(sources, outputTarget{
		path:       flags.output.path,
		print:      flags.output.print,
		defaultDir: cfg.Output.DefaultDir,
	}, format)
	if err != nil {
		return err
	}

	params := &conversionParams{
		input:  buildInputTemplate(cfg, format),
		format: format,
	}
	if slices.ContainsFunc(sources, func(s source) bool { return s.Command }) {
		manBin := flags.input.manBin
		if manBin == "" {
			manBin = envCfg.ManBin
		}
		params.pages = env.Pages(manBin)
	}

	pool := env.NewPool(man2html.ResolvePoolSize(workers), buildOptions(flags, cfg)...)
	defer func() { _ = pool.Close() }()

	start := env.Now()
	results := convertBatch(ctx, pool, pages, params, env)

	if initErr := pool.InitError(); initErr != nil {
		return initErr
	}

	warnings := newWarningPrinter(env.Stderr, colorSetting(flags, cfg))
	failed := printResultsWithWriter(results, quiet, flags.common.verbose, printsToStdout(pages), env, warnings)
	if flags.common.verbose && !quiet {
		fmt.Fprintf(env.Stderr, "total: %v with %d worker(s)\n", env.Now().Sub(start).Round(time.Millisecond), pool.Size())
	}
	if len(results) == 1 && failed == 1 {
		return results[0].Err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", failed, len(results))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) error {
	if flags.output.format != "" {
		cfg.Output.Format = flags.output.format
	}

	// Document flags
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.stylesheet != "" {
		cfg.Document.Stylesheet = flags.document.stylesheet
	}
	if flags.document.style != "" {
		cfg.Document.Style = flags.document.style
	}

	// Optional stages: a value flag turns its stage on
	if flags.extras.toc {
		cfg.TOC.Enabled = true
	}
	if flags.extras.tocTitle != "" {
		cfg.TOC.Enabled = true
		cfg.TOC.Title = flags.extras.tocTitle
	}
	if flags.extras.source {
		cfg.Source.Enabled = true
	}
	if flags.extras.sourceStyle != "" {
		cfg.Source.Enabled = true
		cfg.Source.Style = flags.extras.sourceStyle
	}
	if flags.extras.footerMD != "" {
		cfg.Footer.Enabled = true
		cfg.Footer.Markdown = flags.extras.footerMD
	}

	// PDF flags
	if flags.page.size != "" {
		cfg.PDF.PageSize = flags.page.size
	}
	if flags.page.margin != 0 {
		cfg.PDF.Margin = flags.page.margin
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flags.timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flags.timeout)
		}
		cfg.PDF.Timeout = d
	}

	if flags.common.quiet {
		cfg.Diagnostics.Quiet = true
	}
	return nil
}

// buildOptions maps the merged config onto converter options.
func buildOptions(flags *convertFlags, cfg *config.Config) []man2html.Option {
	var opts []man2html.Option
	if cfg.Document.Style != "" {
		opts = append(opts, man2html.WithStyle(cfg.Document.Style))
	}
	if cfg.Document.Stylesheet != "" {
		opts = append(opts, man2html.WithStylesheet(cfg.Document.Stylesheet))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, man2html.WithLang(cfg.Document.Lang))
	}
	if flags.document.assetPath != "" {
		opts = append(opts, man2html.WithAssetPath(flags.document.assetPath))
	}
	if cfg.PDF.Timeout > 0 {
		opts = append(opts, man2html.WithTimeout(cfg.PDF.Timeout))
	}
	return opts
}

// buildInputTemplate returns the input shared by every page.
func buildInputTemplate(cfg *config.Config, format man2html.Format) man2html.Input {
	input := man2html.Input{
		Title:  cfg.Document.Title,
		Format: format,
	}
	if format == man2html.FormatPDF {
		input.Page = &man2html.PageSettings{Size: cfg.PDF.PageSize, Margin: cfg.PDF.Margin}
	}
	if cfg.TOC.Enabled {
		input.TOC = &man2html.TOC{Title: cfg.TOC.Title}
	}
	if cfg.Source.Enabled {
		input.Listing = &man2html.Listing{Style: cfg.Source.Style}
	}
	if cfg.Footer.Enabled {
		input.Note = &man2html.Note{Markdown: cfg.Footer.Markdown}
	}
	return input
}

// colorSetting returns the forced color mode, or nil for auto-detect.
func colorSetting(flags *convertFlags, cfg *config.Config) *bool {
	if flags.common.noColor {
		off := false
		return &off
	}
	return cfg.Diagnostics.Color
}
