package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-man2html/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // MAN2HTML_CONFIG: config file name or path
	Format     string        // MAN2HTML_FORMAT: html, markdown, pdf
	Style      string        // MAN2HTML_STYLE: style name or CSS path
	OutputDir  string        // MAN2HTML_OUTPUT_DIR: default output directory
	Timeout    time.Duration // MAN2HTML_TIMEOUT: PDF rendering timeout
	Workers    int           // MAN2HTML_WORKERS: parallel workers
	ManBin     string        // MAN2HTML_MAN: man binary
}

// knownEnvVars lists valid MAN2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"MAN2HTML_CONFIG":     true,
	"MAN2HTML_FORMAT":     true,
	"MAN2HTML_STYLE":      true,
	"MAN2HTML_OUTPUT_DIR": true,
	"MAN2HTML_TIMEOUT":    true,
	"MAN2HTML_WORKERS":    true,
	"MAN2HTML_MAN":        true,
}

// loadEnvConfig reads the recognized MAN2HTML_* variables. Unparsable
// durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MAN2HTML_CONFIG"),
		Format:     os.Getenv("MAN2HTML_FORMAT"),
		Style:      os.Getenv("MAN2HTML_STYLE"),
		OutputDir:  os.Getenv("MAN2HTML_OUTPUT_DIR"),
		ManBin:     os.Getenv("MAN2HTML_MAN"),
	}

	if timeout := os.Getenv("MAN2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MAN2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars reports unrecognized MAN2HTML_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MAN2HTML_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values over the config file.
// Flags are merged afterwards: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Style != "" {
		cfg.Document.Style = env.Style
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout
	}
}
