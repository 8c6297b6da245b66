package main

import (
	"errors"
	"os"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/config"
	"github.com/alnah/go-man2html/internal/manpage"
)

// Exit codes for the man2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Page not found, unreadable input, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, man2html.ErrBrowserConnect) ||
		errors.Is(err, man2html.ErrPageCreate) ||
		errors.Is(err, man2html.ErrPageLoad) ||
		errors.Is(err, man2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, manpage.ErrPageNotFound) ||
		errors.Is(err, manpage.ErrManUnavailable) ||
		errors.Is(err, manpage.ErrOpenPage) ||
		errors.Is(err, manpage.ErrReadPage) ||
		errors.Is(err, ErrNoPages) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, man2html.ErrInvalidFormat) ||
		errors.Is(err, man2html.ErrInvalidPageSize) ||
		errors.Is(err, man2html.ErrInvalidMargin) ||
		errors.Is(err, man2html.ErrStyleNotFound) ||
		errors.Is(err, man2html.ErrInvalidStylesheet) ||
		errors.Is(err, man2html.ErrInvalidAssetPath) ||
		errors.Is(err, manpage.ErrInvalidName) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrPrintMultiple) ||
		errors.Is(err, ErrOutputNotDir) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}
