package man2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidFormat      = errors.New("invalid output format")
	ErrMarkdownConversion = errors.New("markdown conversion failed")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Style errors.
	ErrStyleNotFound     = errors.New("style not found")
	ErrInvalidStylesheet = errors.New("invalid stylesheet")
	ErrInvalidAssetPath  = errors.New("invalid asset path")
)
