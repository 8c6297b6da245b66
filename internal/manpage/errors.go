package manpage

import "errors"

// Sentinel errors for manual page resolution.
var (
	ErrInvalidName    = errors.New("invalid manual page name")
	ErrPageNotFound   = errors.New("manual page not found")
	ErrManUnavailable = errors.New("man command unavailable")
	ErrOpenPage       = errors.New("failed to open manual page")
	ErrReadPage       = errors.New("failed to read manual page")
)
