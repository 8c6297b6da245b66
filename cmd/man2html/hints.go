package main

import (
	"context"
	"errors"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/assets"
	"github.com/alnah/go-man2html/internal/config"
	"github.com/alnah/go-man2html/internal/hints"
	"github.com/alnah/go-man2html/internal/manpage"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, man2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, man2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, manpage.ErrManUnavailable):
		return hints.ForManUnavailable()
	case errors.Is(err, manpage.ErrPageNotFound):
		var pe *pageError
		if errors.As(err, &pe) {
			return hints.ForPageNotFound(pe.Page)
		}
	}
	return ""
}
