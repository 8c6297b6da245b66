package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// warningPrinter writes unknown-macro warnings, yellow on a terminal.
type warningPrinter struct {
	w     io.Writer
	color *color.Color
}

// newWarningPrinter returns a printer for w. enabled forces color on or
// off; nil leaves the decision to fatih/color, which honors NO_COLOR and
// checks for a terminal. Writers other than os.Stderr never get color.
func newWarningPrinter(w io.Writer, enabled *bool) *warningPrinter {
	c := color.New(color.FgYellow)
	switch {
	case w != io.Writer(os.Stderr):
		c.DisableColor()
	case enabled == nil:
	case *enabled:
		c.EnableColor()
	default:
		c.DisableColor()
	}
	return &warningPrinter{w: w, color: c}
}

// UnknownMacro reports one macro the converter did not recognize.
func (p *warningPrinter) UnknownMacro(source, macro string) {
	p.color.Fprintf(p.w, "warning: unknown macro %q", macro)
	fmt.Fprintf(p.w, " in %s\n", source)
}
