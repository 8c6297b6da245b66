package pipeline

import (
	"fmt"
	"io"
	"iter"
	"sync/atomic"
)

// Diagnostics receives side-channel messages raised during conversion.
// Unknown is called at most once per distinct macro token per Engine.
type Diagnostics interface {
	Unknown(macro string)
}

// DiscardDiagnostics ignores every diagnostic.
type DiscardDiagnostics struct{}

// Unknown implements Diagnostics.
func (DiscardDiagnostics) Unknown(string) {}

// WriterDiagnostics writes one line per diagnostic to W.
type WriterDiagnostics struct {
	W io.Writer
}

// Unknown implements Diagnostics.
func (d WriterDiagnostics) Unknown(macro string) {
	fmt.Fprintf(d.W, "Unknown macros: %q\n", macro)
}

// Compile-time interface checks.
var (
	_ Diagnostics = DiscardDiagnostics{}
	_ Diagnostics = WriterDiagnostics{}
)

// Engine converts one troff document. It owns the tag stack and the
// registry of unknown macros already reported; both start empty and are
// never shared with other engines.
type Engine struct {
	stack    tagStack
	unknown  map[string]struct{}
	diag     Diagnostics
	consumed atomic.Bool
}

// NewEngine creates an Engine reporting to diag. A nil diag discards
// diagnostics.
func NewEngine(diag Diagnostics) *Engine {
	if diag == nil {
		diag = DiscardDiagnostics{}
	}
	return &Engine{
		unknown: make(map[string]struct{}),
		diag:    diag,
	}
}

// Line converts a single raw source line into an HTML fragment, which may
// be empty.
func (e *Engine) Line(raw string) string {
	out := e.dispatch(ClassifyLine(raw))
	if out.final {
		return out.html
	}
	return e.postProcess(out.html)
}

// Close closes every tag still open and returns the closing markup.
// Calling it again returns "".
func (e *Engine) Close() string {
	return e.stack.closeTo(rankAll)
}

// Depth returns the number of structural tags currently open.
func (e *Engine) Depth() int {
	return e.stack.depth()
}

// Convert returns a lazy sequence of fragments: one per line of lines,
// then the closing fragment. The sequence can be ranged over once; later
// iterations yield nothing.
func (e *Engine) Convert(lines iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !e.consumed.CompareAndSwap(false, true) {
			return
		}
		for raw := range lines {
			if !yield(e.Line(raw)) {
				return
			}
		}
		yield(e.Close())
	}
}

// reportUnknown records macro and forwards it to the diagnostics sink the
// first time it is seen.
func (e *Engine) reportUnknown(macro string) {
	if _, seen := e.unknown[macro]; seen {
		return
	}
	e.unknown[macro] = struct{}{}
	e.diag.Unknown(macro)
}
