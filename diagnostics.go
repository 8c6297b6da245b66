package man2html

import "github.com/alnah/go-man2html/internal/pipeline"

// Diagnostics receives the conversion's non-fatal findings. Unknown is
// called once per distinct unknown macro and conversion.
type Diagnostics interface {
	Unknown(macro string)
}

var _ pipeline.Diagnostics = Diagnostics(nil)

// unknownCollector records unknown macros for ConvertResult and forwards
// them to the configured sink.
type unknownCollector struct {
	next   Diagnostics
	macros []string
}

func (u *unknownCollector) Unknown(macro string) {
	u.macros = append(u.macros, macro)
	if u.next != nil {
		u.next.Unknown(macro)
	}
}
