package pipeline

import (
	"strings"
	"unicode"
)

// ClassifiedLine is a source line split into its macro token and content.
// Macro is empty for plain text lines. Content has already been passed
// through TranslateEscapes.
type ClassifiedLine struct {
	Macro   string
	Content string
}

// ClassifyLine detects a leading control character ('.' or '\'') followed
// by a run of non-space characters. That run, control character included,
// is the macro token; the rest of the line after one separator is the
// content. Lines without a macro token are translated whole.
func ClassifyLine(raw string) ClassifiedLine {
	macro := macroToken(raw)
	if macro == "" {
		return ClassifiedLine{Content: TranslateEscapes(strings.TrimSpace(raw))}
	}

	rest := ""
	if len(raw) > len(macro)+1 {
		rest = raw[len(macro)+1:]
	}
	return ClassifiedLine{
		Macro:   macro,
		Content: TranslateEscapes(strings.TrimSpace(rest)),
	}
}

// macroToken returns the control character plus the following non-space
// run, or "" when the line does not start with a macro.
func macroToken(raw string) string {
	if raw == "" || (raw[0] != '.' && raw[0] != '\'') {
		return ""
	}
	end := strings.IndexFunc(raw[1:], unicode.IsSpace)
	if end == -1 {
		end = len(raw) - 1
	}
	if end == 0 {
		return ""
	}
	return raw[:end+1]
}
