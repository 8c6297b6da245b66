package pipeline

import (
	"strings"
	"unicode"
)

// fontStyle is the emphasis applied to one style fragment.
type fontStyle int

const (
	styleRoman fontStyle = iota
	styleBold
	styleItalic
)

// styleMacros maps each inline style macro to the styles applied to even
// and odd fragment positions. Single-letter macros use the same style for
// both.
var styleMacros = map[string][2]fontStyle{
	".B":  {styleBold, styleBold},
	".I":  {styleItalic, styleItalic},
	".BI": {styleBold, styleItalic},
	".IB": {styleItalic, styleBold},
	".IR": {styleItalic, styleRoman},
	".RI": {styleRoman, styleItalic},
	".BR": {styleBold, styleRoman},
	".RB": {styleRoman, styleBold},
}

func (f fontStyle) wrap(s string) string {
	switch f {
	case styleBold:
		return "<b>" + s + "</b>"
	case styleItalic:
		return "<u>" + s + "</u>"
	default:
		return s
	}
}

// RenderStyle splits translated content into fragments and wraps them
// according to macro, alternating between the macro's two styles. The
// wrapped fragments are joined with single spaces. Unknown macros leave
// the fragments unwrapped.
func RenderStyle(macro, content string) string {
	styles := styleMacros[macro]
	fragments := splitStyleFragments(content)
	for i, frag := range fragments {
		fragments[i] = styles[i%2].wrap(frag)
	}
	return strings.Join(fragments, " ")
}

// splitStyleFragments splits on runs of double quotes; if that yields a
// single fragment it is split again on whitespace. Neither split happens
// inside a tag inserted by TranslateEscapes. Blank quote fragments are
// dropped.
func splitStyleFragments(content string) []string {
	var fragments []string
	for _, frag := range splitOutsideTags(strings.Trim(content, `"`), isQuote) {
		if strings.TrimSpace(frag) != "" {
			fragments = append(fragments, frag)
		}
	}
	if len(fragments) == 1 {
		return splitOutsideTags(strings.TrimSpace(fragments[0]), unicode.IsSpace)
	}
	return fragments
}

func isQuote(r rune) bool { return r == '"' }

// splitOutsideTags splits s on maximal runs of separator runes. A run is
// not a separator when the next angle bracket after it is '>', which means
// the run sits inside a tag.
func splitOutsideTags(s string, sep func(rune) bool) []string {
	var parts []string
	start := 0
	i := 0
	for i < len(s) {
		r := rune(s[i])
		if r >= 0x80 || !sep(r) {
			i++
			continue
		}
		end := i
		for end < len(s) && s[end] < 0x80 && sep(rune(s[end])) {
			end++
		}
		if insideTag(s[end:]) {
			i = end
			continue
		}
		parts = append(parts, s[start:i])
		start = end
		i = end
	}
	return append(parts, s[start:])
}

// insideTag reports whether the first angle bracket in rest closes a tag.
func insideTag(rest string) bool {
	idx := strings.IndexAny(rest, "<>")
	return idx != -1 && rest[idx] == '>'
}
