package pipeline

import (
	"regexp"
	"strings"
)

// rewriteRule is a single regular expression substitution.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Unicode-aware stand-ins for RE2's ASCII-only escape classes.
const (
	wordClass  = `\p{L}\p{N}_`
	spaceClass = `\s\v\x1c-\x1f\x85\p{Z}`
	digitClass = `\p{Nd}`
)

// escapeRules are applied in order, each on the output of the previous one.
// Reordering changes the output: the ampersand rule cannot see entities
// produced by later rules, and the bold/italic rules rely on the reset
// escapes inserted just before them.
var escapeRules = []rewriteRule{
	{regexp.MustCompile(`\\e`), `\`},
	{regexp.MustCompile(`\\".*`), ``},
	{regexp.MustCompile(`\\w'([` + wordClass + `]*)'u`), `${1}`},
	{regexp.MustCompile(`\\-`), `-`},
	{regexp.MustCompile(`\\[c|&/du%]`), ``},
	{regexp.MustCompile(`\\m\[.*?\]`), ``},
	{regexp.MustCompile(`\\s[+-][` + digitClass + `]+`), ``},
	{regexp.MustCompile(`\\[` + spaceClass + `]`), `&nbsp;`},
	{regexp.MustCompile(`&([` + wordClass + `]*[` + spaceClass + `])`), `&amp;${1}`},
	{regexp.MustCompile(`<`), `&lt;`},
	{regexp.MustCompile(`>`), `&gt;`},
	{regexp.MustCompile(`\\\([lr]q`), `"`},
	{regexp.MustCompile(`\\\([ac]q`), `'`},
	{regexp.MustCompile(`\\\*\(Aq`), ``},
	{regexp.MustCompile(`(\\f[` + wordClass + `])`), `\fR${1}`},
	{regexp.MustCompile(`\\fP`), `\fR`},
	{regexp.MustCompile(`\\fB(.+?)(?:\\fR|$)`), `<b>${1}</b>`},
	{regexp.MustCompile(`\\fI(.+?)(?:\\fR|$)`), `<u>${1}</u>`},
	{regexp.MustCompile(`\\fR`), ``},
	{regexp.MustCompile(`([a-zA-Z0-9_.+-]+@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z0-9.-]+)`), `<a href="mailto:${1}">${1}</a>`},
	{regexp.MustCompile(`((?:https?|ftp|file):/{2,3}[` + digitClass + `a-z.-]+\.?(?:[a-z.]{2,6})?[~#/` + wordClass + `.-]*/?)`), `<a href="${1}">${1}</a>`},
}

// TranslateEscapes rewrites troff escapes and inline font changes in text
// into HTML and trims the result. It is not idempotent: running it twice
// escapes the entities produced by the first run.
func TranslateEscapes(text string) string {
	for _, r := range escapeRules {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return strings.TrimSpace(text)
}
