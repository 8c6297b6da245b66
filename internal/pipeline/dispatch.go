package pipeline

import "strings"

// macroCategory groups macro tokens that are handled the same way.
type macroCategory int

const (
	categoryNone macroCategory = iota
	categoryIgnored
	categoryComment
	categoryHeader
	categoryHanging
	categoryFlushLeft
	categoryIndent
	categorySubsection
	categorySection
	categoryList
	categoryBreak
	categoryStyle
	categoryUnknown
)

// macroCategories lists the recognised macro tokens. Inline style macros
// are resolved through styleMacros.
var macroCategories = map[string]macroCategory{
	".pc": categoryIgnored,
	".ie": categoryIgnored,
	".el": categoryIgnored,
	`.\}`: categoryIgnored,
	".if": categoryIgnored,
	".TH": categoryHeader,
	".TP": categoryHanging,
	".HP": categoryHanging,
	".LP": categoryFlushLeft,
	".PP": categoryFlushLeft,
	".P":  categoryFlushLeft,
	".IP": categoryFlushLeft,
	".RS": categoryIndent,
	".RE": categoryIndent,
	".SS": categorySubsection,
	".SH": categorySection,
	".nf": categoryList,
	".fi": categoryList,
	".br": categoryBreak,
	".sp": categoryBreak,
}

// Macro tokens with behaviour of their own inside a category.
const (
	macroBeginIndent = ".RS"
	macroBeginList   = ".nf"
	macroBreak       = ".br"
)

// categorize returns the category of a macro token. The empty token is
// plain content.
func categorize(macro string) macroCategory {
	if macro == "" {
		return categoryNone
	}
	if strings.HasPrefix(macro, `.\"`) || strings.HasPrefix(macro, `'\"`) {
		return categoryComment
	}
	if cat, ok := macroCategories[macro]; ok {
		return cat
	}
	if _, ok := styleMacros[macro]; ok {
		return categoryStyle
	}
	return categoryUnknown
}

// outcome is the markup produced for one line. A final outcome is emitted
// as is; otherwise the dispatcher's column and list post-processing runs
// on it first.
type outcome struct {
	html  string
	final bool
}

func finalOutcome(html string) outcome   { return outcome{html: html, final: true} }
func pendingOutcome(html string) outcome { return outcome{html: html} }

// dispatch converts one classified line, mutating the engine's stack.
func (e *Engine) dispatch(line ClassifiedLine) outcome {
	s := &e.stack
	content := line.Content

	switch categorize(line.Macro) {
	case categoryNone:
		if content == "" {
			return pendingOutcome(s.line("<br>"))
		}
		return pendingOutcome(s.line(content))

	case categoryIgnored, categoryComment:
		return finalOutcome("")

	case categoryHeader:
		return pendingOutcome(s.line("<header>" + content + "</header>"))

	case categoryHanging:
		out := s.closeTo(rankParagraph)
		out += s.open(tagParagraph, "<p>")
		out += s.open(tagLeftColumn, "<span>")
		return finalOutcome(out)

	case categoryFlushLeft:
		out := s.closeTo(rankParagraph)
		out += s.open(tagParagraph, "<p>")
		return pendingOutcome(out)

	case categoryIndent:
		out := s.closeTo(rankIndent)
		if line.Macro == macroBeginIndent {
			out += s.open(tagParagraph, `<p class="indented">`)
		}
		return pendingOutcome(out)

	case categorySubsection:
		out := s.closeTo(rankSubsection)
		out += s.open(tagSubsection, "<section>")
		out += s.line("<h4>" + strings.Trim(content, `"`) + "</h4>")
		out += s.open(tagParagraph, "<p>")
		return pendingOutcome(out)

	case categorySection:
		out := s.closeTo(rankSection)
		out += s.open(tagSection, "<section>")
		out += s.line("<h3>" + strings.Trim(content, `"`) + "</h3>")
		out += s.open(tagParagraph, "<p>")
		return pendingOutcome(out)

	case categoryList:
		out := s.closeTo(rankList)
		if line.Macro == macroBeginList {
			out += s.open(tagList, "<ul>")
		}
		return finalOutcome(out)

	case categoryBreak:
		out := ""
		if line.Macro == macroBreak {
			if content != "" {
				out += s.line(content)
			}
			out += s.line("<br>")
		}
		return pendingOutcome(out)

	case categoryStyle:
		return pendingOutcome(s.line(RenderStyle(line.Macro, content)))

	default:
		e.reportUnknown(line.Macro)
		return finalOutcome("")
	}
}

// postProcess lets a hanging paragraph's term flow into its definition
// column and turns each content line inside a list block into an item.
func (e *Engine) postProcess(html string) string {
	s := &e.stack
	switch {
	case s.topIs(tagLeftColumn):
		html += s.closeTo(rankList)
		html += s.open(tagRightColumn, "<span>")
	case s.topIs(tagList):
		html = s.line("<li>") + html + s.line("</li>")
	}
	return html
}
