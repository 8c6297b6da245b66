package pipeline

import "strings"

// tagKind identifies a structural element held open on the tag stack.
type tagKind int

const (
	tagParagraph tagKind = iota + 1
	tagLeftColumn
	tagRightColumn
	tagList
	tagListItem
	tagSection
	tagSubsection
)

var tagKindNames = map[tagKind]string{
	tagParagraph:   "paragraph",
	tagLeftColumn:  "left-column",
	tagRightColumn: "right-column",
	tagList:        "list",
	tagListItem:    "list-item",
	tagSection:     "section",
	tagSubsection:  "subsection",
}

func (k tagKind) String() string {
	if name, ok := tagKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Ranks passed to closeTo by the dispatcher.
const (
	rankAll        = 0
	rankSection    = 1
	rankSubsection = 2
	rankParagraph  = 3
	rankList       = 4
	rankIndent     = 5
)

// closeRule is one row of the closing cascade: if the requested rank is at
// most maxRank and the top of the stack is one of kinds, the top is popped
// and markup emitted.
type closeRule struct {
	maxRank int
	kinds   []tagKind
	markup  string
}

// closeCascade is walked top to bottom on every closeTo call, re-reading
// the stack top after each pop. Each row pops at most once, which bounds
// how deep a single call can close.
var closeCascade = []closeRule{
	{maxRank: 6, kinds: []tagKind{tagParagraph}, markup: "</p>"},
	{maxRank: 5, kinds: []tagKind{tagListItem}, markup: "</li>"},
	{maxRank: 4, kinds: []tagKind{tagList}, markup: "</ul>"},
	{maxRank: 4, kinds: []tagKind{tagLeftColumn, tagRightColumn}, markup: "</span>"},
	{maxRank: 3, kinds: []tagKind{tagParagraph}, markup: "</p>"},
	{maxRank: 2, kinds: []tagKind{tagSubsection}, markup: "</section>"},
	{maxRank: 1, kinds: []tagKind{tagSection}, markup: "</section>"},
}

// tagStack holds the open structural tags, innermost last.
type tagStack struct {
	tags []tagKind
}

// depth returns the number of open tags.
func (s *tagStack) depth() int {
	return len(s.tags)
}

// top returns the innermost open tag, or false when the stack is empty.
func (s *tagStack) top() (tagKind, bool) {
	if len(s.tags) == 0 {
		return 0, false
	}
	return s.tags[len(s.tags)-1], true
}

func (s *tagStack) topIs(kinds ...tagKind) bool {
	t, ok := s.top()
	if !ok {
		return false
	}
	for _, k := range kinds {
		if t == k {
			return true
		}
	}
	return false
}

// indent returns the line prefix for markup emitted at the current depth.
func (s *tagStack) indent() string {
	return strings.Repeat("\t", len(s.tags)+1)
}

// line formats one line of output at the current depth.
func (s *tagStack) line(markup string) string {
	return s.indent() + markup + "\n"
}

// open emits markup at the current depth, then pushes kind.
func (s *tagStack) open(kind tagKind, markup string) string {
	out := s.line(markup)
	s.tags = append(s.tags, kind)
	return out
}

// closeTo walks closeCascade for rank (0 closes everything reachable in one
// call) and returns the closing markup. Mismatched or empty stacks are a
// no-op.
func (s *tagStack) closeTo(rank int) string {
	var b strings.Builder
	for _, rule := range closeCascade {
		if rank > rule.maxRank || !s.topIs(rule.kinds...) {
			continue
		}
		s.tags = s.tags[:len(s.tags)-1]
		b.WriteString(s.line(rule.markup))
	}
	return b.String()
}
