// Package pipeline implements the troff-to-HTML conversion pipeline.
//
// The core works one source line at a time:
//   - Escape translation (troff escapes, entities, font changes, autolinks)
//   - Line classification into a macro token and translated content
//   - Macro dispatch, which drives a stack of open structural tags
//   - Inline style rendering for the .B/.I/.BR family of macros
//
// An Engine holds the mutable state of one conversion (tag stack and
// unknown-macro registry). Engines are cheap; create one per document and
// never share it between goroutines.
//
// Document-level stages run on the joined fragments afterwards: the HTML
// shell, the section outline, the highlighted source listing and the
// Markdown footer note. PDF and Markdown output are handled by the root
// man2html package.
package pipeline
