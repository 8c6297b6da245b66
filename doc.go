// Package man2html converts troff manual pages (the man macro package) to
// HTML, Markdown, or PDF.
//
// # Quick Start
//
//	conv, err := man2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, man2html.Input{
//	    Lines: []string{".TH LS 1", ".SH NAME", `ls \- list directory contents`},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("ls.html", result.HTML, 0644)
//
// # Conversion Pipeline
//
//  1. Line conversion: each source line is translated (troff escapes to
//     HTML), classified by its leading macro and dispatched against a stack
//     of open elements. Every line yields one indented HTML fragment.
//  2. Document shell: the fragments are wrapped in a complete page with a
//     linked or inlined stylesheet.
//  3. Optional stages: a section outline, the highlighted troff source and a
//     Markdown footer note.
//  4. Output: the HTML page itself, Markdown, or PDF via headless Chrome.
//
// Use Converter.Stream to get the raw fragments of stage 1 as they are
// produced.
//
// # Configuration
//
//	conv, err := man2html.NewConverter(
//	    man2html.WithStyle("dark"),
//	    man2html.WithDiagnosticsWriter(os.Stderr),
//	    man2html.WithTimeout(time.Minute),
//	)
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool to share a bounded number of
// converters (each with its own browser) between goroutines:
//
//	pool := man2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
package man2html
