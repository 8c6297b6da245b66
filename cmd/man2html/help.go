package main

import (
	"fmt"
	"io"
)

// printUsage prints the top-level usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "man2html converts manual pages to HTML, Markdown, or PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  man2html [convert] [flags] [page|file|dir ...]")
	fmt.Fprintln(w, "  man2html version")
	fmt.Fprintln(w, "  man2html help [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert   Convert pages (default)")
	fmt.Fprintln(w, "  version   Print the version")
	fmt.Fprintln(w, "  help      Show help for a command")
}

// printConvertUsage prints the convert command usage.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: man2html [convert] [flags] [page|file|dir ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments name installed pages (ls), page files (ls.1, ls.1.gz),")
	fmt.Fprintln(w, "or directories searched for page files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -c, --command NAME     Convert the installed page for NAME")
	fmt.Fprintln(w, "  -f, --file PATH        Convert a page file (repeatable)")
	fmt.Fprintln(w, "      --man BIN          man binary used to locate pages (default: man)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output PATH      Output file or directory")
	fmt.Fprintln(w, "  -p, --print            Write the result to stdout (also to -o if given)")
	fmt.Fprintln(w, "      --format FORMAT    html, markdown, or pdf (default: html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title TITLE      Document title (\"auto\" = from .TH)")
	fmt.Fprintln(w, "      --lang LANG        <html lang> attribute")
	fmt.Fprintln(w, "      --stylesheet HREF  Linked stylesheet (default: styles.css)")
	fmt.Fprintln(w, "      --style NAME|PATH  Inline an embedded style or CSS file")
	fmt.Fprintln(w, "      --asset-path DIR   Directory holding styles/NAME.css")
	fmt.Fprintln(w, "      --toc              Add a section outline")
	fmt.Fprintln(w, "      --toc-title TEXT   Outline heading")
	fmt.Fprintln(w, "      --source           Append the highlighted troff source")
	fmt.Fprintln(w, "      --source-style S   Chroma style for the listing (default: github)")
	fmt.Fprintln(w, "      --footer-md TEXT   Markdown note for the page footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --page-size SIZE   letter, a4, or legal (default: letter)")
	fmt.Fprintln(w, "      --margin INCHES    Page margin, 0.25 to 3.0 (default: 0.5)")
	fmt.Fprintln(w, "  -t, --timeout DUR      Rendering timeout (default: 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "      --config NAME      Config file name or path")
	fmt.Fprintln(w, "  -w, --workers N        Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -q, --quiet            Only show errors")
	fmt.Fprintln(w, "  -v, --verbose          Show detailed timing")
	fmt.Fprintln(w, "      --no-color         Disable colored warnings")
	fmt.Fprintln(w, "  -h, --help             Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MAN2HTML_CONFIG, MAN2HTML_FORMAT, MAN2HTML_STYLE, MAN2HTML_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MAN2HTML_TIMEOUT, MAN2HTML_WORKERS, MAN2HTML_MAN")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  man2html ls -o ls.html")
	fmt.Fprintln(w, "  man2html -p -c printf")
	fmt.Fprintln(w, "  man2html --format pdf -f ls.1.gz -o out/")
	fmt.Fprintln(w, "  man2html /usr/share/man/man1 -o site/ --toc")
}

// runHelp prints help for a command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: man2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the version and exit.")
	case "help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
