package main

// Notes:
// - Every test drives run() end to end with the mock pool and page loader
//   from helpers_test.go; only the file system is real (t.TempDir).
// - Tests that touch MAN2HTML_* variables use t.Setenv and cannot run in
//   parallel.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	man2html "github.com/alnah/go-man2html"
)

// ---------------------------------------------------------------------------
// Command pages
// ---------------------------------------------------------------------------

func TestRunConvert_CommandToStdout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
	}{
		{name: "positional name", args: []string{"-p", "ls"}, wantStdout: "html:.TH LS 1\n.SH NAME\nls \\- list"},
		{name: "command flag", args: []string{"--print", "--command", "printf"}, wantStdout: "html:.TH PRINTF 3"},
		{name: "markdown format", args: []string{"-p", "-c", "printf", "--format", "md"}, wantStdout: "md:.TH PRINTF 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv()
			if code := run(tt.args, te.Environment); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
			}
			if got := te.stdout.String(); got != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", got, tt.wantStdout)
			}
			if got := te.stderr.String(); got != "" {
				t.Errorf("stderr = %q, want empty", got)
			}
			if !te.pool.closed {
				t.Error("pool was not closed")
			}
		})
	}
}

func TestRunConvert_CommandToDirectory(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	out := filepath.Join(t.TempDir(), "site")

	if code := run([]string{"ls", "printf", "-o", out}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := readFile(t, filepath.Join(out, "ls.html")); !strings.HasPrefix(got, "html:.TH LS 1") {
		t.Errorf("ls.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "printf.html")); got != "html:.TH PRINTF 3" {
		t.Errorf("printf.html = %q", got)
	}
	if !strings.Contains(te.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", te.stdout.String())
	}
}

func TestRunConvert_ManBinary(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	if code := run([]string{"-p", "ls", "--man", "/opt/bin/man"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if te.pages.bin != "/opt/bin/man" {
		t.Errorf("man binary = %q, want /opt/bin/man", te.pages.bin)
	}
}

// ---------------------------------------------------------------------------
// Page files and directories
// ---------------------------------------------------------------------------

func TestRunConvert_FileNextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "tool.1")
	writeFile(t, page, ".TH TOOL 1\n.SH NAME\n")

	te := newTestEnv()
	if code := run([]string{"-f", page}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	want := filepath.Join(dir, "tool.html")
	if got := readFile(t, want); got != "html:.TH TOOL 1\n.SH NAME" {
		t.Errorf("tool.html = %q", got)
	}
	if got := te.stdout.String(); got != "Created "+want+"\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunConvert_FileToExplicitPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "tool.1")
	writeFile(t, page, ".TH TOOL 1\n")
	out := filepath.Join(dir, "nested", "manual.pdf")

	te := newTestEnv()
	code := run([]string{page, "-o", out, "--format", "pdf", "--page-size", "a4", "--margin", "1"}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := readFile(t, out); got != "pdf:.TH TOOL 1" {
		t.Errorf("manual.pdf = %q", got)
	}

	inputs := te.conv.recorded()
	if len(inputs) != 1 {
		t.Fatalf("converted %d pages, want 1", len(inputs))
	}
	in := inputs[0]
	if in.Format != man2html.FormatPDF {
		t.Errorf("Format = %q, want pdf", in.Format)
	}
	if in.Page == nil || in.Page.Size != "a4" || in.Page.Margin != 1 {
		t.Errorf("Page = %+v, want a4 with margin 1", in.Page)
	}
	if in.BaseDir != filepath.Join(dir, "nested") {
		t.Errorf("BaseDir = %q, want %q", in.BaseDir, filepath.Join(dir, "nested"))
	}
}

func TestRunConvert_PrintAndWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "tool.1")
	writeFile(t, page, ".TH TOOL 1\n")
	out := filepath.Join(dir, "out.html")

	te := newTestEnv()
	if code := run([]string{"-f", page, "-o", out, "-p"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := readFile(t, out); got != "html:.TH TOOL 1" {
		t.Errorf("out.html = %q", got)
	}
	// Printed as well, with no status line mixed in.
	if got := te.stdout.String(); got != "html:.TH TOOL 1" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunConvert_LoneCommandPrints(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	if code := run([]string{"ls"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := te.stdout.String(); !strings.HasPrefix(got, "html:.TH LS 1") {
		t.Errorf("stdout = %q, want the ls document", got)
	}
}

func TestRunConvert_DirectoryMirrorsLayout(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	man := filepath.Join(root, "man")
	writeFile(t, filepath.Join(man, "man1", "ls.1"), ".TH LS 1\n")
	writeFile(t, filepath.Join(man, "man8", "mount.8"), ".TH MOUNT 8\n")
	writeFile(t, filepath.Join(man, "README.txt"), "not a page\n")
	out := filepath.Join(root, "out")

	te := newTestEnv()
	if code := run([]string{man, "-o", out, "-w", "2"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := readFile(t, filepath.Join(out, "man1", "ls.html")); got != "html:.TH LS 1" {
		t.Errorf("man1/ls.html = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "man8", "mount.html")); got != "html:.TH MOUNT 8" {
		t.Errorf("man8/mount.html = %q", got)
	}
	if n := len(te.conv.recorded()); n != 2 {
		t.Errorf("converted %d pages, want 2", n)
	}
	if te.pool.size != 2 {
		t.Errorf("pool size = %d, want 2", te.pool.size)
	}
}

// ---------------------------------------------------------------------------
// Document options
// ---------------------------------------------------------------------------

func TestRunConvert_DocumentFlags(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	args := []string{
		"-p", "ls",
		"--title", "auto",
		"--toc", "--toc-title", "Contents",
		"--source-style", "monokai",
		"--footer-md", "*generated*",
		"--style", "dark",
		"--lang", "en",
		"--stylesheet", "man.css",
		"--timeout", "5s",
	}
	if code := run(args, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}

	in := te.conv.recorded()[0]
	if in.Title != man2html.TitleAuto {
		t.Errorf("Title = %q, want auto", in.Title)
	}
	if in.TOC == nil || in.TOC.Title != "Contents" {
		t.Errorf("TOC = %+v, want title Contents", in.TOC)
	}
	if in.Listing == nil || in.Listing.Style != "monokai" {
		t.Errorf("Listing = %+v, want style monokai", in.Listing)
	}
	if in.Note == nil || in.Note.Markdown != "*generated*" {
		t.Errorf("Note = %+v, want *generated*", in.Note)
	}
	if in.Page != nil {
		t.Errorf("Page = %+v, want nil for HTML", in.Page)
	}
	// style, stylesheet, lang, timeout
	if te.pool.opts != 4 {
		t.Errorf("pool options = %d, want 4", te.pool.opts)
	}
}

func TestRunConvert_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	writeFile(t, cfgPath, "output:\n  format: markdown\ntoc:\n  enabled: true\nsource:\n  enabled: true\n")

	te := newTestEnv()
	if code := run([]string{"-p", "ls", "--config", cfgPath}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if !strings.HasPrefix(te.stdout.String(), "md:") {
		t.Errorf("stdout = %q, want markdown", te.stdout.String())
	}
	in := te.conv.recorded()[0]
	if in.TOC == nil || in.Listing == nil {
		t.Errorf("TOC = %+v, Listing = %+v, want both enabled", in.TOC, in.Listing)
	}
}

func TestRunConvert_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	writeFile(t, cfgPath, "output:\n  format: markdown\n")
	t.Setenv("MAN2HTML_CONFIG", cfgPath)

	tests := []struct {
		name    string
		envFmt  string
		args    []string
		wantOut string
	}{
		{name: "config file", args: []string{"-p", "ls"}, wantOut: "md:"},
		{name: "env over config", envFmt: "pdf", args: []string{"-p", "ls"}, wantOut: "pdf:"},
		{name: "flag over env", envFmt: "pdf", args: []string{"-p", "ls", "--format", "html"}, wantOut: "html:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAN2HTML_FORMAT", tt.envFmt)

			te := newTestEnv()
			if code := run(tt.args, te.Environment); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
			}
			if !strings.HasPrefix(te.stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want prefix %q", te.stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestRunConvert_EnvManAndOutputDir(t *testing.T) {
	out := t.TempDir()
	t.Setenv("MAN2HTML_MAN", "/usr/local/bin/man")
	t.Setenv("MAN2HTML_OUTPUT_DIR", out)

	te := newTestEnv()
	if code := run([]string{"ls"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if te.pages.bin != "/usr/local/bin/man" {
		t.Errorf("man binary = %q", te.pages.bin)
	}
	if got := readFile(t, filepath.Join(out, "ls.html")); !strings.HasPrefix(got, "html:") {
		t.Errorf("ls.html = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Warnings and output
// ---------------------------------------------------------------------------

func TestRunConvert_UnknownMacroWarnings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "reported per page",
			args:       []string{"-p", "ls"},
			wantStderr: "warning: unknown macro \".zz\" in ls\nwarning: unknown macro \".yy\" in ls\n",
		},
		{
			name:       "quiet suppresses",
			args:       []string{"-p", "ls", "-q"},
			wantStderr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv()
			te.conv.unknown = []string{".zz", ".yy"}
			if code := run(tt.args, te.Environment); code != ExitSuccess {
				t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
			}
			if got := te.stderr.String(); got != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", got, tt.wantStderr)
			}
		})
	}
}

func TestRunConvert_QuietHidesCreated(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	out := t.TempDir()
	if code := run([]string{"ls", "printf", "-o", out, "-q"}, te.Environment); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, te.stderr.String())
	}
	if got := te.stdout.String(); got != "" {
		t.Errorf("stdout = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

func TestRunConvert_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		convErr      error
		initErr      error
		wantCode     int
		wantInStderr string
	}{
		{name: "commands without destination", args: []string{"ls", "printf"}, wantCode: ExitUsage, wantInStderr: "no output destination"},
		{name: "print with two pages", args: []string{"-p", "ls", "printf"}, wantCode: ExitUsage, wantInStderr: "--print accepts a single page"},
		{name: "page not found", args: []string{"-p", "missing"}, wantCode: ExitIO, wantInStderr: "man -k missing"},
		{name: "missing page file", args: []string{"-p", "./nope.1"}, wantCode: ExitIO, wantInStderr: "nope.1"},
		{name: "too many workers", args: []string{"-p", "ls", "-w", "99"}, wantCode: ExitUsage, wantInStderr: "invalid worker count"},
		{name: "bad timeout", args: []string{"-p", "ls", "-t", "soon"}, wantCode: ExitUsage, wantInStderr: "invalid timeout"},
		{name: "bad format", args: []string{"-p", "ls", "--format", "rtf"}, wantCode: ExitUsage, wantInStderr: "rtf"},
		{name: "bad page size", args: []string{"-p", "ls", "--page-size", "a3"}, wantCode: ExitUsage, wantInStderr: "a3"},
		{name: "missing config", args: []string{"-p", "ls", "--config", "./absent.yaml"}, wantCode: ExitUsage},
		{
			name:         "style not found",
			args:         []string{"-p", "ls", "--style", "neon"},
			initErr:      man2html.ErrStyleNotFound,
			wantCode:     ExitUsage,
			wantInStderr: "available:",
		},
		{
			name:         "browser failure",
			args:         []string{"-p", "ls", "--format", "pdf"},
			convErr:      man2html.ErrBrowserConnect,
			wantCode:     ExitBrowser,
			wantInStderr: "ls: ",
		},
		{
			name:     "unexpected converter error",
			args:     []string{"-p", "ls"},
			convErr:  errors.New("boom"),
			wantCode: ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv()
			te.conv.err = tt.convErr
			te.pool.initErr = tt.initErr

			code := run(tt.args, te.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d\nstderr: %s", code, tt.wantCode, te.stderr.String())
			}
			if !strings.Contains(te.stderr.String(), tt.wantInStderr) {
				t.Errorf("stderr = %q, want it to contain %q", te.stderr.String(), tt.wantInStderr)
			}
		})
	}
}

func TestRunConvert_BatchFailure(t *testing.T) {
	t.Parallel()

	te := newTestEnv()
	out := t.TempDir()
	code := run([]string{"ls", "missing", "-o", out}, te.Environment)
	if code != ExitGeneral {
		t.Errorf("exit = %d, want %d", code, ExitGeneral)
	}
	stderr := te.stderr.String()
	if !strings.Contains(stderr, "FAILED missing: manual page not found") {
		t.Errorf("stderr = %q, want FAILED line", stderr)
	}
	if !strings.Contains(stderr, "1 of 2 conversion(s) failed") {
		t.Errorf("stderr = %q, want failure count", stderr)
	}
	if !strings.Contains(te.stdout.String(), "1 succeeded, 1 failed") {
		t.Errorf("stdout = %q, want summary", te.stdout.String())
	}
}
