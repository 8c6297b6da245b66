package fileutil_test

// Notes:
// - WriteString and Close error branches in WriteTempFile are not tested:
//   triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-man2html/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html", extension: "html"},
		{name: "pdf", extension: "pdf"},
		{name: "empty", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "slash", extension: "a/b", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", extension: `a\b`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", extension: "a\x00", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file lifecycle
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<!DOCTYPE html>\n<html></html>\n"
	path, cleanup, err := fileutil.WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q lacks .html suffix", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "man2html-") {
		t.Errorf("path %q lacks man2html- prefix", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup")
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "../evil")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
	}
	if cleanup != nil {
		t.Error("cleanup should be nil on error")
	}
}

// ---------------------------------------------------------------------------
// Path predicates
// ---------------------------------------------------------------------------

func TestFileAndDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "ls.1")
	if err := os.WriteFile(file, []byte(".TH LS 1"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input            string
		path, css, isURL bool
	}{
		{input: "dark"},
		{input: "./man.css", path: true},
		{input: `C:\styles\man.css`, path: true},
		{input: "body { margin: 0 }", css: true},
		{input: "https://example.com/man.css", path: true, isURL: true},
		{input: "http://example.com", path: true, isURL: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.path {
				t.Errorf("IsFilePath() = %v, want %v", got, tt.path)
			}
			if got := fileutil.IsCSS(tt.input); got != tt.css {
				t.Errorf("IsCSS() = %v, want %v", got, tt.css)
			}
			if got := fileutil.IsURL(tt.input); got != tt.isURL {
				t.Errorf("IsURL() = %v, want %v", got, tt.isURL)
			}
		})
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, ext, want string
	}{
		{path: "ls.1", ext: ".html", want: "ls.html"},
		{path: "ls.1.gz", ext: ".html", want: "ls.html"},
		{path: "dir/git-add.1", ext: ".md", want: "dir/git-add.md"},
		{path: "page", ext: ".pdf", want: "page.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.ReplaceExt(tt.path, tt.ext); got != tt.want {
				t.Errorf("ReplaceExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
			}
		})
	}
}
