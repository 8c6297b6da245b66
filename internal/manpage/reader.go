package manpage

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxLineSize bounds a single source line.
const maxLineSize = 1 << 20

var gzipMagic = []byte{0x1f, 0x8b}

// pageFilePattern matches manual page file names: a section suffix such as
// .1, .3p or .8x, or .man, optionally gzip-compressed.
var pageFilePattern = regexp.MustCompile(`\.(?:[0-9][a-z]*|man|n|l)(?:\.gz)?$`)

// IsPageFile reports whether path has a manual page file name.
func IsPageFile(path string) bool {
	return pageFilePattern.MatchString(strings.ToLower(filepath.Base(path)))
}

// PageName returns the page name encoded in a file name: "ls.1.gz" is "ls".
func PageName(path string) string {
	base := filepath.Base(path)
	if loc := pageFilePattern.FindStringIndex(strings.ToLower(base)); loc != nil {
		return base[:loc[0]]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Open opens the manual page at path. Content starting with the gzip magic
// bytes is decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 -- path from man -w or the user
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenPage, err)
	}

	br := bufio.NewReader(f)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenPage, err)
	}
	if !bytes.Equal(head, gzipMagic) {
		return &pageReader{Reader: br, closers: []io.Closer{f}}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpenPage, err)
	}
	return &pageReader{Reader: zr, closers: []io.Closer{zr, f}}, nil
}

// ReadFile opens path and returns its lines.
func ReadFile(path string) ([]string, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadLines(rc)
}

// ReadLines splits r into lines without their "\n" or "\r\n" terminators.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadPage, err)
	}
	return lines, nil
}

// pageReader reads a page and closes every layer under it.
type pageReader struct {
	io.Reader
	closers []io.Closer
}

func (p *pageReader) Close() error {
	var errs []error
	for _, c := range p.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
