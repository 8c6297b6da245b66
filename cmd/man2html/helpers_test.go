package main

// Notes:
// - Shared mocks for the CLI tests: a recording converter, a pool that
//   hands it out, and a page loader backed by a map.
// - mockConverter echoes the troff lines as its HTML so tests can check
//   which page reached which output.

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/manpage"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockConverter struct {
	mu      sync.Mutex
	inputs  []man2html.Input
	unknown []string
	err     error
}

func (m *mockConverter) Convert(_ context.Context, input man2html.Input) (*man2html.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	body := strings.Join(input.Lines, "\n")
	return &man2html.ConvertResult{
		HTML:     []byte("html:" + body),
		Markdown: []byte("md:" + body),
		PDF:      []byte("pdf:" + body),
		Unknown:  m.unknown,
	}, nil
}

func (m *mockConverter) recorded() []man2html.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]man2html.Input(nil), m.inputs...)
}

type mockPool struct {
	conv     CLIConverter
	initErr  error
	size     int
	opts     int
	released int
	closed   bool
	mu       sync.Mutex
}

func (p *mockPool) Acquire() CLIConverter {
	if p.initErr != nil {
		return nil
	}
	return p.conv
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) InitError() error { return p.initErr }
func (p *mockPool) Size() int        { return p.size }

func (p *mockPool) Close() error {
	p.closed = true
	return nil
}

type fakePages struct {
	bin   string
	pages map[string][]string
}

func (f *fakePages) Load(_ context.Context, name string) (string, []string, error) {
	lines, ok := f.pages[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", manpage.ErrPageNotFound, name)
	}
	return "/usr/share/man/man1/" + name + ".1", lines, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *mockConverter
	pool   *mockPool
	pages  *fakePages
}

func newTestEnv() *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &mockConverter{},
		pages: &fakePages{pages: map[string][]string{
			"ls":     {".TH LS 1", ".SH NAME", `ls \- list`},
			"printf": {".TH PRINTF 3"},
		}},
	}
	te.pool = &mockPool{conv: te.conv}
	te.Environment = &Environment{
		Now:    time.Now,
		Stdout: te.stdout,
		Stderr: te.stderr,
		Pages: func(bin string) pageLoader {
			te.pages.bin = bin
			return te.pages
		},
		NewPool: func(size int, opts ...man2html.Option) Pool {
			te.pool.size = size
			te.pool.opts = len(opts)
			return te.pool
		},
	}
	return te
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
