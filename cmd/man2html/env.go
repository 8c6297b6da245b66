package main

import (
	"context"
	"io"
	"os"
	"time"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/manpage"
)

// pageLoader locates and reads installed manual pages.
type pageLoader interface {
	Load(ctx context.Context, name string) (path string, lines []string, err error)
}

var _ pageLoader = (*manpage.Resolver)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Pages   func(manBin string) pageLoader
	NewPool func(size int, opts ...man2html.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Pages: func(manBin string) pageLoader {
			return manpage.NewResolver(manBin)
		},
		NewPool: newConverterPool,
	}
}
