package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	man2html "github.com/alnah/go-man2html"
	"github.com/alnah/go-man2html/internal/fileutil"
	"github.com/alnah/go-man2html/internal/manpage"
)

// Sentinel errors for input discovery and output planning.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoPages            = errors.New("no manual page files found")
	ErrNoOutput           = errors.New("no output destination")
	ErrPrintMultiple      = errors.New("--print accepts a single page")
	ErrOutputNotDir       = errors.New("output names a file but several pages were given")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// source is one page to convert before its output is known.
type source struct {
	Name    string // command name or file path
	Command bool   // Name is located through man
	BaseDir string // directory argument the file was found under
}

// PageToConvert is one planned conversion. Print copies the document to
// stdout; an empty OutputPath means stdout only.
type PageToConvert struct {
	source
	OutputPath string
	Print      bool
}

// outputTarget describes where results go.
type outputTarget struct {
	path       string // -o
	print      bool   // -p
	defaultDir string // output.defaultDir
}

// planOutputs assigns an output path to every source. With --print the
// single page is also written to -o when one is given. A lone command with
// no destination goes to stdout.
func planOutputs(sources []source, target outputTarget, format man2html.Format) ([]PageToConvert, error) {
	if target.print {
		if len(sources) != 1 {
			return nil, fmt.Errorf("%w, got %d", ErrPrintMultiple, len(sources))
		}
		if target.path == "" {
			return []PageToConvert{{source: sources[0], Print: true}}, nil
		}
	}

	ext := format.Ext()
	outputDir := target.defaultDir
	if target.path != "" {
		outputDir = target.path
		if strings.HasSuffix(target.path, ext) && !fileutil.DirExists(target.path) {
			if len(sources) != 1 {
				return nil, fmt.Errorf("%w: %s", ErrOutputNotDir, target.path)
			}
			return []PageToConvert{{source: sources[0], OutputPath: target.path, Print: target.print}}, nil
		}
	}

	if len(sources) == 1 && sources[0].Command && outputDir == "" {
		return []PageToConvert{{source: sources[0], Print: true}}, nil
	}

	pages := make([]PageToConvert, 0, len(sources))
	for _, src := range sources {
		out, err := resolveOutputPath(src, outputDir, ext)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageToConvert{source: src, OutputPath: out, Print: target.print})
	}
	return pages, nil
}

// printsToStdout reports whether any planned page writes its document to
// stdout.
func printsToStdout(pages []PageToConvert) bool {
	for _, p := range pages {
		if p.Print {
			return true
		}
	}
	return false
}

// resolveOutputPath determines the output path for one source. Files found
// under a directory argument keep their relative layout under outputDir.
// Without outputDir a file is written next to its source; a command name
// among several pages has nowhere to go.
func resolveOutputPath(src source, outputDir, ext string) (string, error) {
	if src.Command {
		if outputDir == "" {
			return "", fmt.Errorf("%w for %q: use --output, --print, or output.defaultDir", ErrNoOutput, src.Name)
		}
		return filepath.Join(outputDir, src.Name+ext), nil
	}

	if outputDir == "" {
		return fileutil.ReplaceExt(src.Name, ext), nil
	}

	if src.BaseDir != "" {
		if rel, err := filepath.Rel(src.BaseDir, src.Name); err == nil {
			return filepath.Join(outputDir, fileutil.ReplaceExt(rel, ext)), nil
		}
	}
	return filepath.Join(outputDir, manpage.PageName(src.Name)+ext), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > man2html.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, man2html.MaxPoolSize)
	}
	return nil
}
