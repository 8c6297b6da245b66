package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-man2html/internal/manpage"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrConverterInit   = errors.New("failed to initialize converter")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrWriteOutput     = errors.New("failed to write output")
)

// pageError ties a conversion error to the page it came from.
type pageError struct {
	Page string
	Err  error
}

func (e *pageError) Error() string { return e.Page + ": " + e.Err.Error() }
func (e *pageError) Unwrap() error { return e.Err }

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Unknown    []string // unknown macros reported for this page
}

// convertBatch processes pages concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, pages []PageToConvert, params *conversionParams, env *Environment) []ConversionResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(pages))

	results := make([]ConversionResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: pages[idx].Name,
						Err:       initError(pool),
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: pages[idx].Name,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertPage(ctx, conv, pages[idx], params, env)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func initError(pool Pool) error {
	if err := pool.InitError(); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return ErrConverterInit
}

// convertPage processes a single page and returns the result.
func convertPage(ctx context.Context, conv CLIConverter, p PageToConvert, params *conversionParams, env *Environment) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  p.Name,
		OutputPath: p.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = &pageError{Page: p.Name, Err: err}
		result.Duration = time.Since(start)
		return result
	}

	lines, err := loadLines(ctx, p.source, params.pages)
	if err != nil {
		return fail(err)
	}

	input := params.input
	input.Lines = lines
	if p.OutputPath != "" {
		if abs, err := filepath.Abs(filepath.Dir(p.OutputPath)); err == nil {
			input.BaseDir = abs
		}
	}

	convResult, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.Unknown = convResult.Unknown
	data := convResult.Bytes(params.format)

	if p.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(p.OutputPath), dirPermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrCreateOutputDir, err))
		}
		// #nosec G306 -- output documents are meant to be readable
		if err := os.WriteFile(p.OutputPath, data, filePermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}
	if p.Print {
		if _, err := env.Stdout.Write(data); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// loadLines reads the troff source for one page.
func loadLines(ctx context.Context, src source, pages pageLoader) ([]string, error) {
	if !src.Command {
		return manpage.ReadFile(src.Name)
	}
	if pages == nil {
		return nil, manpage.ErrManUnavailable
	}
	_, lines, err := pages.Load(ctx, src.Name)
	return lines, err
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results and unknown-macro
// warnings. A single failure is left for the caller to report. Returns
// the number of failures.
func printResultsWithWriter(results []ConversionResult, quiet, verbose, toStdout bool, env *Environment, warnings *warningPrinter) int {
	summary := countResults(results)

	for _, r := range results {
		if !quiet {
			for _, macro := range r.Unknown {
				warnings.UnknownMacro(r.InputPath, macro)
			}
		}

		if r.Err != nil {
			if len(results) > 1 {
				err := r.Err
				var pe *pageError
				if errors.As(err, &pe) {
					err = pe.Err
				}
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, err)
			}
			continue
		}

		if quiet || toStdout {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
