package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run executes one CLI invocation and returns the exit code.
func run(args []string, env *Environment) int {
	cmd, rest := splitCommand(args)
	switch cmd {
	case "":
		printUsage(env.Stderr)
		return ExitUsage
	case "version":
		fmt.Fprintf(env.Stdout, "man2html %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	flags, positional, err := parseConvertFlags(rest)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'man2html help convert' for usage.")
		return ExitUsage
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// splitCommand separates the subcommand from its arguments. Without a
// known subcommand, everything belongs to convert.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	switch args[0] {
	case "convert", "version", "help":
		return args[0], args[1:]
	case "--version":
		return "version", args[1:]
	}
	return "convert", args
}

// setMaxProcs configures GOMAXPROCS for the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
