package manpage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-man2html/internal/process"
)

// DefaultManBin is the man binary used when none is configured.
const DefaultManBin = "man"

// waitDelay bounds how long Locate waits for man's output pipes after the
// process is killed.
const waitDelay = 2 * time.Second

// Resolver locates manual pages through the man command.
type Resolver struct {
	bin string
}

// NewResolver creates a Resolver running bin; empty uses DefaultManBin.
func NewResolver(bin string) *Resolver {
	if bin == "" {
		bin = DefaultManBin
	}
	return &Resolver{bin: bin}
}

// Bin returns the man binary the resolver runs.
func (r *Resolver) Bin() string {
	return r.bin
}

// Locate returns the path of the manual page for name, as printed by
// "man -w name". The man process runs in its own process group, which is
// killed when ctx ends first.
func (r *Resolver) Locate(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, r.bin, "-w", name)
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s", ErrPageNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrManUnavailable, err)
	}

	// man -w may list several pages; the first one is what man would show.
	path, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, name)
	}
	return path, nil
}

// Load locates and reads the manual page for name.
func (r *Resolver) Load(ctx context.Context, name string) (path string, lines []string, err error) {
	path, err = r.Locate(ctx, name)
	if err != nil {
		return "", nil, err
	}
	lines, err = ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return path, lines, nil
}

// ValidateName rejects names man would read as options or that cannot
// name a page.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("%w: %q starts with '-'", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00\n"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
