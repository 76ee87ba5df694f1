package tex2site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/texpub/tex2site/internal/process"
)

// Engine converts a LaTeX source document into an unstyled HTML artifact.
// Implementations must report failures with ErrEngineNotFound,
// ErrEngineFailed, ErrEngineTimeout or ErrNoArtifact.
type Engine interface {
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)
}

// ConvertRequest names the source document and where the artifact goes.
type ConvertRequest struct {
	Source      string
	Destination string
}

// ConvertResult describes a produced artifact.
type ConvertResult struct {
	ArtifactPath string
	Log          string // engine stdout, useful in verbose mode
}

// EngineError carries the diagnostics of a failed engine run.
type EngineError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Command, e.Err, e.Stderr)
}

// Unwrap exposes both ErrEngineFailed and the underlying exec error.
func (e *EngineError) Unwrap() []error {
	return []error{ErrEngineFailed, e.Err}
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group, killed as a whole when ctx ends.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := process.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		// Exit status after a kill is noise; report why it was killed.
		return stdout.String(), stderr.String(), ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}

// Compile-time interface implementation check.
var _ CommandRunner = (*ExecRunner)(nil)

// Engine defaults.
const (
	DefaultEngineCommand = "latexmlc"
	DefaultEngineTimeout = 5 * time.Minute
)

// LaTeXML converts documents by invoking latexmlc.
type LaTeXML struct {
	Runner     CommandRunner
	Command    string        // binary name or path (default "latexmlc")
	Stylesheet string        // passed as --css
	Timeout    time.Duration // 0 = DefaultEngineTimeout
	Verbose    bool

	// LookPath resolves Command before running. Tests may stub it.
	LookPath func(file string) (string, error)
}

// NewLaTeXML creates a LaTeXML engine with a real command runner.
func NewLaTeXML(stylesheet string) *LaTeXML {
	return &LaTeXML{
		Runner:     &ExecRunner{},
		Command:    DefaultEngineCommand,
		Stylesheet: stylesheet,
		Timeout:    DefaultEngineTimeout,
		LookPath:   exec.LookPath,
	}
}

// Args returns the latexmlc argument list for req.
func (l *LaTeXML) Args(req ConvertRequest) []string {
	verbosity := "--quiet"
	if l.Verbose {
		verbosity = "--verbose"
	}
	return []string{
		req.Source,
		"--destination=" + req.Destination,
		"--format=html5",
		"--css=" + l.Stylesheet,
		"--presentationmathml",
		"--numbersections",
		verbosity,
	}
}

// Convert runs latexmlc on req.Source, bounded by the configured timeout.
func (l *LaTeXML) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	command := l.Command
	if command == "" {
		command = DefaultEngineCommand
	}

	if l.LookPath != nil {
		if _, err := l.LookPath(command); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, command)
		}
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultEngineTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := l.Runner.Run(ctx, command, l.Args(req)...)
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: exceeded %v", ErrEngineTimeout, timeout)
	case errors.Is(err, context.Canceled):
		return nil, fmt.Errorf("conversion interrupted: %w", err)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, command)
	default:
		return nil, &EngineError{Command: command, Stderr: stderr, Err: err}
	}

	if _, statErr := os.Stat(req.Destination); statErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoArtifact, req.Destination)
	}

	return &ConvertResult{ArtifactPath: req.Destination, Log: stdout}, nil
}

// Compile-time interface implementation check.
var _ Engine = (*LaTeXML)(nil)

// ArtifactPath returns where the intermediate HTML for slug is written:
// next to the source document, never in the site.
func ArtifactPath(source, slug string) string {
	return filepath.Join(filepath.Dir(source), slug+"_temp.html")
}
