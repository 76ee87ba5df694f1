package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/texpub/tex2site"
)

// Environment holds injectable dependencies for testability.
// Nil function fields fall back to inert defaults, so tests only set what
// they need.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	Getwd    func() (string, error)
	LookPath func(string) (string, error)

	// IsTerminal reports whether w is an interactive terminal.
	IsTerminal func(w io.Writer) bool

	// Engine replaces the LaTeXML engine when set.
	Engine tex2site.Engine
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Environ:    os.Environ,
		Getwd:      os.Getwd,
		LookPath:   exec.LookPath,
		IsTerminal: isTerminal,
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Environment) environ() []string {
	if e.Environ == nil {
		return nil
	}
	return e.Environ()
}

func (e *Environment) getwd() (string, error) {
	if e.Getwd == nil {
		return os.Getwd()
	}
	return e.Getwd()
}

func (e *Environment) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return "", exec.ErrNotFound
	}
	return e.LookPath(file)
}

func (e *Environment) isTerminal(w io.Writer) bool {
	if e.IsTerminal == nil {
		return false
	}
	return e.IsTerminal(w)
}
