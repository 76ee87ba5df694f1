package main

import (
	"errors"
	"os"

	"github.com/texpub/tex2site"
	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/config"
)

// Exit codes for the tex2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page published (warnings allowed)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or metadata
	ExitIO      = 3 // Missing source, unwritable output
	ExitEngine  = 4 // Conversion engine missing, failed, or timed out
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, tex2site.ErrEngineNotFound) ||
		errors.Is(err, tex2site.ErrEngineFailed) ||
		errors.Is(err, tex2site.ErrEngineTimeout) ||
		errors.Is(err, tex2site.ErrNoArtifact) {
		return ExitEngine
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, tex2site.ErrEmptyTitle) ||
		errors.Is(err, tex2site.ErrInvalidSlug) ||
		errors.Is(err, tex2site.ErrInvalidDate) ||
		errors.Is(err, tex2site.ErrInvalidCategory) ||
		errors.Is(err, tex2site.ErrInvalidGraphFmt) ||
		errors.Is(err, tex2site.ErrPageRender) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, tex2site.ErrSourceNotFound) ||
		errors.Is(err, tex2site.ErrReadArtifact) ||
		errors.Is(err, tex2site.ErrWriteOutput) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
