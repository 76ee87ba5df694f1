// Package yamlutil reads and writes tex2site config files.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds config input. Config files are a few hundred bytes.
var MaxInputSize = 64 << 10

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrInvalidYAML    = errors.New("yamlutil: invalid YAML")
)

// UnmarshalStrict decodes data into v, rejecting unknown fields. Syntax and schema errors are wrapped in ErrInvalidYAML and
// quote the offending source line.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case len(data) == 0:
		return ErrNilData
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}

	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w:\n%s", ErrInvalidYAML, strings.TrimRight(yaml.FormatError(err, false, true), "\n"))
	}
	return nil
}

// DecodeFile reads path and decodes it with UnmarshalStrict. Read errors
// keep their os error chain so callers can test for fs.ErrNotExist.
// The file is never read past MaxInputSize+1 bytes.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := UnmarshalStrict(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Marshal encodes v as block-style YAML with two-space indentation, the
// layout used in the documented config examples.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
