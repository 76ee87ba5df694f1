package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads template overrides from {dir}/templates.
type FilesystemLoader struct {
	dir string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that dir is a readable directory.
// Returns ErrInvalidBasePath otherwise.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	resolved, err := resolveDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{dir: resolved}, nil
}

// resolveDir returns the absolute, symlink-free form of dir after checking
// it can be listed.
func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", abs)
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return "", fmt.Errorf("cannot read directory: %v", err)
	}
	return abs, nil
}

// BasePath returns the resolved override directory.
func (f *FilesystemLoader) BasePath() string {
	return f.dir
}

// LoadTemplate reads {dir}/templates/{name}.html. A symlink pointing outside
// dir is rejected with ErrPathTraversal.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	file, err := templateFile(name)
	if err != nil {
		return "", err
	}

	p := filepath.Join(f.dir, "templates", file)
	if real, err := filepath.EvalSymlinks(p); err == nil {
		p = real
	}
	if !strings.HasPrefix(p, f.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}

	content, err := os.ReadFile(p) // #nosec G304 -- contained in the override directory
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q in %s", ErrTemplateNotFound, name, f.dir)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	return string(content), nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
