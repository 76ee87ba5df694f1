package assets

import (
	"errors"
	"fmt"
)

// AssetResolver combines an optional override directory with the embedded
// templates. Overrides win; a template missing from the override directory
// falls back to the embedded one.
type AssetResolver struct {
	custom   AssetLoader // nil if no override directory configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded templates are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a template, trying the override directory first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only "not found" falls back; validation and I/O errors surface.
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// HasCustomLoader returns true if an override directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Overridden reports which of TemplateNames the override directory provides.
// Used by diagnostics; returns nil without an override directory.
func (r *AssetResolver) Overridden() ([]string, error) {
	if r.custom == nil {
		return nil, nil
	}

	var names []string
	for _, name := range TemplateNames {
		_, err := r.custom.LoadTemplate(name)
		switch {
		case err == nil:
			names = append(names, name)
		case errors.Is(err, ErrTemplateNotFound):
		default:
			return names, fmt.Errorf("checking %s template: %w", name, err)
		}
	}
	return names, nil
}

var _ AssetLoader = (*AssetResolver)(nil)
