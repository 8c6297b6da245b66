package assets

import (
	"errors"
	"slices"
)

// AssetResolver tries a custom FilesystemLoader first and falls back to the
// embedded styles when a style is not found there.
type AssetResolver struct {
	custom   StyleLoader // nil without a custom base path
	embedded StyleLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// only embedded styles.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads name from the custom directory, then from the embedded
// styles. Only a not-found error triggers the fallback.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}
	css, err := r.custom.LoadStyle(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// Styles lists the union of custom and embedded style names.
func (r *AssetResolver) Styles() []string {
	names := r.embedded.Styles()
	if r.custom != nil {
		names = append(names, r.custom.Styles()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

var _ StyleLoader = (*AssetResolver)(nil)
