package assets

// StyleLoader loads stylesheets by name.
type StyleLoader interface {
	// LoadStyle returns the CSS of the named style (without .css).
	// Returns ErrStyleNotFound if the style doesn't exist and
	// ErrInvalidAssetName if the name is unsafe.
	LoadStyle(name string) (string, error)

	// Styles lists the available style names, sorted.
	Styles() []string
}

// DefaultStyle is the built-in style used when none is configured.
const DefaultStyle = "default"
