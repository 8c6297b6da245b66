package assets

import (
	"fmt"
	"strings"
)

// maxAssetNameLength bounds style names.
const maxAssetNameLength = 64

// ValidateAssetName checks that name is safe as a bare file name: not
// empty, not too long, and free of separators and dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, maxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
