package assets

import (
	"fmt"
	"strings"
)

// ValidateStyleName checks that a stylesheet name maps to exactly one
// styles/{name}.css file. Names carrying a separator or a dot are rejected.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: stylesheet name is empty", ErrInvalidAssetName)
	}
	if i := strings.IndexAny(name, "/\\."); i >= 0 {
		return fmt.Errorf("%w: stylesheet name %q must not contain %q", ErrInvalidAssetName, name, name[i])
	}
	return nil
}
