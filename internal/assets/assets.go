// Package assets provides component stylesheets for rendered rich text.
// Styles can be loaded from embedded files or a custom directory.
package assets

// DefaultStyleName is the name of the built-in component style.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the embedded style names.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
