package assets

// AssetLoader defines the contract for loading component stylesheets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if ValidateStyleName rejects the name.
	LoadStyle(name string) (string, error)
}
