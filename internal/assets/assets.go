package assets

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the embedded styles.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
