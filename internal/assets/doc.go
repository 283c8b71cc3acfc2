// Package assets provides the stylesheets embedded in served pages.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles (default, dark, plain)
//	    ├── FilesystemLoader  - styles from a custom directory on disk
//	    └── Resolver          - custom first, embedded on not-found
//
// A custom directory follows the layout:
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
