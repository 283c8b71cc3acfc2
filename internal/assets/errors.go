package assets

import "errors"

// Sentinel errors for stylesheet loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")   // separators, "..", empty
	ErrInvalidBasePath  = errors.New("invalid base path")    // asset directory unusable
	ErrAssetRead        = errors.New("failed to read asset") // I/O failure on an existing style
	ErrPathTraversal    = errors.New("path traversal detected")
)
