package corpus

import "errors"

// Sentinel kinds for corpus loading errors.
var (
	ErrDataDirNotFound = errors.New("data directory not found")
	ErrNoFilesFound    = errors.New("no usable files found in data directory")
)
