package decode

import "errors"

// Sentinel kinds for decode errors.
var (
	ErrSyntax       = errors.New("malformed document")
	ErrMissingField = errors.New("missing required field")
	ErrBadScore     = errors.New("malformed score")
)
