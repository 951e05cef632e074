package api

import "errors"

// ErrBadRequest marks a malformed path or query parameter.
var ErrBadRequest = errors.New("bad request")
