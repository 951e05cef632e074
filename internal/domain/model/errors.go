package model

import "errors"

// Sentinel kinds for model parsing errors.
var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidHomeAway = errors.New("invalid home_away")
)
