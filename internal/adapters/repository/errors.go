package repository

import "errors"

// Sentinel kinds for store errors.
var (
	// ErrNotFound is returned for an unknown entity id or an absent/invalid year.
	ErrNotFound = errors.New("not found")

	// ErrNoDataAvailable means the build ingested zero matches.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrDataIntegrity means index totals disagree with the match count.
	ErrDataIntegrity = errors.New("data integrity check failed")

	ErrUnknownSeason = errors.New("unknown season")
	ErrSealed        = errors.New("builder already sealed")
)
