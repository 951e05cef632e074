package ingest

import "errors"

// ErrSeasonMalformed is returned for a directory name that is not a season
// descriptor such as "2015-16" or "2015".
var ErrSeasonMalformed = errors.New("malformed season descriptor")
