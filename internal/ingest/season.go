package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/matchdb/internal/domain/model"
)

// ParseSeason parses "YYYY" or "YYYY-YY". The two-digit end year takes the
// millennium of the start year. A season whose end year is not after its
// start ("1999-00", "2015-15") is rejected as malformed on purpose: its
// matches could never fall inside the season's years.
func ParseSeason(name string) (start model.Year, end *model.Year, err error) {
	tokens := strings.Split(name, "-")
	if len(tokens) > 2 || !digits(tokens[0], 4) {
		return 0, nil, fmt.Errorf("%w: %q", ErrSeasonMalformed, name)
	}
	start, _ = strconv.Atoi(tokens[0])
	if len(tokens) == 1 {
		return start, nil, nil
	}
	if !digits(tokens[1], 2) {
		return 0, nil, fmt.Errorf("%w: %q", ErrSeasonMalformed, name)
	}
	yy, _ := strconv.Atoi(tokens[1])
	e := (start/1000)*1000 + yy
	if e <= start {
		return 0, nil, fmt.Errorf("%w: %q ends before it starts", ErrSeasonMalformed, name)
	}
	return start, &e, nil
}

func digits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
