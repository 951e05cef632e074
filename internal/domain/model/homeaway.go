package model

import (
	"fmt"
	"strings"
)

// HomeAway selects which side of a fixture a team query considers.
type HomeAway uint8

const (
	Both HomeAway = iota
	Home
	Away
)

func (h HomeAway) String() string {
	switch h {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return "both"
	}
}

// ParseHomeAway parses both/home/away, case-insensitively. Empty means Both.
func ParseHomeAway(s string) (HomeAway, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return Both, nil
	case "home":
		return Home, nil
	case "away":
		return Away, nil
	}
	return Both, fmt.Errorf("%w: %q", ErrInvalidHomeAway, s)
}
