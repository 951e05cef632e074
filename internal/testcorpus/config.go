// Package testcorpus generates synthetic season-per-directory corpora for
// tests, benchmarks and local runs of the server.
package testcorpus

import "time"

// Generator defaults.
const (
	DefaultSeasons            = 3
	DefaultFirstYear          = 2015
	DefaultTournaments        = 2
	DefaultTeamsPerTournament = 6
	DefaultRounds             = 10
	DefaultSeed               = 1

	maxRounds = 40
	roundStep = 7 * 24 * time.Hour
)

// Config shapes a generated corpus.
type Config struct {
	Seasons            int    // season directories, one per consecutive start year
	FirstYear          int    // start year of the first season
	Tournaments        int    // tournaments per season, one file each
	TeamsPerTournament int    // rounded down to an even number, at least 2
	Rounds             int    // rounds per tournament file, half in each calendar year
	SingleYearEvery    int    // every Nth season is a single-year "YYYY" directory; 0 disables
	Junk               bool   // add a malformed directory, an undecodable file and an empty list
	Seed               uint64 // scores are drawn from a PCG seeded with this
}

// DefaultConfig returns a small two-tournament corpus configuration.
func DefaultConfig() Config {
	return Config{
		Seasons:            DefaultSeasons,
		FirstYear:          DefaultFirstYear,
		Tournaments:        DefaultTournaments,
		TeamsPerTournament: DefaultTeamsPerTournament,
		Rounds:             DefaultRounds,
		Seed:               DefaultSeed,
	}
}

// Expected is what a build of the generated corpus must report.
type Expected struct {
	Seasons     int // accepted season directories
	Matches     int
	Tournaments int
	Teams       int
}

func (c Config) normalized() Config {
	if c.Seasons < 1 {
		c.Seasons = 1
	}
	if c.FirstYear < 1000 {
		c.FirstYear = DefaultFirstYear
	}
	if c.Tournaments < 1 {
		c.Tournaments = 1
	}
	c.TeamsPerTournament -= c.TeamsPerTournament % 2
	if c.TeamsPerTournament < 2 {
		c.TeamsPerTournament = 2
	}
	if c.Rounds < 1 {
		c.Rounds = 1
	}
	if c.Rounds > maxRounds {
		c.Rounds = maxRounds
	}
	return c
}
