// Package model contains domain models passed between layers.
package model

// Identifier kinds. Each has its own counter, all starting at 1.
type (
	SeasonID     uint32
	TournamentID uint32
	TeamID       uint32
	MatchID      uint64
)

// Year is a calendar year.
type Year = int

// Season is one accepted corpus directory, e.g. "2015-16".
type Season struct {
	ID        SeasonID `json:"id"`
	StartYear Year     `json:"start_year"`
	EndYear   *Year    `json:"end_year"`
}

// Years returns the calendar years a season covers in start, end order.
func (s Season) Years() []Year {
	if s.EndYear == nil {
		return []Year{s.StartYear}
	}
	return []Year{s.StartYear, *s.EndYear}
}

// Tournament is an interned competition name.
type Tournament struct {
	ID   TournamentID `json:"id"`
	Name string       `json:"name"`
}

// Team is an interned team name.
type Team struct {
	ID   TeamID `json:"id"`
	Name string `json:"name"`
}

// Goals is a (home, away) goal pair.
type Goals [2]int

// Score holds the optional half-time and full-time results.
type Score struct {
	HalfTime *Goals `json:"half_time"`
	FullTime *Goals `json:"full_time"`
}

// Match is one fixture. Identifiers are assigned during ingestion and never
// read from documents.
type Match struct {
	ID           MatchID      `json:"id"`
	SeasonID     SeasonID     `json:"season_id"`
	TournamentID TournamentID `json:"tournament_id"`
	Round        *string      `json:"round"`
	Date         Date         `json:"date"`
	Time         *Clock       `json:"time"`
	Team1        string       `json:"team1"` // home
	Team2        string       `json:"team2"` // away
	Score        Score        `json:"score"`
	Stage        *string      `json:"stage"`
}

// MatchList is one decoded document: a name and its matches in textual order.
type MatchList struct {
	Name    string
	Matches []Match
}

// FirstID returns the id of the first match, or 0 for an empty list.
func (l MatchList) FirstID() MatchID {
	if len(l.Matches) == 0 {
		return 0
	}
	return l.Matches[0].ID
}

// IDs returns the match ids of the list in order.
func (l MatchList) IDs() []MatchID {
	ids := make([]MatchID, len(l.Matches))
	for i := range l.Matches {
		ids[i] = l.Matches[i].ID
	}
	return ids
}
