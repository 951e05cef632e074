package repository

import (
	"github.com/okian/matchdb/internal/domain/model"
)

type (
	tourSeasonKey struct {
		tour   model.TournamentID
		season model.SeasonID
	}
	tourYearKey struct {
		tour model.TournamentID
		year model.Year
	}
	teamSeasonKey struct {
		team   model.TeamID
		tour   model.TournamentID
		season model.SeasonID
	}
	teamYearKey struct {
		team model.TeamID
		tour model.TournamentID
		year model.Year
	}
)

// teamFamily is one of the combined, home-only or away-only team indices.
type teamFamily struct {
	bySeason map[teamSeasonKey][]model.MatchID
	byYear   map[teamYearKey][]model.MatchID
}

func newTeamFamily() teamFamily {
	return teamFamily{
		bySeason: make(map[teamSeasonKey][]model.MatchID),
		byYear:   make(map[teamYearKey][]model.MatchID),
	}
}

// indices holds the eleven derived indices. Leaves are match ids in
// insertion order; records live only in the canonical match map.
type indices struct {
	seasons    map[model.SeasonID][]model.MatchID
	years      map[model.Year][]model.MatchID
	tours      map[model.TournamentID][]model.MatchID
	tourSeason map[tourSeasonKey][]model.MatchID
	tourYear   map[tourYearKey][]model.MatchID

	// teams is indexed by model.HomeAway: Both holds the combined family.
	teams [3]teamFamily
}

func newIndices() indices {
	return indices{
		seasons:    make(map[model.SeasonID][]model.MatchID),
		years:      make(map[model.Year][]model.MatchID),
		tours:      make(map[model.TournamentID][]model.MatchID),
		tourSeason: make(map[tourSeasonKey][]model.MatchID),
		tourYear:   make(map[tourYearKey][]model.MatchID),
		teams:      [3]teamFamily{newTeamFamily(), newTeamFamily(), newTeamFamily()},
	}
}

func (ix *indices) family(ha model.HomeAway) *teamFamily {
	switch ha {
	case model.Home, model.Away:
		return &ix.teams[ha]
	default:
		return &ix.teams[model.Both]
	}
}

func leafTotal[K comparable](m map[K][]model.MatchID) int {
	n := 0
	for _, ids := range m {
		n += len(ids)
	}
	return n
}
