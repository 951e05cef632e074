package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/okian/matchdb/internal/domain/model"
)

func (s *Store) observe(op string, start time.Time, err error) {
	s.metrics.RecordQuery(op, float64(time.Since(start).Microseconds())/1000, errors.Is(err, ErrNotFound))
}

func (s *Store) hasSeason(id model.SeasonID) bool {
	return id != 0 && int(id) <= len(s.seasons)
}

func (s *Store) checkTeam(team model.TeamID) error {
	if !s.teams.Has(team) {
		return fmt.Errorf("%w: team %d", ErrNotFound, team)
	}
	return nil
}

func (s *Store) checkTournament(t model.TournamentID) error {
	if _, ok := s.idx.tours[t]; !ok {
		return fmt.Errorf("%w: tournament %d", ErrNotFound, t)
	}
	return nil
}

func (s *Store) checkSeason(id model.SeasonID) error {
	if !s.hasSeason(id) {
		return fmt.Errorf("%w: season %d", ErrNotFound, id)
	}
	return nil
}

func (s *Store) checkYear(y model.Year) error {
	if _, ok := s.idx.years[y]; !ok {
		return fmt.Errorf("%w: year %d", ErrNotFound, y)
	}
	return nil
}

// checkRange accepts start < end with at least one endpoint known.
func (s *Store) checkRange(start, end model.Year) error {
	if start >= end {
		return fmt.Errorf("%w: year range %d-%d", ErrNotFound, start, end)
	}
	_, okStart := s.idx.years[start]
	_, okEnd := s.idx.years[end]
	if !okStart && !okEnd {
		return fmt.Errorf("%w: year range %d-%d", ErrNotFound, start, end)
	}
	return nil
}

func inRange(years []model.Year, start, end model.Year) []model.Year {
	var out []model.Year
	for _, y := range years {
		if y > end {
			break
		}
		if y >= start {
			out = append(out, y)
		}
	}
	return out
}

// Match returns one match by id.
func (s *Store) Match(id model.MatchID) (m *model.Match, err error) {
	defer func(t time.Time) { s.observe("match", t, err) }(time.Now())
	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, id)
	}
	return m, nil
}

// TournamentName resolves a tournament id to its name.
func (s *Store) TournamentName(id model.TournamentID) (name string, err error) {
	defer func(t time.Time) { s.observe("tournament_name", t, err) }(time.Now())
	name, ok := s.tournaments.Name(id)
	if !ok {
		return "", fmt.Errorf("%w: tournament %d", ErrNotFound, id)
	}
	return name, nil
}

// AllMatches yields every match grouped by season, in season order.
func (s *Store) AllMatches() Result {
	defer s.observe("all", time.Now(), nil)
	buckets := make([][]model.MatchID, 0, len(s.seasons))
	for _, season := range s.seasons {
		buckets = append(buckets, s.idx.seasons[season.ID])
	}
	return s.result(buckets...)
}

// SeasonMatches yields the matches of one season.
func (s *Store) SeasonMatches(season model.SeasonID) (r Result, err error) {
	defer func(t time.Time) { s.observe("season", t, err) }(time.Now())
	ids, ok := s.idx.seasons[season]
	if !ok {
		return Result{}, fmt.Errorf("%w: season %d", ErrNotFound, season)
	}
	return s.result(ids), nil
}

// YearMatches yields the matches played in one calendar year.
func (s *Store) YearMatches(year model.Year) (r Result, err error) {
	defer func(t time.Time) { s.observe("year", t, err) }(time.Now())
	if err = s.checkYear(year); err != nil {
		return Result{}, err
	}
	return s.result(s.idx.years[year]), nil
}

// YearRangeMatches yields the matches of every year in [start, end].
func (s *Store) YearRangeMatches(start, end model.Year) (r Result, err error) {
	defer func(t time.Time) { s.observe("year_range", t, err) }(time.Now())
	if err = s.checkRange(start, end); err != nil {
		return Result{}, err
	}
	var buckets [][]model.MatchID
	for _, y := range inRange(s.years, start, end) {
		buckets = append(buckets, s.idx.years[y])
	}
	return s.result(buckets...), nil
}

// TournamentMatches yields every match of a tournament.
func (s *Store) TournamentMatches(tour model.TournamentID) (r Result, err error) {
	defer func(t time.Time) { s.observe("tournament", t, err) }(time.Now())
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	return s.result(s.idx.tours[tour]), nil
}

// TournamentSeasonMatches yields a tournament's matches in one season.
func (s *Store) TournamentSeasonMatches(tour model.TournamentID, season model.SeasonID) (r Result, err error) {
	defer func(t time.Time) { s.observe("tournament_season", t, err) }(time.Now())
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkSeason(season); err != nil {
		return Result{}, err
	}
	return s.result(s.idx.tourSeason[tourSeasonKey{tour: tour, season: season}]), nil
}

// TournamentYearMatches yields a tournament's matches in one year.
func (s *Store) TournamentYearMatches(tour model.TournamentID, year model.Year) (r Result, err error) {
	defer func(t time.Time) { s.observe("tournament_year", t, err) }(time.Now())
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkYear(year); err != nil {
		return Result{}, err
	}
	return s.result(s.idx.tourYear[tourYearKey{tour: tour, year: year}]), nil
}

// TournamentYearRangeMatches yields a tournament's matches for every year
// in [start, end].
func (s *Store) TournamentYearRangeMatches(tour model.TournamentID, start, end model.Year) (r Result, err error) {
	defer func(t time.Time) { s.observe("tournament_year_range", t, err) }(time.Now())
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkRange(start, end); err != nil {
		return Result{}, err
	}
	var buckets [][]model.MatchID
	for _, y := range inRange(s.tourYears[tour], start, end) {
		buckets = append(buckets, s.idx.tourYear[tourYearKey{tour: tour, year: y}])
	}
	return s.result(buckets...), nil
}

// team returns the directory and family for a known team. A nil directory
// means the team never played in that role.
func (s *Store) team(team model.TeamID, ha model.HomeAway) (*teamDir, *teamFamily, error) {
	if err := s.checkTeam(team); err != nil {
		return nil, nil, err
	}
	fam := s.idx.family(ha)
	dir := s.teamDirs[model.Both]
	if ha == model.Home || ha == model.Away {
		dir = s.teamDirs[ha]
	}
	return dir[team], fam, nil
}

// TeamMatches yields every match of a team in the selected role, by
// tournament then season.
func (s *Store) TeamMatches(team model.TeamID, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, tour := range dir.tours {
		for _, season := range dir.seasons[tour] {
			buckets = append(buckets, fam.bySeason[teamSeasonKey{team: team, tour: tour, season: season}])
		}
	}
	return s.result(buckets...), nil
}

// TeamSeasonMatches yields a team's matches in one season across
// tournaments.
func (s *Store) TeamSeasonMatches(team model.TeamID, season model.SeasonID, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_season", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkSeason(season); err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, tour := range dir.tours {
		buckets = append(buckets, fam.bySeason[teamSeasonKey{team: team, tour: tour, season: season}])
	}
	return s.result(buckets...), nil
}

// TeamYearMatches yields a team's matches in one year across tournaments.
func (s *Store) TeamYearMatches(team model.TeamID, year model.Year, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_year", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkYear(year); err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, tour := range dir.tours {
		buckets = append(buckets, fam.byYear[teamYearKey{team: team, tour: tour, year: year}])
	}
	return s.result(buckets...), nil
}

// TeamYearRangeMatches yields a team's matches for every year in
// [start, end], by tournament then year.
func (s *Store) TeamYearRangeMatches(team model.TeamID, start, end model.Year, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_year_range", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkRange(start, end); err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, tour := range dir.tours {
		for _, y := range inRange(dir.years[tour], start, end) {
			buckets = append(buckets, fam.byYear[teamYearKey{team: team, tour: tour, year: y}])
		}
	}
	return s.result(buckets...), nil
}

// TeamTournamentMatches yields a team's matches in one tournament, by
// season.
func (s *Store) TeamTournamentMatches(team model.TeamID, tour model.TournamentID, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_tournament", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, season := range dir.seasons[tour] {
		buckets = append(buckets, fam.bySeason[teamSeasonKey{team: team, tour: tour, season: season}])
	}
	return s.result(buckets...), nil
}

// TeamTournamentSeasonMatches yields a team's matches in one tournament
// season.
func (s *Store) TeamTournamentSeasonMatches(team model.TeamID, tour model.TournamentID, season model.SeasonID, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_tournament_season", t, err) }(time.Now())
	_, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkSeason(season); err != nil {
		return Result{}, err
	}
	return s.result(fam.bySeason[teamSeasonKey{team: team, tour: tour, season: season}]), nil
}

// TeamTournamentYearMatches yields a team's matches in one tournament year.
func (s *Store) TeamTournamentYearMatches(team model.TeamID, tour model.TournamentID, year model.Year, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_tournament_year", t, err) }(time.Now())
	_, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkYear(year); err != nil {
		return Result{}, err
	}
	return s.result(fam.byYear[teamYearKey{team: team, tour: tour, year: year}]), nil
}

// TeamTournamentYearRangeMatches yields a team's matches in one tournament
// for every year in [start, end].
func (s *Store) TeamTournamentYearRangeMatches(team model.TeamID, tour model.TournamentID, start, end model.Year, ha model.HomeAway) (r Result, err error) {
	defer func(t time.Time) { s.observe("team_tournament_year_range", t, err) }(time.Now())
	dir, fam, err := s.team(team, ha)
	if err != nil {
		return Result{}, err
	}
	if err = s.checkTournament(tour); err != nil {
		return Result{}, err
	}
	if err = s.checkRange(start, end); err != nil {
		return Result{}, err
	}
	if dir == nil {
		return s.result(), nil
	}
	var buckets [][]model.MatchID
	for _, y := range inRange(dir.years[tour], start, end) {
		buckets = append(buckets, fam.byYear[teamYearKey{team: team, tour: tour, year: y}])
	}
	return s.result(buckets...), nil
}
