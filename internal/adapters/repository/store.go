package repository

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchdb/internal/domain/intern"
	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/metrics"
)

// Store is the sealed, integrity-checked match store. It is immutable and
// safe for any number of concurrent readers without locking. The only way
// to obtain one is Builder.Seal.
type Store struct {
	seasons     []model.Season
	matches     map[model.MatchID]*model.Match
	tournaments *intern.Interner[model.TournamentID]
	teams       *intern.Interner[model.TeamID]
	idx         indices

	// Sorted key directories for ordered traversal of composite keys.
	years     []model.Year
	tourYears map[model.TournamentID][]model.Year
	teamDirs  [3]map[model.TeamID]*teamDir

	tournamentRows []model.Tournament
	teamRows       []model.Team

	buildID  string
	sealedAt time.Time
	metrics  *metrics.Manager
}

// teamDir lists, for one team in one family, its tournaments and the
// seasons and years under each, all ascending.
type teamDir struct {
	tours   []model.TournamentID
	seasons map[model.TournamentID][]model.SeasonID
	years   map[model.TournamentID][]model.Year
}

// Stats summarizes a sealed store.
type Stats struct {
	BuildID     string    `json:"build_id"`
	SealedAt    time.Time `json:"sealed_at"`
	Matches     int       `json:"matches"`
	Seasons     int       `json:"seasons"`
	Tournaments int       `json:"tournaments"`
	Teams       int       `json:"teams"`
	Years       int       `json:"years"`
}

func newStore(b *Builder) *Store {
	s := &Store{
		seasons:     b.seasons,
		matches:     b.matches,
		tournaments: b.tournaments,
		teams:       b.teams,
		idx:         b.idx,
		tourYears:   make(map[model.TournamentID][]model.Year),
		buildID:     uuid.NewString(),
		sealedAt:    b.now(),
		metrics:     b.metrics,
	}

	for y := range s.idx.years {
		s.years = append(s.years, y)
	}
	slices.Sort(s.years)

	for k := range s.idx.tourYear {
		s.tourYears[k.tour] = append(s.tourYears[k.tour], k.year)
	}
	for _, ys := range s.tourYears {
		slices.Sort(ys)
	}

	for ha := range s.idx.teams {
		s.teamDirs[ha] = buildTeamDirs(&s.idx.teams[ha])
	}

	for _, e := range s.tournaments.Entries() {
		s.tournamentRows = append(s.tournamentRows, model.Tournament{ID: e.ID, Name: e.Name})
	}
	for _, e := range s.teams.Entries() {
		s.teamRows = append(s.teamRows, model.Team{ID: e.ID, Name: e.Name})
	}
	return s
}

func buildTeamDirs(fam *teamFamily) map[model.TeamID]*teamDir {
	dirs := make(map[model.TeamID]*teamDir)
	get := func(team model.TeamID) *teamDir {
		d, ok := dirs[team]
		if !ok {
			d = &teamDir{
				seasons: make(map[model.TournamentID][]model.SeasonID),
				years:   make(map[model.TournamentID][]model.Year),
			}
			dirs[team] = d
		}
		return d
	}
	for k := range fam.bySeason {
		d := get(k.team)
		d.seasons[k.tour] = append(d.seasons[k.tour], k.season)
	}
	for k := range fam.byYear {
		d := get(k.team)
		d.years[k.tour] = append(d.years[k.tour], k.year)
	}
	for _, d := range dirs {
		for t, ss := range d.seasons {
			slices.Sort(ss)
			d.tours = append(d.tours, t)
		}
		for t, ys := range d.years {
			slices.Sort(ys)
			if _, ok := d.seasons[t]; !ok {
				d.tours = append(d.tours, t)
			}
		}
		slices.SortFunc(d.tours, cmp.Compare[model.TournamentID])
	}
	return dirs
}

// Stats returns counts and build identity.
func (s *Store) Stats() Stats {
	return Stats{
		BuildID:     s.buildID,
		SealedAt:    s.sealedAt,
		Matches:     len(s.matches),
		Seasons:     len(s.seasons),
		Tournaments: s.tournaments.Len(),
		Teams:       s.teams.Len(),
		Years:       len(s.years),
	}
}

// Seasons lists every season in id order.
func (s *Store) Seasons() []model.Season {
	return slices.Clone(s.seasons)
}

// Tournaments lists every tournament in id order.
func (s *Store) Tournaments() []model.Tournament {
	return slices.Clone(s.tournamentRows)
}

// Teams lists every team in id order.
func (s *Store) Teams() []model.Team {
	return slices.Clone(s.teamRows)
}

// Years lists every calendar year present in the year index, ascending.
func (s *Store) Years() []model.Year {
	return slices.Clone(s.years)
}
