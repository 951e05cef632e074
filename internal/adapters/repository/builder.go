// Package repository holds the match store: a mutable Builder that folds
// match lists into composite-key indices, and the sealed, read-only Store
// it produces after the integrity check passes.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/matchdb/internal/domain/intern"
	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Builder accumulates seasons and match lists. It exposes no queries; call
// Seal to obtain a Store. A Builder must be used from a single goroutine.
type Builder struct {
	seasons     []model.Season // seasons[id-1]
	matches     map[model.MatchID]*model.Match
	tournaments *intern.Interner[model.TournamentID]
	teams       *intern.Interner[model.TeamID]
	idx         indices
	sealed      bool

	started time.Time
	now     func() time.Time
	logger  logger.Logger
	metrics *metrics.Manager
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		matches:     make(map[model.MatchID]*model.Match),
		tournaments: intern.New[model.TournamentID](),
		teams:       intern.New[model.TeamID](),
		idx:         newIndices(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logger.Get().Named("repository")
	}
	if b.metrics == nil {
		b.metrics = metrics.Default()
	}
	b.started = b.now()
	return b
}

// AddSeason allocates the next season id. An end year equal to the start
// year is dropped.
func (b *Builder) AddSeason(start model.Year, end *model.Year) (model.SeasonID, error) {
	if b.sealed {
		return 0, ErrSealed
	}
	s := model.Season{ID: model.SeasonID(len(b.seasons) + 1), StartYear: start}
	if end != nil && *end != start {
		e := *end
		s.EndYear = &e
	}
	b.seasons = append(b.seasons, s)
	return s.ID, nil
}

// RecordSeasonMatches appends ids to the season index.
func (b *Builder) RecordSeasonMatches(season model.SeasonID, ids []model.MatchID) error {
	if b.sealed {
		return ErrSealed
	}
	if _, ok := b.season(season); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSeason, season)
	}
	b.idx.seasons[season] = append(b.idx.seasons[season], ids...)
	return nil
}

// AddMatchList folds one list into the indices. Matches must already carry
// their ids; the tournament id is stamped here.
func (b *Builder) AddMatchList(season model.SeasonID, list model.MatchList) error {
	if b.sealed {
		return ErrSealed
	}
	s, ok := b.season(season)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSeason, season)
	}
	start, end, hasEnd := s.StartYear, model.Year(0), s.EndYear != nil
	if hasEnd {
		end = *s.EndYear
	}

	all := list.IDs()
	var inStart, inEnd []model.MatchID
	for i := range list.Matches {
		switch y := list.Matches[i].Date.Year; {
		case y == start:
			inStart = append(inStart, list.Matches[i].ID)
		case hasEnd && y == end:
			inEnd = append(inEnd, list.Matches[i].ID)
		}
	}

	// Year keys exist even when a subset is empty.
	b.idx.years[start] = append(b.idx.years[start], inStart...)
	if hasEnd {
		b.idx.years[end] = append(b.idx.years[end], inEnd...)
	}

	tour := b.tournaments.Intern(TournamentName(list.Name))

	for i := range list.Matches {
		m := list.Matches[i]
		m.SeasonID = season
		m.TournamentID = tour

		year, inYear := m.Date.Year, m.Date.Year == start || (hasEnd && m.Date.Year == end)
		sides := [2]struct {
			name string
			role model.HomeAway
		}{{m.Team1, model.Home}, {m.Team2, model.Away}}

		for _, side := range sides {
			team := b.teams.Intern(side.name)
			for _, fam := range []*teamFamily{b.idx.family(model.Both), b.idx.family(side.role)} {
				sk := teamSeasonKey{team: team, tour: tour, season: season}
				fam.bySeason[sk] = append(fam.bySeason[sk], m.ID)
				if inYear {
					yk := teamYearKey{team: team, tour: tour, year: year}
					fam.byYear[yk] = append(fam.byYear[yk], m.ID)
				}
			}
		}
		b.matches[m.ID] = &m
	}

	b.idx.tours[tour] = append(b.idx.tours[tour], all...)
	tsk := tourSeasonKey{tour: tour, season: season}
	b.idx.tourSeason[tsk] = append(b.idx.tourSeason[tsk], all...)
	sk := tourYearKey{tour: tour, year: start}
	b.idx.tourYear[sk] = append(b.idx.tourYear[sk], inStart...)
	if hasEnd {
		ek := tourYearKey{tour: tour, year: end}
		b.idx.tourYear[ek] = append(b.idx.tourYear[ek], inEnd...)
	}
	return nil
}

// Matches returns the number of matches folded so far.
func (b *Builder) Matches() int { return len(b.matches) }

// Seal verifies the indices and hands them to a new Store. The builder is
// unusable afterwards, whether or not sealing succeeded.
func (b *Builder) Seal(ctx context.Context) (*Store, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true

	if len(b.matches) == 0 {
		b.metrics.RecordBuildFailure("no_data")
		return nil, ErrNoDataAvailable
	}

	report := b.verify()
	b.metrics.RecordIntegrityCheck()
	if !report.OK() {
		b.metrics.RecordBuildFailure("integrity")
		b.logger.Error(ctx, "integrity check failed", logger.String("report", report.String()))
		return nil, fmt.Errorf("%w:\n%s", ErrDataIntegrity, report)
	}

	st := newStore(b)
	took := st.sealedAt.Sub(b.started)
	b.metrics.RecordBuild(float64(took.Microseconds())/1000, st.sealedAt.Unix(),
		len(st.matches), len(st.seasons), st.tournaments.Len(), st.teams.Len())

	b.logger.Info(ctx, fmt.Sprintf("%d matches from %d tournaments with %d teams added",
		len(st.matches), st.tournaments.Len(), st.teams.Len()),
		logger.String("build_id", st.buildID),
		logger.Float64("took_ms", float64(took.Microseconds())/1000),
	)
	return st, nil
}

func (b *Builder) season(id model.SeasonID) (model.Season, bool) {
	if id == 0 || int(id) > len(b.seasons) {
		return model.Season{}, false
	}
	return b.seasons[id-1], true
}

// TournamentName drops the last space-delimited token, which names the
// round or matchweek. "Premier League 1" becomes "Premier League".
func TournamentName(listName string) string {
	tokens := strings.Split(listName, " ")
	return strings.Join(tokens[:len(tokens)-1], " ")
}
