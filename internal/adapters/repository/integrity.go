package repository

import (
	"fmt"
	"strings"

	"github.com/okian/matchdb/internal/domain/model"
)

// IntegrityReport holds the leaf totals of every index next to the
// canonical match count.
type IntegrityReport struct {
	Matches    int
	Seasons    int
	Years      int
	Tours      int
	TourSeason int
	TourYear   int

	// Team totals indexed by model.HomeAway. Both is the combined family
	// and must count every match twice.
	TeamSeason [3]int
	TeamYear   [3]int
}

// OK reports whether every total agrees with Matches.
func (r IntegrityReport) OK() bool {
	n := r.Matches
	if r.Seasons != n || r.Years != n || r.Tours != n || r.TourSeason != n || r.TourYear != n {
		return false
	}
	if r.TeamSeason[model.Both] != 2*n || r.TeamYear[model.Both] != 2*n {
		return false
	}
	for _, ha := range []model.HomeAway{model.Home, model.Away} {
		if r.TeamSeason[ha] != n || r.TeamYear[ha] != n {
			return false
		}
	}
	return true
}

func (r IntegrityReport) String() string {
	var sb strings.Builder
	row := func(name string, got, want int) {
		mark := ""
		if got != want {
			mark = " (mismatch)"
		}
		fmt.Fprintf(&sb, "%-24s %d/%d%s\n", name, got, want, mark)
	}
	n := r.Matches
	row("season", r.Seasons, n)
	row("year", r.Years, n)
	row("tournament", r.Tours, n)
	row("tournament-season", r.TourSeason, n)
	row("tournament-year", r.TourYear, n)
	for _, ha := range []model.HomeAway{model.Both, model.Home, model.Away} {
		want := n
		if ha == model.Both {
			want = 2 * n
		}
		row("team-"+ha.String()+"-season", r.TeamSeason[ha], want)
		row("team-"+ha.String()+"-year", r.TeamYear[ha], want)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// verify recomputes every index total.
func (b *Builder) verify() IntegrityReport {
	r := IntegrityReport{
		Matches:    len(b.matches),
		Seasons:    leafTotal(b.idx.seasons),
		Years:      leafTotal(b.idx.years),
		Tours:      leafTotal(b.idx.tours),
		TourSeason: leafTotal(b.idx.tourSeason),
		TourYear:   leafTotal(b.idx.tourYear),
	}
	for ha := range b.idx.teams {
		r.TeamSeason[ha] = leafTotal(b.idx.teams[ha].bySeason)
		r.TeamYear[ha] = leafTotal(b.idx.teams[ha].byYear)
	}
	return r
}
