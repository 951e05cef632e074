package testcorpus

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchdb/internal/domain/model"
)

const (
	maxHalfTimeGoals = 3
	maxExtraGoals    = 3
	unscoredEvery    = 7
	seedMix          = 0x9e3779b97f4a7c15
)

type document struct {
	Name    string          `json:"name"`
	Matches []documentMatch `json:"matches"`
}

type documentMatch struct {
	Round string         `json:"round"`
	Date  string         `json:"date"`
	Time  string         `json:"time,omitempty"`
	Team1 string         `json:"team1"`
	Team2 string         `json:"team2"`
	Score *documentScore `json:"score,omitempty"`
}

type documentScore struct {
	HT [2]int `json:"ht"`
	FT [2]int `json:"ft"`
}

// Generate builds a corpus and the counts a build of it must report. The
// same Config always yields the same corpus.
func Generate(cfg Config) (model.Corpus, Expected) {
	cfg = cfg.normalized()
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^seedMix))

	teams := make([][]string, cfg.Tournaments)
	for t := range teams {
		teams[t] = make([]string, cfg.TeamsPerTournament)
		for i := range teams[t] {
			teams[t][i] = TeamName(t, i)
		}
	}

	c := make(model.Corpus, cfg.Seasons)
	exp := Expected{Tournaments: cfg.Tournaments, Teams: cfg.Tournaments * cfg.TeamsPerTournament}
	for s := 0; s < cfg.Seasons; s++ {
		start := cfg.FirstYear + s
		// Two-digit end years take the start year's millennium, so "1995-96"
		// cannot be written. Such seasons become single-year directories.
		single := (cfg.SingleYearEvery > 0 && s%cfg.SingleYearEvery == cfg.SingleYearEvery-1) ||
			(start/1000)*1000+(start+1)%100 != start+1

		dirName, label := fmt.Sprintf("%04d-%02d", start, (start+1)%100), fmt.Sprintf("%d/%02d", start, (start+1)%100)
		if single {
			dirName, label = fmt.Sprintf("%04d", start), fmt.Sprintf("%d", start)
		}

		dir := make(model.Directory, cfg.Tournaments)
		for t := 0; t < cfg.Tournaments; t++ {
			doc := document{Name: fmt.Sprintf("%s %s", TournamentName(t), label)}
			for r := 0; r < cfg.Rounds; r++ {
				date := roundDate(start, r, cfg.Rounds, single)
				for _, pair := range pairings(cfg.TeamsPerTournament, r) {
					m := documentMatch{
						Round: fmt.Sprintf("Matchday %d", r+1),
						Date:  date.Format(time.DateOnly),
						Team1: teams[t][pair[0]],
						Team2: teams[t][pair[1]],
					}
					if r%2 == 0 {
						m.Time = "15:00"
					}
					if (len(doc.Matches)+1)%unscoredEvery != 0 {
						sc := documentScore{HT: [2]int{rng.IntN(maxHalfTimeGoals + 1), rng.IntN(maxHalfTimeGoals + 1)}}
						sc.FT = [2]int{sc.HT[0] + rng.IntN(maxExtraGoals+1), sc.HT[1] + rng.IntN(maxExtraGoals+1)}
						m.Score = &sc
					}
					doc.Matches = append(doc.Matches, m)
				}
			}
			dir[fmt.Sprintf("%d-%s.json", t+1, slug(TournamentName(t)))] = encode(doc)
			exp.Matches += len(doc.Matches)
		}
		if cfg.Junk && s == 0 {
			dir["broken.json"] = `{"name": `
			dir["empty.json"] = `{"name": "Friendlies 1", "matches": []}`
		}
		c[dirName] = dir
		exp.Seasons++
	}
	if cfg.Junk {
		c["notes"] = model.Directory{"readme.txt": "not a season"}
	}
	return c, exp
}

// TournamentName is the interned name of the t-th generated tournament.
func TournamentName(t int) string {
	return fmt.Sprintf("League %d", t+1)
}

// TeamName is a stable name for team i of tournament t.
func TeamName(t, i int) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "matchdb/%d/%d", t, i))
	return "FC " + id.String()[:8]
}

// roundDate spreads rounds over the season: the first half from August of
// the start year, the rest from January of the next. Single-year seasons
// start in February.
func roundDate(start, round, rounds int, single bool) time.Time {
	if single {
		return time.Date(start, time.February, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(round) * roundStep)
	}
	firstHalf := (rounds + 1) / 2
	if round < firstHalf {
		return time.Date(start, time.August, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(round) * roundStep)
	}
	return time.Date(start+1, time.January, 10, 0, 0, 0, 0, time.UTC).Add(time.Duration(round-firstHalf) * roundStep)
}

// pairings returns n/2 disjoint (home, away) pairs for a round.
func pairings(n, round int) [][2]int {
	out := make([][2]int, 0, n/2)
	for i := 0; i < n/2; i++ {
		out = append(out, [2]int{(i + round) % n, (n - 1 - i + round) % n})
	}
	return out
}

func slug(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch == ' ' {
			b[i] = '-'
		}
	}
	return string(b)
}

func encode(doc document) string {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("testcorpus: encode %q: %v", doc.Name, err))
	}
	return string(b)
}
