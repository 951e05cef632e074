// Package decode turns raw match documents into model.MatchList values.
package decode

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/matchdb/internal/domain/model"
)

// Func decodes one document. Implementations must be safe for concurrent use.
type Func func(text string) (model.MatchList, error)

const maxGoals = 255

type rawList struct {
	Name    *string     `json:"name"`
	Matches *[]rawMatch `json:"matches"`
}

type rawMatch struct {
	Round *string      `json:"round"`
	Date  *model.Date  `json:"date"`
	Time  *model.Clock `json:"time"`
	Team1 *string      `json:"team1"`
	Team2 *string      `json:"team2"`
	Score *rawScore    `json:"score"`
	Stage *string      `json:"stage"`
}

type rawScore struct {
	HT []int `json:"ht"`
	FT []int `json:"ft"`
}

// JSON decodes an openfootball style document:
//
//	{"name": "English Premier League 2015/16", "matches": [
//	  {"round": "Matchday 1", "date": "2015-08-08", "team1": "A", "team2": "B",
//	   "score": {"ht": [1, 0], "ft": [2, 1]}}]}
//
// Unknown fields are ignored. date, team1 and team2 are required per match;
// a single bad match fails the whole document.
func JSON(text string) (model.MatchList, error) {
	var raw rawList
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.MatchList{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if raw.Name == nil {
		return model.MatchList{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if raw.Matches == nil {
		return model.MatchList{}, fmt.Errorf("%w: matches", ErrMissingField)
	}

	list := model.MatchList{Name: *raw.Name, Matches: make([]model.Match, 0, len(*raw.Matches))}
	for i, rm := range *raw.Matches {
		m, err := rm.match()
		if err != nil {
			return model.MatchList{}, fmt.Errorf("match %d: %w", i, err)
		}
		list.Matches = append(list.Matches, m)
	}
	return list, nil
}

func (rm rawMatch) match() (model.Match, error) {
	var missing []string
	if rm.Date == nil {
		missing = append(missing, "date")
	}
	if rm.Team1 == nil {
		missing = append(missing, "team1")
	}
	if rm.Team2 == nil {
		missing = append(missing, "team2")
	}
	if len(missing) > 0 {
		return model.Match{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	m := model.Match{
		Round: rm.Round,
		Date:  *rm.Date,
		Time:  rm.Time,
		Team1: *rm.Team1,
		Team2: *rm.Team2,
		Stage: rm.Stage,
	}
	if rm.Score != nil {
		var err error
		if m.Score.HalfTime, err = goals("ht", rm.Score.HT); err != nil {
			return model.Match{}, err
		}
		if m.Score.FullTime, err = goals("ft", rm.Score.FT); err != nil {
			return model.Match{}, err
		}
	}
	return m, nil
}

// goals converts an optional two-element array. nil stays nil.
func goals(field string, pair []int) (*model.Goals, error) {
	if pair == nil {
		return nil, nil
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("%w: %s has %d elements", ErrBadScore, field, len(pair))
	}
	for _, g := range pair {
		if g < 0 || g > maxGoals {
			return nil, fmt.Errorf("%w: %s value %d out of range", ErrBadScore, field, g)
		}
	}
	return &model.Goals{pair[0], pair[1]}, nil
}
