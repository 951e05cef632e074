package repository

import (
	"iter"

	"github.com/okian/matchdb/internal/domain/model"
)

// Result is a lazily materialized match sequence with its total length.
// Matches may be ranged over any number of times.
type Result struct {
	Total   int
	Matches iter.Seq[*model.Match]
}

func (s *Store) result(buckets ...[]model.MatchID) Result {
	total := 0
	for _, b := range buckets {
		total += len(b)
	}
	return Result{
		Total: total,
		Matches: func(yield func(*model.Match) bool) {
			for _, b := range buckets {
				for _, id := range b {
					if !yield(s.matches[id]) {
						return
					}
				}
			}
		},
	}
}

// Slice collects at most limit matches starting at offset. A negative limit
// means no limit.
func (r Result) Slice(offset, limit int) []*model.Match {
	if offset < 0 {
		offset = 0
	}
	n := r.Total - offset
	if limit >= 0 && limit < n {
		n = limit
	}
	if n <= 0 {
		return []*model.Match{}
	}
	out := make([]*model.Match, 0, n)
	i := 0
	for m := range r.Matches {
		if i >= offset {
			out = append(out, m)
			if len(out) == n {
				break
			}
		}
		i++
	}
	return out
}

// Collect materializes the whole sequence.
func (r Result) Collect() []*model.Match {
	return r.Slice(0, -1)
}
