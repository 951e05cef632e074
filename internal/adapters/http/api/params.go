package api

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/okian/matchdb/internal/config"
	"github.com/okian/matchdb/internal/domain/model"
)

// query holds the parsed path and query parameters of a match-list request.
type query struct {
	id     uint32
	tour   model.TournamentID
	season model.SeasonID
	year   model.Year
	start  model.Year
	end    model.Year
	ha     model.HomeAway

	offset  int
	perPage int
}

// cacheKey is a canonical form of the request, independent of query
// parameter order and spelling of defaults.
func (q query) cacheKey(path string) string {
	return fmt.Sprintf("%s?offset=%d&per_page=%d&home_away=%s", path, q.offset, q.perPage, q.ha)
}

func (s *Server) parseQuery(r *http.Request) (query, error) {
	var (
		q   query
		err error
	)
	if q.id, err = pathUint32(r, "id"); err != nil {
		return q, err
	}
	var v uint32
	if v, err = pathUint32(r, "tour_id"); err != nil {
		return q, err
	}
	q.tour = model.TournamentID(v)
	if v, err = pathUint32(r, "season_id"); err != nil {
		return q, err
	}
	q.season = model.SeasonID(v)
	if q.year, err = pathYear(r, "year"); err != nil {
		return q, err
	}
	if q.start, err = pathYear(r, "start"); err != nil {
		return q, err
	}
	if q.end, err = pathYear(r, "end"); err != nil {
		return q, err
	}

	values := r.URL.Query()
	if q.offset, err = offset(values); err != nil {
		return q, err
	}
	if q.perPage, err = perPage(values, s.defaultPerPage); err != nil {
		return q, err
	}
	if q.ha, err = model.ParseHomeAway(values.Get("home_away")); err != nil {
		return q, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return q, nil
}

// pathUint32 parses a path wildcard. An absent wildcard yields zero.
func pathUint32(r *http.Request, name string) (uint32, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrBadRequest, name, raw)
	}
	return uint32(v), nil
}

func pathYear(r *http.Request, name string) (model.Year, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrBadRequest, name, raw)
	}
	return v, nil
}

func offset(values url.Values) (int, error) {
	raw := values.Get("offset")
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: offset must be a non-negative integer, got %q", ErrBadRequest, raw)
	}
	return v, nil
}

func perPage(values url.Values, def int) (int, error) {
	raw := values.Get("per_page")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(config.PageSizes, v) {
		return 0, fmt.Errorf("%w: per_page must be one of %v, got %q", ErrBadRequest, config.PageSizes, raw)
	}
	return v, nil
}
