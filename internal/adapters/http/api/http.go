// Package api serves the match store as a read-only JSON API under /api:
// listings, single matches, and paginated match lists by season, year,
// tournament and team.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/matchdb/internal/adapters/repository"
	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Catalog is the read side of a sealed store. *repository.Store satisfies it.
type Catalog interface {
	Seasons() []model.Season
	Tournaments() []model.Tournament
	Teams() []model.Team
	Match(id model.MatchID) (*model.Match, error)

	AllMatches() repository.Result
	SeasonMatches(season model.SeasonID) (repository.Result, error)
	YearMatches(year model.Year) (repository.Result, error)
	YearRangeMatches(start, end model.Year) (repository.Result, error)

	TournamentMatches(tour model.TournamentID) (repository.Result, error)
	TournamentSeasonMatches(tour model.TournamentID, season model.SeasonID) (repository.Result, error)
	TournamentYearMatches(tour model.TournamentID, year model.Year) (repository.Result, error)
	TournamentYearRangeMatches(tour model.TournamentID, start, end model.Year) (repository.Result, error)

	TeamMatches(team model.TeamID, ha model.HomeAway) (repository.Result, error)
	TeamSeasonMatches(team model.TeamID, season model.SeasonID, ha model.HomeAway) (repository.Result, error)
	TeamYearMatches(team model.TeamID, year model.Year, ha model.HomeAway) (repository.Result, error)
	TeamYearRangeMatches(team model.TeamID, start, end model.Year, ha model.HomeAway) (repository.Result, error)
	TeamTournamentMatches(team model.TeamID, tour model.TournamentID, ha model.HomeAway) (repository.Result, error)
	TeamTournamentSeasonMatches(team model.TeamID, tour model.TournamentID, season model.SeasonID, ha model.HomeAway) (repository.Result, error)
	TeamTournamentYearMatches(team model.TeamID, tour model.TournamentID, year model.Year, ha model.HomeAway) (repository.Result, error)
	TeamTournamentYearRangeMatches(team model.TeamID, tour model.TournamentID, start, end model.Year, ha model.HomeAway) (repository.Result, error)
}

var _ Catalog = (*repository.Store)(nil)

// Server wires HTTP routes for the match API.
type Server struct {
	catalog        Catalog
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	cache          *responseCache
	logger         logger.Logger
	metrics        *metrics.Manager
	gatherer       prometheus.Gatherer
	defaultPerPage int
	cacheSize      int
}

// NewServer creates a new API server over catalog.
func NewServer(catalog Catalog, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		catalog:        catalog,
		defaultPerPage: 10,
		cacheSize:      1024,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	if s.gatherer == nil {
		s.gatherer = metrics.GetRegistry()
	}
	s.healthHandler = NewHealthHandler(s.gatherer)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.cache = newResponseCache(s.cacheSize, s.metrics)
	return s
}

// listFunc runs one store query for parsed request parameters.
type listFunc func(c Catalog, q query) (repository.Result, error)

type route struct {
	pattern  string
	endpoint string
	list     listFunc
}

func (s *Server) routes() []route {
	return []route{
		{"GET /api/all_matches", "all_matches", func(c Catalog, _ query) (repository.Result, error) {
			return c.AllMatches(), nil
		}},
		{"GET /api/seasons/{id}", "season_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.SeasonMatches(model.SeasonID(q.id))
		}},
		{"GET /api/years/{year}", "year_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.YearMatches(q.year)
		}},
		{"GET /api/years/{start}/{end}", "year_range_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.YearRangeMatches(q.start, q.end)
		}},
		{"GET /api/tournaments/{id}", "tournament_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TournamentMatches(model.TournamentID(q.id))
		}},
		{"GET /api/tournaments/{id}/seasons/{season_id}", "tournament_season_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TournamentSeasonMatches(model.TournamentID(q.id), q.season)
		}},
		{"GET /api/tournaments/{id}/years/{year}", "tournament_year_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TournamentYearMatches(model.TournamentID(q.id), q.year)
		}},
		{"GET /api/tournaments/{id}/years/{start}/{end}", "tournament_year_range_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TournamentYearRangeMatches(model.TournamentID(q.id), q.start, q.end)
		}},
		{"GET /api/teams/{id}", "team_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamMatches(model.TeamID(q.id), q.ha)
		}},
		{"GET /api/teams/{id}/seasons/{season_id}", "team_season_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamSeasonMatches(model.TeamID(q.id), q.season, q.ha)
		}},
		{"GET /api/teams/{id}/years/{year}", "team_year_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamYearMatches(model.TeamID(q.id), q.year, q.ha)
		}},
		{"GET /api/teams/{id}/years/{start}/{end}", "team_year_range_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamYearRangeMatches(model.TeamID(q.id), q.start, q.end, q.ha)
		}},
		{"GET /api/teams/{id}/tournaments/{tour_id}", "team_tournament_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamTournamentMatches(model.TeamID(q.id), q.tour, q.ha)
		}},
		{"GET /api/teams/{id}/tournaments/{tour_id}/seasons/{season_id}", "team_tournament_season_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamTournamentSeasonMatches(model.TeamID(q.id), q.tour, q.season, q.ha)
		}},
		{"GET /api/teams/{id}/tournaments/{tour_id}/years/{year}", "team_tournament_year_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamTournamentYearMatches(model.TeamID(q.id), q.tour, q.year, q.ha)
		}},
		{"GET /api/teams/{id}/tournaments/{tour_id}/years/{start}/{end}", "team_tournament_year_range_matches", func(c Catalog, q query) (repository.Result, error) {
			return c.TeamTournamentYearRangeMatches(model.TeamID(q.id), q.tour, q.start, q.end, q.ha)
		}},
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.metrics, s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.metrics, s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /api/seasons", MetricsMiddleware(s.metrics, s.handleSeasons, "seasons"))
	mux.HandleFunc("GET /api/tournaments", MetricsMiddleware(s.metrics, s.handleTournaments, "tournaments"))
	mux.HandleFunc("GET /api/teams", MetricsMiddleware(s.metrics, s.handleTeams, "teams"))
	mux.HandleFunc("GET /api/matches/{id}", MetricsMiddleware(s.metrics, s.handleMatch, "match"))

	for _, rt := range s.routes() {
		mux.HandleFunc(rt.pattern, MetricsMiddleware(s.metrics, s.handleList(rt.list), rt.endpoint))
	}
}

// Handler wraps h with the request id and CORS middleware.
func Handler(h http.Handler, allowedOrigins []string) http.Handler {
	return RequestID(CORS(allowedOrigins)(h))
}

// listResponse is the body of every match-list endpoint.
type listResponse struct {
	Total int            `json:"total"`
	List  []*model.Match `json:"list"`
}

func (s *Server) handleList(fn listFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := s.parseQuery(r)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		key := q.cacheKey(r.URL.Path)
		if body, ok := s.cache.get(key); ok {
			writeBody(w, http.StatusOK, body)
			return
		}
		res, err := fn(s.catalog, q)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		body, err := json.Marshal(listResponse{Total: res.Total, List: res.Slice(q.offset, q.perPage)})
		if err != nil {
			s.writeErr(w, r, err)
			return
		}
		s.cache.add(key, body)
		writeBody(w, http.StatusOK, body)
	}
}

func (s *Server) handleSeasons(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Seasons())
}

func (s *Server) handleTournaments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Tournaments())
}

func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Teams())
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "id must be a non-negative integer")
		return
	}
	m, err := s.catalog.Match(model.MatchID(id))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// writeErr maps an error to its HTTP response. Only unexpected errors are logged.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "encode response")
		return
	}
	writeBody(w, status, buf.Bytes())
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Message: msg})
}
