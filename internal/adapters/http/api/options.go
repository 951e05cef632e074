package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager for route and cache metrics.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithGatherer sets the registry exposed on /healthz.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// WithDefaultPerPage sets the page size used when per_page is absent.
func WithDefaultPerPage(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.defaultPerPage = n
		}
	}
}

// WithCacheSize bounds the response cache. Zero disables it.
func WithCacheSize(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.cacheSize = n
		}
	}
}
