// Package service builds the match store at startup and exposes it, with
// build statistics, to the HTTP layer.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/matchdb/internal/adapters/corpus"
	"github.com/okian/matchdb/internal/adapters/decode"
	"github.com/okian/matchdb/internal/adapters/repository"
	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/internal/ingest"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Service owns the one-shot build and the sealed store it produces.
type Service struct {
	mu sync.RWMutex

	// Configuration
	dataDir       string
	decodeWorkers int
	corpus        model.Corpus
	decoder       decode.Func

	// State
	store     *repository.Store
	report    ingest.Report
	started   bool
	startedAt time.Time

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataDir sets the directory the corpus is read from.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.dataDir = dir
		}
	}
}

// WithDecodeWorkers bounds parallel decoding per season directory.
func WithDecodeWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.decodeWorkers = n
		}
	}
}

// WithCorpus builds from an in-memory corpus instead of the data directory.
func WithCorpus(c model.Corpus) Option {
	return func(s *Service) {
		s.corpus = c
	}
}

// WithDecoder replaces the document decoder.
func WithDecoder(fn decode.Func) Option {
	return func(s *Service) {
		if fn != nil {
			s.decoder = fn
		}
	}
}

// WithMetrics sets the metrics manager used by the build.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataDir:       "matchdata",
		decodeWorkers: runtime.NumCPU(),
		decoder:       decode.JSON,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the corpus and builds the store. Any error leaves the service
// without a store. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}

	began := time.Now()
	s.logger.Info(ctx, "building match store...", logger.String("data_dir", s.dataDir))

	c := s.corpus
	if c == nil {
		var err error
		c, err = corpus.New(corpus.WithLogger(s.logger.Named("corpus"))).Load(ctx, s.dataDir)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
	}

	b := repository.NewBuilder(
		repository.WithLogger(s.logger.Named("repository")),
		repository.WithMetrics(s.metrics),
	)
	p := ingest.New(
		ingest.WithLogger(s.logger.Named("ingest")),
		ingest.WithDecoder(s.decoder),
		ingest.WithWorkers(s.decodeWorkers),
		ingest.WithMetrics(s.metrics),
	)
	report, err := p.Run(ctx, c, b)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	st, err := b.Seal(ctx)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}

	s.store = st
	s.report = report
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "match store ready",
		logger.String("build_id", st.Stats().BuildID),
		logger.Int("matches", st.Stats().Matches),
		logger.Duration("took", time.Since(began)),
		logger.Any("ingest", report),
	)
	return nil
}

// Stop marks the service stopped. It is safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "match store service stopped")
}

// Store returns the sealed store, or nil before a successful Start.
func (s *Service) Store() *repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Report returns the ingestion report of the last build.
func (s *Service) Report() ingest.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"data_dir":       s.dataDir,
		"decode_workers": s.decodeWorkers,
	}
	if s.store != nil {
		st := s.store.Stats()
		stats["started_at"] = s.startedAt.UTC().Format(time.RFC3339)
		stats["build_id"] = st.BuildID
		stats["sealed_at"] = st.SealedAt.UTC().Format(time.RFC3339)
		stats["matches"] = st.Matches
		stats["seasons"] = st.Seasons
		stats["tournaments"] = st.Tournaments
		stats["teams"] = st.Teams
		stats["years"] = st.Years
		stats["ingest"] = s.report
	}
	return stats
}
