package ingest

import (
	"github.com/okian/matchdb/internal/adapters/decode"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for skipped directories and files.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithDecoder replaces the document decoder.
func WithDecoder(fn decode.Func) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.decode = fn
		}
	}
}

// WithWorkers bounds how many files of a directory decode at once.
// Zero or less means one per CPU.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithMetrics sets the metrics manager for skip and decode counters.
func WithMetrics(m *metrics.Manager) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}
