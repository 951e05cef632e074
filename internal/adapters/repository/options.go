package repository

import (
	"time"

	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build summaries.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics sets the metrics manager the builder and its store report to.
func WithMetrics(m *metrics.Manager) Option {
	return func(b *Builder) {
		if m != nil {
			b.metrics = m
		}
	}
}

// WithClock overrides the time source used to stamp the sealed store.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}
