// Package ingest turns an in-memory corpus into builder calls: it parses
// season directory names, decodes each directory's documents in parallel,
// assigns match ids, and folds the surviving lists in first-id order.
package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/matchdb/internal/adapters/decode"
	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/logger"
	"github.com/okian/matchdb/pkg/metrics"
)

// Sink receives seasons and match lists. repository.Builder implements it.
type Sink interface {
	AddSeason(start model.Year, end *model.Year) (model.SeasonID, error)
	RecordSeasonMatches(season model.SeasonID, ids []model.MatchID) error
	AddMatchList(season model.SeasonID, list model.MatchList) error
}

// Report counts what one run accepted and skipped.
type Report struct {
	Directories        int `json:"directories"`
	Seasons            int `json:"seasons"`
	SkippedDirectories int `json:"skipped_directories"`
	Files              int `json:"files"`
	FailedFiles        int `json:"failed_files"`
	EmptyLists         int `json:"empty_lists"`
	Matches            int `json:"matches"`
}

// Pipeline drives ingestion. It holds no per-run state and may be reused.
type Pipeline struct {
	logger  logger.Logger
	decode  decode.Func
	workers int
	metrics *metrics.Manager
}

// New creates a Pipeline using the JSON decoder.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		decode:  decode.JSON,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("ingest")
	}
	if p.metrics == nil {
		p.metrics = metrics.Default()
	}
	return p
}

// Run ingests every directory of c into sink in ascending name order.
// Malformed names, undecodable files and empty directories are logged and
// skipped. Errors returned are sink failures or context cancellation.
func (p *Pipeline) Run(ctx context.Context, c model.Corpus, sink Sink) (Report, error) {
	var (
		rep    Report
		nextID atomic.Uint64
	)
	for _, name := range c.Names() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Directories++

		start, end, err := ParseSeason(name)
		if err != nil {
			p.logger.Warn(ctx, "skipping directory", logger.String("directory", name), logger.Error(err))
			p.metrics.RecordIngestSkipped(metrics.ReasonSeasonMalformed)
			rep.SkippedDirectories++
			continue
		}
		season, err := sink.AddSeason(start, end)
		if err != nil {
			return rep, fmt.Errorf("add season %s: %w", name, err)
		}

		lists, err := p.decodeDirectory(ctx, name, c[name], &nextID, &rep)
		if err != nil {
			return rep, err
		}
		if len(lists) == 0 {
			p.logger.Warn(ctx, "no matches in directory", logger.String("directory", name))
			p.metrics.RecordIngestSkipped(metrics.ReasonEmptyDirectory)
			rep.SkippedDirectories++
			continue
		}

		// Ids are handed out concurrently, so file order is restored here.
		sort.Slice(lists, func(i, j int) bool { return lists[i].FirstID() < lists[j].FirstID() })

		var ids []model.MatchID
		for _, l := range lists {
			ids = append(ids, l.IDs()...)
		}
		if err := sink.RecordSeasonMatches(season, ids); err != nil {
			return rep, fmt.Errorf("record season %s: %w", name, err)
		}
		for _, l := range lists {
			if err := sink.AddMatchList(season, l); err != nil {
				return rep, fmt.Errorf("add list %q: %w", l.Name, err)
			}
		}

		rep.Seasons++
		rep.Matches += len(ids)
		p.logger.Debug(ctx, "season ingested",
			logger.String("directory", name),
			logger.Int("lists", len(lists)),
			logger.Int("matches", len(ids)),
		)
	}

	p.logger.Info(ctx, "ingestion finished",
		logger.Int("directories", rep.Directories),
		logger.Int("seasons", rep.Seasons),
		logger.Int("skipped_directories", rep.SkippedDirectories),
		logger.Int("failed_files", rep.FailedFiles),
		logger.Int("matches", rep.Matches),
	)
	return rep, nil
}

// decodeDirectory decodes the files of one directory in parallel and
// returns the non-empty lists with ids assigned, in no particular order.
func (p *Pipeline) decodeDirectory(ctx context.Context, dirName string, dir model.Directory,
	nextID *atomic.Uint64, rep *Report) ([]model.MatchList, error) {
	files := make([]string, 0, len(dir))
	for name := range dir {
		files = append(files, name)
	}
	sort.Strings(files)

	var (
		mu    sync.Mutex
		lists []model.MatchList
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, file := range files {
		text := dir[file]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			list, err := p.decode(text)
			if err != nil {
				p.logger.Warn(gctx, "skipping file",
					logger.String("directory", dirName),
					logger.String("file", file),
					logger.Error(err),
				)
				p.metrics.RecordIngestSkipped(metrics.ReasonDecodeFailed)
				mu.Lock()
				rep.Files++
				rep.FailedFiles++
				mu.Unlock()
				return nil
			}
			p.metrics.RecordFileDecoded(float64(time.Since(began).Microseconds()) / 1000)
			if len(list.Matches) == 0 {
				p.logger.Warn(gctx, "skipping empty match list",
					logger.String("directory", dirName),
					logger.String("file", file),
				)
				p.metrics.RecordIngestSkipped(metrics.ReasonEmptyList)
				mu.Lock()
				rep.Files++
				rep.EmptyLists++
				mu.Unlock()
				return nil
			}

			for i := range list.Matches {
				list.Matches[i].ID = model.MatchID(nextID.Add(1))
			}

			mu.Lock()
			rep.Files++
			lists = append(lists, list)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}
