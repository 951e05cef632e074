// Package corpus reads a season-per-directory document tree into memory.
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/okian/matchdb/internal/domain/model"
	"github.com/okian/matchdb/pkg/logger"
)

// Loader reads corpora from a directory tree.
type Loader struct {
	logger logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for skipped entries.
func WithLogger(l logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	ld := &Loader{}
	for _, opt := range opts {
		opt(ld)
	}
	if ld.logger == nil {
		ld.logger = logger.Get().Named("corpus")
	}
	return ld
}

// Load reads every regular file of every subdirectory of dir.
func (ld *Loader) Load(ctx context.Context, dir string) (model.Corpus, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDataDirNotFound, dir)
	}
	return ld.LoadFS(ctx, os.DirFS(dir))
}

// LoadFS reads a corpus from the root of fsys. Top-level files are ignored,
// as are nested directories. Unreadable entries are logged and skipped.
func (ld *Loader) LoadFS(ctx context.Context, fsys fs.FS) (model.Corpus, error) {
	const op = "corpus.load"
	start := time.Now()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrDataDirNotFound, err)
	}

	out := make(model.Corpus)
	files := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		dir := ld.readDir(ctx, fsys, e.Name())
		if len(dir) == 0 {
			continue
		}
		out[e.Name()] = dir
		files += len(dir)
	}

	if len(out) == 0 {
		return nil, ErrNoFilesFound
	}

	ld.logger.Info(ctx, "corpus loaded",
		logger.Int("directories", len(out)),
		logger.Int("files", files),
		logger.Duration("took", time.Since(start)),
	)
	return out, nil
}

func (ld *Loader) readDir(ctx context.Context, fsys fs.FS, name string) model.Directory {
	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		ld.logger.Warn(ctx, "cannot read directory, continuing without it",
			logger.String("dir", name), logger.Error(err))
		return nil
	}

	dir := make(model.Directory, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := path.Join(name, e.Name())
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			ld.logger.Warn(ctx, "cannot read file, continuing without it",
				logger.String("file", p), logger.Error(err))
			continue
		}
		dir[e.Name()] = string(b)
	}
	return dir
}
