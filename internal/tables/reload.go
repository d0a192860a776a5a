package tables

import (
	"context"

	"go.uber.org/zap"
)

// Reloader reloads Files on change and hands each successfully loaded Set to
// apply. A failed load is logged and the previous tables stay in place.
type Reloader struct {
	files   Files
	apply   func(*Set)
	failed  func(error)
	watcher *Watcher
	logger  *zap.Logger
}

// NewReloader creates a reloader. Options are passed to the underlying Watcher.
func NewReloader(files Files, apply func(*Set), logger *zap.Logger, opts ...WatcherOption) *Reloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Reloader{files: files, apply: apply, logger: logger}
	opts = append([]WatcherOption{WithLogger(logger)}, opts...)
	r.watcher = NewWatcher(files.Paths(), r.reload, opts...)
	return r
}

// OnError registers fn to be called with every failed load.
func (r *Reloader) OnError(fn func(error)) *Reloader {
	r.failed = fn
	return r
}

// Start begins watching. It is a no-op when no table file is configured.
func (r *Reloader) Start(ctx context.Context) error {
	if len(r.files.Paths()) == 0 {
		return nil
	}
	return r.watcher.Start(ctx)
}

// Stop stops watching.
func (r *Reloader) Stop() {
	r.watcher.Stop()
}

func (r *Reloader) reload(path string) {
	set, err := Load(r.files)
	if err != nil {
		r.logger.Warn("table reload failed, keeping current tables", zap.String("path", path), zap.Error(err))
		if r.failed != nil {
			r.failed(err)
		}
		return
	}
	r.logger.Info("tables reloaded",
		zap.String("path", path),
		zap.Int("synonym_groups", set.Synonyms.Len()),
		zap.Int("regions", len(set.Locations.Names())),
	)
	if r.apply != nil {
		r.apply(set)
	}
}
