// Package slog provides structured-logging decorators for tagfinder
// services using the standard library's log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jpdelima/tagfinder"
)

// Ensure CorpusLoader implements tagfinder.CorpusLoader at compile time.
var _ tagfinder.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader wraps a tagfinder.CorpusLoader with load timing and
// per-file failure logging.
type CorpusLoader struct {
	next   tagfinder.CorpusLoader
	logger *slog.Logger
}

// NewCorpusLoader creates a new CorpusLoader.
func NewCorpusLoader(next tagfinder.CorpusLoader, logger *slog.Logger) *CorpusLoader {
	return &CorpusLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader, logging each recoverable per-file
// error at Warn and the terminal outcome with its duration.
func (l *CorpusLoader) Load(ctx context.Context, dir string, progress tagfinder.LoadProgressFunc) ([]*tagfinder.Document, error) {
	begin := time.Now()

	wrapped := func(p tagfinder.LoadProgress) {
		if p.Err != nil {
			l.logger.Warn("file skipped",
				"path", p.Path,
				"completed", p.Completed,
				"total", p.Total,
				"error", p.Err,
			)
		}
		if progress != nil {
			progress(p)
		}
	}

	docs, err := l.next.Load(ctx, dir, wrapped)
	if err != nil {
		l.logger.Error("load failed",
			"dir", dir,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}

	l.logger.Info("load complete",
		"dir", dir,
		"documents", len(docs),
		"duration", time.Since(begin),
	)
	return docs, nil
}
