// Package mock provides function-field test doubles for tagfinder
// interfaces.
package mock

import (
	"context"

	"github.com/jpdelima/tagfinder"
)

var _ tagfinder.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader is a mock implementation of tagfinder.CorpusLoader.
type CorpusLoader struct {
	LoadFn func(ctx context.Context, dir string, progress tagfinder.LoadProgressFunc) ([]*tagfinder.Document, error)
}

func (l *CorpusLoader) Load(ctx context.Context, dir string, progress tagfinder.LoadProgressFunc) ([]*tagfinder.Document, error) {
	return l.LoadFn(ctx, dir, progress)
}
