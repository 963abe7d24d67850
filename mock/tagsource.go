package mock

import (
	"context"

	"github.com/jpdelima/tagfinder"
)

var _ tagfinder.TagSource = (*TagSource)(nil)

// TagSource is a mock implementation of tagfinder.TagSource.
type TagSource struct {
	TagsFn func(ctx context.Context) ([]string, error)
}

func (s *TagSource) Tags(ctx context.Context) ([]string, error) {
	return s.TagsFn(ctx)
}
