package mock

import "github.com/jpdelima/tagfinder"

var _ tagfinder.TagCounter = (*TagCounter)(nil)

// TagCounter is a mock implementation of tagfinder.TagCounter.
type TagCounter struct {
	InitializeFn func(docs []*tagfinder.Document) error
	CountFn      func(tags []string) ([]tagfinder.TagCount, error)
}

func (c *TagCounter) Initialize(docs []*tagfinder.Document) error {
	return c.InitializeFn(docs)
}

func (c *TagCounter) Count(tags []string) ([]tagfinder.TagCount, error) {
	return c.CountFn(tags)
}
