package slog

import (
	"log/slog"
	"time"

	"github.com/jpdelima/tagfinder"
)

// Ensure TagCounter implements tagfinder.TagCounter at compile time.
var _ tagfinder.TagCounter = (*TagCounter)(nil)

// TagCounter wraps a tagfinder.TagCounter with query timing logs.
type TagCounter struct {
	next   tagfinder.TagCounter
	logger *slog.Logger
}

// NewTagCounter creates a new TagCounter.
func NewTagCounter(next tagfinder.TagCounter, logger *slog.Logger) *TagCounter {
	return &TagCounter{next: next, logger: logger}
}

// Initialize delegates to the wrapped counter, logging the corpus size.
func (c *TagCounter) Initialize(docs []*tagfinder.Document) error {
	if err := c.next.Initialize(docs); err != nil {
		c.logger.Error("initialize failed", "error", err)
		return err
	}
	c.logger.Info("engine initialized", "documents", len(docs))
	return nil
}

// Count delegates to the wrapped counter, logging query duration.
func (c *TagCounter) Count(tags []string) ([]tagfinder.TagCount, error) {
	begin := time.Now()

	counts, err := c.next.Count(tags)
	if err != nil {
		c.logger.Error("count failed", "tags", len(tags), "error", err)
		return nil, err
	}

	c.logger.Info("count complete",
		"tags", len(tags),
		"duration", time.Since(begin),
	)
	return counts, nil
}
