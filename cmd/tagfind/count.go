package main

import (
	"fmt"

	"github.com/jpdelima/tagfinder"
)

// Run executes the count command.
func (c *CountCmd) Run(deps *Dependencies) error {
	docs, err := deps.Loader.Load(deps.Ctx, c.Dir, loadProgress(deps.Stderr))
	if err != nil {
		return err
	}
	if err := deps.Counter.Initialize(docs); err != nil {
		return err
	}

	tags := tagfinder.SanitizeTags(c.Tags)
	if len(tags) == 0 {
		tags, err = defaultTags(deps)
		if err != nil {
			return err
		}
	}

	counts, err := deps.Counter.Count(tags)
	if err != nil {
		return err
	}

	if out := tagfinder.FormatTagCounts(counts); out != "" {
		fmt.Fprintln(deps.Stdout, out)
	}
	return nil
}
