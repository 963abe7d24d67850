package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jpdelima/tagfinder"
)

// Run executes the repl command: one load, then a query per input line
// until EOF. Engine and tag-source errors are reported per query; only a
// fatal load ends the session with an error.
func (c *ReplCmd) Run(deps *Dependencies) error {
	docs, err := deps.Loader.Load(deps.Ctx, c.Dir, loadProgress(deps.Stderr))
	if err != nil {
		return err
	}
	if err := deps.Counter.Initialize(docs); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "loaded %d documents from %s\n", len(docs), c.Dir)

	scanner := bufio.NewScanner(deps.Stdin)
	fmt.Fprint(deps.Stdout, "> ")
	for scanner.Scan() {
		c.query(deps, scanner.Text())
		fmt.Fprint(deps.Stdout, "> ")
	}
	return scanner.Err()
}

func (c *ReplCmd) query(deps *Dependencies, line string) {
	tags := tagfinder.SanitizeTags(strings.Fields(line))
	if len(tags) == 0 {
		var err error
		tags, err = defaultTags(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tagfinder.ErrorMessage(err))
			return
		}
	}

	counts, err := deps.Counter.Count(tags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagfinder.ErrorMessage(err))
		return
	}

	if out := tagfinder.FormatTagCounts(counts); out != "" {
		fmt.Fprintln(deps.Stdout, out)
	}
}
