package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpdelima/tagfinder"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Loader  tagfinder.CorpusLoader
	Counter tagfinder.TagCounter
	Tags    tagfinder.TagSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string        `help:"Path to YAML config file" type:"path"`
	Timeout   time.Duration `default:"5s" help:"Watchdog deadline for the whole load"`
	MaxOpen   int           `default:"64" help:"Maximum simultaneously open files"`
	ReadLimit float64       `help:"Throttle file reads to this many per second (0 = unlimited)"`
	TagsFile  string        `help:"Newline-separated default tag file" type:"path"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`

	Count CountCmd `cmd:"" help:"Load a directory and count tags once"`
	Repl  ReplCmd  `cmd:"" help:"Load a directory and answer tag queries interactively"`
}

// CountCmd is the "count" subcommand.
type CountCmd struct {
	Dir  string   `arg:"" help:"Directory of JSON documents"`
	Tags []string `arg:"" optional:"" help:"Tags to count (defaults to the tag file)"`
}

// ReplCmd is the "repl" subcommand.
type ReplCmd struct {
	Dir string `arg:"" help:"Directory of JSON documents"`
}

// loadProgress reports recoverable per-file errors on stderr.
func loadProgress(stderr io.Writer) tagfinder.LoadProgressFunc {
	return func(p tagfinder.LoadProgress) {
		if p.Err != nil {
			fmt.Fprintf(stderr, "skip %s: %v\n", p.Path, p.Err)
		}
	}
}

// defaultTags resolves the default tag set for queries that supply none.
func defaultTags(deps *Dependencies) ([]string, error) {
	if deps.Tags == nil {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "no tags given and no tag file configured")
	}
	tags, err := deps.Tags.Tags(deps.Ctx)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "tag file contains no usable tags")
	}
	return tags, nil
}
