package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jpdelima/tagfinder"
	main "github.com/jpdelima/tagfinder/cmd/tagfind"
	"github.com/jpdelima/tagfinder/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMain returns a Main that ignores any config file on the host.
func newTestMain() *main.Main {
	m := main.NewMain()
	m.ConfigPath = ""
	return m
}

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestRun_Count(t *testing.T) {
	t.Parallel()

	t.Run("counts requested tags across the directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{
			"a.json": `{"tags":["red apple","blue"]}`,
			"b.json": `{"nested":{"x":["green","redwood"]}}`,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"count", dir, "red", "blue"}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "red\t2\nblue\t1\n", stdout.String())
	})

	t.Run("malformed files are skipped with a note on stderr", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{
			"good.json": `["red"]`,
			"bad.json":  `{oops`,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"count", dir, "red"}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "red\t1\n", stdout.String())
		assert.Contains(t, stderr.String(), "bad.json")
	})

	t.Run("empty directory is a fatal error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"count", t.TempDir(), "red"}, strings.NewReader(""), stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, tagfinder.EINVALID, tagfinder.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("falls back to the tag file when no tags are given", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{"a.json": `["red","blue"]`})

		tagsPath := filepath.Join(t.TempDir(), "tags.txt")
		require.NoError(t, os.WriteFile(tagsPath, []byte("red\nblue\n"), 0644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"--tags-file", tagsPath, "count", dir}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "red\t1\nblue\t1\n", stdout.String())
	})

	t.Run("no tags and no tag file is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{"a.json": `["red"]`})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"count", dir}, strings.NewReader(""), stdout, stderr)

		assert.Equal(t, tagfinder.EINVALID, tagfinder.ErrorCode(err))
	})

	t.Run("reads settings from an explicit config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{"a.json": `["red"]`})

		tagsPath := filepath.Join(t.TempDir(), "tags.txt")
		require.NoError(t, os.WriteFile(tagsPath, []byte("red\n"), 0644))

		cfgPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("tagsFile: "+tagsPath+"\n"), 0644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"--config", cfgPath, "count", dir}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "red\t1\n", stdout.String())
	})

	t.Run("honors a read limit while loading", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{"a.json": `["red"]`})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"--read-limit", "500", "count", dir, "red"}, strings.NewReader(""), stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "red\t1\n", stdout.String())
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		t.Parallel()

		err := newTestMain().Run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "nope.yml"), "count", t.TempDir()}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, tagfinder.ENOTFOUND, tagfinder.ErrorCode(err))
	})
}

func TestOverlayConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills flags the user did not pass", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{Timeout: 5 * time.Second, MaxOpen: 64}
		cfg := &yaml.Config{LoadTimeoutMs: 2500, MaxOpen: 16, ReadLimitRps: 200, TagsFile: "/data/tags.txt", Verbose: true}

		main.OverlayConfig(cli, cfg, map[string]bool{})

		assert.Equal(t, 2500*time.Millisecond, cli.Timeout)
		assert.Equal(t, 16, cli.MaxOpen)
		assert.Equal(t, 200.0, cli.ReadLimit)
		assert.Equal(t, "/data/tags.txt", cli.TagsFile)
		assert.True(t, cli.Verbose)
	})

	t.Run("explicit flags win even when their value equals the default", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{Timeout: 5 * time.Second, MaxOpen: 64}
		cfg := &yaml.Config{LoadTimeoutMs: 2500, MaxOpen: 16}

		main.OverlayConfig(cli, cfg, map[string]bool{"timeout": true, "max-open": true})

		assert.Equal(t, 5*time.Second, cli.Timeout)
		assert.Equal(t, 64, cli.MaxOpen)
	})

	t.Run("unset config fields leave flags alone", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{Timeout: 5 * time.Second, MaxOpen: 64, TagsFile: "/flag/tags.txt"}

		main.OverlayConfig(cli, &yaml.Config{}, map[string]bool{})

		assert.Equal(t, 5*time.Second, cli.Timeout)
		assert.Equal(t, 64, cli.MaxOpen)
		assert.Zero(t, cli.ReadLimit)
		assert.Equal(t, "/flag/tags.txt", cli.TagsFile)
	})
}

func TestRun_Repl(t *testing.T) {
	t.Parallel()

	t.Run("answers queries until EOF", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{
			"a.json": `{"tags":["red apple","blue"]}`,
			"b.json": `{"nested":{"x":["green","redwood"]}}`,
		})

		stdin := strings.NewReader("red\nblue green\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"repl", dir}, stdin, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "loaded 2 documents")
		assert.Contains(t, out, "red\t2")
		assert.Contains(t, out, "blue\t1\ngreen\t1")
		assert.Empty(t, stderr.String())
	})

	t.Run("empty line without a tag file keeps the loop alive", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFixture(t, dir, map[string]string{"a.json": `["red"]`})

		stdin := strings.NewReader("\nred\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newTestMain().Run(context.Background(), []string{"repl", dir}, stdin, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "no tags given")
		assert.Contains(t, stdout.String(), "red\t1")
	})

	t.Run("fatal load ends the session with an error", func(t *testing.T) {
		t.Parallel()

		err := newTestMain().Run(context.Background(), []string{"repl", filepath.Join(t.TempDir(), "nope")}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, tagfinder.ENOTFOUND, tagfinder.ErrorCode(err))
	})
}
