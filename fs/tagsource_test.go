package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpdelima/tagfinder"
	"github.com/jpdelima/tagfinder/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagFileSource(t *testing.T) {
	t.Parallel()

	t.Run("reads and sanitizes newline-separated tags", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tags.txt")
		require.NoError(t, os.WriteFile(path, []byte("red\n  blue \n\nred\ngreen\n"), 0644))

		src := fs.NewTagFileSource(path)
		tags, err := src.Tags(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"red", "blue", "green"}, tags)
	})

	t.Run("caches the first read for the source lifetime", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tags.txt")
		require.NoError(t, os.WriteFile(path, []byte("red\n"), 0644))

		src := fs.NewTagFileSource(path)
		first, err := src.Tags(context.Background())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("blue\n"), 0644))

		second, err := src.Tags(context.Background())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("missing file returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		src := fs.NewTagFileSource(filepath.Join(t.TempDir(), "nope.txt"))
		tags, err := src.Tags(context.Background())

		assert.Nil(t, tags)
		assert.Equal(t, tagfinder.ENOTFOUND, tagfinder.ErrorCode(err))
	})
}
