package bloom_test

import (
	"testing"

	"github.com/jpdelima/tagfinder/bloom"
	"github.com/stretchr/testify/assert"
)

func TestTrigramFilter(t *testing.T) {
	t.Parallel()

	t.Run("indexed substrings are never ruled out", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewTrigramFilter(1000, 0.01)
		f.Index("red apple")
		f.Index("redwood")

		assert.True(t, f.MayContain("red"))
		assert.True(t, f.MayContain("apple"))
		assert.True(t, f.MayContain("wood"))
	})

	t.Run("rules out tags with unseen trigrams", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewTrigramFilter(1000, 0.01)
		f.Index("red apple")

		assert.False(t, f.MayContain("zzzebra"))
	})

	t.Run("short tags are never ruled out", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewTrigramFilter(1000, 0.01)

		assert.True(t, f.MayContain("ab"))
		assert.True(t, f.MayContain("x"))
	})

	t.Run("strings shorter than a trigram index nothing", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewTrigramFilter(1000, 0.01)
		f.Index("ab")

		assert.Zero(t, f.EstimatedTrigrams())
	})
}
