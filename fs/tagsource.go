package fs

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/jpdelima/tagfinder"
)

// Ensure TagFileSource implements tagfinder.TagSource at compile time.
var _ tagfinder.TagSource = (*TagFileSource)(nil)

// TagFileSource implements tagfinder.TagSource by reading a
// newline-separated tag file. The file is read at most once; the sanitized
// result is cached for the lifetime of the source. Construct a new source
// to pick up file changes.
type TagFileSource struct {
	path string

	once sync.Once
	tags []string
	err  error
}

// NewTagFileSource creates a TagFileSource for the given file path.
func NewTagFileSource(path string) *TagFileSource {
	return &TagFileSource{path: path}
}

// Tags returns the sanitized tag list from the file.
// Returns ENOTFOUND if the file cannot be read.
func (s *TagFileSource) Tags(ctx context.Context) ([]string, error) {
	s.once.Do(func() {
		raw, err := os.ReadFile(s.path)
		if err != nil {
			s.err = tagfinder.Errorf(tagfinder.ENOTFOUND, "cannot read tag file %q: %v", s.path, err)
			return
		}
		s.tags = tagfinder.SanitizeTags(strings.Split(string(raw), "\n"))
	})
	return s.tags, s.err
}
