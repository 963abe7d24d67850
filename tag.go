package tagfinder

import (
	"context"
	"strings"
)

// TagCount pairs a tag with the number of string leaves that contain it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounter answers substring-containment counting queries over a corpus.
type TagCounter interface {
	// Initialize replaces the working corpus and resets all cached counts.
	// Returns EINVALID if docs is nil.
	Initialize(docs []*Document) error

	// Count returns one entry per requested tag: the number of string
	// leaves in the corpus containing the tag as a substring, each leaf
	// contributing at most once per tag. Results are sorted by count
	// descending; ties keep the order of the request. Tags are assumed
	// already sanitized (trimmed, non-empty, unique).
	// Returns ENOTREADY if called before Initialize.
	Count(tags []string) ([]TagCount, error)
}

// TagSource supplies the default tag set used when a query provides none.
type TagSource interface {
	Tags(ctx context.Context) ([]string, error)
}

// SanitizeTags trims whitespace, drops empty entries, and removes
// duplicates while preserving first-seen order. Matching is case-sensitive,
// so sanitization never changes case.
func SanitizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
