// Package search implements the in-memory tag counting engine.
package search

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/jpdelima/tagfinder"
	"github.com/jpdelima/tagfinder/bloom"
)

// Prefilter sizing. Distinct trigram cardinality is bounded above by total
// leaf bytes; these defaults keep the filter around 160KB while holding the
// target false positive rate for typical corpora.
const (
	prefilterExpectedTrigrams  = 1 << 17
	prefilterFalsePositiveRate = 0.01
)

// Ensure Engine implements tagfinder.TagCounter at compile time.
var _ tagfinder.TagCounter = (*Engine)(nil)

// Engine implements tagfinder.TagCounter over an in-memory corpus.
//
// Counts are memoized per tag: once computed, a count is served from the
// cache until Initialize replaces the corpus, which resets the cache
// wholesale. Zero counts are cached too, so a tag known to be absent never
// triggers another traversal. A trigram prefilter built at Initialize time
// short-circuits tags that cannot appear anywhere in the corpus.
//
// An internal mutex serializes Initialize and Count; queries are otherwise
// synchronous and CPU-bound.
type Engine struct {
	mu        sync.Mutex
	docs      []*tagfinder.Document
	cache     map[string]int
	prefilter *bloom.TrigramFilter
	ready     bool
}

// NewEngine returns an engine with no corpus.
// Initialize must be called before Count.
func NewEngine() *Engine {
	return &Engine{}
}

// Initialize replaces the working corpus, resets all cached counts, and
// rebuilds the substring prefilter. The documents are shared read-only
// with the caller and are never mutated. Returns EINVALID if docs is nil.
func (e *Engine) Initialize(docs []*tagfinder.Document) error {
	if docs == nil {
		return tagfinder.Errorf(tagfinder.EINVALID, "document corpus required")
	}

	pf := bloom.NewTrigramFilter(prefilterExpectedTrigrams, prefilterFalsePositiveRate)
	walkLeaves(docs, pf.Index)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = docs
	e.cache = make(map[string]int)
	e.prefilter = pf
	e.ready = true
	return nil
}

// Count returns one (tag, count) pair per requested tag, sorted by count
// descending with ties kept in request order. Cached tags are answered
// without touching the corpus; all remaining tags are computed in a single
// traversal pass. Returns ENOTREADY if called before Initialize.
func (e *Engine) Count(tags []string) ([]tagfinder.TagCount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return nil, tagfinder.Errorf(tagfinder.ENOTREADY, "engine not initialized")
	}
	if len(tags) == 0 {
		return []tagfinder.TagCount{}, nil
	}

	// Resolve what we can without touching the corpus.
	var pending []string
	for _, tag := range tags {
		if _, ok := e.cache[tag]; ok {
			continue
		}
		if !e.prefilter.MayContain(tag) {
			e.cache[tag] = 0
			continue
		}
		pending = append(pending, tag)
	}

	// One pass over the whole corpus computes every remaining tag. Each
	// string leaf contributes at most once per tag: presence, not
	// occurrence.
	if len(pending) > 0 {
		counts := make(map[string]int, len(pending))
		walkLeaves(e.docs, func(leaf string) {
			for _, tag := range pending {
				if strings.Contains(leaf, tag) {
					counts[tag]++
				}
			}
		})
		for _, tag := range pending {
			e.cache[tag] = counts[tag]
		}
	}

	results := make([]tagfinder.TagCount, len(tags))
	for i, tag := range tags {
		results[i] = tagfinder.TagCount{Tag: tag, Count: e.cache[tag]}
	}

	// Stable sort keeps request order among equal counts.
	slices.SortStableFunc(results, func(a, b tagfinder.TagCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return results, nil
}

// walkLeaves visits every string leaf of every document using an explicit
// work stack, so arbitrarily deep nesting cannot overflow the goroutine
// stack. Non-string scalars are ignored.
func walkLeaves(docs []*tagfinder.Document, visit func(leaf string)) {
	stack := make([]any, 0, len(docs))
	for _, doc := range docs {
		stack = append(stack, doc.Value)
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := node.(type) {
		case string:
			visit(v)
		case map[string]any:
			for _, child := range v {
				stack = append(stack, child)
			}
		case []any:
			for _, child := range v {
				stack = append(stack, child)
			}
		}
	}
}
