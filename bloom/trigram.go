// Package bloom provides a Bloom-filter based substring prefilter over
// corpus string leaves.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// TrigramFilter records every byte trigram of indexed text. It can then
// cheaply rule out tags that cannot appear as a substring anywhere in the
// indexed text: if a tag is a substring of some leaf, every trigram of the
// tag is also a substring of that leaf and therefore indexed.
// False positives are possible; false negatives are not.
type TrigramFilter struct {
	f *bloom.BloomFilter
}

// NewTrigramFilter creates a filter sized for n expected distinct trigrams
// with the given false positive rate.
func NewTrigramFilter(n uint, fpRate float64) *TrigramFilter {
	return &TrigramFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Index adds every trigram of s to the filter.
func (t *TrigramFilter) Index(s string) {
	for i := 0; i+3 <= len(s); i++ {
		t.f.AddString(s[i : i+3])
	}
}

// MayContain reports whether tag could appear as a substring of any
// indexed string. Tags shorter than one trigram are never ruled out.
func (t *TrigramFilter) MayContain(tag string) bool {
	if len(tag) < 3 {
		return true
	}
	for i := 0; i+3 <= len(tag); i++ {
		if !t.f.TestString(tag[i : i+3]) {
			return false
		}
	}
	return true
}

// EstimatedTrigrams returns the approximate number of distinct trigrams
// in the filter.
func (t *TrigramFilter) EstimatedTrigrams() uint {
	return uint(t.f.ApproximatedSize())
}
