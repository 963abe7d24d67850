package tagfinder

import (
	"strconv"
	"strings"
)

// FormatTagCounts renders query results one per line as "tag<TAB>count".
// Returns an empty string for an empty or nil slice.
func FormatTagCounts(counts []TagCount) string {
	if len(counts) == 0 {
		return ""
	}

	var b strings.Builder
	for i, tc := range counts {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tc.Tag)
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(tc.Count))
	}
	return b.String()
}
