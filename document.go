package tagfinder

import (
	"context"
	"time"
)

// Document represents one parsed JSON value loaded from a single file.
// Value holds the decoded JSON (map[string]any, []any, or a scalar);
// no schema is enforced.
type Document struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Value       any       `json:"value"`
	LoadedAt    time.Time `json:"loadedAt"`
}

// LoadProgress reports the completion of a single file during a bulk load.
// Err is non-nil when the file failed to read or parse; such files are
// excluded from the corpus but still count toward completion.
type LoadProgress struct {
	Path      string
	Completed int
	Total     int
	Err       error
}

// LoadProgressFunc is called as files finish loading, successfully or not.
// Loaders may invoke it concurrently from multiple goroutines, so
// implementations must be safe for concurrent use.
type LoadProgressFunc func(LoadProgress)

// CorpusLoader loads every JSON file in a directory into an in-memory corpus.
//
// A successful return is the only readiness signal: the returned slice is
// frozen and must not be mutated afterward by either side. A non-nil error
// is fatal for the whole load cycle - no partial corpus is usable, even if
// most files had already parsed. Per-file failures are recoverable: they
// are reported through progress and the load continues without that file.
//
// Implementations must be idempotent after success: once a load cycle has
// produced a corpus, subsequent calls return it without touching the
// filesystem again.
type CorpusLoader interface {
	Load(ctx context.Context, dir string, progress LoadProgressFunc) ([]*Document, error)
}
