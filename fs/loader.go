// Package fs provides filesystem-backed implementations of the tagfinder
// corpus loader and default tag source.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/jpdelima/tagfinder"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// DefaultLoadTimeout bounds the whole load, not any single file.
	DefaultLoadTimeout = 5 * time.Second
	// DefaultMaxOpen caps the number of simultaneously open files so a
	// large directory cannot exhaust file descriptors.
	DefaultMaxOpen = 64
)

// Ensure Loader implements tagfinder.CorpusLoader at compile time.
var _ tagfinder.CorpusLoader = (*Loader)(nil)

// Loader implements tagfinder.CorpusLoader by reading and parsing every
// regular file in a directory concurrently, one goroutine per file.
//
// A single watchdog deadline governs the aggregate load. When it fires the
// load fails with ETIMEOUT and results from still-running tasks are
// discarded; in-flight reads are signalled through the context but not
// forcibly interrupted. A fatal outcome leaves no usable corpus, even if
// most files had already parsed; callers treat it as unrecoverable.
type Loader struct {
	timeout time.Duration
	maxOpen int64
	limiter *rate.Limiter
	fsys    fs.FS

	mu     sync.Mutex
	corpus []*tagfinder.Document
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the watchdog deadline for the whole load.
// Defaults to DefaultLoadTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithMaxOpen caps the number of simultaneously open files.
// Defaults to DefaultMaxOpen (64) if not specified.
func WithMaxOpen(n int) Option {
	return func(l *Loader) {
		l.maxOpen = int64(n)
	}
}

// WithReadLimit throttles file reads to rps reads per second. Useful when
// the directory lives on a shared network mount. No throttling by default.
func WithReadLimit(rps float64) Option {
	return func(l *Loader) {
		l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithFS substitutes the filesystem used for listing and reading. The dir
// argument to Load is then interpreted as a path within fsys.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// NewLoader creates a new Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout: DefaultLoadTimeout,
		maxOpen: DefaultMaxOpen,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses every regular file in dir concurrently and returns
// the resulting corpus.
//
// Listing failures and empty directories are fatal (ENOTFOUND / EINVALID),
// as is the watchdog deadline (ETIMEOUT). Individual files that fail to
// read or parse are recoverable: each is reported through progress with a
// non-nil Err, excluded from the corpus, and still counted toward
// completion. Document order in the corpus is completion order.
//
// The first successful call freezes the corpus; later calls return it
// without touching the filesystem again.
func (l *Loader) Load(ctx context.Context, dir string, progress tagfinder.LoadProgressFunc) ([]*tagfinder.Document, error) {
	l.mu.Lock()
	if l.corpus != nil {
		corpus := l.corpus
		l.mu.Unlock()
		return corpus, nil
	}
	l.mu.Unlock()

	entries, err := l.readDir(dir)
	if err != nil {
		return nil, tagfinder.Errorf(tagfinder.ENOTFOUND, "cannot list directory %q: %v", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, l.join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "directory %q contains no files", dir)
	}

	lctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	sem := semaphore.NewWeighted(l.maxOpen)
	total := len(paths)
	var completed atomic.Int64

	var docMu sync.Mutex
	docs := make([]*tagfinder.Document, 0, total)

	g, gctx := errgroup.WithContext(lctx)
	for _, p := range paths {
		p := p
		g.Go(func() error {
			doc, err := l.loadFile(gctx, sem, p)
			if gctx.Err() != nil {
				// The cycle is already fatal; this result is discarded.
				return nil
			}
			done := int(completed.Add(1))
			if err != nil {
				if progress != nil {
					progress(tagfinder.LoadProgress{Path: p, Completed: done, Total: total, Err: err})
				}
				return nil
			}
			docMu.Lock()
			docs = append(docs, doc)
			docMu.Unlock()
			if progress != nil {
				progress(tagfinder.LoadProgress{Path: p, Completed: done, Total: total})
			}
			return nil
		})
	}

	// Fan-in: readiness is derived from joining every task. The select
	// keeps the watchdog authoritative even if a read is stuck in the
	// kernel and cannot observe the context.
	loaded := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(loaded)
	}()

	select {
	case <-loaded:
	case <-lctx.Done():
		if errors.Is(lctx.Err(), context.DeadlineExceeded) {
			return nil, tagfinder.Errorf(tagfinder.ETIMEOUT, "load of %q did not finish within %s", dir, l.timeout)
		}
		return nil, lctx.Err()
	}
	if err := lctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, tagfinder.Errorf(tagfinder.ETIMEOUT, "load of %q did not finish within %s", dir, l.timeout)
		}
		return nil, err
	}

	l.mu.Lock()
	l.corpus = docs
	l.mu.Unlock()

	return docs, nil
}

// loadFile reads and parses a single file. Returned errors are recoverable
// unless the context has expired.
func (l *Loader) loadFile(ctx context.Context, sem *semaphore.Weighted, path string) (*tagfinder.Document, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	raw, err := l.readFile(path)
	sem.Release(1)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &tagfinder.Document{
		ID:          uuid.NewString(),
		Path:        path,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64(raw)),
		Value:       value,
		LoadedAt:    time.Now(),
	}, nil
}

func (l *Loader) readDir(dir string) ([]fs.DirEntry, error) {
	if l.fsys != nil {
		return fs.ReadDir(l.fsys, dir)
	}
	return os.ReadDir(dir)
}

func (l *Loader) readFile(name string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, name)
	}
	return os.ReadFile(name)
}

func (l *Loader) join(dir, name string) string {
	if l.fsys != nil {
		return path.Join(dir, name)
	}
	return filepath.Join(dir, name)
}
