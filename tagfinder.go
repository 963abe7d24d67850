// Package tagfinder provides a local, CLI-based tag counting tool for
// directories of JSON documents. It bulk-loads a directory into an
// in-memory corpus under a single watchdog deadline, then answers queries
// that count, per tag, how many string leaves anywhere in the corpus
// contain the tag as a substring.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or function (e.g., fs/, search/, slog/).
package tagfinder
