// Package watch relinks a module whenever one of the files it was built
// from changes.
//
// The watcher observes the parent directories of the files reported by
// the last link and filters events by file name, so editors that replace
// files on save are handled. Bursts of events are coalesced by a
// Debouncer. Links always run on the goroutine that called Run.
package watch
