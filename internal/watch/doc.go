// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs snippets when their source files change.
//
// A Watcher monitors a directory (optionally recursively), filters events with
// doublestar glob patterns, and invokes a callback once the filesystem has been
// quiet for a debounce period. Events inside the window are coalesced, so an
// editor's write-then-rename produces a single callback.
package watch
