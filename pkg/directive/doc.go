// SPDX-License-Identifier: MPL-2.0

// Package directive parses the exemd metadata embedded in the leading comment
// block of a snippet.
//
// Three directives are recognized, each on its own comment line:
//
//	// exemd-name: joda
//	// exemd-filename: HelloWorld
//	// exemd-deps: joda-time:joda-time;version=2.2
//
// Directives may appear in any order and may be mixed with ordinary comment
// lines and blank lines. Scanning stops at the first line that is neither blank
// nor a comment, so directive-looking text inside the code body is never
// interpreted. A malformed deps directive is skipped and reported as a
// diagnostic; it never prevents the rest of the block from being applied.
package directive
