// SPDX-License-Identifier: MPL-2.0

// Package manifest renders the build-tool manifest of a scaffolded snippet
// project (build.gradle, go.mod, Cargo.toml, requirements.txt).
//
// Each Template is a fixed skeleton with two named slots: Dependencies, the
// dependency-declaration block, and EntryPoint, the entry-point declaration.
// The vocabulary filling those slots (dependency verb, entry-point key and the
// fallback entry point of unnamed snippets) is a per-build-tool constant table.
// Rendering is pure; Write is the only function that touches disk.
package manifest
