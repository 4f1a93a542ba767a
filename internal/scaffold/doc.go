// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates the on-disk project a snippet is built in.
//
// The project root is derived from the base output directory, the language
// identifier and the project name:
//
//	<base>/<language>/[<project>/]
//
// An empty project name uses the language directory itself. Every build writes
// straight to disk, overwriting what a previous build of the same project left
// behind. Two concurrent builds of the same (language, project) pair race on the
// same files; callers that build concurrently must use distinct project names
// or serialize builds per name.
package scaffold
