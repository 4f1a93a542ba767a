// SPDX-License-Identifier: MPL-2.0

// Package process drives an external-process handle produced by a language
// backend to completion and reports its exit status and output.
//
// The toolchain's diagnostics are never interpreted: a non-zero exit is
// reported through Result.ExitCode with the captured streams untouched, while
// Result.Error is reserved for failures to run the process at all (missing
// binary, cancellation, I/O errors).
package process
